package domain

import "time"

// Post is a single feed entry. Posts are immutable once created; the
// collection only grows, or is removed wholesale by a store reset.
type Post struct {
	ID      string    `json:"id"`
	Content string    `json:"content"`
	Created time.Time `json:"created"`
	Author  string    `json:"author,omitempty"`
}
