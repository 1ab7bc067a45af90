// Package feed computes derived views over a post snapshot. Every function
// is pure: the input slice is never mutated and no I/O happens here.
package feed

import (
	"errors"
	"sort"
	"strings"

	"github.com/hatakou1021-design/sns-site/internal/domain"
)

// CategoryAll is the sentinel category that disables filtering.
const CategoryAll = "すべて"

// ErrEmptyQuery distinguishes "nothing searched" from "nothing found". The
// caller renders a prompt for the former and an empty result for the latter.
var ErrEmptyQuery = errors.New("empty query")

// SortedByRecency orders posts newest first. The sort is stable, so posts
// sharing a timestamp keep their insertion order.
func SortedByRecency(posts []domain.Post) []domain.Post {
	out := make([]domain.Post, len(posts))
	copy(out, posts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Created.After(out[j].Created)
	})
	return out
}

// Search returns posts whose content contains the trimmed query as a
// literal, case-sensitive substring, newest first. A query that trims to
// nothing yields ErrEmptyQuery.
func Search(posts []domain.Post, query string) ([]domain.Post, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	matched := make([]domain.Post, 0, len(posts))
	for _, p := range posts {
		if strings.Contains(p.Content, query) {
			matched = append(matched, p)
		}
	}
	return SortedByRecency(matched), nil
}

// FilterByCategory keeps posts mentioning the category either as a #hashtag
// or as a bare token, newest first. CategoryAll returns everything.
func FilterByCategory(posts []domain.Post, category string) []domain.Post {
	if category == CategoryAll {
		return SortedByRecency(posts)
	}

	matched := make([]domain.Post, 0, len(posts))
	for _, p := range posts {
		// a bare token match also covers the #hashtag form
		if strings.Contains(p.Content, category) {
			matched = append(matched, p)
		}
	}
	return SortedByRecency(matched)
}
