// Package poststore owns the persisted post collection and the in-memory
// snapshot the feed is projected from. Persistence is best-effort: a failing
// backend degrades to session-only state, it never takes the caller down.
package poststore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hatakou1021-design/sns-site/internal/domain"
	"github.com/hatakou1021-design/sns-site/internal/kv"
	"github.com/hatakou1021-design/sns-site/internal/validate"
)

const (
	postsKey       = "sns-posts"
	welcomeContent = "ようこそ！これは最初の投稿です。"
)

var ErrInvalidContent = errors.New("invalid content")

type Store struct {
	kv  kv.Store
	now func() time.Time

	mu     sync.Mutex
	posts  []domain.Post
	loaded bool
}

func New(store kv.Store) *Store {
	return NewWithClock(store, time.Now)
}

func NewWithClock(store kv.Store, now func() time.Time) *Store {
	return &Store{kv: store, now: now}
}

// Load reads the persisted collection into the snapshot and returns it. An
// empty backend is seeded with a single welcome post, which is persisted
// immediately. A backend read or parse failure is logged and yields an empty
// collection; no error escapes. Store is safe for concurrent use: every
// exported method serializes on an internal mutex.
func (s *Store) Load(ctx context.Context) []domain.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load(ctx)
	return s.snapshot()
}

func (s *Store) load(ctx context.Context) {
	raw, err := s.kv.Get(ctx, postsKey)
	switch {
	case errors.Is(err, kv.ErrNotExist):
		s.posts = []domain.Post{s.welcomePost()}
		s.save(ctx)
	case err != nil:
		log.Error().Err(err).Msg("loading posts")
		s.posts = []domain.Post{}
	default:
		var posts []domain.Post
		if err := json.Unmarshal([]byte(raw), &posts); err != nil {
			log.Error().Err(err).Msg("parsing persisted posts")
			posts = []domain.Post{}
		}
		s.posts = posts
	}
	s.loaded = true
}

// Append validates content, creates a post with a fresh id and the current
// timestamp, adds it to the snapshot and saves. A save failure is logged but
// does not fail the append; the post lives on in memory.
func (s *Store) Append(ctx context.Context, content, author string) (domain.Post, error) {
	content = strings.TrimSpace(content)
	if err := validate.Content(content); err != nil {
		return domain.Post{}, fmt.Errorf("%w: %s", ErrInvalidContent, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		s.load(ctx)
	}

	post := domain.Post{
		ID:      uuid.NewString(),
		Content: content,
		Created: s.now().UTC(),
		Author:  author,
	}
	s.posts = append(s.posts, post)
	s.save(ctx)

	return post, nil
}

// Save serializes the full snapshot to the backend.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx)
}

// Posts returns a copy of the in-memory snapshot in insertion order.
func (s *Store) Posts() []domain.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Reset discards the whole collection, both persisted and in memory.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = nil
	s.loaded = false
	if err := s.kv.Remove(ctx, postsKey); err != nil {
		return fmt.Errorf("resetting posts: %w", err)
	}
	return nil
}

func (s *Store) snapshot() []domain.Post {
	out := make([]domain.Post, len(s.posts))
	copy(out, s.posts)
	return out
}

func (s *Store) save(ctx context.Context) error {
	raw, err := json.Marshal(s.posts)
	if err != nil {
		log.Error().Err(err).Msg("serializing posts")
		return err
	}
	if err := s.kv.Set(ctx, postsKey, string(raw)); err != nil {
		log.Error().Err(err).Msg("saving posts")
		return err
	}
	return nil
}

func (s *Store) welcomePost() domain.Post {
	return domain.Post{
		ID:      uuid.NewString(),
		Content: welcomeContent,
		Created: s.now().UTC(),
	}
}
