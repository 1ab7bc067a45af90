// Package memkv is an in-memory Store used in tests and ephemeral runs.
package memkv

import (
	"context"
	"sync"

	"github.com/hatakou1021-design/sns-site/internal/kv"
)

type MemStore struct {
	mu     sync.Mutex
	values map[string]string

	// FailWrites, when set, makes Set return ErrInternal. Tests use it to
	// simulate a full or disabled storage backend.
	FailWrites bool
}

func New() *MemStore {
	return &MemStore{values: make(map[string]string)}
}

func (s *MemStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return "", kv.ErrNotExist
	}
	return v, nil
}

func (s *MemStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites {
		return kv.ErrInternal
	}
	s.values[key] = value
	return nil
}

func (s *MemStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
