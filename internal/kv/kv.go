// Package kv defines the string-keyed persistence substrate the application
// records are serialized into. Implementations must be safe to call from a
// single goroutine; writes are whole-value overwrites with no partial state.
package kv

import (
	"context"
	"errors"
)

var (
	ErrNotExist = errors.New("key does not exist")
	ErrInternal = errors.New("storage internal error")
)

type Store interface {
	// Get returns the value stored under key, or ErrNotExist.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}
