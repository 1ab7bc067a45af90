package filekv

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/rs/zerolog/log"

	"github.com/hatakou1021-design/sns-site/internal/kv"
)

var store *FileStore

func TestMain(m *testing.M) {
	path, err := os.MkdirTemp("", "filekv")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to setup tests")
		return
	}

	store, err = New(path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create store")
		return
	}

	m.Run()
	if err = os.RemoveAll(path); err != nil {
		log.Fatal().Err(err).Msg("removal of temporary directory failed")
	}
}

func TestSetGet(t *testing.T) {
	cases := []struct {
		Casename string
		Key      string
		Value    string
	}{
		{"plain key", "sns-posts", `[{"id":"1"}]`},
		{"key with separator", "sns-points:user@example.com", "30"},
		{"overwrite", "sns-posts", `[]`},
	}

	ctx := context.Background()
	for _, c := range cases {
		t.Run(c.Casename, func(t *testing.T) {
			if err := store.Set(ctx, c.Key, c.Value); err != nil {
				t.Fatal("unexpected error:", err)
			}

			got, err := store.Get(ctx, c.Key)
			if err != nil {
				t.Fatal("unexpected error:", err)
			}
			if got != c.Value {
				t.Errorf("expected %q, got %q", c.Value, got)
			}
		})
	}
}

func TestGetAbsent(t *testing.T) {
	_, err := store.Get(context.Background(), "none")
	if !errors.Is(err, kv.ErrNotExist) {
		t.Errorf("unexpected err: %s\nexpected %q", err, kv.ErrNotExist)
	}
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	if err := store.Set(ctx, "moribundus", "x"); err != nil {
		t.Fatal("unexpected error:", err)
	}

	if err := store.Remove(ctx, "moribundus"); err != nil {
		t.Errorf("unexpected error: %s", err)
	}

	_, err := store.Get(ctx, "moribundus")
	if !errors.Is(err, kv.ErrNotExist) {
		t.Errorf("expected %q after removal, got %v", kv.ErrNotExist, err)
	}

	// removing twice is fine
	if err := store.Remove(ctx, "moribundus"); err != nil {
		t.Errorf("unexpected error on second removal: %s", err)
	}
}

func TestNewRejectsFile(t *testing.T) {
	f, err := os.CreateTemp("", "notadir")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	defer os.Remove(f.Name())

	if _, err := New(f.Name()); err == nil {
		t.Error("expected an error for a non-directory root")
	}
}
