// Package filekv keeps one file per key under a root directory. Values are
// written via an atomic rename so a crashed write never leaves a torn record.
package filekv

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/rs/zerolog/log"

	"github.com/hatakou1021-design/sns-site/internal/kv"
)

type FileStore struct {
	Root string
}

func New(root string) (*FileStore, error) {
	info, err := os.Stat(root)
	if err == nil {
		if !info.IsDir() {
			log.Error().Str("root", root).Msg("not a directory")
			return nil, fmt.Errorf("%w: %s is not a directory", kv.ErrInternal, root)
		}
		return &FileStore{Root: root}, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		err = os.MkdirAll(root, os.ModePerm)
	}
	if err != nil {
		log.Error().Err(err).Msg("setting up file store")
		return nil, fmt.Errorf("%w: %s", kv.ErrInternal, err)
	}

	return &FileStore{Root: root}, nil
}

// path maps a key to a file name. Keys may contain characters such as ':'
// that are not safe in file names, so they are escaped.
func (s *FileStore) path(key string) string {
	return filepath.Join(s.Root, url.PathEscape(key))
}

func (s *FileStore) Get(ctx context.Context, key string) (string, error) {
	content, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", kv.ErrNotExist
		}
		log.Error().Err(err).Str("key", key).Msg("reading value")
		return "", fmt.Errorf("%w: %s", kv.ErrInternal, err)
	}
	return string(content), nil
}

func (s *FileStore) Set(ctx context.Context, key, value string) error {
	if err := atomic.WriteFile(s.path(key), strings.NewReader(value)); err != nil {
		log.Error().Err(err).Str("key", key).Msg("writing value")
		return fmt.Errorf("%w: %s", kv.ErrInternal, err)
	}
	return nil
}

func (s *FileStore) Remove(ctx context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		log.Error().Err(err).Str("key", key).Msg("removing value")
		return fmt.Errorf("%w: %s", kv.ErrInternal, err)
	}
	return nil
}
