// Package file implements the key/value store as a single JSON object on
// disk. Every write rewrites the whole file through a temp file and rename.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
)

var errCorrupt = errors.New("corrupt storage file")

type LocalStorage struct {
	mu   sync.Mutex
	path string
}

// New returns a store backed by path. The file is created on the first Set;
// its parent directory must exist.
func New(path string) *LocalStorage {
	return &LocalStorage{path: path}
}

func (s *LocalStorage) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := entries[key]
	return v, ok, nil
}

// Set stores value under key. A corrupt file is replaced; a file that cannot
// be read is left alone and the error returned.
func (s *LocalStorage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	switch {
	case errors.Is(err, errCorrupt):
		entries = make(map[string]string)
	case err != nil:
		return err
	}
	entries[key] = value
	return s.persistLocked(entries)
}

// Ping checks that the directory holding the file is reachable.
func (s *LocalStorage) Ping(context.Context) error {
	dir := filepath.Dir(s.path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("file storage: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("file storage: %s is not a directory", dir)
	}
	return nil
}

func (s *LocalStorage) load() (map[string]string, error) {
	entries := make(map[string]string)
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return entries, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(b) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", errCorrupt, s.path, err)
	}
	return entries, nil
}

func (s *LocalStorage) persistLocked(entries map[string]string) error {
	b, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
