// Package memory is a process-local key/value store for tests and throwaway
// runs. Nothing survives a restart.
package memory

import (
	"context"
	"sync"
)

type LocalStorage struct {
	mu      sync.RWMutex
	entries map[string]string
}

func New() *LocalStorage {
	return &LocalStorage{entries: make(map[string]string)}
}

func (s *LocalStorage) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	return v, ok, nil
}

func (s *LocalStorage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
	return nil
}

func (s *LocalStorage) Ping(context.Context) error { return nil }
