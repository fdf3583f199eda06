package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// LocalStorage keeps each key as a plain Redis string under a shared prefix.
// Values never expire.
type LocalStorage struct {
	client *redis.Client
	prefix string
}

func NewLocalStorage(client *redis.Client, prefix string) *LocalStorage {
	return &LocalStorage{client: client, prefix: prefix}
}

func (s *LocalStorage) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *LocalStorage) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *LocalStorage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *LocalStorage) key(key string) string {
	return s.prefix + key
}
