package redis

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Runs against a live server only when TEST_REDIS_ADDR is set.
func TestLocalStorage_Integration(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()

	client, err := Connect(ctx, Config{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	prefix := "test:" + uuid.NewString() + ":"
	s := NewLocalStorage(client, prefix)
	t.Cleanup(func() { client.Del(ctx, prefix+"registeredUsers") })

	_, found, err := s.Get(ctx, "registeredUsers")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, s.Set(ctx, "registeredUsers", "[]"))
	v, found, err := s.Get(ctx, "registeredUsers")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "[]", v)
	require.NoError(t, s.Ping(ctx))
}

func TestLocalStorage_KeyPrefix(t *testing.T) {
	s := NewLocalStorage(nil, "console:")
	require.Equal(t, "console:registeredUsers", s.key("registeredUsers"))
}
