package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/99minutos/payment-console/internal/infrastructure/config"
	"github.com/99minutos/payment-console/internal/infrastructure/db/file"
	"github.com/99minutos/payment-console/internal/infrastructure/db/memory"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("file", func(t *testing.T) {
		cfg := &config.Config{Storage: config.StorageConfig{Driver: config.DriverFile, File: filepath.Join(t.TempDir(), "s.json")}}
		store, closeFn, err := Open(ctx, cfg)
		require.NoError(t, err)
		require.IsType(t, &file.LocalStorage{}, store)
		require.NoError(t, closeFn(ctx))
	})

	t.Run("memory", func(t *testing.T) {
		store, closeFn, err := Open(ctx, &config.Config{Storage: config.StorageConfig{Driver: config.DriverMemory}})
		require.NoError(t, err)
		require.IsType(t, &memory.LocalStorage{}, store)
		require.NoError(t, closeFn(ctx))
	})

	t.Run("unknown", func(t *testing.T) {
		_, _, err := Open(ctx, &config.Config{Storage: config.StorageConfig{Driver: "etcd"}})
		require.Error(t, err)
	})
}
