// Package db opens the key/value store selected by configuration.
package db

import (
	"context"
	"fmt"

	"github.com/99minutos/payment-console/internal/core/ports"
	"github.com/99minutos/payment-console/internal/infrastructure/config"
	"github.com/99minutos/payment-console/internal/infrastructure/db/file"
	"github.com/99minutos/payment-console/internal/infrastructure/db/memory"
	"github.com/99minutos/payment-console/internal/infrastructure/db/mongo"
	"github.com/99minutos/payment-console/internal/infrastructure/db/postgres"
	"github.com/99minutos/payment-console/internal/infrastructure/db/redis"
)

// CloseFunc releases the connection behind a store.
type CloseFunc func(ctx context.Context) error

func noopClose(context.Context) error { return nil }

// Open connects the configured driver and returns the store with its closer.
func Open(ctx context.Context, cfg *config.Config) (ports.KeyValueStore, CloseFunc, error) {
	switch cfg.Storage.Driver {
	case config.DriverFile:
		return file.New(cfg.Storage.File), noopClose, nil

	case config.DriverMemory:
		return memory.New(), noopClose, nil

	case config.DriverRedis:
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, nil, err
		}
		closeFn := func(context.Context) error { return client.Close() }
		return redis.NewLocalStorage(client, cfg.Redis.Prefix), closeFn, nil

	case config.DriverMongo:
		client, database, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, nil, err
		}
		return mongo.NewLocalStorage(database), client.Disconnect, nil

	case config.DriverPostgres:
		store, err := postgres.Open(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, nil, err
		}
		return store, func(context.Context) error { return store.Close() }, nil
	}
	return nil, nil, fmt.Errorf("storage: unknown driver %q", cfg.Storage.Driver)
}
