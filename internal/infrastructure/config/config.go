package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

type Config struct {
	Port     string `env:"PORT,      default=8090"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Payments PaymentsConfig
	Session  SessionConfig
	Storage  StorageConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Postgres PostgresConfig
}

type PaymentsConfig struct {
	BaseURL string        `env:"PAYMENTS_API_URL,     default=http://localhost:8080/api/payments"`
	Timeout time.Duration `env:"PAYMENTS_API_TIMEOUT, default=10s"`
}

type SessionConfig struct {
	PollInterval time.Duration `env:"POLL_INTERVAL, default=5s"`
	AuthDelay    time.Duration `env:"AUTH_DELAY,    default=1s"`
}

type StorageConfig struct {
	Driver   string `env:"STORAGE_DRIVER, default=file"`
	File     string `env:"STORAGE_FILE,   default=.payment-console.json"`
	UsersKey string `env:"STORAGE_KEY,    default=registeredUsers"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=payment_console"`
}

type PostgresConfig struct {
	DSN string `env:"POSTGRES_DSN, default=postgres://localhost:5432/payment_console?sslmode=disable"`
}

type RedisConfig struct {
	Addr   string `env:"REDIS_ADDR,   default=localhost:6379"`
	DB     int    `env:"REDIS_DB,     default=0"`
	Prefix string `env:"REDIS_PREFIX, default=payment-console:"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects combinations envconfig cannot catch on its own.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverFile, DriverMemory, DriverRedis, DriverMongo, DriverPostgres:
	default:
		return fmt.Errorf("config: unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}
	if c.Payments.BaseURL == "" {
		return fmt.Errorf("config: PAYMENTS_API_URL is required")
	}
	if c.Session.PollInterval <= 0 {
		return fmt.Errorf("config: POLL_INTERVAL must be positive")
	}
	if c.Session.AuthDelay < 0 {
		return fmt.Errorf("config: AUTH_DELAY must not be negative")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
