package ports

import "context"

// KeyValueStore is the local-storage equivalent the console persists into.
// Values are opaque strings stored under flat keys.
type KeyValueStore interface {
	// Get returns the value under key. found is false when the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
