package cache

import (
	"context"
	"time"
)

// Cache is the contract for the caching layer. Implementations may be
// Redis, Memcached or in-memory; repositories only depend on this interface.
type Cache interface {
	// Get reads a key and unmarshals it into dest.
	// found = false means cache miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)

	// Set stores a value under key with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache.
	Delete(ctx context.Context, keys ...string) error

	// Ping verifies the connection.
	Ping(ctx context.Context) error
}
