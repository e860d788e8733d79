package cache

import (
	"context"
	"time"
)

// Store is a key/value backend with best-effort semantics. A failing backend
// never fails the caller: reads degrade to a miss and writes are dropped, both
// logged, so callers always fall back to the source of truth.
type Store interface {
	// Get decodes the value stored under key into dest and reports whether it did.
	Get(ctx context.Context, key string, dest any) bool

	// Set stores value under key. ttl <= 0 means no expiration.
	Set(ctx context.Context, key string, value any, ttl time.Duration)

	// Remove deletes keys. Removing absent keys is a no-op.
	Remove(ctx context.Context, keys ...string)

	// Exists reports whether key currently holds a value.
	Exists(ctx context.Context, key string) bool

	// Flush removes every key starting with prefix.
	Flush(ctx context.Context, prefix string)
}
