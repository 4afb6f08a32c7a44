package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache: key not found")

// Cache is a key/value store with per-entry TTL and pattern enumeration.
// It backs both the idempotency ledger and the read-through view cache.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	// Set stores the value. A zero ttl means the entry never expires.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Iter enumerates keys matching a glob pattern. Each call starts a fresh
	// scan; no ordering is guaranteed.
	Iter(ctx context.Context, pattern string, count int64) Iterator
}

// Iterator walks a key scan, mirroring the redis scan iterator shape.
type Iterator interface {
	Next(ctx context.Context) bool
	Key() string
	Err() error
}
