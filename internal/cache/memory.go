package cache

import (
	"context"
	"path"
	"sync"
	"time"
)

type entry struct {
	value     string
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryCache is an in-process Cache used in tests and single-node
// deployments. Expired entries are dropped lazily on access.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

func NewMemory() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (string, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return "", ErrCacheMiss
	}
	if e.expired(c.now()) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return "", ErrCacheMiss
	}
	return e.value, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}
	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Iter(_ context.Context, pattern string, count int64) Iterator {
	now := c.now()
	c.mu.RLock()
	keys := make([]string, 0, len(c.entries))
	for key, e := range c.entries {
		if e.expired(now) {
			continue
		}
		if ok, err := path.Match(pattern, key); err == nil && ok {
			keys = append(keys, key)
			if count > 0 && int64(len(keys)) >= count {
				break
			}
		}
	}
	c.mu.RUnlock()

	return &memoryIterator{keys: keys}
}

type memoryIterator struct {
	keys []string
	pos  int
	key  string
}

func (it *memoryIterator) Next(_ context.Context) bool {
	if it.pos >= len(it.keys) {
		return false
	}
	it.key = it.keys[it.pos]
	it.pos++
	return true
}

func (it *memoryIterator) Key() string { return it.key }
func (it *memoryIterator) Err() error  { return nil }
