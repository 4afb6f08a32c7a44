package cache

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func collectKeys(t *testing.T, it Iterator) []string {
	t.Helper()
	var keys []string
	for it.Next(context.Background()) {
		keys = append(keys, it.Key())
	}
	assert.NoError(t, it.Err())
	sort.Strings(keys)
	return keys
}

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	err := c.Set(ctx, "inventory:1", `[{"quantity":2}]`, 5*time.Minute)
	assert.NoError(t, err)

	value, err := c.Get(ctx, "inventory:1")
	assert.NoError(t, err)
	assert.Equal(t, `[{"quantity":2}]`, value)
}

func TestMemoryCache_GetMissing(t *testing.T) {
	c := NewMemory()

	_, err := c.Get(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()
	now := time.Now()
	c.now = func() time.Time { return now }

	assert.NoError(t, c.Set(ctx, "short", "v", time.Minute))
	assert.NoError(t, c.Set(ctx, "forever", "v", 0))

	now = now.Add(2 * time.Minute)

	_, err := c.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrCacheMiss)

	value, err := c.Get(ctx, "forever")
	assert.NoError(t, err)
	assert.Equal(t, "v", value)
}

func TestMemoryCache_DeleteAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	assert.NoError(t, c.Delete(ctx, "missing"))

	assert.NoError(t, c.Set(ctx, "k", "v", 0))
	assert.NoError(t, c.Delete(ctx, "k"))
	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCache_Iter(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	assert.NoError(t, c.Set(ctx, "inventory:1", "a", 0))
	assert.NoError(t, c.Set(ctx, "inventory:2", "b", 0))
	assert.NoError(t, c.Set(ctx, "popular_products:2024-01-01:5", "c", 0))

	keys := collectKeys(t, c.Iter(ctx, "inventory:*", 0))
	assert.Equal(t, []string{"inventory:1", "inventory:2"}, keys)

	keys = collectKeys(t, c.Iter(ctx, "popular_products:*", 0))
	assert.Equal(t, []string{"popular_products:2024-01-01:5"}, keys)
}

func TestMemoryCache_IterCount(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	assert.NoError(t, c.Set(ctx, "inventory:1", "a", 0))
	assert.NoError(t, c.Set(ctx, "inventory:2", "b", 0))
	assert.NoError(t, c.Set(ctx, "inventory:3", "c", 0))

	keys := collectKeys(t, c.Iter(ctx, "inventory:*", 2))
	assert.Len(t, keys, 2)
}

func TestMemoryCache_IterSkipsExpired(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()
	now := time.Now()
	c.now = func() time.Time { return now }

	assert.NoError(t, c.Set(ctx, "inventory:1", "a", time.Minute))
	assert.NoError(t, c.Set(ctx, "inventory:2", "b", time.Hour))

	now = now.Add(30 * time.Minute)

	keys := collectKeys(t, c.Iter(ctx, "inventory:*", 0))
	assert.Equal(t, []string{"inventory:2"}, keys)
}
