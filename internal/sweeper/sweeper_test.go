package sweeper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ddanilin/virtshop/internal/cache"
)

func TestSweep(t *testing.T) {
	ctx := context.Background()
	memCache := cache.NewMemory()
	service := New(memCache, time.Hour)

	assert.NoError(t, memCache.Set(ctx, "inventory:1", "[]", time.Hour))
	assert.NoError(t, memCache.Set(ctx, "inventory:2", "[]", time.Hour))
	assert.NoError(t, memCache.Set(ctx, "popular_products:2024-03-01:5", "[]", time.Hour))
	assert.NoError(t, memCache.Set(ctx, "someidempotencyhash", "{}", time.Hour))

	assert.NoError(t, service.Sweep(ctx))

	_, err := memCache.Get(ctx, "inventory:1")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
	_, err = memCache.Get(ctx, "inventory:2")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)

	// Keys outside the pattern survive.
	_, err = memCache.Get(ctx, "popular_products:2024-03-01:5")
	assert.NoError(t, err)
	_, err = memCache.Get(ctx, "someidempotencyhash")
	assert.NoError(t, err)
}

func TestSweep_EmptyCache(t *testing.T) {
	service := New(cache.NewMemory(), time.Hour)
	assert.NoError(t, service.Sweep(context.Background()))
}

func TestStart_ReturnsOnCancel(t *testing.T) {
	service := New(cache.NewMemory(), time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		service.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start did not return after context cancellation")
	}
}
