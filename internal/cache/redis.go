package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrCacheMiss
		}
		return "", err
	}
	return value, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

func (c *RedisCache) Iter(ctx context.Context, pattern string, count int64) Iterator {
	return &redisIterator{iter: c.client.Scan(ctx, 0, pattern, count).Iterator()}
}

type redisIterator struct {
	iter *redis.ScanIterator
}

func (it *redisIterator) Next(ctx context.Context) bool { return it.iter.Next(ctx) }
func (it *redisIterator) Key() string                   { return it.iter.Val() }
func (it *redisIterator) Err() error                    { return it.iter.Err() }
