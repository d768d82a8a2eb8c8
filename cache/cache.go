package cache

import (
	"ClinicFlow/database"
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache wraps the shared Redis client for the repositories' cache-aside
// reads. Values are JSON strings; a miss is reported as an empty string, not
// an error.
type Cache struct {
	client *redis.Client
}

func NewCache() (*Cache, error) {
	if database.RedisClient == nil {
		return nil, errors.New("redis client is not initialized")
	}
	return &Cache{client: database.RedisClient}, nil
}

func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return value, err
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// DeleteAll removes every key matching pattern, walking the keyspace with
// SCAN rather than KEYS so large caches do not block the server.
func (c *Cache) DeleteAll(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	batch := make([]string, 0, 64)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			if err := c.client.Del(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return c.client.Del(ctx, batch...).Err()
	}
	return nil
}
