package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"price-tracker/src/models"

	"github.com/redis/go-redis/v9"
)

// Namespace for cache keys so Flush cannot touch unrelated data.
const redisKeyPrefix = "pricehistory:"

// -----------------------------------------------------------------------------
// RedisCache
// -----------------------------------------------------------------------------

// RedisCache stores resolutions in Redis with a server-side TTL. It serves the
// same port as MemoryCache for deployments running multiple engine processes.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// -----------------------------------------------------------------------------

func NewRedisCache(addr, password string, db int, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{
		client: client,
		ttl:    ttl,
	}, nil
}

// -----------------------------------------------------------------------------

func (c *RedisCache) Get(ctx context.Context, key string) (*models.MPriceHistoryResult, bool, error) {
	data, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get result from redis: %w", err)
	}

	var result models.MPriceHistoryResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached result: %w", err)
	}

	return &result, true, nil
}

// -----------------------------------------------------------------------------

func (c *RedisCache) Set(ctx context.Context, key string, value *models.MPriceHistoryResult) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if err := c.client.Set(ctx, redisKeyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set result in redis: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------

// Flush removes every key under the cache namespace.
func (c *RedisCache) Flush(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete %s: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to iterate redis keys: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------

// Entries counts namespaced keys. Best effort; -1 on scan failure.
func (c *RedisCache) Entries() int {
	ctx := context.Background()
	count := 0

	iter := c.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if iter.Err() != nil {
		return -1
	}
	return count
}

// -----------------------------------------------------------------------------

func (c *RedisCache) Close() error {
	return c.client.Close()
}
