package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is the read-through cache used by the public listing endpoints.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// ErrCacheMiss is returned by Cache.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// RedisCache implements Cache over a Redis client.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a Redis-backed cache.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	return val, err
}

func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// cachedJSON reads a cached JSON document into dest. It returns false on
// miss or any cache failure; a broken cache never breaks a listing.
func cachedJSON(ctx context.Context, cache Cache, logger *slog.Logger, key string, dest any) bool {
	if cache == nil {
		return false
	}

	raw, err := cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			logger.WarnContext(ctx, "cache read failed",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
		return false
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		logger.WarnContext(ctx, "cache entry malformed",
			slog.String("key", key),
		)
		return false
	}

	return true
}

// storeJSON writes a JSON document to the cache, logging failures instead of
// propagating them.
func storeJSON(ctx context.Context, cache Cache, logger *slog.Logger, key string, val any, ttl time.Duration) {
	if cache == nil {
		return
	}

	raw, err := json.Marshal(val)
	if err != nil {
		return
	}

	if err := cache.Set(ctx, key, string(raw), ttl); err != nil {
		logger.WarnContext(ctx, "cache write failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}
