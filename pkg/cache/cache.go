// Package cache provides a small Redis-backed JSON cache for read-heavy
// dashboard queries.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// ErrMiss indicates the key was absent or expired.
var ErrMiss = errors.New("cache miss")

// Cache stores JSON documents with a TTL. Implementations must treat backend
// outages as misses; callers always have the authoritative store to fall
// back on.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) error
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type RedisCache struct {
	client redis.UniversalClient
	logger *slog.Logger
}

// NewRedisCache connects using a redis URL such as redis://localhost:6379/0.
func NewRedisCache(url string, logger *slog.Logger) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	return &RedisCache{
		client: redis.NewClient(opts),
		logger: logger.With("module", "cache"),
	}, nil
}

func (c *RedisCache) GetJSON(ctx context.Context, key string, dest any) error {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrMiss
		}

		c.logger.WarnContext(ctx, "Cache read failed", "key", key, "error", err)

		return ErrMiss
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return ErrMiss
	}

	return nil
}

func (c *RedisCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "Cache write failed", "key", key, "error", err)

		return err
	}

	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
