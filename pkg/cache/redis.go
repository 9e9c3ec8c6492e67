package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures a RedisCache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// Prefix is prepended to every key, so several deployments can share one
	// Redis database.
	Prefix string
	// DialTimeout bounds connection attempts. Defaults to 2s.
	DialTimeout time.Duration
}

// RedisCache stores entries in Redis with native expiry.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache creates a Redis-backed cache. It does not connect; call Ping
// to check the server is reachable.
func NewRedisCache(cfg RedisConfig) *RedisCache {
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 2 * time.Second
	}
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
		MaxRetries:  -1,
	})
	return &RedisCache{client: client, prefix: cfg.Prefix}
}

// Ping checks connectivity, retrying with backoff.
func (c *RedisCache) Ping(ctx context.Context) error {
	return RetryWithBackoff(ctx, func() error {
		return c.unavailable(c.client.Ping(ctx).Err())
	})
}

// Get retrieves a value.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, c.unavailable(err)
	}
	return data, true, nil
}

// Set stores a value. A ttl <= 0 keeps the entry until deleted.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return c.unavailable(c.client.Set(ctx, c.prefix+key, data, ttl).Err())
}

// Delete removes a value.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.unavailable(c.client.Del(ctx, c.prefix+key).Err())
}

// Close closes the client connection pool.
func (c *RedisCache) Close() error { return c.client.Close() }

func (c *RedisCache) unavailable(err error) error {
	if err == nil {
		return nil
	}
	return Retryable(fmt.Errorf("%w: redis %s: %w", ErrUnavailable, c.client.Options().Addr, err))
}

var _ Cache = (*RedisCache)(nil)
