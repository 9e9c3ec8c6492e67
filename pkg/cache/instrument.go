package cache

import (
	"context"
	"time"

	"github.com/matzehuels/turkshead/pkg/observability"
)

type instrumented struct {
	Cache
	hooks observability.CacheHooks
}

// Instrument wraps c so that every lookup and write is reported to hooks.
// A nil hooks uses the globally registered observability.Cache().
func Instrument(c Cache, hooks observability.CacheHooks) Cache {
	if hooks == nil {
		hooks = observability.Cache()
	}
	return &instrumented{Cache: c, hooks: hooks}
}

func (c *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.Cache.Get(ctx, key)
	if err == nil {
		if hit {
			c.hooks.OnCacheHit(ctx, KeyType(key))
		} else {
			c.hooks.OnCacheMiss(ctx, KeyType(key))
		}
	}
	return data, hit, err
}

func (c *instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.Cache.Set(ctx, key, data, ttl)
	if err == nil {
		c.hooks.OnCacheSet(ctx, KeyType(key), len(data))
	}
	return err
}
