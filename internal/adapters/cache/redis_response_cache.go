package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis-backed store for serialized HTTP responses. Writes are idempotent
// overwrites, so two concurrent misses for the same key race harmlessly:
// both recompute, the later write wins with an identical value.
type RedisResponseCache struct {
	Client *redis.Client
}

func NewRedisResponseCache(client *redis.Client) *RedisResponseCache {
	return &RedisResponseCache{Client: client}
}

// Fetch the cached response for key. A missing key is ok=false, not an error.
func (c *RedisResponseCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if c.Client == nil {
		return nil, false, errors.New("response cache: client is nil")
	}

	b, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("response cache: get %q: %w", key, err)
	}
	return b, true, nil
}

// Store value under key until the TTL elapses, replacing any prior entry.
func (c *RedisResponseCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c.Client == nil {
		return errors.New("response cache: client is nil")
	}

	if err := c.Client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("response cache: set %q: %w", key, err)
	}
	return nil
}

// Drop the entire logical database backing the cache. There is no per-key
// invalidation; the database holds nothing but response snapshots.
func (c *RedisResponseCache) Clear(ctx context.Context) error {
	if c.Client == nil {
		return errors.New("response cache: client is nil")
	}

	if err := c.Client.FlushDB(ctx).Err(); err != nil {
		return fmt.Errorf("response cache: clear: %w", err)
	}
	return nil
}
