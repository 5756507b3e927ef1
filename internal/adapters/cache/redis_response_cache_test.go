package cache

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*RedisResponseCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisResponseCache(client), mr
}

func TestRedisResponseCacheRoundtrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	want := []byte(`{"status":200,"body":"aGVsbG8="}`)
	if err := c.Set(ctx, "v1/find-room:abc", want, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, ok, err := c.Get(ctx, "v1/find-room:abc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("expected a hit")
	}
	if !bytes.Equal(got, want) {
		t.Errorf("cached value = %q, want %q", got, want)
	}
}

func TestRedisResponseCacheMiss(t *testing.T) {
	c, _ := newTestCache(t)

	got, ok, err := c.Get(context.Background(), "no-such-key")
	if err != nil {
		t.Fatalf("miss should not error, got %v", err)
	}
	if ok || got != nil {
		t.Errorf("miss = (%q, %v), want (nil, false)", got, ok)
	}
}

func TestRedisResponseCacheTTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "v1/cache-test", []byte("x"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if ttl := mr.TTL("v1/cache-test"); ttl != time.Minute {
		t.Errorf("ttl = %v, want %v", ttl, time.Minute)
	}

	mr.FastForward(61 * time.Second)

	_, ok, err := c.Get(ctx, "v1/cache-test")
	if err != nil {
		t.Fatalf("get after expiry: %v", err)
	}
	if ok {
		t.Error("entry should have expired")
	}
}

func TestRedisResponseCacheClear(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, key, []byte(key), time.Minute); err != nil {
			t.Fatalf("set %q: %v", key, err)
		}
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	for _, key := range []string{"a", "b", "c"} {
		if _, ok, _ := c.Get(ctx, key); ok {
			t.Errorf("key %q survived clear", key)
		}
	}
}

func TestRedisResponseCacheNilClient(t *testing.T) {
	c := NewRedisResponseCache(nil)
	ctx := context.Background()

	if _, _, err := c.Get(ctx, "k"); err == nil {
		t.Error("get with nil client should error")
	}
	if err := c.Set(ctx, "k", nil, 0); err == nil {
		t.Error("set with nil client should error")
	}
	if err := c.Clear(ctx); err == nil {
		t.Error("clear with nil client should error")
	}
}
