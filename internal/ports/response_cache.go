package ports

import (
	"context"
	"time"
)

// Port: a boundary for storing serialized HTTP responses keyed on request
// content. Entries expire on their TTL; there is no per-key invalidation,
// only a full clear. Callers decide whether a store failure degrades to a
// cache miss.
type ResponseCache interface {
	// Return the cached value for key, or ok=false on a miss.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Store value under key for the given TTL, overwriting any prior entry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Drop every entry in the store.
	Clear(ctx context.Context) error
}
