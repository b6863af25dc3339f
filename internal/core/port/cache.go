package port

import (
	"context"
	"time"
)

// CachePort is a shared key/value cache with per-entry TTL. Values are
// serialized by the implementation; Get decodes into out.
type CachePort interface {
	Get(ctx context.Context, key string, out interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	// Flush drops every entry owned by this cache.
	Flush(ctx context.Context) error
}
