package cache

import (
	"context"
	"time"
)

// Cache is the contract for the cache layer. Implementations marshal
// values to JSON; Get reports a miss with found=false and leaves dest
// untouched.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePattern(ctx context.Context, pattern string) error
	Ping(ctx context.Context) error
}
