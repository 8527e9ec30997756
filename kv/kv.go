package kv

import (
	"context"
	"time"
)

// KeyValueStore represents an interface for a key-value storage system
// providing the counter and expiry primitives the rate limiter needs
type KeyValueStore interface {
	// Incr increments the counter stored at key and returns the new
	// value. The first increment in a window arms the expiry.
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
	// Del removes the key
	Del(ctx context.Context, key string) error
}
