package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/suraj4812010/Videotube/kv"
	"github.com/suraj4812010/Videotube/models"
)

// RateLimiter enforces fixed-window request budgets for the abusable
// unauthenticated endpoints, keyed by scope and client IP. A store
// failure fails open: throttling is a hardening measure, not worth an
// outage.
type RateLimiter struct {
	kv       kv.KeyValueStore
	attempts int
	window   time.Duration
}

func NewRateLimiter(store kv.KeyValueStore, attempts int, window time.Duration) *RateLimiter {
	return &RateLimiter{kv: store, attempts: attempts, window: window}
}

// Check counts a hit for ip within the scope's current window and fails
// with a 429 once the budget is exceeded.
func (l *RateLimiter) Check(ctx context.Context, scope, ip string) error {
	count, err := l.kv.Incr(ctx, key(scope, ip), l.window)
	if err != nil {
		slog.Warn("rate limit store unavailable, failing open", "error", err, "scope", scope)
		return nil
	}

	if count > int64(l.attempts) {
		return models.NewAPIError(429, "Too many attempts, please try again later")
	}

	return nil
}

// Reset clears the window for ip, used after a successful attempt so a
// legitimate client does not inherit its own failed tries.
func (l *RateLimiter) Reset(ctx context.Context, scope, ip string) {
	if err := l.kv.Del(ctx, key(scope, ip)); err != nil {
		slog.Warn("failed to reset rate limit window", "error", err, "scope", scope)
	}
}

func key(scope, ip string) string {
	return fmt.Sprintf("rl:%s:%s", scope, ip)
}
