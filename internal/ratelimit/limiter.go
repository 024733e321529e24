// Package ratelimit provides per-client admission control for the public
// contact endpoint. Both implementations share one interface so the
// submission pipeline does not care whether counts live in process memory
// or in Redis.
package ratelimit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Fixed-window defaults: at most MaxRequestsPerWindow submissions per client
// identifier per Window.
const (
	Window               = time.Minute
	MaxRequestsPerWindow = 5
)

// Limiter decides whether a client identifier has exceeded its submission
// budget. Implementations count the call itself: every invocation is one
// request against the window.
type Limiter interface {
	IsRateLimited(ctx context.Context, clientID string) bool
}

type entry struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter is a process-local fixed-window limiter. Entries are never
// evicted; the map lives for the process lifetime and does not coordinate
// across instances.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	limit   int
	window  time.Duration
	now     func() time.Time
}

// NewMemoryLimiter creates a MemoryLimiter with the given budget.
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		entries: make(map[string]*entry),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// IsRateLimited counts one request for clientID and reports whether the
// window budget is exhausted. A first request, or one arriving after the
// window boundary, resets the entry to a fresh count of one.
func (l *MemoryLimiter) IsRateLimited(_ context.Context, clientID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[clientID]
	if !ok || now.After(e.resetAt) {
		l.entries[clientID] = &entry{count: 1, resetAt: now.Add(l.window)}
		return false
	}

	e.count++
	return e.count > l.limit
}

// RedisLimiter keeps the window counters in Redis so that multiple server
// instances share one view of request counts. It fails open: if Redis is
// unreachable the submission is admitted rather than dropped.
type RedisLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	logger *slog.Logger
}

// NewRedisLimiter creates a RedisLimiter with the given budget.
func NewRedisLimiter(rdb *redis.Client, limit int, window time.Duration, logger *slog.Logger) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, limit: limit, window: window, logger: logger}
}

// IsRateLimited counts one request for clientID via INCR and reports whether
// the window budget is exhausted. The key expires at the window boundary.
func (l *RedisLimiter) IsRateLimited(ctx context.Context, clientID string) bool {
	if l.rdb == nil {
		return false
	}

	key := "contact_rl:" + clientID
	cnt, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		if l.logger != nil {
			l.logger.WarnContext(ctx, "rate limit store unavailable, admitting request",
				slog.String("client_id", clientID),
				slog.String("error", err.Error()),
			)
		}
		return false
	}
	if cnt == 1 {
		l.rdb.Expire(ctx, key, l.window)
	}
	return cnt > int64(l.limit)
}
