package security

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter is a fixed-window attempt counter. IsLimited records an attempt for
// the key and reports whether the key has exceeded its budget for the current
// window. RemainingTime reports how long until the key's window resets, zero
// when the key has no record.
type Limiter interface {
	IsLimited(ctx context.Context, key string) bool
	RemainingTime(ctx context.Context, key string) time.Duration
}

type windowRecord struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter is the in-process implementation. Counters live for the
// process lifetime only and are not shared across instances, which is
// acceptable for single-instance deployments.
type MemoryLimiter struct {
	mu          sync.Mutex
	attempts    map[string]*windowRecord
	maxAttempts int
	window      time.Duration

	now func() time.Time
}

func NewMemoryLimiter(maxAttempts int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		attempts:    make(map[string]*windowRecord),
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
	}
}

func (l *MemoryLimiter) IsLimited(_ context.Context, key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	record, ok := l.attempts[key]
	if !ok || now.After(record.resetAt) {
		l.attempts[key] = &windowRecord{count: 1, resetAt: now.Add(l.window)}
		return false
	}

	record.count++
	return record.count > l.maxAttempts
}

func (l *MemoryLimiter) RemainingTime(_ context.Context, key string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	record, ok := l.attempts[key]
	if !ok {
		return 0
	}

	remaining := record.resetAt.Sub(l.now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// RedisLimiter keeps the same fixed-window contract in Redis so the count is
// shared across instances and survives restarts.
type RedisLimiter struct {
	redis       *redis.Client
	maxAttempts int
	window      time.Duration
}

func NewRedisLimiter(redisClient *redis.Client, maxAttempts int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		redis:       redisClient,
		maxAttempts: maxAttempts,
		window:      window,
	}
}

func (l *RedisLimiter) key(key string) string {
	return fmt.Sprintf("ratelimit:%s", key)
}

func (l *RedisLimiter) IsLimited(ctx context.Context, key string) bool {
	count, err := l.redis.Incr(ctx, l.key(key)).Result()
	if err != nil {
		// Redis being down must not lock every caller out of login.
		slog.Warn("rate limiter incr failed", "key", key, "error", err)
		return false
	}

	if count == 1 {
		l.redis.Expire(ctx, l.key(key), l.window)
	}

	return count > int64(l.maxAttempts)
}

func (l *RedisLimiter) RemainingTime(ctx context.Context, key string) time.Duration {
	ttl, err := l.redis.PTTL(ctx, l.key(key)).Result()
	if err != nil || ttl < 0 {
		return 0
	}
	return ttl
}
