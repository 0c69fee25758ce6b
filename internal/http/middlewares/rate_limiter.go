package middleware

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/rueidis"

	apperrors "task-tracker.com/task-tracker/internal/errors"
)

// RateLimitStore counts hits for key in the current fixed window and returns
// the count including this hit.
type RateLimitStore interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimiter rejects a client once it exceeds limit requests per window.
// Store failures let the request through.
func RateLimiter(store RateLimitStore, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			count, err := store.Hit(c.Request().Context(), c.RealIP(), window)
			if err != nil {
				log.Printf("rate limiter: %v", err)
				return next(c)
			}

			if count > int64(limit) {
				return apperrors.ErrRateLimited
			}

			return next(c)
		}
	}
}

type bucket struct {
	count int64
	start time.Time
}

type MemoryRateLimitStore struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
	now       func() time.Time
}

func NewMemoryRateLimitStore() *MemoryRateLimitStore {
	return &MemoryRateLimitStore{
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

func (m *MemoryRateLimitStore) Hit(_ context.Context, key string, window time.Duration) (int64, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	if now.Sub(m.lastSweep) > window {
		for k, b := range m.buckets {
			if now.Sub(b.start) >= window {
				delete(m.buckets, k)
			}
		}
		m.lastSweep = now
	}

	b, ok := m.buckets[key]
	if !ok || now.Sub(b.start) >= window {
		b = &bucket{start: now}
		m.buckets[key] = b
	}

	b.count++
	return b.count, nil
}

// RedisRateLimitStore shares counters between server instances. Keys are
// bucketed per window and expire with it.
type RedisRateLimitStore struct {
	client rueidis.Client
	prefix string
	now    func() time.Time
}

func NewRedisRateLimitStore(client rueidis.Client, prefix string) *RedisRateLimitStore {
	return &RedisRateLimitStore{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

func (r *RedisRateLimitStore) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	redisKey := r.key(key, window)

	results := r.client.DoMulti(
		ctx,
		r.client.B().Incr().Key(redisKey).Build(),
		r.client.B().Pexpire().Key(redisKey).Milliseconds(window.Milliseconds()).Build(),
	)

	count, err := results[0].AsInt64()
	if err != nil {
		return 0, fmt.Errorf("incr %s: %w", redisKey, err)
	}
	if err := results[1].Error(); err != nil {
		return 0, fmt.Errorf("pexpire %s: %w", redisKey, err)
	}

	return count, nil
}

func (r *RedisRateLimitStore) key(key string, window time.Duration) string {
	slot := r.now().UnixNano() / int64(window)
	return fmt.Sprintf("%s%s:%d", r.prefix, key, slot)
}
