// internal/middleware/ratelimit.go
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	xerrors "github.com/adiair/PlotAura/internal/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Limiter counts requests per client identity inside a fixed window.
type Limiter interface {
	// Allow increments the counter for key and reports whether the request
	// is within the cap.
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter shares counters across processes using INCR with an
// expiry set on the window's first request.
type RedisLimiter struct {
	client *redis.Client
	window time.Duration
	max    int64
}

func NewRedisLimiter(client *redis.Client, window time.Duration, max int64) *RedisLimiter {
	return &RedisLimiter{client: client, window: window, max: max}
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	rkey := fmt.Sprintf("ratelimit:req:%s", key)

	count, err := r.client.Incr(ctx, rkey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit: %w", err)
	}

	// Set expiration on first request of the window. If this fails the
	// counter never resets, so report it instead of limiting forever.
	if count == 1 {
		if err := r.client.Expire(ctx, rkey, r.window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	return count <= r.max, nil
}

// MemoryLimiter is the in-process fallback when no Redis is configured.
// Counters reset when the window rolls; stale keys are dropped lazily.
type MemoryLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	max     int64
	counts  map[string]*windowCount
	swept   time.Time
	nowFunc func() time.Time
}

type windowCount struct {
	start time.Time
	n     int64
}

func NewMemoryLimiter(window time.Duration, max int64) *MemoryLimiter {
	return &MemoryLimiter{
		window:  window,
		max:     max,
		counts:  make(map[string]*windowCount),
		nowFunc: time.Now,
	}
}

func (m *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.nowFunc()
	m.sweep(now)

	wc, ok := m.counts[key]
	if !ok || now.Sub(wc.start) >= m.window {
		m.counts[key] = &windowCount{start: now, n: 1}
		return true, nil
	}

	wc.n++
	return wc.n <= m.max, nil
}

// sweep drops expired windows at most once per window interval.
func (m *MemoryLimiter) sweep(now time.Time) {
	if now.Sub(m.swept) < m.window {
		return
	}
	m.swept = now
	for key, wc := range m.counts {
		if now.Sub(wc.start) >= m.window {
			delete(m.counts, key)
		}
	}
}

// RateLimit rejects requests over the per-client cap before any route
// collaborator runs. The rejection funnels through the error terminator
// like every other failure. A limiter backend error fails open: losing
// rate-limit precision is preferable to refusing all traffic.
func RateLimit(limiter Limiter, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Error("rate limiter unavailable, failing open", zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			c.Error(xerrors.WrapStatus(xerrors.ErrRateLimited,
				http.StatusTooManyRequests, "Too many requests, please try again later"))
			c.Abort()
			return
		}
		c.Next()
	}
}
