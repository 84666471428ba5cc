package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemoryLimiterCapBoundary(t *testing.T) {
	l := NewMemoryLimiter(15*time.Minute, 300)
	ctx := context.Background()

	for i := 1; i <= 300; i++ {
		ok, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		require.True(t, ok, "request %d should be within the cap", i)
	}

	ok, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok, "request 301 must be rejected")

	// Other clients are unaffected.
	ok, err = l.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryLimiterWindowRolls(t *testing.T) {
	l := NewMemoryLimiter(15*time.Minute, 2)
	now := time.Unix(1700000000, 0)
	l.nowFunc = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "c")
		require.NoError(t, err)
		require.True(t, ok)
	}
	ok, err := l.Allow(ctx, "c")
	require.NoError(t, err)
	require.False(t, ok)

	// A new window resets the counter.
	now = now.Add(15 * time.Minute)
	ok, err = l.Allow(ctx, "c")
	require.NoError(t, err)
	assert.True(t, ok)
}

type brokenLimiter struct{}

func (brokenLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("limiter backend down")
}

func TestRateLimitFailsOpenOnBackendError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RateLimit(brokenLimiter{}, zap.NewNop()))
	engine.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusOK, w.Code, "backend failure must not reject traffic")
}
