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

	"github.com/edustack/campus-api/internal/service"
	"github.com/edustack/campus-api/pkg/config"
)

type stubGuard struct {
	allowed bool
	err     error
	keys    []string
}

func (g *stubGuard) Allow(ctx context.Context, key string) (bool, error) {
	g.keys = append(g.keys, key)
	return g.allowed, g.err
}

func rateLimitedRouter(guard Guard) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(guard, service.NewMetricsService(), zap.NewNop()))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRateLimitNilGuardPassesThrough(t *testing.T) {
	r := rateLimitedRouter(nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitDeniedRequest(t *testing.T) {
	guard := &stubGuard{allowed: false}
	r := rateLimitedRouter(guard)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"error":"too many requests"}`, rec.Body.String())
	assert.Len(t, guard.keys, 1)
}

func TestRateLimitFailsOpenOnGuardError(t *testing.T) {
	guard := &stubGuard{err: errors.New("redis down")}
	r := rateLimitedRouter(guard)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

// A sub-second window must not survive construction: the Redis bucket key
// divides by whole seconds, and a zero divisor would panic on every request.
func TestNewRedisGuardFloorsSubSecondWindow(t *testing.T) {
	guard := NewRedisGuard(nil, config.RateLimitConfig{Requests: 10, Window: 500 * time.Millisecond})
	assert.Equal(t, time.Second, guard.window)
}

func TestNewRedisGuardDefaultsZeroWindow(t *testing.T) {
	guard := NewRedisGuard(nil, config.RateLimitConfig{Requests: 10})
	assert.Equal(t, time.Minute, guard.window)
	assert.Equal(t, 10, guard.requests)
}

func TestRateLimitAllowedRequest(t *testing.T) {
	guard := &stubGuard{allowed: true}
	r := rateLimitedRouter(guard)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}
