package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/edustack/campus-api/internal/service"
	"github.com/edustack/campus-api/pkg/config"
	appErrors "github.com/edustack/campus-api/pkg/errors"
	"github.com/edustack/campus-api/pkg/response"
)

// Guard decides whether a request identified by key may proceed. Providers
// are substitutable behind this predicate; route logic never changes.
type Guard interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisGuard implements fixed-window request counting in Redis.
type RedisGuard struct {
	client   *redis.Client
	requests int
	window   time.Duration
}

// NewRedisGuard builds a guard from the declarative rate-limit rules.
func NewRedisGuard(client *redis.Client, cfg config.RateLimitConfig) *RedisGuard {
	requests := cfg.Requests
	if requests < 1 {
		requests = 1
	}
	window := cfg.Window
	if window <= 0 {
		window = time.Minute
	}
	// the bucket divisor is whole seconds; anything shorter zeroes it
	if window < time.Second {
		window = time.Second
	}
	return &RedisGuard{client: client, requests: requests, window: window}
}

// Allow increments the window counter for key and reports whether the caller
// is still inside the budget.
func (g *RedisGuard) Allow(ctx context.Context, key string) (bool, error) {
	bucket := fmt.Sprintf("ratelimit:%s:%d", key, time.Now().Unix()/int64(g.window.Seconds()))

	count, err := g.client.Incr(ctx, bucket).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := g.client.Expire(ctx, bucket, g.window).Err(); err != nil {
			return false, err
		}
	}

	return count <= int64(g.requests), nil
}

// RateLimit gates requests behind the guard, keyed by client IP. A nil guard
// disables limiting; guard failures fail open so a degraded Redis never takes
// the API down with it.
func RateLimit(guard Guard, metricsSvc *service.MetricsService, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		if guard == nil {
			c.Next()
			return
		}

		allowed, err := guard.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Warn("request guard unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			metricsSvc.ObserveRateLimited()
			response.Error(c, appErrors.ErrTooManyRequests)
			c.Abort()
			return
		}

		c.Next()
	}
}
