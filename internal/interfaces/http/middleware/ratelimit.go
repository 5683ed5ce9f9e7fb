package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/orris-inc/supportdesk/internal/shared/logger"
	"github.com/orris-inc/supportdesk/internal/shared/utils"
)

const msgRateLimited = "Too many requests, please try again later"

// rateLimitCounter is the part of *redis.Client the limiter uses.
type rateLimitCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RateLimiter is a Redis-backed fixed-window limit per client IP, shared by
// every server instance pointing at the same Redis.
type RateLimiter struct {
	counter rateLimitCounter
	limit   int
	window  time.Duration
	now     func() time.Time
	logger  logger.Interface
}

func NewRateLimiter(counter rateLimitCounter, limit int, window time.Duration, log logger.Interface) *RateLimiter {
	return &RateLimiter{
		counter: counter,
		limit:   limit,
		window:  window,
		now:     time.Now,
		logger:  log,
	}
}

// Limit returns a Gin middleware that enforces the limit. Requests pass when
// Redis cannot be reached.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		bucket := rl.now().Unix() / int64(rl.window.Seconds())
		key := fmt.Sprintf("supportdesk:ratelimit:%s:%d", c.ClientIP(), bucket)
		ctx := c.Request.Context()

		count, err := rl.counter.Incr(ctx, key).Result()
		if err != nil {
			rl.logger.Warnw("rate limit check failed, allowing request", "error", err)
			c.Next()
			return
		}

		if count == 1 {
			rl.counter.Expire(ctx, key, rl.window+time.Second)
		}

		if count > int64(rl.limit) {
			utils.ErrorResponse(c, http.StatusTooManyRequests, msgRateLimited)
			c.Abort()
			return
		}

		c.Next()
	}
}
