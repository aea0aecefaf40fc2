package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/kbukum/svcerrors/errors"
	"github.com/kbukum/svcerrors/logger"
)

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	// RequestsPerMinute is the maximum number of requests allowed per minute per key.
	RequestsPerMinute int
	// KeyFunc extracts the rate limit key from a request. Defaults to client IP.
	KeyFunc func(*gin.Context) string
	// Registry renders the RATE_LIMITED rejection. Nil uses the process-wide registry.
	Registry *errors.Registry
}

// RateLimit returns a Gin middleware that applies a per-key fixed window of
// one minute, counted in an in-memory limiter store. Rejected requests get a
// RATE_LIMITED error and a Retry-After header. A store failure lets the
// request through.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 60
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = IPBasedKey
	}

	lim := limiter.New(memory.NewStore(), limiter.Rate{
		Period: time.Minute,
		Limit:  int64(cfg.RequestsPerMinute),
	})

	return func(c *gin.Context) {
		key := cfg.KeyFunc(c)
		lctx, err := lim.Get(c.Request.Context(), key)
		if err != nil {
			logger.Get(logger.ComponentServer).Warn("Rate limit store failed, allowing request", logger.Fields(
				"key", key,
				logger.FieldError, err.Error(),
			))
			c.Next()
			return
		}
		if lctx.Reached {
			c.Header("Retry-After", strconv.FormatInt(retryAfter(lctx, time.Now()), 10))
			abortWithError(c, cfg.Registry, errors.RateLimited().Parameters(map[string]any{
				"limit":  cfg.RequestsPerMinute,
				"window": "1m",
			}))
			return
		}
		c.Next()
	}
}

// retryAfter is the whole seconds until the window resets, at least 1.
func retryAfter(lctx limiter.Context, now time.Time) int64 {
	return max(1, lctx.Reset-now.Unix())
}

// IPBasedKey extracts the client IP for use as a rate limit key.
func IPBasedKey(c *gin.Context) string {
	return c.ClientIP()
}

// UserBasedKey extracts the user_id set by Auth, falling back to client IP.
func UserBasedKey(c *gin.Context) string {
	if uid, exists := c.Get("user_id"); exists {
		if s, ok := uid.(string); ok && s != "" {
			return s
		}
	}
	return c.ClientIP()
}
