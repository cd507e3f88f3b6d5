package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nukuldhake/Meal-Mate/internal/metrics"
	"github.com/nukuldhake/Meal-Mate/pkg/logger"
	"github.com/nukuldhake/Meal-Mate/pkg/redis"
	"github.com/nukuldhake/Meal-Mate/pkg/response"
	"github.com/nukuldhake/Meal-Mate/scripts"
)

// RateLimitConfig describes one fixed-window limit
type RateLimitConfig struct {
	// Scope separates counters of different limits for the same client
	Scope     string
	KeyPrefix string
	Requests  int
	Window    time.Duration
}

// RateLimiter counts requests per client IP in Redis so every API instance
// shares the same windows.
type RateLimiter struct {
	client *redis.Client
	log    *logger.Logger
	now    func() time.Time
}

// NewRateLimiter creates a new RateLimiter
func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{
		client: client,
		log:    logger.Get().Named("rate_limiter"),
		now:    time.Now,
	}
}

// Limit enforces config on every request passing through the middleware.
// When Redis is unavailable the request is let through.
func (rl *RateLimiter) Limit(config RateLimitConfig) gin.HandlerFunc {
	limit := strconv.Itoa(config.Requests)

	return func(c *gin.Context) {
		key := config.KeyPrefix + config.Scope + ":" + c.ClientIP()

		result, err := scripts.RateLimit(c.Request.Context(), rl.client, scripts.RateLimitParams{
			Key:    key,
			Limit:  config.Requests,
			Window: config.Window,
		})
		if err != nil {
			rl.log.Warn("Rate limit check failed, allowing request",
				zap.String("scope", config.Scope),
				zap.String("request_id", GetRequestID(c)),
				zap.Error(err),
			)
			c.Next()
			return
		}

		resetAfter := result.ResetAfter
		if resetAfter <= 0 {
			resetAfter = config.Window
		}
		retryAfter := int(math.Ceil(resetAfter.Seconds()))

		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(rl.now().Add(resetAfter).Unix(), 10))

		if !result.Allowed {
			metrics.RateLimitRejections.WithLabelValues(config.Scope).Inc()
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			response.Abort(c, http.StatusTooManyRequests, response.CodeTooManyRequests,
				"Rate limit exceeded, try again in "+strconv.Itoa(retryAfter)+" seconds")
			return
		}

		c.Next()
	}
}
