package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitMiddleware is a fixed-window per-client limiter backed by Redis,
// so the limit holds across instances. Keyed by user id when authenticated,
// client IP otherwise.
type RateLimitMiddleware struct {
	client            *redis.Client
	requestsPerMinute int
	logger            *slog.Logger
}

func NewRateLimitMiddleware(client *redis.Client, requestsPerMinute int, logger *slog.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		client:            client,
		requestsPerMinute: requestsPerMinute,
		logger:            logger,
	}
}

// Limit counts requests in one-minute windows and rejects with 429 past the
// configured ceiling. Redis being down fails open: throttling is protection,
// not a correctness requirement.
func (m *RateLimitMiddleware) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if userID := c.GetString(UserIDKey); userID != "" {
			key = userID
		}
		window := time.Now().Unix() / 60
		redisKey := fmt.Sprintf("ratelimit:%s:%d", key, window)

		ctx := c.Request.Context()
		count, err := m.client.Incr(ctx, redisKey).Result()
		if err != nil {
			m.logger.Warn("rate limiter unavailable", slog.String("error", err.Error()))
			c.Next()
			return
		}
		if count == 1 {
			m.client.Expire(ctx, redisKey, 2*time.Minute)
		}

		if count > int64(m.requestsPerMinute) {
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
