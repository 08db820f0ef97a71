package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitMiddleware caps each caller at limit requests per window, counted
// per route. Authenticated callers are keyed by user id, anonymous ones by
// client IP. The window slides: every request refreshes the key's TTL. If
// redis is unreachable the limiter fails open rather than blocking traffic.
func RateLimitMiddleware(redisClient *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, exists := c.Get("user_id")
		if !exists {
			subject = c.ClientIP()
		}

		key := fmt.Sprintf("ratelimit:%s:%s:%v", c.Request.Method, c.Request.URL.Path, subject)

		ctx := c.Request.Context()
		pipe := redisClient.TxPipeline()
		incr := pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, window)
		if _, err := pipe.Exec(ctx); err != nil {
			c.Next()
			return
		}

		if incr.Val() > int64(limit) {
			c.Header("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			c.Abort()
			return
		}

		c.Next()
	}
}
