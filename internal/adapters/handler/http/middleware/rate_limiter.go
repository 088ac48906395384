package middleware

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const rateLimitKeyPrefix = "synapse:ratelimit:"

// RateLimiterMiddleware caps each client IP at limit requests per window.
// The counter lives in redis so every API instance draws from the same
// budget; if redis is unreachable the limiter fails open rather than taking
// the API down with it.
func RateLimiterMiddleware(rdb *redis.Client, limit int64, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rateLimitKeyPrefix + c.ClientIP()

		pipe := rdb.TxPipeline()
		count := pipe.Incr(c.Request.Context(), key)
		pipe.ExpireNX(c.Request.Context(), key, window)
		if _, err := pipe.Exec(c.Request.Context()); err != nil {
			log.Printf("rate limiter unavailable, letting request through: %v", err)
			c.Next()
			return
		}

		used := count.Val()
		remaining := limit - used
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.FormatInt(limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if used > limit {
			ttl, err := rdb.TTL(c.Request.Context(), key).Result()
			if err != nil || ttl < 0 {
				ttl = window
			}
			c.Header("Retry-After", strconv.Itoa(int(ttl.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded, try again shortly",
			})
			return
		}

		c.Next()
	}
}
