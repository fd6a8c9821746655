package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter allows `limit` requests per client IP and route per `period`,
// counted in Redis with INCR + EXPIRE. A nil client or a Redis error lets
// the request through.
func RateLimiter(rdb *redis.Client, limit int, period time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || limit <= 0 {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := "vrshop:rate_limit:" + c.FullPath() + ":" + c.ClientIP()

		// INCR creates the key at 1 if it does not exist yet.
		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Printf("rate limiter unavailable: %v", err)
			c.Next()
			return
		}

		// First hit in this window starts the clock.
		if count == 1 {
			rdb.Expire(ctx, key, period)
		}

		if count > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}

		c.Next()
	}
}
