package middleware

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimit applies a fixed-window per-user limit backed by Redis so
// counters survive restarts and are shared across instances. Fails
// open when Redis is unreachable.
func RateLimit(client *redis.Client, name string, perMinute int) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		window := time.Now().Unix() / 60
		key := fmt.Sprintf("ratelimit:%s:%d:%d", name, userID, window)
		ctx := c.Request.Context()

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			log.Printf("rate limit check failed for %s: %v", key, err)
			c.Next()
			return
		}
		if count == 1 {
			client.Expire(ctx, key, time.Minute)
		}

		remaining := int64(perMinute) - count
		if remaining < 0 {
			remaining = 0
		}
		reset := (window + 1) * 60
		c.Header("X-RateLimit-Limit", strconv.Itoa(perMinute))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(reset, 10))

		if count > int64(perMinute) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded, try again shortly"})
			c.Abort()
			return
		}

		c.Next()
	}
}
