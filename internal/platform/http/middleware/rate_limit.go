package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"user_backend/internal/shared/ratelimiter"
)

// RateLimit rejects clients that exceed the limiter's budget with 429 and a Retry-After header.
// Clients are keyed by gin's ClientIP.
func RateLimit(rl *ratelimiter.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, wait := rl.Allow(c.ClientIP())
		if !ok {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests",
				"type":  "RateLimitError",
			})
			return
		}
		c.Next()
	}
}

// NewPerMinuteLimiter returns a limiter allowing perMinute requests per client, or nil when perMinute <= 0.
func NewPerMinuteLimiter(perMinute int) *ratelimiter.RateLimiter {
	if perMinute <= 0 {
		return nil
	}
	return ratelimiter.NewRateLimiter(perMinute, time.Minute)
}
