package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiterConfig caps request throughput for the whole API surface.
type RateLimiterConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// NewRateLimiterMiddleware applies a global token-bucket limit. rate.Limiter
// is safe for concurrent use, no extra locking is needed.
func NewRateLimiterMiddleware(config RateLimiterConfig) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(config.RequestsPerSecond), config.Burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
