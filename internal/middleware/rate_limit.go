package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"inventory-assistant/pkg/response"
)

// RateLimit throttles assistant turns per caller. The key is the
// X-Owner-ID header when the client sends one, otherwise the client IP.
// Each key gets its own token bucket; idle buckets age out of the cache.
func (m Middleware) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-Owner-ID")
		if key == "" {
			key = c.ClientIP()
		}

		limiter, ok := m.limiters.Get(key)
		if !ok {
			limiter = rate.NewLimiter(rate.Limit(float64(m.rlConfig.RequestsPerMinute)/60.0), m.rlConfig.Burst)
			m.limiters.Add(key, limiter)
		}

		if !limiter.Allow() {
			m.l.Warnf(c.Request.Context(), "rate limit exceeded for %s", key)
			response.TooManyRequests(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
