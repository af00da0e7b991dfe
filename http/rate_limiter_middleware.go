package http

import (
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware limits the mutating flow routes per session, falling
// back to the remote address when no session cookie exists yet.
func RateLimitMiddleware(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := sessionID(c)
		if key == "" {
			key, _, _ = net.SplitHostPort(c.Request.RemoteAddr)
		}

		if !limiter.Allow(key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		c.Next()
	}
}
