package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"deipna/internal/pkg/response"
)

// RateLimit is a per-client-IP token bucket. Used on the credential
// endpoints (login, register) to slow down brute forcing.
func RateLimit(requestsPerWindow int, window time.Duration) gin.HandlerFunc {
	limiters := make(map[string]*rate.Limiter)
	var mu sync.Mutex

	limit := rate.Every(window / time.Duration(requestsPerWindow))

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		limiter, ok := limiters[ip]
		if !ok {
			limiter = rate.NewLimiter(limit, requestsPerWindow)
			limiters[ip] = limiter
		}
		mu.Unlock()

		if !limiter.Allow() {
			response.Error(c, http.StatusTooManyRequests, "Too many requests, slow down")
			c.Abort()
			return
		}

		c.Next()
	}
}
