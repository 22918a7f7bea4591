package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"taskboard-backend/internal/api/response"
	apperrors "taskboard-backend/internal/errors"
	"taskboard-backend/internal/logger"
)

// RateLimiter enforces a sliding-window request limit per client IP. Request
// timestamps are pruned lazily on each hit, so idle clients cost nothing
// until they return.
type RateLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	limit    int
	window   time.Duration
}

// NewRateLimiter creates a limiter allowing limit requests per rolling window
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
	}
}

// Middleware rejects requests over the limit with 429 and advertises the
// remaining quota on successful responses.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := clientAddress(c)

		allowed, remaining := rl.take(clientIP, time.Now())
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		if !allowed {
			logger.WithRequestID(GetRequestID(c)).WithFields(map[string]interface{}{
				"client_ip": clientIP,
				"path":      c.Request.URL.Path,
			}).Warn("Rate limit exceeded")

			c.Header("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			response.Error(c, http.StatusTooManyRequests, apperrors.CodeUnavailable,
				response.MsgTooManyRequests, nil)
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Next()
	}
}

// take records a request for the client and reports whether it fits in the
// window, along with the quota left after it.
func (rl *RateLimiter) take(clientIP string, now time.Time) (bool, int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	windowStart := now.Add(-rl.window)
	kept := rl.requests[clientIP][:0]
	for _, ts := range rl.requests[clientIP] {
		if ts.After(windowStart) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= rl.limit {
		rl.requests[clientIP] = kept
		return false, 0
	}

	kept = append(kept, now)
	rl.requests[clientIP] = kept
	return true, rl.limit - len(kept)
}

// clientAddress resolves the client IP, honoring proxy headers in the order
// X-Forwarded-For, X-Real-IP, then the direct peer address.
func clientAddress(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
		return realIP
	}
	return c.ClientIP()
}
