package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"taskboard-backend/internal/auth"
	"taskboard-backend/internal/logger"
)

// timedWriter stamps the X-Response-Time header just before the first byte of
// the response is flushed. Headers cannot change after that point.
type timedWriter struct {
	gin.ResponseWriter
	start   time.Time
	stamped bool
}

func (w *timedWriter) stamp() {
	if w.stamped || w.Written() {
		return
	}
	elapsed := float64(time.Since(w.start).Nanoseconds()) / 1e6
	w.Header().Set("X-Response-Time", fmt.Sprintf("%.2fms", elapsed))
	w.stamped = true
}

func (w *timedWriter) WriteHeader(code int) {
	w.stamp()
	w.ResponseWriter.WriteHeader(code)
}

func (w *timedWriter) Write(b []byte) (int, error) {
	w.stamp()
	return w.ResponseWriter.Write(b)
}

func (w *timedWriter) WriteString(s string) (int, error) {
	w.stamp()
	return w.ResponseWriter.WriteString(s)
}

// RequestLogger logs the start and completion of every request with the
// request ID, method, path and duration. Responses with status >= 400 are
// logged at warning level.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Writer = &timedWriter{ResponseWriter: c.Writer, start: start}

		log := logger.WithRequestID(GetRequestID(c)).WithFields(map[string]interface{}{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"client_ip": c.ClientIP(),
		})
		if query := c.Request.URL.RawQuery; query != "" {
			log = log.WithField("query", query)
		}
		log.Info("Request started")

		c.Next()

		// The auth middleware runs inside this one, so the user id is only
		// known once the request has completed.
		if userID, ok := auth.GetUserID(c); ok {
			log = log.WithUser(userID)
		}

		durationMs := float64(time.Since(start).Nanoseconds()) / 1e6
		status := c.Writer.Status()
		completed := log.WithFields(map[string]interface{}{
			"status_code": status,
			"duration_ms": fmt.Sprintf("%.2f", durationMs),
		})
		if status >= 400 {
			completed.Warn("Request completed")
		} else {
			completed.Info("Request completed")
		}
	}
}
