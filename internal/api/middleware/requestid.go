package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID is the correlation header honored on requests and echoed on
// every response.
const HeaderRequestID = "X-Request-ID"

const contextRequestIDKey = "request_id"

// RequestID assigns a unique ID to each request for tracing. An incoming
// X-Request-ID is reused so IDs survive proxy hops.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(contextRequestIDKey, requestID)
		c.Header(HeaderRequestID, requestID)
		c.Next()
	}
}

// GetRequestID returns the request's correlation ID, or "unknown" when the
// middleware did not run.
func GetRequestID(c *gin.Context) string {
	if id := c.GetString(contextRequestIDKey); id != "" {
		return id
	}
	return "unknown"
}
