package middleware

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"taskboard-backend/internal/api/response"
	apperrors "taskboard-backend/internal/errors"
	"taskboard-backend/internal/logger"
)

// Content types accepted on requests that carry a body
var allowedContentTypes = []string{
	"application/json",
	"multipart/form-data",
	"application/x-www-form-urlencoded",
}

// Patterns rejected anywhere in the URL or query values
var dangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\.\./`),
	regexp.MustCompile(`(?i)<script`),
	regexp.MustCompile(`(?i)%00`),
	regexp.MustCompile(`\x00`),
}

// RequestValidator screens requests before they reach handlers: content-type
// allow-list on body methods, a body size cap, and path/query pattern checks
// for traversal, script injection and NUL bytes.
func RequestValidator(maxBodySize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.WithRequestID(GetRequestID(c))

		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			contentType := c.GetHeader("Content-Type")
			if contentType != "" && !isAllowedContentType(contentType) {
				log.WithFields(map[string]interface{}{
					"content_type": contentType,
					"path":         c.Request.URL.Path,
				}).Warn("Invalid content type")
				rejectBadRequest(c, "Unsupported Content-Type")
				return
			}
		}

		if c.Request.ContentLength > maxBodySize {
			log.WithFields(map[string]interface{}{
				"content_length": c.Request.ContentLength,
				"max_allowed":    maxBodySize,
			}).Warn("Request too large")
			response.Error(c, http.StatusRequestEntityTooLarge, apperrors.CodeBadRequest,
				response.MsgBodyTooLarge, nil)
			c.Abort()
			return
		}

		if hasDangerousPattern(c.Request.URL.RequestURI()) {
			log.WithField("path", c.Request.URL.Path).Warn("Dangerous pattern detected in path")
			rejectBadRequest(c, "Invalid request path")
			return
		}

		for key, values := range c.Request.URL.Query() {
			for _, value := range values {
				if hasDangerousPattern(value) {
					log.WithField("param", key).Warn("Dangerous pattern detected in query param")
					rejectBadRequest(c, "Invalid query parameter")
					return
				}
			}
		}

		c.Next()
	}
}

func isAllowedContentType(contentType string) bool {
	lowered := strings.ToLower(contentType)
	for _, allowed := range allowedContentTypes {
		if strings.Contains(lowered, allowed) {
			return true
		}
	}
	return false
}

func hasDangerousPattern(value string) bool {
	for _, pattern := range dangerousPatterns {
		if pattern.MatchString(value) {
			return true
		}
	}
	return false
}

func rejectBadRequest(c *gin.Context, message string) {
	response.Error(c, http.StatusBadRequest, apperrors.CodeBadRequest, message, nil)
	c.Abort()
}
