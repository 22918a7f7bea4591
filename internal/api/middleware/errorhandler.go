package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"taskboard-backend/internal/api/response"
	apperrors "taskboard-backend/internal/errors"
	"taskboard-backend/internal/logger"
)

const pgUniqueViolation = "23505"

// ErrorHandler translates errors recorded on the context into the standard
// error envelope. Handlers and middleware call c.Error(err) and return; this
// is the only place that maps errors to HTTP statuses.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		log := logger.WithRequestID(GetRequestID(c)).WithField("path", c.Request.URL.Path)

		if apiErr, ok := apperrors.IsAPIError(err); ok {
			log.WithFields(map[string]interface{}{
				"error_code": apiErr.Code(),
				"message":    apiErr.Error(),
			}).Warn("Application error")
			if apiErr.Status() == http.StatusUnauthorized {
				c.Header("WWW-Authenticate", "Bearer")
			}
			response.Error(c, apiErr.Status(), apiErr.Code(), apiErr.Error(), nil)
			return
		}

		var pgErr *pgconn.PgError
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			log.WithError(err).Error("Database integrity error")
			response.Error(c, http.StatusConflict, apperrors.CodeIntegrityError,
				response.MsgConflict, nil)
		case errors.As(err, &pgErr):
			if pgErr.Code == pgUniqueViolation {
				log.WithError(err).Error("Database integrity error")
				response.Error(c, http.StatusConflict, apperrors.CodeIntegrityError,
					response.MsgConflict, nil)
				return
			}
			log.WithError(err).Error("Database error")
			response.Error(c, http.StatusInternalServerError, apperrors.CodeDatabaseError,
				response.MsgInternalError, nil)
		case errors.Is(err, gorm.ErrRecordNotFound):
			log.WithError(err).Warn("Record not found")
			response.Error(c, http.StatusNotFound, apperrors.CodeNotFound,
				response.MsgNotFound, nil)
		default:
			log.WithError(err).Error("Unexpected error")
			response.Error(c, http.StatusInternalServerError, apperrors.CodeInternalError,
				response.MsgInternalError, nil)
		}
	}
}

// Recovery converts panics into the standard 500 envelope instead of gin's
// plain-text response.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.WithRequestID(GetRequestID(c)).WithFields(map[string]interface{}{
			"panic": recovered,
			"path":  c.Request.URL.Path,
		}).Error("Panic recovered")
		response.Error(c, http.StatusInternalServerError, apperrors.CodeInternalError,
			response.MsgInternalError, nil)
		c.Abort()
	})
}
