package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"taskboard-backend/internal/api/middleware"
	"taskboard-backend/internal/api/response"
	apperrors "taskboard-backend/internal/errors"
)

func newErrorRouter(err error) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.GET("/fail", func(c *gin.Context) {
		_ = c.Error(err)
	})
	return router
}

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorResponse {
	t.Helper()
	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestErrorHandlerTranslations(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "typed not found",
			err:         apperrors.ErrTaskNotFound,
			wantStatus:  http.StatusNotFound,
			wantCode:    "NOT_FOUND",
			wantMessage: "task not found",
		},
		{
			name:        "typed forbidden",
			err:         apperrors.ErrProjectAccessDenied,
			wantStatus:  http.StatusForbidden,
			wantCode:    "FORBIDDEN",
			wantMessage: "You don't have access to this project",
		},
		{
			name:        "typed validation",
			err:         apperrors.NewValidationError("title", "is required"),
			wantStatus:  http.StatusUnprocessableEntity,
			wantCode:    "VALIDATION_ERROR",
			wantMessage: "validation error: title - is required",
		},
		{
			name:        "gorm duplicate key",
			err:         gorm.ErrDuplicatedKey,
			wantStatus:  http.StatusConflict,
			wantCode:    "INTEGRITY_ERROR",
			wantMessage: "Resource conflict",
		},
		{
			name:        "postgres unique violation",
			err:         &pgconn.PgError{Code: "23505"},
			wantStatus:  http.StatusConflict,
			wantCode:    "INTEGRITY_ERROR",
			wantMessage: "Resource conflict",
		},
		{
			name:        "other postgres error",
			err:         &pgconn.PgError{Code: "42P01"},
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "DATABASE_ERROR",
			wantMessage: "Internal server error",
		},
		{
			name:        "gorm record not found",
			err:         gorm.ErrRecordNotFound,
			wantStatus:  http.StatusNotFound,
			wantCode:    "NOT_FOUND",
			wantMessage: "Resource not found",
		},
		{
			name:        "unexpected error",
			err:         errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_ERROR",
			wantMessage: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newErrorRouter(tt.err)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeErrorBody(t, rec)
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantCode, body.ErrorCode)
			assert.Equal(t, tt.wantMessage, body.Message)
		})
	}
}

func TestErrorHandlerSetsWWWAuthenticateOn401(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantHeader string
	}{
		{name: "missing token", err: apperrors.ErrMissingToken, wantHeader: "Bearer"},
		{name: "expired token", err: apperrors.ErrTokenExpired, wantHeader: "Bearer"},
		{name: "invalid credentials", err: apperrors.ErrInvalidCredentials, wantHeader: "Bearer"},
		{name: "forbidden keeps header clear", err: apperrors.ErrProjectAccessDenied, wantHeader: ""},
		{name: "not found keeps header clear", err: apperrors.ErrTaskNotFound, wantHeader: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newErrorRouter(tt.err)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))

			assert.Equal(t, tt.wantHeader, rec.Header().Get("WWW-Authenticate"))
		})
	}
}

func TestErrorHandlerLeavesWrittenResponsesAlone(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "fine"})
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fine")
}

func TestRecoveryReturnsEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.Recovery())
	router.GET("/panic", func(c *gin.Context) {
		panic("something went sideways")
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeErrorBody(t, rec)
	assert.Equal(t, "INTERNAL_ERROR", body.ErrorCode)
}
