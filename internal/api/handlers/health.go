package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"taskboard-backend/internal/api/response"
	apperrors "taskboard-backend/internal/errors"
)

// HealthHandler reports API liveness and database connectivity
type HealthHandler struct {
	db        *gorm.DB
	startTime time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db, startTime: time.Now()}
}

// Health handles GET /api/v1/health
// @Summary API health check
// @Tags health
// @Produce json
// @Success 200 {object} response.ApiResponse "API is healthy"
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	response.OK(c, response.MsgAPIHealthy, gin.H{
		"status":         "healthy",
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})
}

// DatabaseHealth handles GET /api/v1/health/db
// @Summary Database health check
// @Description Ping the database and report connection pool stats
// @Tags health
// @Produce json
// @Success 200 {object} response.ApiResponse "Database is reachable"
// @Failure 503 {object} response.ErrorResponse "Database unreachable"
// @Router /health/db [get]
func (h *HealthHandler) DatabaseHealth(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err != nil {
		_ = c.Error(apperrors.NewServiceUnavailableError("Database connection is unavailable"))
		return
	}
	if err := sqlDB.Ping(); err != nil {
		_ = c.Error(apperrors.NewServiceUnavailableError("Database connection is unavailable"))
		return
	}

	stats := sqlDB.Stats()
	response.OK(c, response.MsgDatabaseHealthy, gin.H{
		"status":           "healthy",
		"open_connections": stats.OpenConnections,
		"in_use":           stats.InUse,
		"idle":             stats.Idle,
	})
}
