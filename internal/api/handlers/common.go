package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"taskboard-backend/internal/auth"
	"taskboard-backend/internal/database/models"
	apperrors "taskboard-backend/internal/errors"
)

// currentUser fetches the user loaded by the auth middleware. A missing user
// means the route was wired without LoadUser; treat it as an auth failure.
func currentUser(c *gin.Context) (*models.User, bool) {
	user, ok := auth.GetCurrentUser(c)
	if !ok {
		_ = c.Error(apperrors.ErrInvalidToken)
		c.Abort()
		return nil, false
	}
	return user, true
}

// parseUintParam parses a positive integer path parameter
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || value == 0 {
		_ = c.Error(apperrors.NewValidationError(name, "must be a positive integer"))
		c.Abort()
		return 0, false
	}
	return uint(value), true
}

// pagination reads page/per_page query parameters with defaults
func pagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	if err != nil || perPage < 1 || perPage > 100 {
		perPage = 10
	}
	return page, perPage
}

// bindJSON unmarshals the body, reporting malformed input as a validation
// error through the translator middleware
func bindJSON(c *gin.Context, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		_ = c.Error(apperrors.NewValidationError("", err.Error()))
		c.Abort()
		return false
	}
	return true
}
