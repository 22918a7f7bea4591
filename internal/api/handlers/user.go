package handlers

import (
	"github.com/gin-gonic/gin"

	"taskboard-backend/internal/api/response"
	"taskboard-backend/internal/service"
)

// UserHandler handles HTTP requests for user profiles
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// GetMe handles GET /api/v1/users/me
// @Summary Get own profile
// @Tags users
// @Produce json
// @Success 200 {object} response.ApiResponse{data=service.UserResponse} "Profile"
// @Failure 401 {object} response.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(user.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, response.MsgUserProfileRetrieved, profile)
}

// UpdateMe handles PUT /api/v1/users/me
// @Summary Update own profile
// @Description Update the caller's display name; email and role are immutable
// @Tags users
// @Accept json
// @Produce json
// @Param profile body service.UpdateProfileRequest true "Profile changes"
// @Success 200 {object} response.ApiResponse{data=service.UserResponse} "Updated profile"
// @Failure 422 {object} response.ErrorResponse "Validation error"
// @Security BearerAuth
// @Router /users/me [put]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req service.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.service.UpdateProfile(user.ID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, response.MsgUserProfileUpdated, profile)
}

// ListUsers handles GET /api/v1/users
// @Summary List organization users
// @Description List the users of the caller's organization with pagination
// @Tags users
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(10)
// @Success 200 {object} response.ApiResponse{data=[]service.UserResponse} "Users"
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	page, perPage := pagination(c)
	users, total, err := h.service.ListByOrganization(user.OrganizationID, page, perPage)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Paginated(c, response.MsgSuccess, users, response.NewPaginationMeta(page, perPage, total))
}
