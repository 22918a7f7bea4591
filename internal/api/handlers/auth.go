package handlers

import (
	"github.com/gin-gonic/gin"

	"taskboard-backend/internal/api/response"
	"taskboard-backend/internal/service"
)

// AuthHandler handles HTTP requests for registration and token management
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register handles POST /api/v1/auth/register
// @Summary Register a new organization admin
// @Description Create a new organization together with its first user, who becomes its admin
// @Tags auth
// @Accept json
// @Produce json
// @Param registration body service.RegisterRequest true "Registration data"
// @Success 201 {object} response.ApiResponse{data=service.UserResponse} "User registered"
// @Failure 400 {object} response.ErrorResponse "Email already registered"
// @Failure 422 {object} response.ErrorResponse "Validation error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.service.Register(&req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Created(c, response.MsgUserRegistered, user)
}

// Login handles POST /api/v1/auth/login
// @Summary Log in
// @Description Exchange email and password for an access/refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body service.LoginRequest true "Credentials"
// @Success 200 {object} response.ApiResponse{data=service.TokenResponse} "Token pair"
// @Failure 401 {object} response.ErrorResponse "Invalid email or password"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	tokens, err := h.service.Login(&req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, response.MsgLoginSuccess, tokens)
}

// Refresh handles POST /api/v1/auth/refresh
// @Summary Refresh tokens
// @Description Rotate a valid refresh token into a new access/refresh pair
// @Tags auth
// @Accept json
// @Produce json
// @Param token body service.RefreshRequest true "Refresh token"
// @Success 200 {object} response.ApiResponse{data=service.TokenResponse} "New token pair"
// @Failure 401 {object} response.ErrorResponse "Invalid refresh token"
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req service.RefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	tokens, err := h.service.Refresh(&req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, response.MsgTokenRefreshed, tokens)
}
