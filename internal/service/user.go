package service

import (
	"errors"
	"fmt"
	"time"

	"taskboard-backend/internal/database/models"
	apperrors "taskboard-backend/internal/errors"
	"taskboard-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// UserService handles business logic for user profiles
type UserService struct {
	users     repository.UserRepositoryInterface
	validator *validator.Validate
}

// NewUserService creates a new user service
func NewUserService(users repository.UserRepositoryInterface, validator *validator.Validate) *UserService {
	return &UserService{
		users:     users,
		validator: validator,
	}
}

// UpdateProfileRequest represents the request to update the caller's profile.
// Email, role and organization are immutable through this endpoint.
type UpdateProfileRequest struct {
	FullName string `json:"full_name" validate:"required,min=1,max=255"`
}

// UserResponse represents the response for user operations
type UserResponse struct {
	ID             uint            `json:"id"`
	Email          string          `json:"email"`
	FullName       string          `json:"full_name"`
	Role           models.UserRole `json:"role"`
	IsActive       bool            `json:"is_active"`
	OrganizationID uint            `json:"organization_id"`
	CreatedAt      time.Time       `json:"created_at"`
}

// NewUserResponse maps a user model to its response shape
func NewUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:             user.ID,
		Email:          user.Email,
		FullName:       user.FullName,
		Role:           user.Role,
		IsActive:       user.IsActive,
		OrganizationID: user.OrganizationID,
		CreatedAt:      user.CreatedAt,
	}
}

// GetProfile retrieves a user's profile
func (s *UserService) GetProfile(userID uint) (*UserResponse, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return NewUserResponse(user), nil
}

// UpdateProfile updates the caller's display name
func (s *UserService) UpdateProfile(userID uint, req *UpdateProfileRequest) (*UserResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("full_name", err.Error())
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.FullName = req.FullName
	if err := s.users.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return NewUserResponse(user), nil
}

// ListByOrganization retrieves the organization's users with pagination
func (s *UserService) ListByOrganization(orgID uint, page, perPage int) ([]UserResponse, int64, error) {
	page, perPage = NormalizePage(page, perPage)

	users, total, err := s.users.GetByOrganizationID(orgID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *NewUserResponse(&users[i]))
	}
	return responses, total, nil
}

// NormalizePage clamps pagination inputs to sane bounds
func NormalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}
	return page, perPage
}
