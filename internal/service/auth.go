package service

import (
	"errors"
	"fmt"

	"taskboard-backend/internal/auth"
	"taskboard-backend/internal/database/models"
	apperrors "taskboard-backend/internal/errors"
	"taskboard-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// AuthService handles registration, login and token refresh
type AuthService struct {
	users     repository.UserRepositoryInterface
	orgs      repository.OrganizationRepositoryInterface
	tokens    *auth.TokenService
	hasher    *auth.PasswordHasher
	validator *validator.Validate
}

// NewAuthService creates a new auth service
func NewAuthService(
	users repository.UserRepositoryInterface,
	orgs repository.OrganizationRepositoryInterface,
	tokens *auth.TokenService,
	hasher *auth.PasswordHasher,
	validator *validator.Validate,
) *AuthService {
	return &AuthService{
		users:     users,
		orgs:      orgs,
		tokens:    tokens,
		hasher:    hasher,
		validator: validator,
	}
}

// RegisterRequest represents the request to register a user. The first user
// of an organization registers it and becomes its admin.
type RegisterRequest struct {
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=8"`
	FullName         string `json:"full_name" validate:"required,min=1,max=255"`
	OrganizationName string `json:"organization_name" validate:"omitempty,max=255"`
}

// LoginRequest represents the request to log in
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest represents the request to rotate tokens
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenResponse represents an issued token pair
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// Register creates a new organization with its first admin user
func (s *AuthService) Register(req *RegisterRequest) (*UserResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}
	if req.OrganizationName == "" {
		return nil, apperrors.ErrOrganizationNameRequired
	}

	existing, err := s.users.GetByEmail(req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrEmailExists
	}

	// Organization names are unique; catch the collision here instead of
	// surfacing the constraint violation.
	if _, err := s.orgs.GetByName(req.OrganizationName); err == nil {
		return nil, apperrors.ErrOrganizationNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check organization name: %w", err)
	}

	org := &models.Organization{Name: req.OrganizationName}
	if err := s.orgs.Create(org); err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:          req.Email,
		PasswordHash:   hash,
		FullName:       req.FullName,
		Role:           models.UserRoleAdmin,
		IsActive:       true,
		OrganizationID: org.ID,
	}
	if err := s.users.Create(user); err != nil {
		// Roll back the freshly created organization so a failed registration
		// does not leave an empty org behind.
		_ = s.orgs.Delete(org.ID)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return NewUserResponse(user), nil
}

// Login verifies credentials and issues a token pair. Unknown emails and
// wrong passwords produce the same error so accounts cannot be enumerated.
func (s *AuthService) Login(req *LoginRequest) (*TokenResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	user, err := s.users.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !s.hasher.Verify(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDeactivated
	}

	return s.issueTokens(user.ID)
}

// Refresh rotates a valid refresh token into a new pair. The user is
// re-fetched so deactivation takes effect on the next refresh.
func (s *AuthService) Refresh(req *RefreshRequest) (*TokenResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	claims, err := s.tokens.DecodeToken(req.RefreshToken)
	if err != nil {
		return nil, err
	}
	if claims.Type != auth.TokenTypeRefresh {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDeactivated
	}

	return s.issueTokens(user.ID)
}

func (s *AuthService) issueTokens(userID uint) (*TokenResponse, error) {
	accessToken, err := s.tokens.CreateAccessToken(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}
	refreshToken, err := s.tokens.CreateRefreshToken(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh token: %w", err)
	}
	return &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}
