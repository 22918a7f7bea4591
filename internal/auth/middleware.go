package auth

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"taskboard-backend/internal/database/models"
	apperrors "taskboard-backend/internal/errors"
	"taskboard-backend/internal/repository"
)

// Context keys set by the authentication middleware
const (
	ContextUserIDKey = "user_id"
	ContextUserKey   = "current_user"
	ContextClaimsKey = "auth_claims"
)

// Middleware provides JWT authentication middleware
type Middleware struct {
	tokens *TokenService
	users  repository.UserRepositoryInterface
}

// NewMiddleware creates a new authentication middleware
func NewMiddleware(tokens *TokenService, users repository.UserRepositoryInterface) *Middleware {
	return &Middleware{tokens: tokens, users: users}
}

// RequireAuth validates the bearer access token and sets the user ID context.
// Refresh tokens are rejected here; they are only good for the refresh endpoint.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, apperrors.ErrMissingToken)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			abortWithError(c, apperrors.ErrInvalidToken)
			return
		}

		claims, err := m.tokens.DecodeToken(tokenString)
		if err != nil {
			abortWithError(c, err)
			return
		}
		if claims.Type != TokenTypeAccess {
			abortWithError(c, apperrors.ErrInvalidToken)
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Set(ContextClaimsKey, claims)
		c.Next()
	}
}

// LoadUser resolves the authenticated user ID to a database user with its
// organization preloaded. Deleted users get 401, deactivated users get 403.
func (m *Middleware) LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			abortWithError(c, apperrors.ErrInvalidToken)
			return
		}

		user, err := m.users.GetWithOrganization(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				abortWithError(c, apperrors.ErrInvalidToken)
				return
			}
			abortWithError(c, err)
			return
		}
		if !user.IsActive {
			abortWithError(c, apperrors.ErrInactiveUser)
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// RequireRoles rejects users whose role is not in the allowed set
func (m *Middleware) RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetCurrentUser(c)
		if !ok {
			abortWithError(c, apperrors.ErrInvalidToken)
			return
		}
		if !user.HasRole(roles...) {
			abortWithError(c, apperrors.ErrInsufficientRole)
			return
		}
		c.Next()
	}
}

// GetUserID is a helper function to extract the authenticated user ID from context
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, false
	}

	id, ok := userID.(uint)
	return id, ok
}

// GetCurrentUser is a helper function to extract the loaded user from context
func GetCurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}

	user, ok := value.(*models.User)
	return user, ok
}

// abortWithError records the error for the translator middleware and stops
// the handler chain.
func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
