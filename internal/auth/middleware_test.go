package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"

	"taskboard-backend/internal/api/middleware"
	"taskboard-backend/internal/auth"
	"taskboard-backend/internal/database/models"
	"taskboard-backend/internal/mocks"
)

func activeUser(id uint, role models.UserRole) *models.User {
	return &models.User{
		BaseModel:      models.BaseModel{ID: id},
		Email:          "user@example.com",
		Role:           role,
		IsActive:       true,
		OrganizationID: 1,
	}
}

// newAuthRouter builds a minimal router exercising the full auth chain with
// the error translator rendering the responses.
func newAuthRouter(t *testing.T, users *mocks.MockUserRepositoryInterface, tokens *auth.TokenService, roles ...models.UserRole) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	m := auth.NewMiddleware(tokens, users)
	router := gin.New()
	router.Use(middleware.ErrorHandler())

	chain := []gin.HandlerFunc{m.RequireAuth(), m.LoadUser()}
	if len(roles) > 0 {
		chain = append(chain, m.RequireRoles(roles...))
	}
	chain = append(chain, func(c *gin.Context) {
		user, ok := auth.GetCurrentUser(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": user.ID})
	})

	router.GET("/protected", chain...)
	return router
}

func TestRequireAuthMissingHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mocks.NewMockUserRepositoryInterface(ctrl)
	tokens := auth.NewTokenService("test-secret", time.Minute, time.Minute)
	router := newAuthRouter(t, users, tokens)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
	assert.Contains(t, rec.Body.String(), "Authorization header is required")
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mocks.NewMockUserRepositoryInterface(ctrl)
	tokens := auth.NewTokenService("test-secret", time.Minute, time.Minute)
	router := newAuthRouter(t, users, tokens)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abcdef")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_TOKEN")
}

func TestRequireAuthRejectsRefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mocks.NewMockUserRepositoryInterface(ctrl)
	tokens := auth.NewTokenService("test-secret", time.Minute, time.Minute)
	router := newAuthRouter(t, users, tokens)

	refresh, err := tokens.CreateRefreshToken(1)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_TOKEN")
}

func TestRequireAuthExpiredToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mocks.NewMockUserRepositoryInterface(ctrl)
	expired := auth.NewTokenService("test-secret", -time.Minute, -time.Minute)
	router := newAuthRouter(t, users, expired)

	token, err := expired.CreateAccessToken(1)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
	assert.Contains(t, rec.Body.String(), "TOKEN_EXPIRED")
}

func TestLoadUserSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mocks.NewMockUserRepositoryInterface(ctrl)
	users.EXPECT().GetWithOrganization(uint(5)).Return(activeUser(5, models.UserRoleMember), nil)

	tokens := auth.NewTokenService("test-secret", time.Minute, time.Minute)
	router := newAuthRouter(t, users, tokens)

	token, err := tokens.CreateAccessToken(5)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":5`)
}

func TestLoadUserDeletedUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mocks.NewMockUserRepositoryInterface(ctrl)
	users.EXPECT().GetWithOrganization(uint(5)).Return(nil, gorm.ErrRecordNotFound)

	tokens := auth.NewTokenService("test-secret", time.Minute, time.Minute)
	router := newAuthRouter(t, users, tokens)

	token, err := tokens.CreateAccessToken(5)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoadUserInactiveUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inactive := activeUser(5, models.UserRoleMember)
	inactive.IsActive = false

	users := mocks.NewMockUserRepositoryInterface(ctrl)
	users.EXPECT().GetWithOrganization(uint(5)).Return(inactive, nil)

	tokens := auth.NewTokenService("test-secret", time.Minute, time.Minute)
	router := newAuthRouter(t, users, tokens)

	token, err := tokens.CreateAccessToken(5)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "deactivated")
}

func TestRequireRoles(t *testing.T) {
	tests := []struct {
		name       string
		role       models.UserRole
		wantStatus int
	}{
		{name: "admin allowed", role: models.UserRoleAdmin, wantStatus: http.StatusOK},
		{name: "manager allowed", role: models.UserRoleManager, wantStatus: http.StatusOK},
		{name: "member forbidden", role: models.UserRoleMember, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			users := mocks.NewMockUserRepositoryInterface(ctrl)
			users.EXPECT().GetWithOrganization(uint(9)).Return(activeUser(9, tt.role), nil)

			tokens := auth.NewTokenService("test-secret", time.Minute, time.Minute)
			router := newAuthRouter(t, users, tokens, models.UserRoleAdmin, models.UserRoleManager)

			token, err := tokens.CreateAccessToken(9)
			require.NoError(t, err)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
