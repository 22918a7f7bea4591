package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"taskboard-backend/internal/api/handlers"
	"taskboard-backend/internal/api/middleware"
	"taskboard-backend/internal/service"
)

// AuthHandlerTestSuite covers the request-parsing paths of AuthHandler
type AuthHandlerTestSuite struct {
	suite.Suite
	handler *handlers.AuthHandler
	router  *gin.Engine
}

// SetupTest sets up the test suite
func (suite *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.handler = handlers.NewAuthHandler(&service.AuthService{})
	suite.router = gin.New()
	suite.router.Use(middleware.ErrorHandler())
	suite.router.POST("/auth/register", suite.handler.Register)
	suite.router.POST("/auth/login", suite.handler.Login)
	suite.router.POST("/auth/refresh", suite.handler.Refresh)
}

func (suite *AuthHandlerTestSuite) postInvalidJSON(t *testing.T, url string) {
	req := httptest.NewRequest(http.MethodPost, url, bytes.NewBufferString("not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

// TestRegister tests the Register handler
func (suite *AuthHandlerTestSuite) TestRegister() {
	suite.T().Run("Invalid JSON", func(t *testing.T) {
		suite.postInvalidJSON(t, "/auth/register")
	})
}

// TestLogin tests the Login handler
func (suite *AuthHandlerTestSuite) TestLogin() {
	suite.T().Run("Invalid JSON", func(t *testing.T) {
		suite.postInvalidJSON(t, "/auth/login")
	})
}

// TestRefresh tests the Refresh handler
func (suite *AuthHandlerTestSuite) TestRefresh() {
	suite.T().Run("Invalid JSON", func(t *testing.T) {
		suite.postInvalidJSON(t, "/auth/refresh")
	})
}

// TestAuthHandlerTestSuite runs the test suite
func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
