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
	"taskboard-backend/internal/auth"
	"taskboard-backend/internal/database/models"
	"taskboard-backend/internal/service"
)

// ProjectHandlerTestSuite covers the request-parsing paths of ProjectHandler
type ProjectHandlerTestSuite struct {
	suite.Suite
	handler *handlers.ProjectHandler
	router  *gin.Engine
}

// SetupTest sets up the test suite
func (suite *ProjectHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.handler = handlers.NewProjectHandler(&service.ProjectService{})
	suite.router = gin.New()
	suite.router.Use(middleware.ErrorHandler())
	suite.router.Use(func(c *gin.Context) {
		c.Set(auth.ContextUserKey, &models.User{
			BaseModel: models.BaseModel{ID: 1},
			Role:      models.UserRoleAdmin,
			IsActive:  true,
		})
	})
	suite.setupRoutes()
}

// setupRoutes sets up the routes for testing
func (suite *ProjectHandlerTestSuite) setupRoutes() {
	suite.router.POST("/projects", suite.handler.CreateProject)
	suite.router.GET("/projects/:id", suite.handler.GetProject)
	suite.router.PUT("/projects/:id", suite.handler.UpdateProject)
	suite.router.POST("/projects/:id/members", suite.handler.AddMember)
	suite.router.DELETE("/projects/:id/members/:user_id", suite.handler.RemoveMember)
}

// TestCreateProject tests the CreateProject handler
func (suite *ProjectHandlerTestSuite) TestCreateProject() {
	suite.T().Run("Invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/projects",
			bytes.NewBufferString("not json"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		suite.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})
}

// TestGetProject tests the GetProject handler
func (suite *ProjectHandlerTestSuite) TestGetProject() {
	suite.T().Run("Invalid project ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/projects/abc", nil)
		w := httptest.NewRecorder()

		suite.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "must be a positive integer")
	})

	suite.T().Run("Zero project ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/projects/0", nil)
		w := httptest.NewRecorder()

		suite.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

// TestUpdateProject tests the UpdateProject handler
func (suite *ProjectHandlerTestSuite) TestUpdateProject() {
	suite.T().Run("Invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/projects/5",
			bytes.NewBufferString("{broken"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		suite.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

// TestRemoveMember tests the RemoveMember handler
func (suite *ProjectHandlerTestSuite) TestRemoveMember() {
	suite.T().Run("Invalid user ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/projects/5/members/abc", nil)
		w := httptest.NewRecorder()

		suite.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "user_id")
	})
}

// TestProjectHandlerTestSuite runs the test suite
func TestProjectHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectHandlerTestSuite))
}
