//go:build integration
// +build integration

package routes

import (
	"fmt"
	"net/http"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"taskboard-backend/internal/repository"
	"taskboard-backend/internal/storage"
	"taskboard-backend/internal/testutils"
)

// RoutesTestSuite exercises the full HTTP surface against a real database
type RoutesTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	http          *testutils.HTTPTestSuite
	factories     *testutils.FactorySet
	uploadDir     string
}

// SetupSuite runs before all tests in the suite
func (suite *RoutesTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.factories = testutils.NewFactorySet()

	dir, err := os.MkdirTemp("", "uploads")
	suite.Require().NoError(err)
	suite.uploadDir = dir

	store, err := storage.NewLocalStore(dir)
	suite.Require().NoError(err)

	suite.http = &testutils.HTTPTestSuite{
		Router: SetupRoutes(suite.baseTestSuite.DB, suite.baseTestSuite.Config, store),
	}
}

// TearDownSuite runs after all tests in the suite
func (suite *RoutesTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
	_ = os.RemoveAll(suite.uploadDir)
}

// SetupTest runs before each test
func (suite *RoutesTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *RoutesTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

func (suite *RoutesTestSuite) register(email, orgName string) map[string]interface{} {
	rec := suite.http.MakeRequest(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":             email,
		"password":          "password123",
		"full_name":         "Test User",
		"organization_name": orgName,
	})
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var body map[string]interface{}
	testutils.ParseJSONResponse(suite.T(), rec, &body)
	return body["data"].(map[string]interface{})
}

func (suite *RoutesTestSuite) login(email, password string) string {
	rec := suite.http.MakeRequest(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var body map[string]interface{}
	testutils.ParseJSONResponse(suite.T(), rec, &body)
	return body["data"].(map[string]interface{})["access_token"].(string)
}

// TestHealthEndpoints tests the public health checks
func (suite *RoutesTestSuite) TestHealthEndpoints() {
	rec := suite.http.MakeRequest(http.MethodGet, "/api/v1/health", nil)
	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), "uptime_seconds")

	rec = suite.http.MakeRequest(http.MethodGet, "/api/v1/health/db", nil)
	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), "open_connections")
}

// TestRegisterAndLogin tests the registration and login flow
func (suite *RoutesTestSuite) TestRegisterAndLogin() {
	user := suite.register("founder@acme.test", "Acme Corp")
	suite.Equal("admin", user["role"])

	// A second registration with the same email is rejected
	rec := suite.http.MakeRequest(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":             "founder@acme.test",
		"password":          "password123",
		"full_name":         "Someone Else",
		"organization_name": "Other Corp",
	})
	testutils.AssertErrorResponse(suite.T(), rec, http.StatusBadRequest, "BAD_REQUEST", "already registered")

	// A fresh email reusing the organization name is rejected too
	rec = suite.http.MakeRequest(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":             "other@acme.test",
		"password":          "password123",
		"full_name":         "Someone Else",
		"organization_name": "Acme Corp",
	})
	testutils.AssertErrorResponse(suite.T(), rec, http.StatusBadRequest, "BAD_REQUEST", "already taken")

	token := suite.login("founder@acme.test", "password123")

	rec = suite.http.MakeRequestWithHeaders(http.MethodGet, "/api/v1/users/me", nil,
		testutils.AuthHeaders(token))
	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), "founder@acme.test")
}

// TestProtectedRoutesRequireToken tests that protected routes reject anonymous calls
func (suite *RoutesTestSuite) TestProtectedRoutesRequireToken() {
	rec := suite.http.MakeRequest(http.MethodGet, "/api/v1/projects", nil)
	testutils.AssertErrorResponse(suite.T(), rec, http.StatusUnauthorized, "UNAUTHORIZED",
		"Authorization header is required")
}

// TestProjectTaskWorkflow walks a project from creation through task completion
func (suite *RoutesTestSuite) TestProjectTaskWorkflow() {
	user := suite.register("founder@acme.test", "Acme Corp")
	userID := uint(user["id"].(float64))
	token := suite.login("founder@acme.test", "password123")
	headers := testutils.AuthHeaders(token)

	// Create a project
	rec := suite.http.MakeRequestWithHeaders(http.MethodPost, "/api/v1/projects",
		map[string]string{"name": "Website Relaunch"}, headers)
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var body map[string]interface{}
	testutils.ParseJSONResponse(suite.T(), rec, &body)
	projectID := uint(body["data"].(map[string]interface{})["id"].(float64))

	// Task operations require roster membership, even for the admin
	taskURL := fmt.Sprintf("/api/v1/projects/%d/tasks", projectID)
	rec = suite.http.MakeRequestWithHeaders(http.MethodPost, taskURL,
		map[string]string{"title": "Draft landing page"}, headers)
	testutils.AssertErrorResponse(suite.T(), rec, http.StatusForbidden, "FORBIDDEN", "")

	// Join the roster
	rec = suite.http.MakeRequestWithHeaders(http.MethodPost,
		fmt.Sprintf("/api/v1/projects/%d/members", projectID),
		map[string]uint{"user_id": userID}, headers)
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	// Now the task can be created
	rec = suite.http.MakeRequestWithHeaders(http.MethodPost, taskURL,
		map[string]string{"title": "Draft landing page"}, headers)
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	testutils.ParseJSONResponse(suite.T(), rec, &body)
	taskID := uint(body["data"].(map[string]interface{})["id"].(float64))

	// Move the task forward
	statusURL := fmt.Sprintf("/api/v1/tasks/%d/status", taskID)
	rec = suite.http.MakeRequestWithHeaders(http.MethodPatch, statusURL,
		map[string]string{"status": "done"}, headers)
	suite.Equal(http.StatusOK, rec.Code, rec.Body.String())

	// Backwards moves are rejected
	rec = suite.http.MakeRequestWithHeaders(http.MethodPatch, statusURL,
		map[string]string{"status": "todo"}, headers)
	testutils.AssertErrorResponse(suite.T(), rec, http.StatusBadRequest, "BAD_REQUEST",
		"Cannot move status backwards")

	// Comment on the task
	rec = suite.http.MakeRequestWithHeaders(http.MethodPost,
		fmt.Sprintf("/api/v1/tasks/%d/comments", taskID),
		map[string]string{"content": "Shipped"}, headers)
	suite.Equal(http.StatusCreated, rec.Code, rec.Body.String())

	rec = suite.http.MakeRequestWithHeaders(http.MethodGet,
		fmt.Sprintf("/api/v1/tasks/%d/comments", taskID), nil, headers)
	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), "Shipped")

	// The report zero-fills statuses without tasks
	rec = suite.http.MakeRequestWithHeaders(http.MethodGet,
		fmt.Sprintf("/api/v1/projects/%d/reports/task-count", projectID), nil, headers)
	suite.Equal(http.StatusOK, rec.Code)
	testutils.ParseJSONResponse(suite.T(), rec, &body)
	counts := body["data"].(map[string]interface{})
	suite.Equal(float64(1), counts["done"])
	suite.Equal(float64(0), counts["todo"])
	suite.Equal(float64(0), counts["in-progress"])

	// Nothing is overdue
	rec = suite.http.MakeRequestWithHeaders(http.MethodGet,
		fmt.Sprintf("/api/v1/projects/%d/reports/overdue-tasks", projectID), nil, headers)
	suite.Equal(http.StatusOK, rec.Code)
}

// TestMemberCannotCreateProjects tests role enforcement on project creation
func (suite *RoutesTestSuite) TestMemberCannotCreateProjects() {
	user := suite.register("founder@acme.test", "Acme Corp")
	orgID := uint(user["organization_id"].(float64))

	// Seed a member-role user in the same organization
	member := suite.factories.User.WithEmail(orgID, "member@acme.test")
	suite.Require().NoError(
		repository.NewUserRepository(suite.baseTestSuite.DB).Create(member))

	token := suite.login("member@acme.test", "password123")
	rec := suite.http.MakeRequestWithHeaders(http.MethodPost, "/api/v1/projects",
		map[string]string{"name": "Forbidden Project"}, testutils.AuthHeaders(token))
	testutils.AssertErrorResponse(suite.T(), rec, http.StatusForbidden, "FORBIDDEN", "")
}

// TestUnknownRoute tests the catch-all 404 handler
func (suite *RoutesTestSuite) TestUnknownRoute() {
	rec := suite.http.MakeRequest(http.MethodGet, "/api/v1/nope", nil)
	suite.Equal(http.StatusNotFound, rec.Code)
	suite.Contains(rec.Body.String(), "Endpoint not found")
	suite.Contains(rec.Body.String(), "request_id")
}

// TestRoutesTestSuite runs the test suite
func TestRoutesTestSuite(t *testing.T) {
	suite.Run(t, new(RoutesTestSuite))
}
