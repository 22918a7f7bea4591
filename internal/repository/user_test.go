//go:build integration
// +build integration

package repository

import (
	"testing"

	"taskboard-backend/internal/database/models"
	"taskboard-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// UserRepositoryTestSuite tests the UserRepository
type UserRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *UserRepository
	factories     *testutils.FactorySet

	org *models.Organization
}

// SetupSuite runs before all tests in the suite
func (suite *UserRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.repo = NewUserRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *UserRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test and seeds an organization
func (suite *UserRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()

	suite.org = suite.factories.Organization.Create()
	suite.Require().NoError(NewOrganizationRepository(suite.baseTestSuite.DB).Create(suite.org))
}

// TearDownTest runs after each test
func (suite *UserRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// TestCreate tests creating a new user
func (suite *UserRepositoryTestSuite) TestCreate() {
	user := suite.factories.User.Create(suite.org.ID)
	err := suite.repo.Create(user)

	suite.NoError(err)
	suite.NotZero(user.ID)
	suite.NotZero(user.CreatedAt)
}

// TestCreateDuplicateEmail tests the unique index on email
func (suite *UserRepositoryTestSuite) TestCreateDuplicateEmail() {
	first := suite.factories.User.WithEmail(suite.org.ID, "taken@test.com")
	suite.Require().NoError(suite.repo.Create(first))

	second := suite.factories.User.WithEmail(suite.org.ID, "taken@test.com")
	err := suite.repo.Create(second)

	suite.ErrorIs(err, gorm.ErrDuplicatedKey)
}

// TestGetByEmail tests retrieving a user by email
func (suite *UserRepositoryTestSuite) TestGetByEmail() {
	user := suite.factories.User.WithEmail(suite.org.ID, "lookup@test.com")
	suite.Require().NoError(suite.repo.Create(user))

	retrieved, err := suite.repo.GetByEmail("lookup@test.com")

	suite.NoError(err)
	suite.Equal(user.ID, retrieved.ID)
}

// TestGetByEmailNotFound tests looking up an unknown email
func (suite *UserRepositoryTestSuite) TestGetByEmailNotFound() {
	_, err := suite.repo.GetByEmail("nobody@test.com")
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestGetWithOrganization tests that organization details are loaded
func (suite *UserRepositoryTestSuite) TestGetWithOrganization() {
	user := suite.factories.User.Create(suite.org.ID)
	suite.Require().NoError(suite.repo.Create(user))

	retrieved, err := suite.repo.GetWithOrganization(user.ID)

	suite.NoError(err)
	suite.Require().NotNil(retrieved.Organization)
	suite.Equal(suite.org.Name, retrieved.Organization.Name)
}

// TestGetByOrganizationID tests pagination over an organization's users
func (suite *UserRepositoryTestSuite) TestGetByOrganizationID() {
	for i := 0; i < 3; i++ {
		suite.Require().NoError(suite.repo.Create(suite.factories.User.Create(suite.org.ID)))
	}

	otherOrg := suite.factories.Organization.Create()
	suite.Require().NoError(NewOrganizationRepository(suite.baseTestSuite.DB).Create(otherOrg))
	suite.Require().NoError(suite.repo.Create(suite.factories.User.Create(otherOrg.ID)))

	users, total, err := suite.repo.GetByOrganizationID(suite.org.ID, 2, 0)

	suite.NoError(err)
	suite.Equal(int64(3), total)
	suite.Len(users, 2)
}

// TestUpdate tests updating a user
func (suite *UserRepositoryTestSuite) TestUpdate() {
	user := suite.factories.User.Create(suite.org.ID)
	suite.Require().NoError(suite.repo.Create(user))

	user.FullName = "Renamed User"
	suite.Require().NoError(suite.repo.Update(user))

	retrieved, err := suite.repo.GetByID(user.ID)
	suite.NoError(err)
	suite.Equal("Renamed User", retrieved.FullName)
}

// TestUserRepositoryTestSuite runs the test suite
func TestUserRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepositoryTestSuite))
}
