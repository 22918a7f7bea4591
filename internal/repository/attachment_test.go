//go:build integration
// +build integration

package repository

import (
	"fmt"
	"testing"

	"taskboard-backend/internal/database/models"
	apperrors "taskboard-backend/internal/errors"
	"taskboard-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// AttachmentRepositoryTestSuite tests the AttachmentRepository
type AttachmentRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *AttachmentRepository
	factories     *testutils.FactorySet

	user *models.User
	task *models.Task
}

// SetupSuite runs before all tests in the suite
func (suite *AttachmentRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.repo = NewAttachmentRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *AttachmentRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test and seeds a task to attach files to
func (suite *AttachmentRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()

	org := suite.factories.Organization.Create()
	suite.Require().NoError(NewOrganizationRepository(suite.baseTestSuite.DB).Create(org))

	suite.user = suite.factories.User.Create(org.ID)
	suite.Require().NoError(NewUserRepository(suite.baseTestSuite.DB).Create(suite.user))

	project := suite.factories.Project.Create(org.ID, &suite.user.ID)
	suite.Require().NoError(NewProjectRepository(suite.baseTestSuite.DB).Create(project))

	suite.task = suite.factories.Task.Create(project.ID, &suite.user.ID)
	suite.Require().NoError(NewTaskRepository(suite.baseTestSuite.DB).Create(suite.task))
}

// TearDownTest runs after each test
func (suite *AttachmentRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

func (suite *AttachmentRepositoryTestSuite) newAttachment(name string) *models.Attachment {
	return &models.Attachment{
		FilePath: "stored_" + name,
		FileName: name,
		FileType: "text/plain",
		FileSize: 42,
		TaskID:   suite.task.ID,
		UserID:   &suite.user.ID,
	}
}

// TestCreateWithCap tests inserts under the per-task limit
func (suite *AttachmentRepositoryTestSuite) TestCreateWithCap() {
	attachment := suite.newAttachment("notes.txt")
	err := suite.repo.CreateWithCap(attachment, 3)

	suite.NoError(err)
	suite.NotZero(attachment.ID)
}

// TestCreateWithCapAtLimit tests that the cap rejects the overflowing insert
func (suite *AttachmentRepositoryTestSuite) TestCreateWithCapAtLimit() {
	for i := 0; i < 3; i++ {
		suite.Require().NoError(suite.repo.CreateWithCap(
			suite.newAttachment(fmt.Sprintf("file-%d.txt", i)), 3))
	}

	err := suite.repo.CreateWithCap(suite.newAttachment("overflow.txt"), 3)

	suite.Error(err)
	suite.True(apperrors.IsBadRequest(err))
	suite.Contains(err.Error(), "Maximum 3 attachments")

	attachments, listErr := suite.repo.GetByTaskID(suite.task.ID)
	suite.NoError(listErr)
	suite.Len(attachments, 3)
}

// TestCreateWithCapMissingTask tests attaching to a task that does not exist
func (suite *AttachmentRepositoryTestSuite) TestCreateWithCapMissingTask() {
	attachment := suite.newAttachment("notes.txt")
	attachment.TaskID = 99999

	err := suite.repo.CreateWithCap(attachment, 3)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestGetByTaskID tests listing a task's attachments oldest first
func (suite *AttachmentRepositoryTestSuite) TestGetByTaskID() {
	first := suite.newAttachment("first.txt")
	suite.Require().NoError(suite.repo.CreateWithCap(first, 3))
	second := suite.newAttachment("second.txt")
	suite.Require().NoError(suite.repo.CreateWithCap(second, 3))

	attachments, err := suite.repo.GetByTaskID(suite.task.ID)

	suite.NoError(err)
	suite.Require().Len(attachments, 2)
	suite.Equal(first.ID, attachments[0].ID)
	suite.Equal(second.ID, attachments[1].ID)
}

// TestDelete tests deleting an attachment record
func (suite *AttachmentRepositoryTestSuite) TestDelete() {
	attachment := suite.newAttachment("notes.txt")
	suite.Require().NoError(suite.repo.CreateWithCap(attachment, 3))

	suite.NoError(suite.repo.Delete(attachment.ID))

	_, err := suite.repo.GetByID(attachment.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestAttachmentRepositoryTestSuite runs the test suite
func TestAttachmentRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(AttachmentRepositoryTestSuite))
}
