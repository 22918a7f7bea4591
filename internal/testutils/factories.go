package testutils

import (
	"fmt"
	"time"

	"taskboard-backend/internal/database/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// FactorySet bundles all factories for convenient use in test suites
type FactorySet struct {
	Organization *OrganizationFactory
	User         *UserFactory
	Project      *ProjectFactory
	Task         *TaskFactory
}

// NewFactorySet creates a new FactorySet
func NewFactorySet() *FactorySet {
	return &FactorySet{
		Organization: NewOrganizationFactory(),
		User:         NewUserFactory(),
		Project:      NewProjectFactory(),
		Task:         NewTaskFactory(),
	}
}

// OrganizationFactory provides methods to create test Organization data
type OrganizationFactory struct{}

// NewOrganizationFactory creates a new OrganizationFactory
func NewOrganizationFactory() *OrganizationFactory {
	return &OrganizationFactory{}
}

// Create creates a test Organization with a unique name
func (f *OrganizationFactory) Create() *models.Organization {
	return &models.Organization{
		Name:        "Test Organization " + uuid.NewString()[:8],
		Description: "A test organization",
	}
}

// WithName sets a custom name for the organization
func (f *OrganizationFactory) WithName(name string) *models.Organization {
	org := f.Create()
	org.Name = name
	return org
}

// UserFactory provides methods to create test User data
type UserFactory struct{}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates a test User with a unique email. The password is "password123";
// MinCost keeps suites fast.
func (f *UserFactory) Create(orgID uint) *models.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	return &models.User{
		Email:          fmt.Sprintf("user-%s@test.com", uuid.NewString()[:8]),
		PasswordHash:   string(hash),
		FullName:       "John Doe",
		Role:           models.UserRoleMember,
		IsActive:       true,
		OrganizationID: orgID,
	}
}

// WithRole sets a custom role for the user
func (f *UserFactory) WithRole(orgID uint, role models.UserRole) *models.User {
	user := f.Create(orgID)
	user.Role = role
	return user
}

// WithEmail sets a custom email for the user
func (f *UserFactory) WithEmail(orgID uint, email string) *models.User {
	user := f.Create(orgID)
	user.Email = email
	return user
}

// Inactive creates a deactivated user
func (f *UserFactory) Inactive(orgID uint) *models.User {
	user := f.Create(orgID)
	user.IsActive = false
	return user
}

// ProjectFactory provides methods to create test Project data
type ProjectFactory struct{}

// NewProjectFactory creates a new ProjectFactory
func NewProjectFactory() *ProjectFactory {
	return &ProjectFactory{}
}

// Create creates a test Project in the given organization
func (f *ProjectFactory) Create(orgID uint, createdBy *uint) *models.Project {
	return &models.Project{
		Name:           "Test Project " + uuid.NewString()[:8],
		Description:    "A test project",
		OrganizationID: orgID,
		CreatedByID:    createdBy,
	}
}

// TaskFactory provides methods to create test Task data
type TaskFactory struct{}

// NewTaskFactory creates a new TaskFactory
func NewTaskFactory() *TaskFactory {
	return &TaskFactory{}
}

// Create creates a test Task in the given project
func (f *TaskFactory) Create(projectID uint, createdBy *uint) *models.Task {
	return &models.Task{
		Title:       "Test Task " + uuid.NewString()[:8],
		Description: "A test task",
		Status:      models.TaskStatusTodo,
		Priority:    models.TaskPriorityMedium,
		ProjectID:   projectID,
		AssigneeID:  createdBy,
		CreatedByID: createdBy,
	}
}

// WithStatus sets a custom status for the task
func (f *TaskFactory) WithStatus(projectID uint, createdBy *uint, status models.TaskStatus) *models.Task {
	task := f.Create(projectID, createdBy)
	task.Status = status
	return task
}

// WithDueDate sets a due date for the task
func (f *TaskFactory) WithDueDate(projectID uint, createdBy *uint, due time.Time) *models.Task {
	task := f.Create(projectID, createdBy)
	task.DueDate = &due
	return task
}
