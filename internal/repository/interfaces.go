package repository

import (
	"time"

	"taskboard-backend/internal/database/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// TaskFilter narrows task listings. Nil fields are ignored.
type TaskFilter struct {
	Status     *models.TaskStatus
	Priority   *models.TaskPriority
	AssigneeID *uint
}

// OrganizationRepositoryInterface defines the interface for organization repository operations
type OrganizationRepositoryInterface interface {
	Create(org *models.Organization) error
	GetByID(id uint) (*models.Organization, error)
	GetByName(name string) (*models.Organization, error)
	Update(org *models.Organization) error
	Delete(id uint) error
}

// UserRepositoryInterface defines the interface for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetWithOrganization(id uint) (*models.User, error)
	GetByOrganizationID(orgID uint, limit, offset int) ([]models.User, int64, error)
	Update(user *models.User) error
	Delete(id uint) error
}

// ProjectRepositoryInterface defines the interface for project and membership
// repository operations
type ProjectRepositoryInterface interface {
	Create(project *models.Project) error
	GetByID(id uint) (*models.Project, error)
	GetByOrganizationID(orgID uint, limit, offset int) ([]models.Project, int64, error)
	GetByMemberID(orgID, userID uint, limit, offset int) ([]models.Project, int64, error)
	Update(project *models.Project) error
	Delete(id uint) error
	AddMember(member *models.ProjectMember) error
	RemoveMember(projectID, userID uint) error
	GetMembers(projectID uint) ([]models.ProjectMember, error)
	IsMember(projectID, userID uint) (bool, error)
}

// TaskRepositoryInterface defines the interface for task repository operations
type TaskRepositoryInterface interface {
	Create(task *models.Task) error
	GetByID(id uint) (*models.Task, error)
	GetWithRelations(id uint) (*models.Task, error)
	GetByProjectID(projectID uint, filter TaskFilter, limit, offset int) ([]models.Task, int64, error)
	Update(task *models.Task) error
	Delete(id uint) error
	CountByStatus(projectID uint) (map[models.TaskStatus]int64, error)
	GetOverdue(projectID uint, now time.Time) ([]models.Task, error)
}

// CommentRepositoryInterface defines the interface for comment repository operations
type CommentRepositoryInterface interface {
	Create(comment *models.Comment) error
	GetByID(id uint) (*models.Comment, error)
	GetByTaskID(taskID uint, limit, offset int) ([]models.Comment, int64, error)
	Delete(id uint) error
}

// AttachmentRepositoryInterface defines the interface for attachment repository
// operations. CreateWithCap enforces the per-task attachment limit inside a
// single transaction.
type AttachmentRepositoryInterface interface {
	CreateWithCap(attachment *models.Attachment, maxPerTask int) error
	GetByID(id uint) (*models.Attachment, error)
	GetByTaskID(taskID uint) ([]models.Attachment, error)
	Delete(id uint) error
}
