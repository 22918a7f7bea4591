package repository

import (
	"taskboard-backend/internal/database/models"

	"gorm.io/gorm"
)

// ProjectRepository handles database operations for projects and their
// membership roster
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create creates a new project
func (r *ProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// GetByID retrieves a project by ID
func (r *ProjectRepository) GetByID(id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetByOrganizationID retrieves all projects of an organization with pagination
func (r *ProjectRepository) GetByOrganizationID(orgID uint, limit, offset int) ([]models.Project, int64, error) {
	var projects []models.Project
	var total int64

	query := r.db.Model(&models.Project{}).Where("organization_id = ?", orgID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("id").Limit(limit).Offset(offset).Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// GetByMemberID retrieves the organization's projects where the user is on
// the membership roster, with pagination
func (r *ProjectRepository) GetByMemberID(orgID, userID uint, limit, offset int) ([]models.Project, int64, error) {
	var projects []models.Project
	var total int64

	query := r.db.Model(&models.Project{}).
		Joins("JOIN project_members ON project_members.project_id = projects.id").
		Where("projects.organization_id = ? AND project_members.user_id = ?", orgID, userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("projects.id").Limit(limit).Offset(offset).Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// Update updates a project
func (r *ProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete deletes a project and, through FK cascades, its members and tasks
func (r *ProjectRepository) Delete(id uint) error {
	return r.db.Delete(&models.Project{}, "id = ?", id).Error
}

// AddMember adds a user to the project roster. The composite unique index on
// (project_id, user_id) turns concurrent duplicates into gorm.ErrDuplicatedKey.
func (r *ProjectRepository) AddMember(member *models.ProjectMember) error {
	return r.db.Create(member).Error
}

// RemoveMember removes a user from the project roster
func (r *ProjectRepository) RemoveMember(projectID, userID uint) error {
	result := r.db.Delete(&models.ProjectMember{}, "project_id = ? AND user_id = ?", projectID, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetMembers retrieves the project roster with user details
func (r *ProjectRepository) GetMembers(projectID uint) ([]models.ProjectMember, error) {
	var members []models.ProjectMember
	err := r.db.Preload("User").Where("project_id = ?", projectID).Order("id").Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// IsMember reports whether the user is on the project roster
func (r *ProjectRepository) IsMember(projectID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
