package service

import (
	"errors"
	"fmt"
	"time"

	"taskboard-backend/internal/database/models"
	apperrors "taskboard-backend/internal/errors"
	"taskboard-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// ProjectService handles business logic for projects and their membership
type ProjectService struct {
	projects  repository.ProjectRepositoryInterface
	users     repository.UserRepositoryInterface
	validator *validator.Validate
}

// NewProjectService creates a new project service
func NewProjectService(
	projects repository.ProjectRepositoryInterface,
	users repository.UserRepositoryInterface,
	validator *validator.Validate,
) *ProjectService {
	return &ProjectService{
		projects:  projects,
		users:     users,
		validator: validator,
	}
}

// CreateProjectRequest represents the request to create a project
type CreateProjectRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

// UpdateProjectRequest represents the request to update a project. Nil fields
// are left unchanged.
type UpdateProjectRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// AddMemberRequest represents the request to add a user to a project
type AddMemberRequest struct {
	UserID uint `json:"user_id" validate:"required"`
}

// ProjectResponse represents the response for project operations
type ProjectResponse struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	OrganizationID uint      `json:"organization_id"`
	CreatedByID    *uint     `json:"created_by_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ProjectMemberResponse represents one entry of a project roster
type ProjectMemberResponse struct {
	ID        uint          `json:"id"`
	ProjectID uint          `json:"project_id"`
	UserID    uint          `json:"user_id"`
	JoinedAt  time.Time     `json:"joined_at"`
	User      *UserResponse `json:"user,omitempty"`
}

// NewProjectResponse maps a project model to its response shape
func NewProjectResponse(project *models.Project) *ProjectResponse {
	return &ProjectResponse{
		ID:             project.ID,
		Name:           project.Name,
		Description:    project.Description,
		OrganizationID: project.OrganizationID,
		CreatedByID:    project.CreatedByID,
		CreatedAt:      project.CreatedAt,
		UpdatedAt:      project.UpdatedAt,
	}
}

func newProjectMemberResponse(member *models.ProjectMember) *ProjectMemberResponse {
	resp := &ProjectMemberResponse{
		ID:        member.ID,
		ProjectID: member.ProjectID,
		UserID:    member.UserID,
		JoinedAt:  member.JoinedAt,
	}
	if member.User != nil {
		resp.User = NewUserResponse(member.User)
	}
	return resp
}

// Create creates a new project in the caller's organization
func (s *ProjectService) Create(user *models.User, req *CreateProjectRequest) (*ProjectResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	creatorID := user.ID
	project := &models.Project{
		Name:           req.Name,
		Description:    req.Description,
		OrganizationID: user.OrganizationID,
		CreatedByID:    &creatorID,
	}
	if err := s.projects.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return NewProjectResponse(project), nil
}

// GetByID retrieves a project the caller can access
func (s *ProjectService) GetByID(user *models.User, projectID uint) (*ProjectResponse, error) {
	project, err := s.getProject(projectID)
	if err != nil {
		return nil, err
	}

	ok, err := s.canAccessProject(project, user)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrProjectAccessDenied
	}

	return NewProjectResponse(project), nil
}

// List retrieves the projects visible to the caller with pagination. Admins
// and managers see every project in the organization; members only see
// projects they belong to.
func (s *ProjectService) List(user *models.User, page, perPage int) ([]ProjectResponse, int64, error) {
	page, perPage = NormalizePage(page, perPage)
	offset := (page - 1) * perPage

	var (
		projects []models.Project
		total    int64
		err      error
	)
	if user.HasRole(models.UserRoleAdmin, models.UserRoleManager) {
		projects, total, err = s.projects.GetByOrganizationID(user.OrganizationID, perPage, offset)
	} else {
		projects, total, err = s.projects.GetByMemberID(user.OrganizationID, user.ID, perPage, offset)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}

	responses := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		responses = append(responses, *NewProjectResponse(&projects[i]))
	}
	return responses, total, nil
}

// Update updates a project (admin or manager only)
func (s *ProjectService) Update(user *models.User, projectID uint, req *UpdateProjectRequest) (*ProjectResponse, error) {
	if !user.HasRole(models.UserRoleAdmin, models.UserRoleManager) {
		return nil, apperrors.NewForbiddenError("Only Admin or Manager can update projects")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	project, err := s.getProject(projectID)
	if err != nil {
		return nil, err
	}
	if project.OrganizationID != user.OrganizationID {
		return nil, apperrors.ErrProjectAccessDenied
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if err := s.projects.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return NewProjectResponse(project), nil
}

// Delete deletes a project (admin only). Members and tasks go with it.
func (s *ProjectService) Delete(user *models.User, projectID uint) error {
	if !user.HasRole(models.UserRoleAdmin) {
		return apperrors.NewForbiddenError("Only Admin can delete projects")
	}

	project, err := s.getProject(projectID)
	if err != nil {
		return err
	}
	if project.OrganizationID != user.OrganizationID {
		return apperrors.ErrProjectAccessDenied
	}

	if err := s.projects.Delete(project.ID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// AddMember adds a same-organization user to the project roster (admin or
// manager only)
func (s *ProjectService) AddMember(user *models.User, projectID uint, req *AddMemberRequest) (*ProjectMemberResponse, error) {
	if !user.HasRole(models.UserRoleAdmin, models.UserRoleManager) {
		return nil, apperrors.NewForbiddenError("Only Admin or Manager can add members")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("user_id", err.Error())
	}

	project, err := s.getProject(projectID)
	if err != nil {
		return nil, err
	}
	if project.OrganizationID != user.OrganizationID {
		return nil, apperrors.ErrProjectAccessDenied
	}

	target, err := s.users.GetByID(req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if target.OrganizationID != user.OrganizationID {
		return nil, apperrors.ErrCrossOrganization
	}

	isMember, err := s.projects.IsMember(projectID, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if isMember {
		return nil, apperrors.ErrAlreadyProjectMember
	}

	member := &models.ProjectMember{ProjectID: projectID, UserID: req.UserID}
	if err := s.projects.AddMember(member); err != nil {
		// A concurrent add can slip past the check above; the unique index
		// reports it as a duplicate key.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrAlreadyProjectMember
		}
		return nil, fmt.Errorf("failed to add member: %w", err)
	}
	member.User = target

	return newProjectMemberResponse(member), nil
}

// RemoveMember removes a user from the project roster (admin or manager only)
func (s *ProjectService) RemoveMember(user *models.User, projectID, userID uint) error {
	if !user.HasRole(models.UserRoleAdmin, models.UserRoleManager) {
		return apperrors.NewForbiddenError("Only Admin or Manager can remove members")
	}

	project, err := s.getProject(projectID)
	if err != nil {
		return err
	}
	if project.OrganizationID != user.OrganizationID {
		return apperrors.ErrProjectAccessDenied
	}

	if err := s.projects.RemoveMember(projectID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrProjectMemberNotFound
		}
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

// GetMembers retrieves the roster of a project the caller can access
func (s *ProjectService) GetMembers(user *models.User, projectID uint) ([]ProjectMemberResponse, error) {
	project, err := s.getProject(projectID)
	if err != nil {
		return nil, err
	}

	ok, err := s.canAccessProject(project, user)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrProjectAccessDenied
	}

	members, err := s.projects.GetMembers(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}

	responses := make([]ProjectMemberResponse, 0, len(members))
	for i := range members {
		responses = append(responses, *newProjectMemberResponse(&members[i]))
	}
	return responses, nil
}

func (s *ProjectService) getProject(projectID uint) (*models.Project, error) {
	project, err := s.projects.GetByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

// canAccessProject reports whether the user may see the project: same
// organization, and for plain members a roster entry as well.
func (s *ProjectService) canAccessProject(project *models.Project, user *models.User) (bool, error) {
	if project.OrganizationID != user.OrganizationID {
		return false, nil
	}
	if user.HasRole(models.UserRoleAdmin, models.UserRoleManager) {
		return true, nil
	}
	return s.projects.IsMember(project.ID, user.ID)
}
