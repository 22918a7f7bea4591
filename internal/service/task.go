package service

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"taskboard-backend/internal/database/models"
	apperrors "taskboard-backend/internal/errors"
	"taskboard-backend/internal/repository"
	"taskboard-backend/internal/storage"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// TaskService handles business logic for tasks, comments and attachments
type TaskService struct {
	tasks          repository.TaskRepositoryInterface
	projects       repository.ProjectRepositoryInterface
	comments       repository.CommentRepositoryInterface
	attachments    repository.AttachmentRepositoryInterface
	store          *storage.LocalStore
	validator      *validator.Validate
	maxAttachments int
	maxUploadBytes int64
}

// NewTaskService creates a new task service
func NewTaskService(
	tasks repository.TaskRepositoryInterface,
	projects repository.ProjectRepositoryInterface,
	comments repository.CommentRepositoryInterface,
	attachments repository.AttachmentRepositoryInterface,
	store *storage.LocalStore,
	validator *validator.Validate,
	maxAttachments int,
	maxUploadBytes int64,
) *TaskService {
	return &TaskService{
		tasks:          tasks,
		projects:       projects,
		comments:       comments,
		attachments:    attachments,
		store:          store,
		validator:      validator,
		maxAttachments: maxAttachments,
		maxUploadBytes: maxUploadBytes,
	}
}

// CreateTaskRequest represents the request to create a task
type CreateTaskRequest struct {
	Title       string              `json:"title" validate:"required,min=1,max=255"`
	Description string              `json:"description" validate:"omitempty,max=5000"`
	Priority    models.TaskPriority `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time          `json:"due_date"`
	AssigneeID  *uint               `json:"assignee_id"`
}

// UpdateTaskRequest represents the request to update a task. Nil fields are
// left unchanged; status changes go through UpdateStatus.
type UpdateTaskRequest struct {
	Title       *string              `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string              `json:"description" validate:"omitempty,max=5000"`
	Priority    *models.TaskPriority `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time           `json:"due_date"`
	AssigneeID  *uint                `json:"assignee_id"`
}

// UpdateStatusRequest represents the request to move a task along its flow
type UpdateStatusRequest struct {
	Status models.TaskStatus `json:"status" validate:"required,oneof=todo in-progress done"`
}

// AddCommentRequest represents the request to comment on a task
type AddCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

// TaskResponse represents the response for task operations
type TaskResponse struct {
	ID          uint                `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	DueDate     *time.Time          `json:"due_date"`
	ProjectID   uint                `json:"project_id"`
	AssigneeID  *uint               `json:"assignee_id"`
	CreatedByID *uint               `json:"created_by_id"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`

	// Populated on single-task reads, where the relations are preloaded
	Assignee  *UserResponse `json:"assignee,omitempty"`
	CreatedBy *UserResponse `json:"created_by,omitempty"`
}

// CommentResponse represents the response for comment operations
type CommentResponse struct {
	ID        uint          `json:"id"`
	Content   string        `json:"content"`
	TaskID    uint          `json:"task_id"`
	UserID    uint          `json:"user_id"`
	CreatedAt time.Time     `json:"created_at"`
	User      *UserResponse `json:"user,omitempty"`
}

// AttachmentResponse represents the response for attachment operations
type AttachmentResponse struct {
	ID        uint      `json:"id"`
	FileName  string    `json:"file_name"`
	FileType  string    `json:"file_type"`
	FileSize  int64     `json:"file_size"`
	TaskID    uint      `json:"task_id"`
	UserID    *uint     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTaskResponse maps a task model to its response shape
func NewTaskResponse(task *models.Task) *TaskResponse {
	return &TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		DueDate:     task.DueDate,
		ProjectID:   task.ProjectID,
		AssigneeID:  task.AssigneeID,
		CreatedByID: task.CreatedByID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func newCommentResponse(comment *models.Comment) *CommentResponse {
	resp := &CommentResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		TaskID:    comment.TaskID,
		UserID:    comment.UserID,
		CreatedAt: comment.CreatedAt,
	}
	if comment.User != nil {
		resp.User = NewUserResponse(comment.User)
	}
	return resp
}

func newAttachmentResponse(attachment *models.Attachment) *AttachmentResponse {
	return &AttachmentResponse{
		ID:        attachment.ID,
		FileName:  attachment.FileName,
		FileType:  attachment.FileType,
		FileSize:  attachment.FileSize,
		TaskID:    attachment.TaskID,
		UserID:    attachment.UserID,
		CreatedAt: attachment.CreatedAt,
	}
}

// Create creates a task in the project. Tasks start in todo; without an
// explicit assignee the creator is assigned. Only admins and managers may
// assign to someone else.
func (s *TaskService) Create(user *models.User, projectID uint, req *CreateTaskRequest) (*TaskResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	if err := s.requireMembership(projectID, user.ID,
		"Only project members can create tasks in this project"); err != nil {
		return nil, err
	}

	if req.DueDate != nil && dueDateInPast(*req.DueDate) {
		return nil, apperrors.ErrDueDateInPast
	}

	assigneeID := user.ID
	if req.AssigneeID != nil {
		assigneeID = *req.AssigneeID
	}
	if assigneeID != user.ID && !user.HasRole(models.UserRoleAdmin, models.UserRoleManager) {
		return nil, apperrors.ErrAssignmentNotAllowed
	}

	priority := req.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}

	creatorID := user.ID
	task := &models.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskStatusTodo,
		Priority:    priority,
		DueDate:     req.DueDate,
		ProjectID:   projectID,
		AssigneeID:  &assigneeID,
		CreatedByID: &creatorID,
	}
	if err := s.tasks.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return NewTaskResponse(task), nil
}

// List retrieves the project's tasks matching the filter, with pagination
func (s *TaskService) List(user *models.User, projectID uint, filter repository.TaskFilter, page, perPage int) ([]TaskResponse, int64, error) {
	if err := s.requireMembership(projectID, user.ID,
		"You don't have access to this project's tasks"); err != nil {
		return nil, 0, err
	}

	page, perPage = NormalizePage(page, perPage)
	tasks, total, err := s.tasks.GetByProjectID(projectID, filter, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	responses := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, *NewTaskResponse(&tasks[i]))
	}
	return responses, total, nil
}

// GetByID retrieves a task the caller can access, with its assignee and
// creator preloaded
func (s *TaskService) GetByID(user *models.User, taskID uint) (*TaskResponse, error) {
	task, err := s.tasks.GetWithRelations(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if err := s.requireMembership(task.ProjectID, user.ID,
		"You don't have access to this task"); err != nil {
		return nil, err
	}

	resp := NewTaskResponse(task)
	if task.Assignee != nil {
		resp.Assignee = NewUserResponse(task.Assignee)
	}
	if task.CreatedBy != nil {
		resp.CreatedBy = NewUserResponse(task.CreatedBy)
	}
	return resp, nil
}

// Update updates task details. The assignment rule applies when the assignee
// changes.
func (s *TaskService) Update(user *models.User, taskID uint, req *UpdateTaskRequest) (*TaskResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	task, err := s.getTask(taskID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMembership(task.ProjectID, user.ID,
		"Only project members can update tasks"); err != nil {
		return nil, err
	}

	if req.DueDate != nil && dueDateInPast(*req.DueDate) {
		return nil, apperrors.ErrDueDateInPast
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.AssigneeID != nil {
		if *req.AssigneeID != user.ID && !user.HasRole(models.UserRoleAdmin, models.UserRoleManager) {
			return nil, apperrors.ErrAssignmentNotAllowed
		}
		task.AssigneeID = req.AssigneeID
	}

	if err := s.tasks.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return NewTaskResponse(task), nil
}

// UpdateStatus moves a task along the todo -> in-progress -> done flow.
// Backwards moves are rejected.
func (s *TaskService) UpdateStatus(user *models.User, taskID uint, req *UpdateStatusRequest) (*TaskResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("status", err.Error())
	}

	task, err := s.getTask(taskID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMembership(task.ProjectID, user.ID,
		"Only project members can update task status"); err != nil {
		return nil, err
	}

	if req.Status.Rank() < task.Status.Rank() {
		return nil, apperrors.NewStatusTransitionError(string(task.Status), string(req.Status))
	}

	task.Status = req.Status
	if err := s.tasks.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}
	return NewTaskResponse(task), nil
}

// Delete deletes a task (admin or manager only, and they must be on the
// project roster)
func (s *TaskService) Delete(user *models.User, taskID uint) error {
	task, err := s.getTask(taskID)
	if err != nil {
		return err
	}

	if !user.HasRole(models.UserRoleAdmin, models.UserRoleManager) {
		return apperrors.NewForbiddenError("Only Admin or Manager can delete tasks")
	}
	if err := s.requireMembership(task.ProjectID, user.ID,
		"You don't have access to this project"); err != nil {
		return err
	}

	if err := s.tasks.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// GetTaskCounts returns per-status task counts for a project, zero-filled
func (s *TaskService) GetTaskCounts(user *models.User, projectID uint) (map[models.TaskStatus]int64, error) {
	if err := s.requireMembership(projectID, user.ID,
		"You don't have access to this project"); err != nil {
		return nil, err
	}

	counts, err := s.tasks.CountByStatus(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}
	return counts, nil
}

// GetOverdueTasks returns the project's unfinished tasks past their due date
func (s *TaskService) GetOverdueTasks(user *models.User, projectID uint) ([]TaskResponse, error) {
	if err := s.requireMembership(projectID, user.ID,
		"You don't have access to this project"); err != nil {
		return nil, err
	}

	tasks, err := s.tasks.GetOverdue(projectID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to get overdue tasks: %w", err)
	}

	responses := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, *NewTaskResponse(&tasks[i]))
	}
	return responses, nil
}

// AddComment adds a comment to a task
func (s *TaskService) AddComment(user *models.User, taskID uint, req *AddCommentRequest) (*CommentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("content", err.Error())
	}

	task, err := s.getTask(taskID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMembership(task.ProjectID, user.ID,
		"Only project members can comment on tasks"); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content: req.Content,
		TaskID:  taskID,
		UserID:  user.ID,
	}
	if err := s.comments.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	comment.User = user

	return newCommentResponse(comment), nil
}

// ListComments retrieves a task's comments oldest first, with pagination
func (s *TaskService) ListComments(user *models.User, taskID uint, page, perPage int) ([]CommentResponse, int64, error) {
	task, err := s.getTask(taskID)
	if err != nil {
		return nil, 0, err
	}
	if err := s.requireMembership(task.ProjectID, user.ID,
		"You don't have access to this task's comments"); err != nil {
		return nil, 0, err
	}

	page, perPage = NormalizePage(page, perPage)
	comments, total, err := s.comments.GetByTaskID(taskID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}

	responses := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, *newCommentResponse(&comments[i]))
	}
	return responses, total, nil
}

// DeleteComment deletes a comment (its author or an admin only)
func (s *TaskService) DeleteComment(user *models.User, commentID uint) error {
	comment, err := s.comments.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCommentNotFound
		}
		return fmt.Errorf("failed to get comment: %w", err)
	}

	if comment.UserID != user.ID && !user.HasRole(models.UserRoleAdmin) {
		return apperrors.ErrCommentDeleteForbidden
	}

	if err := s.comments.Delete(commentID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

// AddAttachment stores the uploaded file and records it against the task.
// The per-task cap is enforced transactionally; when the insert loses, the
// stored file is removed again.
func (s *TaskService) AddAttachment(user *models.User, taskID uint, file *multipart.FileHeader) (*AttachmentResponse, error) {
	task, err := s.getTask(taskID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMembership(task.ProjectID, user.ID,
		"Only project members can upload attachments"); err != nil {
		return nil, err
	}

	if file.Size > s.maxUploadBytes {
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("File exceeds the maximum size of %d bytes", s.maxUploadBytes))
	}

	storedName, err := s.store.Save(file)
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	uploaderID := user.ID
	attachment := &models.Attachment{
		FilePath: storedName,
		FileName: filepath.Base(file.Filename),
		FileType: file.Header.Get("Content-Type"),
		FileSize: file.Size,
		TaskID:   taskID,
		UserID:   &uploaderID,
	}
	if err := s.attachments.CreateWithCap(attachment, s.maxAttachments); err != nil {
		_ = s.store.Remove(storedName)
		return nil, err
	}

	return newAttachmentResponse(attachment), nil
}

// ListAttachments retrieves all attachments of a task
func (s *TaskService) ListAttachments(user *models.User, taskID uint) ([]AttachmentResponse, error) {
	task, err := s.getTask(taskID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMembership(task.ProjectID, user.ID,
		"You don't have access to this task's attachments"); err != nil {
		return nil, err
	}

	attachments, err := s.attachments.GetByTaskID(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}

	responses := make([]AttachmentResponse, 0, len(attachments))
	for i := range attachments {
		responses = append(responses, *newAttachmentResponse(&attachments[i]))
	}
	return responses, nil
}

// DownloadAttachment resolves an attachment to its on-disk path and original
// file name
func (s *TaskService) DownloadAttachment(user *models.User, taskID, attachmentID uint) (string, string, error) {
	attachment, err := s.getAttachment(attachmentID)
	if err != nil {
		return "", "", err
	}
	if attachment.TaskID != taskID {
		return "", "", apperrors.ErrAttachmentNotFound
	}

	task, err := s.getTask(attachment.TaskID)
	if err != nil {
		return "", "", err
	}
	if err := s.requireMembership(task.ProjectID, user.ID,
		"You don't have access to this attachment"); err != nil {
		return "", "", err
	}

	return s.store.Path(attachment.FilePath), attachment.FileName, nil
}

// DeleteAttachment deletes an attachment (its uploader or an admin only)
// along with its stored file
func (s *TaskService) DeleteAttachment(user *models.User, attachmentID uint) error {
	attachment, err := s.getAttachment(attachmentID)
	if err != nil {
		return err
	}

	owner := attachment.UserID != nil && *attachment.UserID == user.ID
	if !owner && !user.HasRole(models.UserRoleAdmin) {
		return apperrors.ErrAttachmentDeleteForbidden
	}

	if err := s.attachments.Delete(attachmentID); err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}
	return s.store.Remove(attachment.FilePath)
}

func (s *TaskService) getTask(taskID uint) (*models.Task, error) {
	task, err := s.tasks.GetByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

func (s *TaskService) getAttachment(attachmentID uint) (*models.Attachment, error) {
	attachment, err := s.attachments.GetByID(attachmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAttachmentNotFound
		}
		return nil, fmt.Errorf("failed to get attachment: %w", err)
	}
	return attachment, nil
}

// requireMembership rejects callers who are not on the project roster. Role
// does not bypass this; even admins act on tasks only in their own projects.
func (s *TaskService) requireMembership(projectID, userID uint, message string) error {
	isMember, err := s.projects.IsMember(projectID, userID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if !isMember {
		return apperrors.NewForbiddenError(message)
	}
	return nil
}

// dueDateInPast reports whether the due date falls on a day before today
func dueDateInPast(due time.Time) bool {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	y, m, d := due.Local().Date()
	dueDay := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return dueDay.Before(today)
}
