package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"taskboard-backend/internal/api/response"
	"taskboard-backend/internal/database/models"
	apperrors "taskboard-backend/internal/errors"
	"taskboard-backend/internal/repository"
	"taskboard-backend/internal/service"
)

// TaskHandler handles HTTP requests for tasks, comments and attachments
type TaskHandler struct {
	service *service.TaskService
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(service *service.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// CreateTask handles POST /api/v1/projects/:id/tasks
// @Summary Create a task
// @Description Create a task in a project the caller is a member of
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param task body service.CreateTaskRequest true "Task data"
// @Success 201 {object} response.ApiResponse{data=service.TaskResponse} "Created task"
// @Failure 400 {object} response.ErrorResponse "Due date in the past"
// @Failure 403 {object} response.ErrorResponse "Not a project member"
// @Security BearerAuth
// @Router /projects/{id}/tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req service.CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.service.Create(user, projectID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Created(c, response.MsgTaskCreated, task)
}

// ListTasks handles GET /api/v1/projects/:id/tasks
// @Summary List tasks
// @Description List a project's tasks with optional status, priority and assignee filters
// @Tags tasks
// @Produce json
// @Param id path int true "Project ID"
// @Param status query string false "Filter by status" Enums(todo, in-progress, done)
// @Param priority query string false "Filter by priority" Enums(low, medium, high)
// @Param assignee_id query int false "Filter by assignee"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(10)
// @Success 200 {object} response.ApiResponse{data=[]service.TaskResponse} "Tasks"
// @Failure 403 {object} response.ErrorResponse "Not a project member"
// @Security BearerAuth
// @Router /projects/{id}/tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	filter, ok := taskFilterFromQuery(c)
	if !ok {
		return
	}

	page, perPage := pagination(c)
	tasks, total, err := h.service.List(user, projectID, filter, page, perPage)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Paginated(c, response.MsgTaskListRetrieved, tasks,
		response.NewPaginationMeta(page, perPage, total))
}

// GetTask handles GET /api/v1/tasks/:id
// @Summary Get a task
// @Tags tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} response.ApiResponse{data=service.TaskResponse} "Task"
// @Failure 404 {object} response.ErrorResponse "Task not found"
// @Security BearerAuth
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	task, err := h.service.GetByID(user, taskID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, response.MsgTaskRetrieved, task)
}

// UpdateTask handles PUT /api/v1/tasks/:id
// @Summary Update a task
// @Description Update task details; status changes go through the status endpoint
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param task body service.UpdateTaskRequest true "Task changes"
// @Success 200 {object} response.ApiResponse{data=service.TaskResponse} "Updated task"
// @Failure 403 {object} response.ErrorResponse "Not allowed to assign to others"
// @Failure 404 {object} response.ErrorResponse "Task not found"
// @Security BearerAuth
// @Router /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.service.Update(user, taskID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, response.MsgTaskUpdated, task)
}

// UpdateTaskStatus handles PATCH /api/v1/tasks/:id/status
// @Summary Update task status
// @Description Move a task forward along todo, in-progress, done
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param status body service.UpdateStatusRequest true "New status"
// @Success 200 {object} response.ApiResponse{data=service.TaskResponse} "Updated task"
// @Failure 400 {object} response.ErrorResponse "Backwards status transition"
// @Security BearerAuth
// @Router /tasks/{id}/status [patch]
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.service.UpdateStatus(user, taskID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, response.MsgTaskStatusUpdated, task)
}

// DeleteTask handles DELETE /api/v1/tasks/:id
// @Summary Delete a task
// @Description Delete a task (admin or manager on the project roster)
// @Tags tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} response.ApiResponse "Deleted"
// @Failure 403 {object} response.ErrorResponse "Insufficient role"
// @Security BearerAuth
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(user, taskID); err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, response.MsgTaskDeleted, nil)
}

// GetTaskReport handles GET /api/v1/projects/:id/reports/task-count
// @Summary Project task report
// @Description Task counts per status for a project, zero-filled
// @Tags reports
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} response.ApiResponse{data=map[string]int64} "Counts by status"
// @Security BearerAuth
// @Router /projects/{id}/reports/task-count [get]
func (h *TaskHandler) GetTaskReport(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	counts, err := h.service.GetTaskCounts(user, projectID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, response.MsgReportRetrieved, counts)
}

// GetOverdueTasks handles GET /api/v1/projects/:id/reports/overdue-tasks
// @Summary List overdue tasks
// @Description Unfinished tasks in the project whose due date has passed
// @Tags reports
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} response.ApiResponse{data=[]service.TaskResponse} "Overdue tasks"
// @Security BearerAuth
// @Router /projects/{id}/reports/overdue-tasks [get]
func (h *TaskHandler) GetOverdueTasks(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	tasks, err := h.service.GetOverdueTasks(user, projectID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, response.MsgTaskListRetrieved, tasks)
}

// AddComment handles POST /api/v1/tasks/:id/comments
// @Summary Comment on a task
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param comment body service.AddCommentRequest true "Comment"
// @Success 201 {object} response.ApiResponse{data=service.CommentResponse} "Added comment"
// @Failure 403 {object} response.ErrorResponse "Not a project member"
// @Security BearerAuth
// @Router /tasks/{id}/comments [post]
func (h *TaskHandler) AddComment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req service.AddCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.service.AddComment(user, taskID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Created(c, response.MsgCommentAdded, comment)
}

// ListComments handles GET /api/v1/tasks/:id/comments
// @Summary List task comments
// @Tags comments
// @Produce json
// @Param id path int true "Task ID"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(10)
// @Success 200 {object} response.ApiResponse{data=[]service.CommentResponse} "Comments"
// @Security BearerAuth
// @Router /tasks/{id}/comments [get]
func (h *TaskHandler) ListComments(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	page, perPage := pagination(c)
	comments, total, err := h.service.ListComments(user, taskID, page, perPage)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Paginated(c, response.MsgCommentsRetrieved, comments,
		response.NewPaginationMeta(page, perPage, total))
}

// DeleteComment handles DELETE /api/v1/comments/:id
// @Summary Delete a comment
// @Description Delete a comment (its author or an admin)
// @Tags comments
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} response.ApiResponse "Deleted"
// @Failure 403 {object} response.ErrorResponse "Not the comment author"
// @Security BearerAuth
// @Router /comments/{id} [delete]
func (h *TaskHandler) DeleteComment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	commentID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteComment(user, commentID); err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, response.MsgDeleted, nil)
}

// AddAttachment handles POST /api/v1/tasks/:id/attachments
// @Summary Upload an attachment
// @Description Attach a file to a task; at most three attachments per task
// @Tags attachments
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Task ID"
// @Param file formData file true "File to attach"
// @Success 201 {object} response.ApiResponse{data=service.AttachmentResponse} "Uploaded attachment"
// @Failure 400 {object} response.ErrorResponse "Attachment limit reached or file too large"
// @Security BearerAuth
// @Router /tasks/{id}/attachments [post]
func (h *TaskHandler) AddAttachment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		_ = c.Error(apperrors.NewValidationError("file", "a file upload is required"))
		return
	}

	attachment, err := h.service.AddAttachment(user, taskID, file)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Created(c, response.MsgAttachmentUploaded, attachment)
}

// ListAttachments handles GET /api/v1/tasks/:id/attachments
// @Summary List task attachments
// @Tags attachments
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} response.ApiResponse{data=[]service.AttachmentResponse} "Attachments"
// @Security BearerAuth
// @Router /tasks/{id}/attachments [get]
func (h *TaskHandler) ListAttachments(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	attachments, err := h.service.ListAttachments(user, taskID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, response.MsgAttachmentsRetrieved, attachments)
}

// DownloadAttachment handles GET /api/v1/tasks/:id/attachments/:attachment_id
// @Summary Download an attachment
// @Tags attachments
// @Produce octet-stream
// @Param id path int true "Task ID"
// @Param attachment_id path int true "Attachment ID"
// @Success 200 {file} binary "File content"
// @Failure 404 {object} response.ErrorResponse "Attachment not found"
// @Security BearerAuth
// @Router /tasks/{id}/attachments/{attachment_id} [get]
func (h *TaskHandler) DownloadAttachment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	attachmentID, ok := parseUintParam(c, "attachment_id")
	if !ok {
		return
	}

	path, fileName, err := h.service.DownloadAttachment(user, taskID, attachmentID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.FileAttachment(path, fileName)
}

// DeleteAttachment handles DELETE /api/v1/attachments/:id
// @Summary Delete an attachment
// @Description Delete an attachment (its uploader or an admin)
// @Tags attachments
// @Produce json
// @Param id path int true "Attachment ID"
// @Success 200 {object} response.ApiResponse "Deleted"
// @Failure 403 {object} response.ErrorResponse "Not the uploader"
// @Security BearerAuth
// @Router /attachments/{id} [delete]
func (h *TaskHandler) DeleteAttachment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	attachmentID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteAttachment(user, attachmentID); err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, response.MsgDeleted, nil)
}

// taskFilterFromQuery parses the optional task list filters, rejecting
// unknown enum values
func taskFilterFromQuery(c *gin.Context) (repository.TaskFilter, bool) {
	var filter repository.TaskFilter

	if raw := c.Query("status"); raw != "" {
		status := models.TaskStatus(raw)
		if !status.IsValid() {
			_ = c.Error(apperrors.NewValidationError("status", "must be one of todo, in-progress, done"))
			c.Abort()
			return filter, false
		}
		filter.Status = &status
	}
	if raw := c.Query("priority"); raw != "" {
		priority := models.TaskPriority(raw)
		if !priority.IsValid() {
			_ = c.Error(apperrors.NewValidationError("priority", "must be one of low, medium, high"))
			c.Abort()
			return filter, false
		}
		filter.Priority = &priority
	}
	if raw := c.Query("assignee_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			_ = c.Error(apperrors.NewValidationError("assignee_id", "must be a positive integer"))
			c.Abort()
			return filter, false
		}
		assigneeID := uint(id)
		filter.AssigneeID = &assigneeID
	}

	return filter, true
}
