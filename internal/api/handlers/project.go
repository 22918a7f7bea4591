package handlers

import (
	"github.com/gin-gonic/gin"

	"taskboard-backend/internal/api/response"
	"taskboard-backend/internal/service"
)

// ProjectHandler handles HTTP requests for projects and their membership
type ProjectHandler struct {
	service *service.ProjectService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(service *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// CreateProject handles POST /api/v1/projects
// @Summary Create a project
// @Description Create a project in the caller's organization (admin or manager)
// @Tags projects
// @Accept json
// @Produce json
// @Param project body service.CreateProjectRequest true "Project data"
// @Success 201 {object} response.ApiResponse{data=service.ProjectResponse} "Created project"
// @Failure 403 {object} response.ErrorResponse "Insufficient role"
// @Security BearerAuth
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req service.CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.service.Create(user, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Created(c, response.MsgProjectCreated, project)
}

// ListProjects handles GET /api/v1/projects
// @Summary List projects
// @Description Admins and managers see all organization projects; members only theirs
// @Tags projects
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(10)
// @Success 200 {object} response.ApiResponse{data=[]service.ProjectResponse} "Projects"
// @Security BearerAuth
// @Router /projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	page, perPage := pagination(c)
	projects, total, err := h.service.List(user, page, perPage)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Paginated(c, response.MsgProjectListRetrieved, projects,
		response.NewPaginationMeta(page, perPage, total))
}

// GetProject handles GET /api/v1/projects/:id
// @Summary Get a project
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} response.ApiResponse{data=service.ProjectResponse} "Project"
// @Failure 403 {object} response.ErrorResponse "No access to this project"
// @Failure 404 {object} response.ErrorResponse "Project not found"
// @Security BearerAuth
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	project, err := h.service.GetByID(user, projectID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, response.MsgProjectRetrieved, project)
}

// UpdateProject handles PUT /api/v1/projects/:id
// @Summary Update a project
// @Description Update project name or description (admin or manager)
// @Tags projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param project body service.UpdateProjectRequest true "Project changes"
// @Success 200 {object} response.ApiResponse{data=service.ProjectResponse} "Updated project"
// @Failure 403 {object} response.ErrorResponse "Insufficient role"
// @Failure 404 {object} response.ErrorResponse "Project not found"
// @Security BearerAuth
// @Router /projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.service.Update(user, projectID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, response.MsgProjectUpdated, project)
}

// DeleteProject handles DELETE /api/v1/projects/:id
// @Summary Delete a project
// @Description Delete a project and everything in it (admin only)
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} response.ApiResponse "Deleted"
// @Failure 403 {object} response.ErrorResponse "Insufficient role"
// @Failure 404 {object} response.ErrorResponse "Project not found"
// @Security BearerAuth
// @Router /projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(user, projectID); err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, response.MsgProjectDeleted, nil)
}

// AddMember handles POST /api/v1/projects/:id/members
// @Summary Add a project member
// @Description Add a same-organization user to the project roster (admin or manager)
// @Tags projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param member body service.AddMemberRequest true "User to add"
// @Success 201 {object} response.ApiResponse{data=service.ProjectMemberResponse} "Added member"
// @Failure 400 {object} response.ErrorResponse "Already a member or cross-organization user"
// @Failure 404 {object} response.ErrorResponse "Project or user not found"
// @Security BearerAuth
// @Router /projects/{id}/members [post]
func (h *ProjectHandler) AddMember(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req service.AddMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.service.AddMember(user, projectID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Created(c, response.MsgProjectMemberAdded, member)
}

// RemoveMember handles DELETE /api/v1/projects/:id/members/:user_id
// @Summary Remove a project member
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Param user_id path int true "User ID"
// @Success 200 {object} response.ApiResponse "Removed"
// @Failure 404 {object} response.ErrorResponse "Project or member not found"
// @Security BearerAuth
// @Router /projects/{id}/members/{user_id} [delete]
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseUintParam(c, "user_id")
	if !ok {
		return
	}

	if err := h.service.RemoveMember(user, projectID, userID); err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, response.MsgProjectMemberRemoved, nil)
}

// GetMembers handles GET /api/v1/projects/:id/members
// @Summary List project members
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} response.ApiResponse{data=[]service.ProjectMemberResponse} "Members"
// @Failure 403 {object} response.ErrorResponse "No access to this project"
// @Security BearerAuth
// @Router /projects/{id}/members [get]
func (h *ProjectHandler) GetMembers(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	members, err := h.service.GetMembers(user, projectID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, response.MsgProjectMembersRetrieved, members)
}
