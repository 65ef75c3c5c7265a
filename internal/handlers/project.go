package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/devmarket/marketplace-api/internal/dto"
	apierrors "github.com/devmarket/marketplace-api/internal/errors"
	"github.com/devmarket/marketplace-api/internal/middleware"
	"github.com/devmarket/marketplace-api/internal/models"
	"github.com/devmarket/marketplace-api/internal/repository"
	"github.com/devmarket/marketplace-api/internal/services"
	"github.com/devmarket/marketplace-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// ProjectHandler coordinates project-related HTTP handlers.
type ProjectHandler struct {
	projectService     *services.ProjectService
	applicationService *services.ApplicationService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService, applicationService *services.ApplicationService) *ProjectHandler {
	return &ProjectHandler{
		projectService:     projectService,
		applicationService: applicationService,
	}
}

// CreateProject creates a new project owned by the authenticated client.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateProjectRequest struct {
		Title          string   `json:"title" binding:"required"`
		Description    string   `json:"description"`
		RequiredSkills []string `json:"required_skills"`
		Budget         float64  `json:"budget"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		ClientID:       user.ID,
		Title:          req.Title,
		Description:    req.Description,
		RequiredSkills: req.RequiredSkills,
		Budget:         req.Budget,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// ListProjects lists projects visible to the authenticated user: developers
// see Open projects, clients see their own, admins see everything. A status
// query parameter narrows the result further.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)

	filter := repository.ProjectFilter{
		Page:     params.Page,
		PageSize: params.Limit,
	}

	switch user.Role {
	case models.RoleDeveloper:
		open := models.ProjectStatusOpen
		filter.Status = &open
	case models.RoleClient:
		filter.ClientID = &user.ID
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.ProjectStatus(statusStr)
		filter.Status = &status
	}

	projects, total, err := h.projectService.ListProjects(filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch projects")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectListResponse(projects, params.Page, params.Limit, total))
}

// GetProject returns a single project.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID, ok := parseIDParam(c)
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(projectID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// CancelProject cancels an Open project.
func (h *ProjectHandler) CancelProject(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.projectService.CancelProject(projectID, &user); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project cancelled"})
}

// CompleteProject marks an In Progress project as Completed.
func (h *ProjectHandler) CompleteProject(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.projectService.CompleteProject(projectID, &user); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project completed"})
}

// ListProjectApplications returns the applications on a project, restricted
// to the owning client or an admin.
func (h *ProjectHandler) ListProjectApplications(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID, ok := parseIDParam(c)
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(projectID)
	if err != nil {
		respondProjectError(c, err)
		return
	}
	if user.Role != models.RoleAdmin && project.ClientID != user.ID {
		apierrors.Forbidden(c, "")
		return
	}

	apps, err := h.applicationService.ListForProject(projectID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch applications")
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": dto.ToApplicationDTOs(apps)})
}

// SuggestDevelopers returns ranked developer suggestions for a project.
func (h *ProjectHandler) SuggestDevelopers(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID, ok := parseIDParam(c)
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(projectID)
	if err != nil {
		respondProjectError(c, err)
		return
	}
	if user.Role != models.RoleAdmin && project.ClientID != user.ID {
		apierrors.Forbidden(c, "")
		return
	}

	suggestions, err := h.projectService.SuggestDevelopers(c.Request.Context(), projectID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid ID")
		return 0, false
	}
	return id, true
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotProjectOwner):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrClientNotEligible):
		apierrors.UnprocessableEntity(c, apierrors.ErrCodeNotEligible, err.Error())
	case errors.Is(err, services.ErrProjectNotCancellable),
		errors.Is(err, services.ErrProjectNotCompletable):
		apierrors.Conflict(c, apierrors.ErrCodeConflict, err.Error())
	case errors.Is(err, services.ErrMatchingNotConfigured):
		apierrors.ServiceUnavailable(c, err.Error())
	case errors.Is(err, services.ErrNoCandidates):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
