package handlers

import (
	"errors"
	"net/http"

	"github.com/devmarket/marketplace-api/internal/dto"
	apierrors "github.com/devmarket/marketplace-api/internal/errors"
	"github.com/devmarket/marketplace-api/internal/middleware"
	"github.com/devmarket/marketplace-api/internal/models"
	"github.com/devmarket/marketplace-api/internal/services"
	"github.com/gin-gonic/gin"
)

// ApplicationHandler coordinates application workflow HTTP handlers.
type ApplicationHandler struct {
	applicationService *services.ApplicationService
	projectService     *services.ProjectService
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(applicationService *services.ApplicationService, projectService *services.ProjectService) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
		projectService:     projectService,
	}
}

// Submit creates a pending application by the authenticated developer.
func (h *ApplicationHandler) Submit(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type SubmitRequest struct {
		ProjectID uint64 `json:"project_id" binding:"required"`
		Message   string `json:"message"`
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	app, err := h.applicationService.Submit(services.SubmitInput{
		ProjectID:   req.ProjectID,
		DeveloperID: user.ID,
		Message:     req.Message,
	})
	if err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToApplicationDTO(*app))
}

// ListMine returns the authenticated developer's applications.
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	apps, err := h.applicationService.ListForDeveloper(user.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch applications")
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": dto.ToApplicationDTOs(apps)})
}

// Accept accepts a pending application, assigning the developer to the
// project and superseding all competing applications.
func (h *ApplicationHandler) Accept(c *gin.Context) {
	user, app, ok := h.authorizedDecision(c)
	if !ok {
		return
	}

	if err := h.applicationService.Accept(app.ID, &user); err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application accepted"})
}

// Reject declines a pending application.
func (h *ApplicationHandler) Reject(c *gin.Context) {
	user, app, ok := h.authorizedDecision(c)
	if !ok {
		return
	}

	if err := h.applicationService.Reject(app.ID, &user); err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application rejected"})
}

// authorizedDecision loads the application from the URL and verifies the
// acting user is the owning client or an admin.
func (h *ApplicationHandler) authorizedDecision(c *gin.Context) (models.User, *models.ProjectApplication, bool) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return models.User{}, nil, false
	}

	appID, ok := parseIDParam(c)
	if !ok {
		return models.User{}, nil, false
	}

	app, err := h.applicationService.GetApplication(appID)
	if err != nil {
		respondApplicationError(c, err)
		return models.User{}, nil, false
	}

	if user.Role != models.RoleAdmin {
		project, err := h.projectService.GetProject(app.ProjectID)
		if err != nil {
			respondProjectError(c, err)
			return models.User{}, nil, false
		}
		if project.ClientID != user.ID {
			apierrors.Forbidden(c, "")
			return models.User{}, nil, false
		}
	}

	return user, app, true
}

func respondApplicationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrApplicationNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrProjectNotOpen):
		apierrors.Conflict(c, apierrors.ErrCodeProjectNotOpen, err.Error())
	case errors.Is(err, services.ErrProjectNotAvailable):
		apierrors.Conflict(c, apierrors.ErrCodeProjectNotAvailable, err.Error())
	case errors.Is(err, services.ErrAlreadyApplied):
		apierrors.Conflict(c, apierrors.ErrCodeAlreadyApplied, err.Error())
	case errors.Is(err, services.ErrApplicationNotPending):
		apierrors.Conflict(c, apierrors.ErrCodeNotPending, err.Error())
	case errors.Is(err, services.ErrDeveloperNotEligible):
		apierrors.UnprocessableEntity(c, apierrors.ErrCodeNotEligible, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
