package handlers

import (
	"errors"
	"net/http"

	"github.com/devmarket/marketplace-api/internal/dto"
	apierrors "github.com/devmarket/marketplace-api/internal/errors"
	"github.com/devmarket/marketplace-api/internal/middleware"
	"github.com/devmarket/marketplace-api/internal/models"
	"github.com/devmarket/marketplace-api/internal/repository"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProfileHandler serves the authenticated developer's profile.
type ProfileHandler struct {
	userRepo repository.UserRepository
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(userRepo repository.UserRepository) *ProfileHandler {
	return &ProfileHandler{userRepo: userRepo}
}

// GetProfile returns the developer profile of the authenticated user.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	profile, err := h.userRepo.FindDeveloperProfile(user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Profile not found")
			return
		}
		apierrors.InternalError(c, "Failed to fetch profile")
		return
	}

	c.JSON(http.StatusOK, dto.ToDeveloperProfileDTO(*profile))
}

// UpdateProfile updates the developer profile of the authenticated user.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type UpdateProfileRequest struct {
		Skills          []string               `json:"skills"`
		ExperienceLevel models.ExperienceLevel `json:"experience_level"`
		HourlyRate      float64                `json:"hourly_rate"`
		PortfolioLinks  []string               `json:"portfolio_links"`
		ResumeURL       string                 `json:"resume_url"`
		PastProjects    string                 `json:"past_projects"`
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	profile, err := h.userRepo.FindDeveloperProfile(user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Profile not found")
			return
		}
		apierrors.InternalError(c, "Failed to fetch profile")
		return
	}

	profile.Skills = req.Skills
	profile.ExperienceLevel = req.ExperienceLevel
	profile.HourlyRate = req.HourlyRate
	profile.PortfolioLinks = req.PortfolioLinks
	profile.ResumeURL = req.ResumeURL
	profile.PastProjects = req.PastProjects

	if err := h.userRepo.SaveDeveloperProfile(profile); err != nil {
		apierrors.InternalError(c, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, dto.ToDeveloperProfileDTO(*profile))
}
