package dto

import (
	"github.com/devmarket/marketplace-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID            uint64               `json:"id"`
	Email         string               `json:"email"`
	Name          string               `json:"name"`
	Role          models.UserRole      `json:"role"`
	AccountStatus models.AccountStatus `json:"account_status"`
	IsFlagged     bool                 `json:"is_flagged"`
	Profile       *DeveloperProfileDTO `json:"developer_profile,omitempty"`
}

// DeveloperProfileDTO represents developer-only attributes in API responses
type DeveloperProfileDTO struct {
	Skills          []string               `json:"skills"`
	ExperienceLevel models.ExperienceLevel `json:"experience_level"`
	HourlyRate      float64                `json:"hourly_rate"`
	PortfolioLinks  []string               `json:"portfolio_links"`
	ResumeURL       string                 `json:"resume_url"`
	PastProjects    string                 `json:"past_projects"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	dto := UserDTO{
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.Name,
		Role:          user.Role,
		AccountStatus: user.AccountStatus,
		IsFlagged:     user.IsFlagged,
	}

	// Include profile if preloaded (developers only)
	if user.DeveloperProfile != nil {
		profile := ToDeveloperProfileDTO(*user.DeveloperProfile)
		dto.Profile = &profile
	}

	return dto
}

// ToDeveloperProfileDTO converts a DeveloperProfile model to its DTO
func ToDeveloperProfileDTO(profile models.DeveloperProfile) DeveloperProfileDTO {
	return DeveloperProfileDTO{
		Skills:          profile.Skills,
		ExperienceLevel: profile.ExperienceLevel,
		HourlyRate:      profile.HourlyRate,
		PortfolioLinks:  profile.PortfolioLinks,
		ResumeURL:       profile.ResumeURL,
		PastProjects:    profile.PastProjects,
	}
}
