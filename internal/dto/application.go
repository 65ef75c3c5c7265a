package dto

import (
	"time"

	"github.com/devmarket/marketplace-api/internal/models"
)

// ApplicationDTO represents a project application in API responses
type ApplicationDTO struct {
	ID                uint64                   `json:"id"`
	ProjectID         uint64                   `json:"project_id"`
	DeveloperID       uint64                   `json:"developer_id"`
	Status            models.ApplicationStatus `json:"status"`
	Message           string                   `json:"message"`
	ProjectName       string                   `json:"project_name"`
	DeveloperName     string                   `json:"developer_name"`
	ClientNotified    bool                     `json:"client_notified"`
	DeveloperNotified bool                     `json:"developer_notified"`
	CreatedAt         time.Time                `json:"created_at"`
	UpdatedAt         time.Time                `json:"updated_at"`
}

// ToApplicationDTO converts a ProjectApplication model to ApplicationDTO
func ToApplicationDTO(app models.ProjectApplication) ApplicationDTO {
	return ApplicationDTO{
		ID:                app.ID,
		ProjectID:         app.ProjectID,
		DeveloperID:       app.DeveloperID,
		Status:            app.Status,
		Message:           app.Message,
		ProjectName:       app.ProjectName,
		DeveloperName:     app.DeveloperName,
		ClientNotified:    app.ClientNotified,
		DeveloperNotified: app.DeveloperNotified,
		CreatedAt:         app.CreatedAt,
		UpdatedAt:         app.UpdatedAt,
	}
}

// ToApplicationDTOs converts a slice of applications
func ToApplicationDTOs(apps []models.ProjectApplication) []ApplicationDTO {
	items := make([]ApplicationDTO, len(apps))
	for i, app := range apps {
		items[i] = ToApplicationDTO(app)
	}
	return items
}
