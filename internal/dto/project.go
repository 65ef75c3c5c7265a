package dto

import (
	"time"

	"github.com/devmarket/marketplace-api/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID                    uint64               `json:"id"`
	ClientID              uint64               `json:"client_id"`
	Title                 string               `json:"title"`
	Description           string               `json:"description"`
	RequiredSkills        []string             `json:"required_skills"`
	Budget                float64              `json:"budget"`
	Status                models.ProjectStatus `json:"status"`
	AssignedDeveloperID   *uint64              `json:"assigned_developer_id,omitempty"`
	AssignedDeveloperName string               `json:"assigned_developer_name,omitempty"`
	CreatedAt             time.Time            `json:"created_at"`
	UpdatedAt             time.Time            `json:"updated_at"`
	Client                *UserDTO             `json:"client,omitempty"`
}

// ProjectListResponse represents a paginated list of projects
type ProjectListResponse struct {
	Projects   []ProjectDTO `json:"projects"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalCount int64        `json:"total_count"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	dto := ProjectDTO{
		ID:                    project.ID,
		ClientID:              project.ClientID,
		Title:                 project.Title,
		Description:           project.Description,
		RequiredSkills:        project.RequiredSkills,
		Budget:                project.Budget,
		Status:                project.Status,
		AssignedDeveloperID:   project.AssignedDeveloperID,
		AssignedDeveloperName: project.AssignedDeveloperName,
		CreatedAt:             project.CreatedAt,
		UpdatedAt:             project.UpdatedAt,
	}

	// Include client if preloaded
	if project.Client.ID != 0 {
		client := ToUserDTO(project.Client)
		dto.Client = &client
	}

	return dto
}

// ToProjectListResponse converts a slice of projects to ProjectListResponse
func ToProjectListResponse(projects []models.Project, page, pageSize int, totalCount int64) ProjectListResponse {
	items := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		items[i] = ToProjectDTO(project)
	}

	return ProjectListResponse{
		Projects:   items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
	}
}
