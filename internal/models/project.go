package models

import (
	"time"

	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectStatusOpen       ProjectStatus = "Open"
	ProjectStatusInProgress ProjectStatus = "In Progress"
	ProjectStatusCompleted  ProjectStatus = "Completed"
	ProjectStatusCancelled  ProjectStatus = "Cancelled"
)

type Project struct {
	ID             uint64        `gorm:"primarykey" json:"id"`
	ClientID       uint64        `gorm:"not null;index" json:"client_id"`
	Title          string        `gorm:"type:varchar(255);not null" json:"title"`
	Description    string        `gorm:"type:text" json:"description"`
	RequiredSkills []string      `gorm:"serializer:json" json:"required_skills"`
	Budget         float64       `json:"budget"`
	Status         ProjectStatus `gorm:"type:varchar(20);not null;default:'Open'" json:"status"`

	// Set exactly once, on the Open -> In Progress transition.
	AssignedDeveloperID   *uint64 `gorm:"index" json:"assigned_developer_id"`
	AssignedDeveloperName string  `gorm:"type:varchar(255)" json:"assigned_developer_name,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Client       User                 `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Applications []ProjectApplication `gorm:"foreignKey:ProjectID" json:"applications,omitempty"`
}
