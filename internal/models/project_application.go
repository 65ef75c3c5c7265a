package models

import (
	"time"

	"gorm.io/gorm"
)

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// ProjectApplication is a developer's expression of interest in an Open
// project. ProjectName, DeveloperName and DeveloperEmail are snapshots taken
// at submission time so notifications keep working even if the live records
// change afterwards.
type ProjectApplication struct {
	ID          uint64            `gorm:"primarykey" json:"id"`
	ProjectID   uint64            `gorm:"not null;index:idx_applications_project_developer" json:"project_id"`
	DeveloperID uint64            `gorm:"not null;index:idx_applications_project_developer" json:"developer_id"`
	Status      ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Message     string            `gorm:"type:text" json:"message"`

	ProjectName    string `gorm:"type:varchar(255);not null" json:"project_name"`
	DeveloperName  string `gorm:"type:varchar(255);not null" json:"developer_name"`
	DeveloperEmail string `gorm:"type:varchar(255);not null" json:"developer_email"`

	// Diagnostics only: whether the corresponding best-effort notification
	// was confirmed sent. Never consulted by workflow logic.
	ClientNotified    bool `gorm:"not null;default:false" json:"client_notified"`
	DeveloperNotified bool `gorm:"not null;default:false" json:"developer_notified"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project   Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Developer User    `gorm:"foreignKey:DeveloperID" json:"developer,omitempty"`
}
