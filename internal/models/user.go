package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleClient    UserRole = "client"
	RoleDeveloper UserRole = "developer"
	RoleAdmin     UserRole = "admin"
)

type AccountStatus string

const (
	AccountPendingApproval AccountStatus = "pending_approval"
	AccountActive          AccountStatus = "active"
	AccountRejected        AccountStatus = "rejected"
	AccountSuspended       AccountStatus = "suspended"
)

type User struct {
	ID            uint64         `gorm:"primarykey" json:"id"`
	Email         string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name          string         `gorm:"type:varchar(255);not null" json:"name"`
	PasswordHash  string         `gorm:"type:varchar(255);not null" json:"-"`
	Role          UserRole       `gorm:"type:varchar(20);not null" json:"role"`
	AccountStatus AccountStatus  `gorm:"type:varchar(30);not null;default:'pending_approval'" json:"account_status"`
	IsFlagged     bool           `gorm:"not null;default:false" json:"is_flagged"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	DeveloperProfile *DeveloperProfile    `gorm:"foreignKey:UserID" json:"developer_profile,omitempty"`
	Projects         []Project            `gorm:"foreignKey:ClientID" json:"-"`
	Applications     []ProjectApplication `gorm:"foreignKey:DeveloperID" json:"-"`
}
