package models

import "time"

// ActivityLog is an append-only audit record of a state-changing action.
// The workflow engine only ever writes these; they are read back solely
// through the admin inspection endpoint.
type ActivityLog struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	ActorID    uint64    `gorm:"not null;index" json:"actor_id"`
	ActorName  string    `gorm:"type:varchar(255);not null" json:"actor_name"`
	Action     string    `gorm:"type:varchar(100);not null;index" json:"action"`
	TargetType string    `gorm:"type:varchar(50);not null" json:"target_type"`
	TargetID   uint64    `gorm:"not null" json:"target_id"`
	TargetName string    `gorm:"type:varchar(255)" json:"target_name"`
	Details    string    `gorm:"type:text" json:"details"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}
