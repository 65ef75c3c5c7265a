package models

import "time"

type ExperienceLevel string

const (
	ExperienceJunior ExperienceLevel = "junior"
	ExperienceMid    ExperienceLevel = "mid"
	ExperienceSenior ExperienceLevel = "senior"
)

// DeveloperProfile holds developer-only attributes. It exists only for users
// with the developer role; other roles have no row at all.
type DeveloperProfile struct {
	UserID          uint64          `gorm:"primarykey" json:"user_id"`
	Skills          []string        `gorm:"serializer:json" json:"skills"`
	ExperienceLevel ExperienceLevel `gorm:"type:varchar(20)" json:"experience_level"`
	HourlyRate      float64         `json:"hourly_rate"`
	PortfolioLinks  []string        `gorm:"serializer:json" json:"portfolio_links"`
	ResumeURL       string          `gorm:"type:varchar(500)" json:"resume_url"`
	PastProjects    string          `gorm:"type:text" json:"past_projects"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
