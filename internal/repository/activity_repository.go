package repository

import (
	"github.com/devmarket/marketplace-api/internal/database"
	"github.com/devmarket/marketplace-api/internal/models"
	"github.com/devmarket/marketplace-api/internal/utils"
	"gorm.io/gorm"
)

// GormActivityRepository is a GORM implementation of ActivityRepository
type GormActivityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &GormActivityRepository{db: db}
}

// Append writes one audit entry
func (r *GormActivityRepository) Append(entry *models.ActivityLog) error {
	return r.db.Create(entry).Error
}

// List returns audit entries, newest first
func (r *GormActivityRepository) List(page, pageSize int) ([]models.ActivityLog, int64, error) {
	var entries []models.ActivityLog

	var total int64
	if err := r.db.Model(&models.ActivityLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.Order("created_at DESC")
	if page > 0 && pageSize > 0 {
		query = query.Scopes(database.Paginate(utils.PaginationParams{
			Limit:  pageSize,
			Offset: (page - 1) * pageSize,
		}))
	}

	if err := query.Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
