package repository

import (
	"errors"

	"github.com/devmarket/marketplace-api/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrProjectNotAvailable is returned from Accept when the project is no
	// longer Open at commit time; the whole transaction is rolled back.
	ErrProjectNotAvailable = errors.New("application repository: project is not open")
	// ErrApplicationNotPending is returned from Accept when the application
	// is no longer pending at commit time; the whole transaction is rolled back.
	ErrApplicationNotPending = errors.New("application repository: application is not pending")
)

// GormApplicationRepository is a GORM implementation of ApplicationRepository
type GormApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &GormApplicationRepository{db: db}
}

// Create creates a new application
func (r *GormApplicationRepository) Create(app *models.ProjectApplication) error {
	return r.db.Create(app).Error
}

// FindByID finds an application by ID with optional preloading
func (r *GormApplicationRepository) FindByID(id uint64, preload ...string) (*models.ProjectApplication, error) {
	var app models.ProjectApplication
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&app, id).Error; err != nil {
		return nil, err
	}

	return &app, nil
}

// ListByProject lists applications for a project, newest first
func (r *GormApplicationRepository) ListByProject(projectID uint64, status *models.ApplicationStatus) ([]models.ProjectApplication, error) {
	var apps []models.ProjectApplication

	query := r.db.Where("project_id = ?", projectID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	if err := query.Order("created_at DESC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// ListByDeveloper lists a developer's applications, newest first
func (r *GormApplicationRepository) ListByDeveloper(developerID uint64) ([]models.ProjectApplication, error) {
	var apps []models.ProjectApplication
	err := r.db.
		Where("developer_id = ?", developerID).
		Order("created_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

// HasLiveApplication reports whether the developer already has a pending or
// accepted application on the project. A prior rejected application does not
// count, so developers may reapply after a rejection.
func (r *GormApplicationRepository) HasLiveApplication(projectID, developerID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.ProjectApplication{}).
		Where("project_id = ? AND developer_id = ? AND status IN ?",
			projectID, developerID,
			[]models.ApplicationStatus{models.ApplicationStatusPending, models.ApplicationStatusAccepted}).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Accept commits the assignment decision atomically. Both conditional updates
// carry their status precondition in the WHERE clause, so a project that was
// concurrently assigned or cancelled makes the transaction roll back with no
// partial effect.
func (r *GormApplicationRepository) Accept(app *models.ProjectApplication) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Project{}).
			Where("id = ? AND status = ?", app.ProjectID, models.ProjectStatusOpen).
			Updates(map[string]interface{}{
				"status":                  models.ProjectStatusInProgress,
				"assigned_developer_id":   app.DeveloperID,
				"assigned_developer_name": app.DeveloperName,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrProjectNotAvailable
		}

		res = tx.Model(&models.ProjectApplication{}).
			Where("id = ? AND status = ?", app.ID, models.ApplicationStatusPending).
			Update("status", models.ApplicationStatusAccepted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrApplicationNotPending
		}

		return nil
	})
}

// RejectSiblings atomically rejects every other pending application on the
// project and returns the rejected rows for per-recipient notification.
func (r *GormApplicationRepository) RejectSiblings(projectID, acceptedID uint64) ([]models.ProjectApplication, error) {
	var siblings []models.ProjectApplication

	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where("project_id = ? AND id <> ? AND status = ?",
				projectID, acceptedID, models.ApplicationStatusPending).
			Find(&siblings).Error
		if err != nil {
			return err
		}
		if len(siblings) == 0 {
			return nil
		}

		ids := make([]uint64, len(siblings))
		for i, s := range siblings {
			ids[i] = s.ID
		}

		res := tx.Model(&models.ProjectApplication{}).
			Where("id IN ? AND status = ?", ids, models.ApplicationStatusPending).
			Update("status", models.ApplicationStatusRejected)
		if res.Error != nil {
			return res.Error
		}

		for i := range siblings {
			siblings[i].Status = models.ApplicationStatusRejected
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return siblings, nil
}

// UpdateStatus transitions an application status, guarded by the current status.
func (r *GormApplicationRepository) UpdateStatus(id uint64, from, to models.ApplicationStatus) (bool, error) {
	res := r.db.Model(&models.ProjectApplication{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// MarkClientNotified records confirmed delivery of the new-application notification
func (r *GormApplicationRepository) MarkClientNotified(id uint64) error {
	return r.db.Model(&models.ProjectApplication{}).
		Where("id = ?", id).
		Update("client_notified", true).Error
}

// MarkDeveloperNotified records confirmed delivery of the decision notification
func (r *GormApplicationRepository) MarkDeveloperNotified(id uint64) error {
	return r.db.Model(&models.ProjectApplication{}).
		Where("id = ?", id).
		Update("developer_notified", true).Error
}
