package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/devmarket/marketplace-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

var (
	// ErrCreateUser is returned when creating the user row fails inside the signup transaction.
	ErrCreateUser = errors.New("user repository: create user failed")
	// ErrCreateProfile is returned when creating the developer profile fails inside the signup transaction.
	ErrCreateProfile = errors.New("user repository: create developer profile failed")
)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// CreateWithDeveloperProfile creates a developer account and its profile atomically.
func (r *GormUserRepository) CreateWithDeveloperProfile(user *models.User, profile *models.DeveloperProfile) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateUser, err)
		}

		profile.UserID = user.ID

		if err := tx.Create(profile).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateProfile, err)
		}

		return nil
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email. Emails are stored lowercased, so the
// lookup lowercases the input to keep matching case-insensitive.
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindDeveloperProfile returns the developer profile for a user
func (r *GormUserRepository) FindDeveloperProfile(userID uint64) (*models.DeveloperProfile, error) {
	var profile models.DeveloperProfile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// SaveDeveloperProfile persists profile edits
func (r *GormUserRepository) SaveDeveloperProfile(profile *models.DeveloperProfile) error {
	return r.db.Save(profile).Error
}

// UpdateAccountStatus transitions an account status, guarded by the current status.
func (r *GormUserRepository) UpdateAccountStatus(id uint64, from, to models.AccountStatus) (bool, error) {
	res := r.db.Model(&models.User{}).
		Where("id = ? AND account_status = ?", id, from).
		Update("account_status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// SetFlagged sets or clears the moderation flag
func (r *GormUserRepository) SetFlagged(id uint64, flagged bool) error {
	res := r.db.Model(&models.User{}).
		Where("id = ?", id).
		Update("is_flagged", flagged)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListDevelopersByStatus lists developer accounts in a given status
func (r *GormUserRepository) ListDevelopersByStatus(status models.AccountStatus) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Preload("DeveloperProfile").
		Where("role = ? AND account_status = ?", models.RoleDeveloper, status).
		Order("created_at ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
