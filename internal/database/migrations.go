package database

import (
	"fmt"

	"github.com/devmarket/marketplace-api/internal/models"
	"gorm.io/gorm"
)

// Migrate runs schema auto-migration for every model owned by this service.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.DeveloperProfile{},
		&models.Project{},
		&models.ProjectApplication{},
		&models.ActivityLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// AddIndexes adds query-path indexes that AutoMigrate does not create.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		{"projects", "idx_projects_status", "status"},
		{"projects", "idx_projects_client_id_status", "client_id, status"},
		{"project_applications", "idx_applications_project_status", "project_id, status"},
		{"project_applications", "idx_applications_developer_status", "developer_id, status"},
		{"users", "idx_users_role_account_status", "role, account_status"},
		{"activity_logs", "idx_activity_logs_target", "target_type, target_id"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			continue
		}
		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
