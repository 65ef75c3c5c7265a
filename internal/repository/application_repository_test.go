package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/devmarket/marketplace-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func pendingApplication() *models.ProjectApplication {
	return &models.ProjectApplication{
		ID:            7,
		ProjectID:     3,
		DeveloperID:   11,
		Status:        models.ApplicationStatusPending,
		DeveloperName: "Dev Eloper",
	}
}

func TestAccept_CommitsGuardedUpdates(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewApplicationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "projects" SET .+ WHERE id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "project_applications" SET .+ WHERE id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Accept(pendingApplication()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccept_RollsBackWhenProjectNotOpen(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewApplicationRepository(db)

	// The status guard in the WHERE clause matches no row: the project was
	// concurrently assigned or cancelled.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "projects" SET .+ WHERE id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Accept(pendingApplication())
	require.ErrorIs(t, err, ErrProjectNotAvailable)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccept_RollsBackWhenApplicationNotPending(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewApplicationRepository(db)

	// The project update lands, but the application was decided in between.
	// The rollback must also undo the project assignment.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "projects" SET .+ WHERE id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "project_applications" SET .+ WHERE id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Accept(pendingApplication())
	require.ErrorIs(t, err, ErrApplicationNotPending)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_ReportsGuardOutcome(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewApplicationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "project_applications" SET .+ WHERE id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ok, err := repo.UpdateStatus(7, models.ApplicationStatusPending, models.ApplicationStatusRejected)
	require.NoError(t, err)
	require.True(t, ok)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "project_applications" SET .+ WHERE id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	ok, err = repo.UpdateStatus(7, models.ApplicationStatusPending, models.ApplicationStatusRejected)
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}
