package repository

import (
	"github.com/devmarket/marketplace-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// CreateWithDeveloperProfile creates a developer account and its profile
	// within a single transaction.
	CreateWithDeveloperProfile(user *models.User, profile *models.DeveloperProfile) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email (case-insensitive)
	FindByEmail(email string) (*models.User, error)

	// FindDeveloperProfile returns the developer profile for a user
	FindDeveloperProfile(userID uint64) (*models.DeveloperProfile, error)

	// SaveDeveloperProfile persists profile edits
	SaveDeveloperProfile(profile *models.DeveloperProfile) error

	// UpdateAccountStatus transitions an account from one status to another.
	// The update only applies when the current status matches from; the
	// returned bool reports whether the transition happened.
	UpdateAccountStatus(id uint64, from, to models.AccountStatus) (bool, error)

	// SetFlagged sets or clears the moderation flag
	SetFlagged(id uint64, flagged bool) error

	// ListDevelopersByStatus lists developer accounts in a given status
	ListDevelopersByStatus(status models.AccountStatus) ([]models.User, error)
}

// ProjectFilter holds filtering options for listing projects
type ProjectFilter struct {
	ClientID *uint64
	Status   *models.ProjectStatus
	Page     int
	PageSize int
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// List retrieves projects with filtering and pagination
	List(filter ProjectFilter) ([]models.Project, int64, error)

	// UpdateStatus transitions a project from one status to another. The
	// update only applies when the current status matches from; the returned
	// bool reports whether the transition happened.
	UpdateStatus(id uint64, from, to models.ProjectStatus) (bool, error)
}

// ApplicationRepository defines the interface for project application data access
type ApplicationRepository interface {
	// Create creates a new application
	Create(app *models.ProjectApplication) error

	// FindByID finds an application by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.ProjectApplication, error)

	// ListByProject lists applications for a project, newest first,
	// optionally filtered by status
	ListByProject(projectID uint64, status *models.ApplicationStatus) ([]models.ProjectApplication, error)

	// ListByDeveloper lists a developer's applications, newest first
	ListByDeveloper(developerID uint64) ([]models.ProjectApplication, error)

	// HasLiveApplication reports whether the developer already has a pending
	// or accepted application on the project
	HasLiveApplication(projectID, developerID uint64) (bool, error)

	// Accept performs the assignment decision as one atomic unit: the project
	// moves Open -> In Progress with the developer assigned, and the
	// application moves pending -> accepted. Both status preconditions are
	// re-verified inside the transaction; on violation nothing is written and
	// ErrProjectNotAvailable or ErrApplicationNotPending is returned.
	Accept(app *models.ProjectApplication) error

	// RejectSiblings atomically rejects every other pending application on
	// the project and returns the rejected rows for notification.
	RejectSiblings(projectID, acceptedID uint64) ([]models.ProjectApplication, error)

	// UpdateStatus transitions an application from one status to another. The
	// update only applies when the current status matches from; the returned
	// bool reports whether the transition happened.
	UpdateStatus(id uint64, from, to models.ApplicationStatus) (bool, error)

	// MarkClientNotified records that the new-application notification was
	// confirmed sent
	MarkClientNotified(id uint64) error

	// MarkDeveloperNotified records that the decision notification was
	// confirmed sent
	MarkDeveloperNotified(id uint64) error
}

// ActivityRepository defines the interface for the append-only audit trail
type ActivityRepository interface {
	// Append writes one audit entry
	Append(entry *models.ActivityLog) error

	// List returns audit entries, newest first, with pagination
	List(page, pageSize int) ([]models.ActivityLog, int64, error)
}
