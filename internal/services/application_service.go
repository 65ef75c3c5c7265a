package services

import (
	"errors"
	"fmt"

	"github.com/devmarket/marketplace-api/internal/models"
	"github.com/devmarket/marketplace-api/internal/notify"
	"github.com/devmarket/marketplace-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound   = errors.New("application not found")
	ErrProjectNotOpen        = errors.New("project is not open for applications")
	ErrProjectNotAvailable   = errors.New("project is no longer available")
	ErrAlreadyApplied        = errors.New("developer already has a live application for this project")
	ErrApplicationNotPending = errors.New("application is not pending")
)

// ApplicationService is the workflow engine for project applications:
// submission, acceptance with atomic assignment, rejection, and the
// mass-rejection of competing applications when one is accepted.
type ApplicationService struct {
	appRepo     repository.ApplicationRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	accounts    *AccountService
	dispatcher  *notify.Dispatcher
	audit       *AuditService
	logger      *zap.Logger
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	appRepo repository.ApplicationRepository,
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	accounts *AccountService,
	dispatcher *notify.Dispatcher,
	audit *AuditService,
	logger *zap.Logger,
) *ApplicationService {
	return &ApplicationService{
		appRepo:     appRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		accounts:    accounts,
		dispatcher:  dispatcher,
		audit:       audit,
		logger:      logger,
	}
}

// SubmitInput represents input for submitting an application
type SubmitInput struct {
	ProjectID   uint64
	DeveloperID uint64
	Message     string
}

// Submit creates a pending application after re-checking eligibility and
// project state. Success is defined purely by the insert; the client
// notification is queued afterwards and never awaited.
//
// The duplicate check is a query followed by an insert, not a single atomic
// step, so two near-simultaneous submissions by the same developer can both
// pass it. Known limitation; the UI serializes submissions per user.
func (s *ApplicationService) Submit(input SubmitInput) (*models.ProjectApplication, error) {
	developer, err := s.accounts.EligibleDeveloper(input.DeveloperID)
	if err != nil {
		return nil, err
	}

	project, err := s.projectRepo.FindByID(input.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if project.Status != models.ProjectStatusOpen {
		return nil, ErrProjectNotOpen
	}

	live, err := s.appRepo.HasLiveApplication(input.ProjectID, input.DeveloperID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing applications: %w", err)
	}
	if live {
		return nil, ErrAlreadyApplied
	}

	app := &models.ProjectApplication{
		ProjectID:      project.ID,
		DeveloperID:    developer.ID,
		Status:         models.ApplicationStatusPending,
		Message:        input.Message,
		ProjectName:    project.Title,
		DeveloperName:  developer.Name,
		DeveloperEmail: developer.Email,
	}

	if err := s.appRepo.Create(app); err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	s.notifyClientOfSubmission(project, app)
	s.audit.Record(developer.ID, developer.Name, ActionApplicationSubmitted, TargetApplication, app.ID, app.ProjectName, "")

	return app, nil
}

// Accept assigns the applying developer to the project. The first phase is
// one atomic unit: project Open -> In Progress with the assignee set, and
// application pending -> accepted, with both preconditions re-verified inside
// the transaction. Of two concurrent accepts on the same project exactly one
// commits; the loser observes ErrProjectNotAvailable and nothing changes.
// The second phase (winner notification, mass rejection of competing pending
// applications, per-loser notifications) is best-effort and never undoes the
// committed decision.
func (s *ApplicationService) Accept(applicationID uint64, actor *models.User) error {
	app, err := s.appRepo.FindByID(applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrApplicationNotFound
		}
		return fmt.Errorf("failed to find application: %w", err)
	}
	if app.Status != models.ApplicationStatusPending {
		return ErrApplicationNotPending
	}

	if err := s.appRepo.Accept(app); err != nil {
		switch {
		case errors.Is(err, repository.ErrProjectNotAvailable):
			return ErrProjectNotAvailable
		case errors.Is(err, repository.ErrApplicationNotPending):
			return ErrApplicationNotPending
		default:
			return fmt.Errorf("failed to accept application: %w", err)
		}
	}
	app.Status = models.ApplicationStatusAccepted

	s.notifyDeveloperOfDecision(app, applicationAcceptedEmail(app))
	s.audit.Record(actor.ID, actor.Name, ActionApplicationAccepted, TargetApplication, app.ID, app.ProjectName,
		fmt.Sprintf("assigned developer %s", app.DeveloperName))

	s.rejectCompetingApplications(app, actor)

	return nil
}

// Reject declines a single pending application. No project state changes.
func (s *ApplicationService) Reject(applicationID uint64, actor *models.User) error {
	app, err := s.appRepo.FindByID(applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrApplicationNotFound
		}
		return fmt.Errorf("failed to find application: %w", err)
	}

	ok, err := s.appRepo.UpdateStatus(applicationID, models.ApplicationStatusPending, models.ApplicationStatusRejected)
	if err != nil {
		return fmt.Errorf("failed to reject application: %w", err)
	}
	if !ok {
		return ErrApplicationNotPending
	}
	app.Status = models.ApplicationStatusRejected

	s.notifyDeveloperOfDecision(app, applicationRejectedEmail(app))
	s.audit.Record(actor.ID, actor.Name, ActionApplicationRejected, TargetApplication, app.ID, app.ProjectName, "")

	return nil
}

// GetApplication returns an application by ID.
func (s *ApplicationService) GetApplication(applicationID uint64) (*models.ProjectApplication, error) {
	app, err := s.appRepo.FindByID(applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return app, nil
}

// ListForProject returns a project's applications, newest first.
func (s *ApplicationService) ListForProject(projectID uint64) ([]models.ProjectApplication, error) {
	apps, err := s.appRepo.ListByProject(projectID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// ListForDeveloper returns a developer's applications, newest first.
func (s *ApplicationService) ListForDeveloper(developerID uint64) ([]models.ProjectApplication, error) {
	apps, err := s.appRepo.ListByDeveloper(developerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// rejectCompetingApplications moves every other pending application on the
// project to rejected in one batch, then notifies each loser individually.
// Runs after the accept decision has committed; a failure here leaves the
// siblings pending, where any later accept attempt fails deterministically
// because the project is no longer Open.
func (s *ApplicationService) rejectCompetingApplications(accepted *models.ProjectApplication, actor *models.User) {
	rejected, err := s.appRepo.RejectSiblings(accepted.ProjectID, accepted.ID)
	if err != nil {
		s.logger.Error("failed to reject competing applications",
			zap.Uint64("project_id", accepted.ProjectID),
			zap.Uint64("accepted_application_id", accepted.ID),
			zap.Error(err),
		)
		return
	}

	for i := range rejected {
		sibling := rejected[i]
		s.notifyDeveloperOfDecision(&sibling, applicationRejectedEmail(&sibling))
		s.audit.Record(actor.ID, actor.Name, ActionApplicationsSuperseded, TargetApplication, sibling.ID, sibling.ProjectName, "")
	}
}

// notifyClientOfSubmission queues the "new application received" email to the
// project owner and records confirmed delivery on the application row.
func (s *ApplicationService) notifyClientOfSubmission(project *models.Project, app *models.ProjectApplication) {
	client, err := s.userRepo.FindByID(project.ClientID)
	if err != nil {
		s.logger.Warn("skipping client notification, owner lookup failed",
			zap.Uint64("project_id", project.ID),
			zap.Uint64("client_id", project.ClientID),
			zap.Error(err),
		)
		return
	}

	appID := app.ID
	s.dispatcher.Enqueue(newApplicationEmail(client.Email, app), func(sendErr error) {
		if sendErr != nil {
			return
		}
		if err := s.appRepo.MarkClientNotified(appID); err != nil {
			s.logger.Warn("failed to record client notification",
				zap.Uint64("application_id", appID),
				zap.Error(err),
			)
		}
	})
}

// notifyDeveloperOfDecision queues a decision email to the developer and
// records confirmed delivery on the application row.
func (s *ApplicationService) notifyDeveloperOfDecision(app *models.ProjectApplication, msg notify.Message) {
	appID := app.ID
	s.dispatcher.Enqueue(msg, func(sendErr error) {
		if sendErr != nil {
			return
		}
		if err := s.appRepo.MarkDeveloperNotified(appID); err != nil {
			s.logger.Warn("failed to record developer notification",
				zap.Uint64("application_id", appID),
				zap.Error(err),
			)
		}
	})
}
