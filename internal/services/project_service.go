package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/devmarket/marketplace-api/internal/models"
	"github.com/devmarket/marketplace-api/internal/notify"
	"github.com/devmarket/marketplace-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound       = errors.New("project not found")
	ErrTitleRequired         = errors.New("title is required")
	ErrNotProjectOwner       = errors.New("only the project owner can perform this action")
	ErrClientNotEligible     = errors.New("client account is not active")
	ErrProjectNotCancellable = errors.New("only open projects can be cancelled")
	ErrProjectNotCompletable = errors.New("only in-progress projects can be completed")
	ErrMatchingNotConfigured = errors.New("matching service is not configured")
	ErrNoCandidates          = errors.New("no active developers to rank")
)

// ProjectService handles project lifecycle outside the application workflow:
// creation, listing, and the terminal client actions cancel/complete.
type ProjectService struct {
	projectRepo  repository.ProjectRepository
	userRepo     repository.UserRepository
	matchService *MatchService
	dispatcher   *notify.Dispatcher
	audit        *AuditService
	logger       *zap.Logger
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	matchService *MatchService,
	dispatcher *notify.Dispatcher,
	audit *AuditService,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		projectRepo:  projectRepo,
		userRepo:     userRepo,
		matchService: matchService,
		dispatcher:   dispatcher,
		audit:        audit,
		logger:       logger,
	}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	ClientID       uint64
	Title          string
	Description    string
	RequiredSkills []string
	Budget         float64
}

// CreateProject creates a new Open project owned by an active client.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	client, err := s.userRepo.FindByID(input.ClientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find client: %w", err)
	}
	if client.Role != models.RoleClient || client.AccountStatus != models.AccountActive {
		return nil, ErrClientNotEligible
	}

	project := &models.Project{
		ClientID:       client.ID,
		Title:          input.Title,
		Description:    input.Description,
		RequiredSkills: input.RequiredSkills,
		Budget:         input.Budget,
		Status:         models.ProjectStatusOpen,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.audit.Record(client.ID, client.Name, ActionProjectCreated, TargetProject, project.ID, project.Title, "")

	return project, nil
}

// GetProject returns a project with its owner preloaded.
func (s *ProjectService) GetProject(projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID, "Client")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// ListProjects retrieves projects with filtering and pagination.
func (s *ProjectService) ListProjects(filter repository.ProjectFilter) ([]models.Project, int64, error) {
	projects, total, err := s.projectRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// CancelProject moves an Open project to Cancelled. Pending applications stay
// pending; any accept attempt against them fails because the project is no
// longer Open.
func (s *ProjectService) CancelProject(projectID uint64, actor *models.User) error {
	project, err := s.ownedProject(projectID, actor)
	if err != nil {
		return err
	}

	ok, err := s.projectRepo.UpdateStatus(projectID, models.ProjectStatusOpen, models.ProjectStatusCancelled)
	if err != nil {
		return fmt.Errorf("failed to cancel project: %w", err)
	}
	if !ok {
		return ErrProjectNotCancellable
	}

	s.audit.Record(actor.ID, actor.Name, ActionProjectCancelled, TargetProject, project.ID, project.Title, "")

	return nil
}

// CompleteProject moves an In Progress project to Completed and notifies the
// assigned developer best-effort.
func (s *ProjectService) CompleteProject(projectID uint64, actor *models.User) error {
	project, err := s.ownedProject(projectID, actor)
	if err != nil {
		return err
	}

	ok, err := s.projectRepo.UpdateStatus(projectID, models.ProjectStatusInProgress, models.ProjectStatusCompleted)
	if err != nil {
		return fmt.Errorf("failed to complete project: %w", err)
	}
	if !ok {
		return ErrProjectNotCompletable
	}

	if project.AssignedDeveloperID != nil {
		if developer, err := s.userRepo.FindByID(*project.AssignedDeveloperID); err != nil {
			s.logger.Warn("skipping completion notification, developer lookup failed",
				zap.Uint64("project_id", project.ID),
				zap.Uint64("developer_id", *project.AssignedDeveloperID),
				zap.Error(err),
			)
		} else {
			s.dispatcher.Notify(projectCompletedEmail(developer.Email, developer.Name, project.Title))
		}
	}

	s.audit.Record(actor.ID, actor.Name, ActionProjectCompleted, TargetProject, project.ID, project.Title, "")

	return nil
}

// SuggestDevelopers ranks active developers against a project using the
// matching oracle. Purely advisory; the result never feeds workflow state.
func (s *ProjectService) SuggestDevelopers(ctx context.Context, projectID uint64) ([]DeveloperSuggestion, error) {
	if s.matchService == nil {
		return nil, ErrMatchingNotConfigured
	}

	project, err := s.GetProject(projectID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.userRepo.ListDevelopersByStatus(models.AccountActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	suggestions, err := s.matchService.SuggestDevelopers(ctx, project, candidates)
	if err != nil {
		return nil, fmt.Errorf("failed to rank developers: %w", err)
	}

	return suggestions, nil
}

func (s *ProjectService) ownedProject(projectID uint64, actor *models.User) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if actor.Role != models.RoleAdmin && project.ClientID != actor.ID {
		return nil, ErrNotProjectOwner
	}

	return project, nil
}
