package services

import (
	"github.com/devmarket/marketplace-api/internal/models"
	"github.com/devmarket/marketplace-api/internal/repository"
	"go.uber.org/zap"
)

// Audit actions
const (
	ActionAccountApproved        = "account.approved"
	ActionAccountRejected        = "account.rejected"
	ActionAccountFlagged         = "account.flagged"
	ActionAccountUnflagged       = "account.unflagged"
	ActionProjectCreated         = "project.created"
	ActionProjectCancelled       = "project.cancelled"
	ActionProjectCompleted       = "project.completed"
	ActionApplicationSubmitted   = "application.submitted"
	ActionApplicationAccepted    = "application.accepted"
	ActionApplicationRejected    = "application.rejected"
	ActionApplicationsSuperseded = "application.superseded"
)

// Target types
const (
	TargetUser        = "user"
	TargetProject     = "project"
	TargetApplication = "project_application"
)

// AuditService writes the append-only activity ledger. Entries are
// write-only from the engine's perspective; only the admin inspection
// endpoint reads them back.
type AuditService struct {
	repo   repository.ActivityRepository
	logger *zap.Logger
}

// NewAuditService creates a new AuditService
func NewAuditService(repo repository.ActivityRepository, logger *zap.Logger) *AuditService {
	return &AuditService{
		repo:   repo,
		logger: logger,
	}
}

// Record appends one audit entry. A failed append is logged and swallowed;
// auditing must never abort the business operation it records.
func (s *AuditService) Record(actorID uint64, actorName, action, targetType string, targetID uint64, targetName, details string) {
	entry := &models.ActivityLog{
		ActorID:    actorID,
		ActorName:  actorName,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		TargetName: targetName,
		Details:    details,
	}

	if err := s.repo.Append(entry); err != nil {
		s.logger.Error("failed to append activity log",
			zap.String("action", action),
			zap.Uint64("actor_id", actorID),
			zap.Uint64("target_id", targetID),
			zap.Error(err),
		)
	}
}

// List returns audit entries, newest first, for admin inspection.
func (s *AuditService) List(page, pageSize int) ([]models.ActivityLog, int64, error) {
	return s.repo.List(page, pageSize)
}
