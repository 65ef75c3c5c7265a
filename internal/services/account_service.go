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
	ErrUserNotFound         = errors.New("user not found")
	ErrAccountNotPending    = errors.New("account is not pending approval")
	ErrDeveloperNotEligible = errors.New("developer account is not active")
)

// AccountService owns the account approval/rejection/flagging state machine
// and the eligibility check consumed by the application workflow.
type AccountService struct {
	userRepo   repository.UserRepository
	dispatcher *notify.Dispatcher
	audit      *AuditService
	logger     *zap.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(userRepo repository.UserRepository, dispatcher *notify.Dispatcher, audit *AuditService, logger *zap.Logger) *AccountService {
	return &AccountService{
		userRepo:   userRepo,
		dispatcher: dispatcher,
		audit:      audit,
		logger:     logger,
	}
}

// Approve activates a pending developer account. The status change is
// authoritative; the notification is advisory and never rolls it back.
func (s *AccountService) Approve(userID uint64, actor *models.User) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	ok, err := s.userRepo.UpdateAccountStatus(userID, models.AccountPendingApproval, models.AccountActive)
	if err != nil {
		return fmt.Errorf("failed to approve account: %w", err)
	}
	if !ok {
		return ErrAccountNotPending
	}

	s.dispatcher.Notify(accountApprovedEmail(user))
	s.audit.Record(actor.ID, actor.Name, ActionAccountApproved, TargetUser, user.ID, user.Name, "")

	return nil
}

// Reject declines a pending developer account.
func (s *AccountService) Reject(userID uint64, actor *models.User) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	ok, err := s.userRepo.UpdateAccountStatus(userID, models.AccountPendingApproval, models.AccountRejected)
	if err != nil {
		return fmt.Errorf("failed to reject account: %w", err)
	}
	if !ok {
		return ErrAccountNotPending
	}

	s.dispatcher.Notify(accountRejectedEmail(user))
	s.audit.Record(actor.ID, actor.Name, ActionAccountRejected, TargetUser, user.ID, user.Name, "")

	return nil
}

// SetFlagged sets or clears the moderation flag. The flag is orthogonal to
// the lifecycle status and carries no notification.
func (s *AccountService) SetFlagged(userID uint64, flagged bool, actor *models.User) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.userRepo.SetFlagged(userID, flagged); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to update flag: %w", err)
	}

	action := ActionAccountFlagged
	if !flagged {
		action = ActionAccountUnflagged
	}
	s.audit.Record(actor.ID, actor.Name, action, TargetUser, user.ID, user.Name, "")

	return nil
}

// ListPendingDevelopers returns developer accounts awaiting approval.
func (s *AccountService) ListPendingDevelopers() ([]models.User, error) {
	users, err := s.userRepo.ListDevelopersByStatus(models.AccountPendingApproval)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending developers: %w", err)
	}
	return users, nil
}

// EligibleDeveloper returns the user when it is an active developer account.
// The workflow engine calls this at submission time rather than trusting the
// status observed at signup, since the account may have changed in between.
func (s *AccountService) EligibleDeveloper(userID uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user.Role != models.RoleDeveloper || user.AccountStatus != models.AccountActive {
		return nil, ErrDeveloperNotEligible
	}

	return user, nil
}
