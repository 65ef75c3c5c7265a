package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/devmarket/marketplace-api/internal/constants"
	"github.com/devmarket/marketplace-api/internal/models"
	"github.com/devmarket/marketplace-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrNameRequired         = errors.New("name is required")
	ErrInvalidSignupRole    = errors.New("role must be client or developer")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles signup and credential verification.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// SignupInput represents the required information to create a new account.
// The profile fields only apply to developer signups.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Role     models.UserRole

	Skills          []string
	ExperienceLevel models.ExperienceLevel
	HourlyRate      float64
	PortfolioLinks  []string
	ResumeURL       string
	PastProjects    string
}

// Signup creates a new account. Clients start active; developers start
// pending approval with their profile created in the same transaction.
func (s *AuthService) Signup(input SignupInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if input.Role != models.RoleClient && input.Role != models.RoleDeveloper {
		return nil, ErrInvalidSignupRole
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	status := models.AccountActive
	if input.Role == models.RoleDeveloper {
		status = models.AccountPendingApproval
	}

	user := &models.User{
		Name:          name,
		Email:         email,
		PasswordHash:  string(hashedPassword),
		Role:          input.Role,
		AccountStatus: status,
	}

	if input.Role == models.RoleDeveloper {
		profile := &models.DeveloperProfile{
			Skills:          input.Skills,
			ExperienceLevel: input.ExperienceLevel,
			HourlyRate:      input.HourlyRate,
			PortfolioLinks:  input.PortfolioLinks,
			ResumeURL:       input.ResumeURL,
			PastProjects:    input.PastProjects,
		}
		if err := s.userRepo.CreateWithDeveloperProfile(user, profile); err != nil {
			return nil, fmt.Errorf("failed to complete signup: %w", err)
		}
		user.DeveloperProfile = profile
		return user, nil
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the authenticated user.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
