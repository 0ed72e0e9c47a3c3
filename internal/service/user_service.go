package service

import (
	"context"
	"fmt"
	"time"

	"github.com/asaskevich/govalidator"

	"github.com/bctala/OPSIGHT/internal/domain"
	"github.com/bctala/OPSIGHT/pkg/crypto"
	"github.com/bctala/OPSIGHT/pkg/logger"
)

// UserService handles console account management and authentication
type UserService struct {
	repo   domain.UserRepository
	logger logger.Logger
}

// NewUserService creates a new user service
func NewUserService(repo domain.UserRepository, logger logger.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: logger,
	}
}

// RegisterInput carries the fields needed to create a console account
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// Register creates a new console account with a hashed password
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if len(input.Password) < 8 {
		return nil, domain.NewValidationError("password must be at least 8 characters")
	}

	user := &domain.User{
		Username: input.Username,
		Email:    input.Email,
		Role:     input.Role,
		IsActive: true,
	}
	if user.Role == "" {
		user.Role = domain.UserRoleAnalyst
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hash

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if _, ok := err.(*domain.ErrUserExists); ok {
			return nil, err
		}
		s.logger.WithField("username", user.Username).WithField("error", err.Error()).Error("Failed to create user")
		return nil, err
	}

	s.logger.WithField("username", user.Username).WithField("role", user.Role).Info("User registered")
	return user, nil
}

// Authenticate verifies credentials and stamps the last login time.
// The identifier may be a username or an email address.
func (s *UserService) Authenticate(ctx context.Context, identifier, password string) (*domain.User, error) {
	var user *domain.User
	var err error

	if govalidator.IsEmail(identifier) {
		user, err = s.repo.GetUserByEmail(ctx, identifier)
	} else {
		user, err = s.repo.GetUserByUsername(ctx, identifier)
	}
	if err != nil {
		if _, ok := err.(*domain.ErrUserNotFound); ok {
			// Same error for unknown user and bad password
			return nil, &domain.ErrUserNotFound{Message: "invalid credentials"}
		}
		return nil, err
	}

	if !user.IsActive {
		s.logger.WithField("username", user.Username).Warn("Authentication attempt on inactive account")
		return nil, &domain.ErrUserNotFound{Message: "invalid credentials"}
	}

	if !crypto.CheckPasswordHash(password, user.PasswordHash) {
		s.logger.WithField("username", user.Username).Warn("Authentication failed")
		return nil, &domain.ErrUserNotFound{Message: "invalid credentials"}
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateLastLogin(ctx, user.UserID, now); err != nil {
		s.logger.WithField("username", user.Username).WithField("error", err.Error()).Error("Failed to update last login")
		return nil, err
	}
	user.LastLogin = &now

	return user, nil
}

// Deactivate disables an account without removing its audit trail
func (s *UserService) Deactivate(ctx context.Context, userID int) error {
	if err := s.repo.Deactivate(ctx, userID); err != nil {
		return err
	}
	s.logger.WithField("user_id", userID).Info("User deactivated")
	return nil
}
