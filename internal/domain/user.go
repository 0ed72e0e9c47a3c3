package domain

import (
	"context"
	"time"

	"github.com/asaskevich/govalidator"
)

// User roles understood by the application layer.
const (
	UserRoleAdmin   = "admin"
	UserRoleAnalyst = "analyst"
)

// User represents an application user (console access, not an operator)
type User struct {
	UserID       int        `json:"user_id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// Validate checks the user fields before persistence
func (u *User) Validate() error {
	if u.Username == "" {
		return NewValidationError("username is required")
	}
	if len(u.Username) > 50 {
		return NewValidationError("username must be 50 characters or less")
	}
	if !govalidator.IsEmail(u.Email) {
		return NewValidationError("invalid email address")
	}
	if u.Role != UserRoleAdmin && u.Role != UserRoleAnalyst {
		return NewValidationError("role must be admin or analyst")
	}
	return nil
}

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	// CreateUser persists a new user and fills in its generated ID
	CreateUser(ctx context.Context, user *User) error

	// GetUserByID retrieves a user by numeric ID
	GetUserByID(ctx context.Context, userID int) (*User, error)

	// GetUserByEmail retrieves a user by email
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// GetUserByUsername retrieves a user by username
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	// UpdateLastLogin stamps the last successful authentication time
	UpdateLastLogin(ctx context.Context, userID int, at time.Time) error

	// Deactivate disables a user account
	Deactivate(ctx context.Context, userID int) error

	// Delete removes a user
	Delete(ctx context.Context, userID int) error
}

// ErrUserNotFound is returned when a user is not found
type ErrUserNotFound struct {
	Message string
}

func (e *ErrUserNotFound) Error() string {
	return e.Message
}

// ErrUserExists is returned when a username or email is already taken
type ErrUserExists struct {
	Field string
	Value string
}

func (e *ErrUserExists) Error() string {
	return "user already exists with " + e.Field + ": " + e.Value
}
