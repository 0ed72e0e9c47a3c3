package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/bctala/OPSIGHT/internal/domain"
)

// pqUniqueViolation is the PostgreSQL error code for unique constraint violations
const pqUniqueViolation = "23505"

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *domain.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO users (username, email, password_hash, role, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING user_id
	`
	err := r.db.QueryRowContext(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.IsActive,
		user.CreatedAt,
	).Scan(&user.UserID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pqUniqueViolation {
			return &domain.ErrUserExists{Field: "username or email", Value: user.Username}
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID int) (*domain.User, error) {
	return r.getUser(ctx, "user_id = $1", userID)
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getUser(ctx, "email = $1", email)
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getUser(ctx, "username = $1", username)
}

func (r *userRepository) getUser(ctx context.Context, where string, arg interface{}) (*domain.User, error) {
	var user domain.User
	var lastLogin sql.NullTime

	query := `
		SELECT user_id, username, email, password_hash, role, is_active, created_at, last_login
		FROM users
		WHERE ` + where
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.UserID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
		&lastLogin,
	)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrUserNotFound{Message: "user not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if lastLogin.Valid {
		user.LastLogin = &lastLogin.Time
	}
	return &user, nil
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, userID int, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE users SET last_login = $1 WHERE user_id = $2",
		at, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.ErrUserNotFound{Message: "user not found"}
	}
	return nil
}

func (r *userRepository) Deactivate(ctx context.Context, userID int) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE users SET is_active = FALSE WHERE user_id = $1",
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.ErrUserNotFound{Message: "user not found"}
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, userID int) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM users WHERE user_id = $1",
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.ErrUserNotFound{Message: "user not found"}
	}
	return nil
}
