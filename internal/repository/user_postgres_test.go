package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bctala/OPSIGHT/internal/domain"
	"github.com/bctala/OPSIGHT/internal/repository/testutil"
)

func TestUserRepository_CreateUser(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewUserRepository(db)

	t.Run("assigns generated id", func(t *testing.T) {
		user := &domain.User{
			Username:     "jsmith",
			Email:        "jsmith@example.com",
			PasswordHash: "$2a$14$hash",
			Role:         domain.UserRoleAnalyst,
			IsActive:     true,
		}

		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("jsmith", "jsmith@example.com", "$2a$14$hash", "analyst", true, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(7))

		err := repo.CreateUser(context.Background(), user)
		require.NoError(t, err)
		assert.Equal(t, 7, user.UserID)
	})

	t.Run("duplicate maps to ErrUserExists", func(t *testing.T) {
		user := &domain.User{
			Username: "jsmith",
			Email:    "jsmith@example.com",
			Role:     domain.UserRoleAnalyst,
		}

		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(&pq.Error{Code: pq.ErrorCode(pqUniqueViolation)})

		err := repo.CreateUser(context.Background(), user)
		require.Error(t, err)
		assert.IsType(t, &domain.ErrUserExists{}, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetUserByEmail(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewUserRepository(db)
	now := time.Now().UTC()

	t.Run("found with last login", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"user_id", "username", "email", "password_hash", "role", "is_active", "created_at", "last_login",
		}).AddRow(1, "jsmith", "jsmith@example.com", "hash", "admin", true, now, now)

		mock.ExpectQuery(`SELECT user_id, username, email, password_hash, role, is_active, created_at, last_login FROM users WHERE email = \$1`).
			WithArgs("jsmith@example.com").
			WillReturnRows(rows)

		user, err := repo.GetUserByEmail(context.Background(), "jsmith@example.com")
		require.NoError(t, err)
		assert.Equal(t, "jsmith", user.Username)
		require.NotNil(t, user.LastLogin)
		assert.Equal(t, now.Unix(), user.LastLogin.Unix())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT user_id, username, email`).
			WithArgs("missing@example.com").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.GetUserByEmail(context.Background(), "missing@example.com")
		require.Error(t, err)
		assert.Nil(t, user)
		assert.IsType(t, &domain.ErrUserNotFound{}, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateLastLogin(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewUserRepository(db)
	now := time.Now().UTC()

	mock.ExpectExec(`UPDATE users SET last_login = \$1 WHERE user_id = \$2`).
		WithArgs(now, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateLastLogin(context.Background(), 1, now)
	require.NoError(t, err)

	// Missing user
	mock.ExpectExec(`UPDATE users SET last_login`).
		WithArgs(now, 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateLastLogin(context.Background(), 99, now)
	assert.IsType(t, &domain.ErrUserNotFound{}, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Deactivate(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewUserRepository(db)

	mock.ExpectExec(`UPDATE users SET is_active = FALSE WHERE user_id = \$1`).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Deactivate(context.Background(), 3)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
