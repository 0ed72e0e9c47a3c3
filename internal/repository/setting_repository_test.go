package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bctala/OPSIGHT/internal/domain"
	"github.com/bctala/OPSIGHT/internal/repository/testutil"
)

func TestSQLSettingRepository_Get(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewSQLSettingRepository(db)
	now := time.Now().UTC()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"key", "value", "created_at", "updated_at"}).
			AddRow(domain.SettingDBVersion, "4.0", now, now)

		mock.ExpectQuery(`SELECT key, value, created_at, updated_at FROM settings WHERE key = \$1`).
			WithArgs(domain.SettingDBVersion).
			WillReturnRows(rows)

		setting, err := repo.Get(context.Background(), domain.SettingDBVersion)
		require.NoError(t, err)
		assert.Equal(t, "4.0", setting.Value)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT key, value, created_at, updated_at FROM settings WHERE key = \$1`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"key"}))

		setting, err := repo.Get(context.Background(), "missing")
		require.Error(t, err)
		assert.Nil(t, setting)
		assert.IsType(t, &domain.ErrSettingNotFound{}, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLSettingRepository_Set(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewSQLSettingRepository(db)

	mock.ExpectExec(`INSERT INTO settings (.+) ON CONFLICT \(key\)`).
		WithArgs(domain.SettingDBVersion, "4.0", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Set(context.Background(), domain.SettingDBVersion, "4.0")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLSettingRepository_LastImportRun(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewSQLSettingRepository(db)

	t.Run("set writes rfc3339", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO settings (.+) ON CONFLICT \(key\)`).
			WithArgs(domain.SettingLastImportRun, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.SetLastImportRun(context.Background()))
	})

	t.Run("get parses stored value", func(t *testing.T) {
		stamp := time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC)
		rows := sqlmock.NewRows([]string{"key", "value", "created_at", "updated_at"}).
			AddRow(domain.SettingLastImportRun, stamp.Format(time.RFC3339), stamp, stamp)

		mock.ExpectQuery(`SELECT key, value, created_at, updated_at FROM settings WHERE key = \$1`).
			WithArgs(domain.SettingLastImportRun).
			WillReturnRows(rows)

		lastRun, err := repo.GetLastImportRun(context.Background())
		require.NoError(t, err)
		require.NotNil(t, lastRun)
		assert.Equal(t, stamp, lastRun.UTC())
	})

	t.Run("get before any import", func(t *testing.T) {
		mock.ExpectQuery(`SELECT key, value, created_at, updated_at FROM settings WHERE key = \$1`).
			WithArgs(domain.SettingLastImportRun).
			WillReturnRows(sqlmock.NewRows([]string{"key"}))

		lastRun, err := repo.GetLastImportRun(context.Background())
		require.NoError(t, err)
		assert.Nil(t, lastRun)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
