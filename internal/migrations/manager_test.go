package migrations

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bctala/OPSIGHT/config"
	"github.com/bctala/OPSIGHT/pkg/logger"
)

// mockLogger implements logger.Logger interface for testing
type mockLogger struct{}

func (m *mockLogger) WithField(key string, value interface{}) logger.Logger  { return m }
func (m *mockLogger) WithFields(fields map[string]interface{}) logger.Logger { return m }
func (m *mockLogger) Debug(msg string)                                       {}
func (m *mockLogger) Info(msg string)                                        {}
func (m *mockLogger) Warn(msg string)                                        {}
func (m *mockLogger) Error(msg string)                                       {}
func (m *mockLogger) Fatal(msg string)                                       {}

func TestNewManager(t *testing.T) {
	logger := &mockLogger{}
	manager := NewManager(logger)

	assert.NotNil(t, manager)
	assert.Equal(t, logger, manager.logger)
}

func TestManager_GetCurrentDBVersion_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	manager := NewManager(&mockLogger{})
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"value"}).AddRow("0.4")
	mock.ExpectQuery("SELECT value FROM settings WHERE key = \\$1").
		WithArgs("db_version").
		WillReturnRows(rows)

	version, err, exists := manager.GetCurrentDBVersion(ctx, db)

	assert.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, 0.4, version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManager_GetCurrentDBVersion_NoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	manager := NewManager(&mockLogger{})
	ctx := context.Background()

	mock.ExpectQuery("SELECT value FROM settings WHERE key = \\$1").
		WithArgs("db_version").
		WillReturnError(sql.ErrNoRows)

	version, err, exists := manager.GetCurrentDBVersion(ctx, db)

	assert.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, 0.0, version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManager_GetCurrentDBVersion_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	manager := NewManager(&mockLogger{})
	ctx := context.Background()

	mock.ExpectQuery("SELECT value FROM settings WHERE key = \\$1").
		WithArgs("db_version").
		WillReturnError(errors.New("database error"))

	version, err, exists := manager.GetCurrentDBVersion(ctx, db)

	assert.Error(t, err)
	assert.False(t, exists)
	assert.Equal(t, 0.0, version)
	assert.Contains(t, err.Error(), "failed to get current database version")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManager_GetCurrentDBVersion_InvalidFormat(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	manager := NewManager(&mockLogger{})
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"value"}).AddRow("invalid")
	mock.ExpectQuery("SELECT value FROM settings WHERE key = \\$1").
		WithArgs("db_version").
		WillReturnRows(rows)

	version, err, exists := manager.GetCurrentDBVersion(ctx, db)

	assert.Error(t, err)
	assert.False(t, exists)
	assert.Equal(t, 0.0, version)
	assert.Contains(t, err.Error(), "invalid database version format")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManager_SetCurrentDBVersion_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	manager := NewManager(&mockLogger{})
	ctx := context.Background()

	mock.ExpectExec("INSERT INTO settings").
		WithArgs("db_version", "0.4").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = manager.SetCurrentDBVersion(ctx, db, 0.4)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManager_RunMigrations_FirstRun(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	manager := NewManager(&mockLogger{})
	ctx := context.Background()
	cfg := &config.Config{}

	// No db_version row means the schema was just created
	mock.ExpectQuery("SELECT value FROM settings WHERE key = \\$1").
		WithArgs("db_version").
		WillReturnError(sql.ErrNoRows)

	mock.ExpectExec("INSERT INTO settings").
		WithArgs("db_version", "0.4").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = manager.RunMigrations(ctx, cfg, db)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManager_RunMigrations_UpToDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	manager := NewManager(&mockLogger{})
	ctx := context.Background()
	cfg := &config.Config{}

	rows := sqlmock.NewRows([]string{"value"}).AddRow("0.4")
	mock.ExpectQuery("SELECT value FROM settings WHERE key = \\$1").
		WithArgs("db_version").
		WillReturnRows(rows)

	err = manager.RunMigrations(ctx, cfg, db)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManager_RunMigrations_ExecutesPendingMigrations(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	manager := NewManager(&mockLogger{})
	ctx := context.Background()
	cfg := &config.Config{}

	// Database stamped at 0.2 - both 0.3 and 0.4 must run
	rows := sqlmock.NewRows([]string{"value"}).AddRow("0.2")
	mock.ExpectQuery("SELECT value FROM settings WHERE key = \\$1").
		WithArgs("db_version").
		WillReturnRows(rows)

	// 0.3: constraint retrofits
	mock.ExpectBegin()
	mock.ExpectExec("uq_baseline_operator_shift_version").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("uq_detection_event_baseline_model").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	// 0.4: import_jobs table
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS import_jobs").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_import_jobs_created_at").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	mock.ExpectExec("INSERT INTO settings").
		WithArgs("db_version", "0.4").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = manager.RunMigrations(ctx, cfg, db)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManager_RunMigrations_FailedMigrationRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	manager := NewManager(&mockLogger{})
	ctx := context.Background()
	cfg := &config.Config{}

	rows := sqlmock.NewRows([]string{"value"}).AddRow("0.2")
	mock.ExpectQuery("SELECT value FROM settings WHERE key = \\$1").
		WithArgs("db_version").
		WillReturnRows(rows)

	mock.ExpectBegin()
	mock.ExpectExec("uq_baseline_operator_shift_version").
		WillReturnError(errors.New("constraint failure"))
	mock.ExpectRollback()

	err = manager.RunMigrations(ctx, cfg, db)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "migration failed for version 0.3")
	assert.NoError(t, mock.ExpectationsWereMet())
}
