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

func TestImportJobRepository_Create(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewImportJobRepository(db)

	job := &domain.ImportJob{SourceFile: "telemetry.csv"}

	mock.ExpectExec(`INSERT INTO import_jobs \(id, source_file, status, created_at\)`).
		WithArgs(sqlmock.AnyArg(), "telemetry.csv", string(domain.ImportJobStatusPending), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), job)
	require.NoError(t, err)
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, domain.ImportJobStatusPending, job.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImportJobRepository_Transitions(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewImportJobRepository(db)
	counters := domain.ImportCounters{
		RowsRead:         100,
		OperatorsCreated: 3,
		SessionsCreated:  5,
		EventsInserted:   95,
	}

	t.Run("mark running", func(t *testing.T) {
		mock.ExpectExec(`UPDATE import_jobs SET status = \$1, started_at = \$2 WHERE id = \$3`).
			WithArgs(string(domain.ImportJobStatusRunning), sqlmock.AnyArg(), "job-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.MarkRunning(context.Background(), "job-1"))
	})

	t.Run("mark completed records counters", func(t *testing.T) {
		mock.ExpectExec(`UPDATE import_jobs`).
			WithArgs(string(domain.ImportJobStatusCompleted), int64(100), 3, 5, int64(95), sqlmock.AnyArg(), "job-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.MarkCompleted(context.Background(), "job-1", counters))
	})

	t.Run("mark failed records message", func(t *testing.T) {
		mock.ExpectExec(`UPDATE import_jobs`).
			WithArgs(string(domain.ImportJobStatusFailed), int64(100), 3, 5, int64(95), "missing column", sqlmock.AnyArg(), "job-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.MarkFailed(context.Background(), "job-1", counters, "missing column"))
	})

	t.Run("unknown job", func(t *testing.T) {
		mock.ExpectExec(`UPDATE import_jobs`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.MarkRunning(context.Background(), "missing")
		assert.IsType(t, &domain.ErrImportJobNotFound{}, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImportJobRepository_Get(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewImportJobRepository(db)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "source_file", "status", "rows_read", "operators_created",
		"sessions_created", "events_inserted", "error_message", "created_at", "started_at", "completed_at",
	}).AddRow("job-1", "telemetry.csv", "completed", 100, 3, 5, 95, nil, now, now, now)

	mock.ExpectQuery(`SELECT (.+) FROM import_jobs WHERE id = \$1`).
		WithArgs("job-1").
		WillReturnRows(rows)

	job, err := repo.Get(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ImportJobStatusCompleted, job.Status)
	assert.Nil(t, job.ErrorMessage)
	require.NotNil(t, job.CompletedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}
