package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bctala/OPSIGHT/internal/domain"
)

type importJobRepository struct {
	db *sql.DB
}

// NewImportJobRepository creates a new PostgreSQL import job repository
func NewImportJobRepository(db *sql.DB) domain.ImportJobRepository {
	return &importJobRepository{db: db}
}

const importJobColumns = "id, source_file, status, rows_read, operators_created, sessions_created, events_inserted, error_message, created_at, started_at, completed_at"

func scanImportJob(scanner interface {
	Scan(dest ...interface{}) error
}, job *domain.ImportJob) error {
	var errorMessage sql.NullString
	var startedAt, completedAt sql.NullTime

	err := scanner.Scan(
		&job.ID,
		&job.SourceFile,
		&job.Status,
		&job.RowsRead,
		&job.OperatorsCreated,
		&job.SessionsCreated,
		&job.EventsInserted,
		&errorMessage,
		&job.CreatedAt,
		&startedAt,
		&completedAt,
	)
	if err != nil {
		return err
	}

	if errorMessage.Valid {
		job.ErrorMessage = &errorMessage.String
	}
	if startedAt.Valid {
		job.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		job.CompletedAt = &completedAt.Time
	}
	return nil
}

func (r *importJobRepository) Create(ctx context.Context, job *domain.ImportJob) error {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	if job.Status == "" {
		job.Status = domain.ImportJobStatusPending
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO import_jobs (id, source_file, status, created_at)
		VALUES ($1, $2, $3, $4)
	`, job.ID, job.SourceFile, job.Status, job.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create import job: %w", err)
	}
	return nil
}

func (r *importJobRepository) Get(ctx context.Context, id string) (*domain.ImportJob, error) {
	var job domain.ImportJob
	row := r.db.QueryRowContext(ctx,
		"SELECT "+importJobColumns+" FROM import_jobs WHERE id = $1",
		id,
	)
	err := scanImportJob(row, &job)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrImportJobNotFound{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get import job: %w", err)
	}
	return &job, nil
}

func (r *importJobRepository) MarkRunning(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE import_jobs SET status = $1, started_at = $2 WHERE id = $3
	`, domain.ImportJobStatusRunning, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to mark import job running: %w", err)
	}
	return checkJobUpdated(result, id)
}

func (r *importJobRepository) MarkCompleted(ctx context.Context, id string, counters domain.ImportCounters) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE import_jobs
		SET status = $1, rows_read = $2, operators_created = $3, sessions_created = $4, events_inserted = $5, completed_at = $6
		WHERE id = $7
	`,
		domain.ImportJobStatusCompleted,
		counters.RowsRead,
		counters.OperatorsCreated,
		counters.SessionsCreated,
		counters.EventsInserted,
		time.Now().UTC(),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark import job completed: %w", err)
	}
	return checkJobUpdated(result, id)
}

func (r *importJobRepository) MarkFailed(ctx context.Context, id string, counters domain.ImportCounters, errorMessage string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE import_jobs
		SET status = $1, rows_read = $2, operators_created = $3, sessions_created = $4, events_inserted = $5, error_message = $6, completed_at = $7
		WHERE id = $8
	`,
		domain.ImportJobStatusFailed,
		counters.RowsRead,
		counters.OperatorsCreated,
		counters.SessionsCreated,
		counters.EventsInserted,
		errorMessage,
		time.Now().UTC(),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark import job failed: %w", err)
	}
	return checkJobUpdated(result, id)
}

func (r *importJobRepository) ListRecent(ctx context.Context, limit int) ([]*domain.ImportJob, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+importJobColumns+" FROM import_jobs ORDER BY created_at DESC LIMIT $1",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list import jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*domain.ImportJob
	for rows.Next() {
		job := &domain.ImportJob{}
		if err := scanImportJob(rows, job); err != nil {
			return nil, fmt.Errorf("failed to scan import job: %w", err)
		}
		jobs = append(jobs, job)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return jobs, nil
}

func checkJobUpdated(result sql.Result, id string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.ErrImportJobNotFound{ID: id}
	}
	return nil
}
