package domain

import (
	"context"
	"time"
)

// ImportJobStatus tracks the lifecycle of a telemetry import run
type ImportJobStatus string

const (
	ImportJobStatusPending   ImportJobStatus = "pending"
	ImportJobStatusRunning   ImportJobStatus = "running"
	ImportJobStatusCompleted ImportJobStatus = "completed"
	ImportJobStatusFailed    ImportJobStatus = "failed"
)

// ImportJob records one run of the telemetry CSV loader
type ImportJob struct {
	ID               string          `json:"id"`
	SourceFile       string          `json:"source_file"`
	Status           ImportJobStatus `json:"status"`
	RowsRead         int64           `json:"rows_read"`
	OperatorsCreated int             `json:"operators_created"`
	SessionsCreated  int             `json:"sessions_created"`
	EventsInserted   int64           `json:"events_inserted"`
	ErrorMessage     *string         `json:"error_message,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	StartedAt        *time.Time      `json:"started_at,omitempty"`
	CompletedAt      *time.Time      `json:"completed_at,omitempty"`
}

// ImportCounters aggregates what a loader run wrote
type ImportCounters struct {
	RowsRead         int64
	RowsDropped      int64
	OperatorsCreated int
	SessionsCreated  int
	EventsInserted   int64
}

// ImportJobRepository defines the interface for import job persistence
type ImportJobRepository interface {
	// Create persists a new pending job
	Create(ctx context.Context, job *ImportJob) error

	// Get retrieves a job by ID
	Get(ctx context.Context, id string) (*ImportJob, error)

	// MarkRunning transitions a job to running
	MarkRunning(ctx context.Context, id string) error

	// MarkCompleted transitions a job to completed with its final counters
	MarkCompleted(ctx context.Context, id string, counters ImportCounters) error

	// MarkFailed transitions a job to failed, recording counters so far
	MarkFailed(ctx context.Context, id string, counters ImportCounters, errorMessage string) error

	// ListRecent retrieves the most recent jobs, newest first
	ListRecent(ctx context.Context, limit int) ([]*ImportJob, error)
}

// ErrImportJobNotFound is returned when an import job is not found
type ErrImportJobNotFound struct {
	ID string
}

func (e *ErrImportJobNotFound) Error() string {
	return "import job not found: " + e.ID
}
