package domain

import (
	"context"
	"time"
)

// BaselineProfile holds trained per-feature statistics for an operator,
// optionally scoped to a shift. The profile itself is opaque JSON produced
// by the training pipeline.
type BaselineProfile struct {
	BaselineID      int       `json:"baseline_id"`
	OperatorID      string    `json:"operator_id"`
	ShiftID         *int      `json:"shift_id,omitempty"`
	BaselineVersion string    `json:"baseline_version"`
	TrainedFrom     time.Time `json:"trained_from"`
	TrainedTo       time.Time `json:"trained_to"`
	ProfileJSON     string    `json:"profile_json"`
	CreatedAt       time.Time `json:"created_at"`
}

// BaselineRepository defines the interface for baseline profile persistence
type BaselineRepository interface {
	// Create persists a new baseline and fills in its generated ID
	Create(ctx context.Context, baseline *BaselineProfile) error

	// Get retrieves a baseline by ID
	Get(ctx context.Context, baselineID int) (*BaselineProfile, error)

	// GetLatest retrieves the newest baseline for an operator and optional
	// shift scope (nil shiftID matches shift-agnostic baselines)
	GetLatest(ctx context.Context, operatorID string, shiftID *int) (*BaselineProfile, error)

	// ListByOperator retrieves all baselines for an operator, newest first
	ListByOperator(ctx context.Context, operatorID string) ([]*BaselineProfile, error)

	// Delete removes a baseline
	Delete(ctx context.Context, baselineID int) error
}

// ErrBaselineNotFound is returned when a baseline is not found
type ErrBaselineNotFound struct {
	Message string
}

func (e *ErrBaselineNotFound) Error() string {
	return e.Message
}

// ErrBaselineExists is returned when a baseline version already exists for
// the operator and shift scope
type ErrBaselineExists struct {
	OperatorID      string
	BaselineVersion string
}

func (e *ErrBaselineExists) Error() string {
	return "baseline version " + e.BaselineVersion + " already exists for operator " + e.OperatorID
}
