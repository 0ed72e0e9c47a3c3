package domain

import (
	"context"
	"time"
)

// Operator represents a control-room operator identified by badge ID
type Operator struct {
	OperatorID     string    `json:"operator_id"`
	CrewID         *int      `json:"crew_id,omitempty"`
	DefaultShiftID *int      `json:"default_shift_id,omitempty"`
	OperatorRank   bool      `json:"operator_rank"`
	CreatedAt      time.Time `json:"created_at"`
}

// Validate checks the operator fields before persistence
func (o *Operator) Validate() error {
	if o.OperatorID == "" {
		return NewValidationError("operator_id is required")
	}
	if len(o.OperatorID) > 10 {
		return NewValidationError("operator_id must be 10 characters or less")
	}
	return nil
}

// OperatorRepository defines the interface for operator-related database operations
type OperatorRepository interface {
	// Create persists a new operator
	Create(ctx context.Context, operator *Operator) error

	// Get retrieves an operator by ID
	Get(ctx context.Context, operatorID string) (*Operator, error)

	// List retrieves all operators ordered by ID
	List(ctx context.Context) ([]*Operator, error)

	// EnsureExist inserts any of the given operator IDs that are missing,
	// returning the number of rows created. Used by the telemetry loader.
	EnsureExist(ctx context.Context, operatorIDs []string) (int, error)

	// AssignCrew sets the operator's crew
	AssignCrew(ctx context.Context, operatorID string, crewID int) error

	// SetDefaultShift sets the operator's default shift
	SetDefaultShift(ctx context.Context, operatorID string, shiftID int) error

	// Delete removes an operator
	Delete(ctx context.Context, operatorID string) error
}

// ErrOperatorNotFound is returned when an operator is not found
type ErrOperatorNotFound struct {
	OperatorID string
}

func (e *ErrOperatorNotFound) Error() string {
	return "operator not found: " + e.OperatorID
}
