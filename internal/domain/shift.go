package domain

import (
	"context"
	"fmt"
	"time"
)

// Reference shift IDs seeded at initialization.
const (
	DayShiftID   = 1
	NightShiftID = 2
)

// ShiftDefinition represents a named shift template (DAY, NIGHT)
type ShiftDefinition struct {
	ShiftID       int       `json:"shift_id"`
	ShiftName     string    `json:"shift_name"`
	StartTime     *string   `json:"start_time,omitempty"`
	EndTime       *string   `json:"end_time,omitempty"`
	DurationHours *int      `json:"duration_hours,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ShiftInstance represents a concrete shift worked by a crew
type ShiftInstance struct {
	ShiftInstanceID int        `json:"shift_instance_id"`
	CrewID          int        `json:"crew_id"`
	ShiftID         int        `json:"shift_id"`
	ShiftStart      *time.Time `json:"shift_start,omitempty"`
	ShiftEnd        *time.Time `json:"shift_end,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ShiftInstanceListParams filters shift instance listing
type ShiftInstanceListParams struct {
	CrewID  int
	ShiftID int
	From    *time.Time
	To      *time.Time
	Limit   int
	Offset  int
}

// ShiftRepository defines the interface for shift-related database operations
type ShiftRepository interface {
	// CreateDefinition persists a shift definition and fills in its generated ID
	CreateDefinition(ctx context.Context, def *ShiftDefinition) error

	// GetDefinition retrieves a shift definition by ID
	GetDefinition(ctx context.Context, shiftID int) (*ShiftDefinition, error)

	// GetDefinitionByName retrieves a shift definition by exact name
	GetDefinitionByName(ctx context.Context, name string) (*ShiftDefinition, error)

	// ListDefinitions retrieves all shift definitions ordered by ID
	ListDefinitions(ctx context.Context) ([]*ShiftDefinition, error)

	// NameToID returns a map of upper-cased shift names to IDs.
	// The telemetry loader uses it to resolve the CSV Shift column.
	NameToID(ctx context.Context) (map[string]int, error)

	// DeleteDefinition removes a shift definition
	DeleteDefinition(ctx context.Context, shiftID int) error

	// CreateInstance persists a shift instance and fills in its generated ID
	CreateInstance(ctx context.Context, instance *ShiftInstance) error

	// GetInstance retrieves a shift instance by ID
	GetInstance(ctx context.Context, shiftInstanceID int) (*ShiftInstance, error)

	// ListInstances retrieves shift instances matching the params
	ListInstances(ctx context.Context, params ShiftInstanceListParams) ([]*ShiftInstance, error)

	// DeleteInstance removes a shift instance
	DeleteInstance(ctx context.Context, shiftInstanceID int) error
}

// ErrShiftNotFound is returned when a shift definition or instance is not found
type ErrShiftNotFound struct {
	Message string
}

func (e *ErrShiftNotFound) Error() string {
	return e.Message
}

// ErrUnknownShiftNames is returned by the loader when CSV shift names do not
// resolve against shift_definitions
type ErrUnknownShiftNames struct {
	Names []string
}

func (e *ErrUnknownShiftNames) Error() string {
	return fmt.Sprintf("unknown shift names: %v", e.Names)
}
