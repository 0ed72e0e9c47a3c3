package domain

import (
	"context"
	"time"
)

// Crew represents a rotating team of operators
type Crew struct {
	CrewID    int       `json:"crew_id"`
	CrewName  string    `json:"crew_name"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the crew fields before persistence
func (c *Crew) Validate() error {
	if c.CrewName == "" {
		return NewValidationError("crew_name is required")
	}
	if len(c.CrewName) > 10 {
		return NewValidationError("crew_name must be 10 characters or less")
	}
	return nil
}

// CrewRotation describes a crew's on/off duty cycle anchored at a date
type CrewRotation struct {
	RotationID int       `json:"rotation_id"`
	CrewID     int       `json:"crew_id"`
	AnchorDate time.Time `json:"anchor_date"`
	OnDays     int       `json:"on_days"`
	OffDays    int       `json:"off_days"`
	CreatedAt  time.Time `json:"created_at"`
}

// Validate checks the rotation fields before persistence
func (r *CrewRotation) Validate() error {
	if r.OnDays <= 0 {
		return NewValidationError("on_days must be positive")
	}
	if r.OffDays < 0 {
		return NewValidationError("off_days must not be negative")
	}
	if r.AnchorDate.IsZero() {
		return NewValidationError("anchor_date is required")
	}
	return nil
}

// CrewRepository defines the interface for crew-related database operations
type CrewRepository interface {
	// Create persists a new crew and fills in its generated ID
	Create(ctx context.Context, crew *Crew) error

	// Get retrieves a crew by ID
	Get(ctx context.Context, crewID int) (*Crew, error)

	// GetByName retrieves a crew by name
	GetByName(ctx context.Context, name string) (*Crew, error)

	// List retrieves all crews ordered by name
	List(ctx context.Context) ([]*Crew, error)

	// Delete removes a crew
	Delete(ctx context.Context, crewID int) error

	// SetRotation records a new rotation cycle for a crew
	SetRotation(ctx context.Context, rotation *CrewRotation) error

	// GetRotation retrieves the most recent rotation for a crew
	GetRotation(ctx context.Context, crewID int) (*CrewRotation, error)

	// ListRotations retrieves all rotations for a crew, newest first
	ListRotations(ctx context.Context, crewID int) ([]*CrewRotation, error)
}

// ErrCrewNotFound is returned when a crew is not found
type ErrCrewNotFound struct {
	Message string
}

func (e *ErrCrewNotFound) Error() string {
	return e.Message
}

// ErrRotationNotFound is returned when a crew has no recorded rotation
type ErrRotationNotFound struct {
	CrewID int
}

func (e *ErrRotationNotFound) Error() string {
	return "no rotation recorded for crew"
}
