package domain

import (
	"context"
	"time"
)

// Session represents a bounded span of operator activity at a workstation.
// Session IDs come from the capture pipeline, not from the database.
type Session struct {
	SessionID              int64      `json:"session_id"`
	ShiftInstanceID        *int       `json:"shift_instance_id,omitempty"`
	OperatorID             string     `json:"operator_id"`
	ShiftID                int        `json:"shift_id"`
	SessionStart           time.Time  `json:"session_start"`
	SessionEnd             *time.Time `json:"session_end,omitempty"`
	InactivityThresholdMin int        `json:"inactivity_threshold_min"`
	CreatedAt              time.Time  `json:"created_at"`
}

// Validate checks the session fields before persistence
func (s *Session) Validate() error {
	if s.SessionID == 0 {
		return NewValidationError("session_id is required")
	}
	if s.OperatorID == "" {
		return NewValidationError("operator_id is required")
	}
	if s.ShiftID == 0 {
		return NewValidationError("shift_id is required")
	}
	if s.SessionStart.IsZero() {
		return NewValidationError("session_start is required")
	}
	return nil
}

// SessionListParams filters session listing
type SessionListParams struct {
	OperatorID string
	ShiftID    int
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// SessionRepository defines the interface for session-related database operations
type SessionRepository interface {
	// Create persists a new session
	Create(ctx context.Context, session *Session) error

	// Get retrieves a session by ID
	Get(ctx context.Context, sessionID int64) (*Session, error)

	// List retrieves sessions matching the params, newest first
	List(ctx context.Context, params SessionListParams) ([]*Session, error)

	// EnsureExist inserts any of the given sessions whose IDs are missing,
	// returning the number of rows created. Used by the telemetry loader.
	EnsureExist(ctx context.Context, sessions []*Session) (int, error)

	// Count returns the total number of sessions
	Count(ctx context.Context) (int64, error)

	// Delete removes a session
	Delete(ctx context.Context, sessionID int64) error
}

// ErrSessionNotFound is returned when a session is not found
type ErrSessionNotFound struct {
	SessionID int64
}

func (e *ErrSessionNotFound) Error() string {
	return "session not found"
}
