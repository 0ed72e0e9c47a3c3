package domain

import (
	"context"
	"time"
)

// Alert severity bounds, inclusive.
const (
	AlertSeverityMin = 1
	AlertSeverityMax = 5
)

// Alert represents an analyst-facing alert raised from a detection
type Alert struct {
	AlertID          int       `json:"alert_id"`
	EventID          int64     `json:"event_id"`
	SessionID        int64     `json:"session_id"`
	DetectionID      int       `json:"detection_id"`
	AlertTime        time.Time `json:"alert_time"`
	Severity         int       `json:"severity"`
	AlertCategory    string    `json:"alert_category"`
	AlertDescription string    `json:"alert_description"`
}

// Validate checks the alert fields before persistence
func (a *Alert) Validate() error {
	if a.Severity < AlertSeverityMin || a.Severity > AlertSeverityMax {
		return NewValidationError("severity must be between 1 and 5")
	}
	if a.AlertCategory == "" {
		return NewValidationError("alert_category is required")
	}
	return nil
}

// AlertListParams filters alert listing
type AlertListParams struct {
	MinSeverity int
	Category    string
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}

// AlertRepository defines the interface for alert persistence
type AlertRepository interface {
	// Create persists a new alert and fills in its generated ID
	Create(ctx context.Context, alert *Alert) error

	// Get retrieves an alert by ID
	Get(ctx context.Context, alertID int) (*Alert, error)

	// List retrieves alerts matching the params, newest first
	List(ctx context.Context, params AlertListParams) ([]*Alert, error)

	// Delete removes an alert
	Delete(ctx context.Context, alertID int) error
}

// ErrAlertNotFound is returned when an alert is not found
type ErrAlertNotFound struct {
	AlertID int
}

func (e *ErrAlertNotFound) Error() string {
	return "alert not found"
}
