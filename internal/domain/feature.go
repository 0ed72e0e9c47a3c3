package domain

import (
	"context"
	"time"
)

// FeatureNames is the canonical list of per-session behavioral features,
// in column order. Baseline profiles must cover every name.
var FeatureNames = []string{
	"command_frequency",
	"inter_command_mean",
	"inter_command_std",
	"command_burst_rate",
	"control_mode_change_rate",
	"high_risk_command_ratio",
	"invalid_command_rate",
	"pump_state_change_rate",
	"setpoint_shock_event_rate",
	"pid_modification_rate",
	"command_entropy",
	"process_command_correlation",
}

// SessionFeatures holds the computed behavioral feature vector for a session
type SessionFeatures struct {
	SessionFeaturesID         int       `json:"session_features_id"`
	SessionID                 int64     `json:"session_id"`
	CommandFrequency          float64   `json:"command_frequency"`
	InterCommandMean          float64   `json:"inter_command_mean"`
	InterCommandStd           float64   `json:"inter_command_std"`
	CommandBurstRate          float64   `json:"command_burst_rate"`
	ControlModeChangeRate     float64   `json:"control_mode_change_rate"`
	HighRiskCommandRatio      float64   `json:"high_risk_command_ratio"`
	InvalidCommandRate        float64   `json:"invalid_command_rate"`
	PumpStateChangeRate       float64   `json:"pump_state_change_rate"`
	SetpointShockEventRate    float64   `json:"setpoint_shock_event_rate"`
	PIDModificationRate       float64   `json:"pid_modification_rate"`
	CommandEntropy            float64   `json:"command_entropy"`
	ProcessCommandCorrelation float64   `json:"process_command_correlation"`
	CreatedAt                 time.Time `json:"created_at"`
}

// FeatureRepository defines the interface for session feature persistence
type FeatureRepository interface {
	// Upsert creates or replaces the feature vector for a session
	Upsert(ctx context.Context, features *SessionFeatures) error

	// Get retrieves the feature vector for a session
	Get(ctx context.Context, sessionID int64) (*SessionFeatures, error)

	// Delete removes the feature vector for a session
	Delete(ctx context.Context, sessionID int64) error
}

// ErrFeaturesNotFound is returned when a session has no feature vector
type ErrFeaturesNotFound struct {
	SessionID int64
}

func (e *ErrFeaturesNotFound) Error() string {
	return "session features not found"
}
