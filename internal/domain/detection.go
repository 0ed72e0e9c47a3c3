package domain

import (
	"context"
	"time"
)

// Detection records a model verdict for an event scored against a baseline
type Detection struct {
	DetectionID    int       `json:"detection_id"`
	EventID        int64     `json:"event_id"`
	BaselineID     int       `json:"baseline_id"`
	ModelType      string    `json:"model_type"`
	AnomalyScore   float64   `json:"anomaly_score"`
	Threshold      float64   `json:"threshold"`
	EvidenceJSON   string    `json:"evidence_json"`
	PredictedLabel string    `json:"predicted_label"`
	DetectionTime  time.Time `json:"detection_time"`
}

// DetectionRepository defines the interface for detection persistence
type DetectionRepository interface {
	// Create persists a new detection and fills in its generated ID
	Create(ctx context.Context, detection *Detection) error

	// Get retrieves a detection by ID
	Get(ctx context.Context, detectionID int) (*Detection, error)

	// ListByEvent retrieves all detections for an event
	ListByEvent(ctx context.Context, eventID int64) ([]*Detection, error)

	// ListByBaseline retrieves detections for a baseline within a time window
	ListByBaseline(ctx context.Context, baselineID int, from, to *time.Time) ([]*Detection, error)

	// Delete removes a detection
	Delete(ctx context.Context, detectionID int) error
}

// ErrDetectionNotFound is returned when a detection is not found
type ErrDetectionNotFound struct {
	DetectionID int
}

func (e *ErrDetectionNotFound) Error() string {
	return "detection not found"
}

// ErrDetectionExists is returned when the (event, baseline, model) triple
// has already been scored
type ErrDetectionExists struct {
	EventID   int64
	ModelType string
}

func (e *ErrDetectionExists) Error() string {
	return "detection already recorded for event with model " + e.ModelType
}
