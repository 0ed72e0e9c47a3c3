package domain

import (
	"context"
	"time"
)

// Event represents a single Modbus/ICS process event captured during a session.
// Column widths mirror the capture pipeline's truncation rules.
type Event struct {
	EventID             int64     `json:"event_id"`
	SessionID           int64     `json:"session_id"`
	OperatorID          string    `json:"operator_id"`
	Timestamp           time.Time `json:"timestamp"`
	TimeInterval        float64   `json:"time_interval"`
	Address             string    `json:"address"`
	FunctionCode        string    `json:"function_code"`
	CommandResponse     string    `json:"command_response"`
	ControlMode         string    `json:"control_mode"`
	ControlScheme       string    `json:"control_scheme"`
	CRC                 int       `json:"crc"`
	DataLength          int       `json:"data_length"`
	InvalidFunctionCode string    `json:"invalid_function_code"`
	InvalidDataLength   string    `json:"invalid_data_length"`
	PumpState           string    `json:"pump_state"`
	SolenoidState       string    `json:"solenoid_state"`
	SetPoint            float64   `json:"set_point"`
	PipelinePSI         float64   `json:"pipeline_psi"`
	PIDCycleTime        float64   `json:"pid_cycle_time"`
	PIDDeadband         float64   `json:"pid_deadband"`
	PIDGain             float64   `json:"pid_gain"`
	PIDRate             float64   `json:"pid_rate"`
	PIDReset            float64   `json:"pid_reset"`
	DeltaSetPoint       float64   `json:"delta_set_point"`
	DeltaPipelinePSI    float64   `json:"delta_pipeline_psi"`
	DeltaPIDCycleTime   float64   `json:"delta_pid_cycle_time"`
	DeltaPIDDeadband    float64   `json:"delta_pid_deadband"`
	DeltaPIDGain        float64   `json:"delta_pid_gain"`
	DeltaPIDRate        float64   `json:"delta_pid_rate"`
	DeltaPIDReset       float64   `json:"delta_pid_reset"`
	Label               string    `json:"label"`
}

// EventListParams filters event listing
type EventListParams struct {
	SessionID    int64
	OperatorID   string
	Address      string
	FunctionCode string
	Label        string
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

// EventRepository defines the interface for event-related database operations
type EventRepository interface {
	// Insert persists a single event and fills in its generated ID
	Insert(ctx context.Context, event *Event) error

	// BulkInsert persists a batch of events inside one transaction,
	// returning the number of rows written
	BulkInsert(ctx context.Context, events []*Event) (int64, error)

	// Get retrieves an event by ID
	Get(ctx context.Context, eventID int64) (*Event, error)

	// List retrieves events matching the params plus the total count
	List(ctx context.Context, params EventListParams) ([]*Event, int64, error)

	// CountBySession returns the number of events recorded for a session
	CountBySession(ctx context.Context, sessionID int64) (int64, error)
}

// ErrEventNotFound is returned when an event is not found
type ErrEventNotFound struct {
	EventID int64
}

func (e *ErrEventNotFound) Error() string {
	return "event not found"
}
