package domain

import (
	"context"
	"time"
)

// Well-known setting keys.
const (
	SettingDBVersion     = "db_version"
	SettingLastImportRun = "last_import_run"
)

// Setting represents a system setting
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SettingRepository defines the interface for setting-related database operations
type SettingRepository interface {
	// Get retrieves a setting by key
	Get(ctx context.Context, key string) (*Setting, error)

	// Set creates or updates a setting
	Set(ctx context.Context, key, value string) error

	// Delete removes a setting by key
	Delete(ctx context.Context, key string) error

	// List retrieves all settings
	List(ctx context.Context) ([]*Setting, error)

	// SetLastImportRun updates the last telemetry import timestamp
	SetLastImportRun(ctx context.Context) error

	// GetLastImportRun retrieves the last telemetry import timestamp
	GetLastImportRun(ctx context.Context) (*time.Time, error)
}

// ErrSettingNotFound is returned when a setting is not found
type ErrSettingNotFound struct {
	Key string
}

func (e *ErrSettingNotFound) Error() string {
	return "setting not found: " + e.Key
}
