package migrations

import (
	"context"
	"fmt"

	"github.com/bctala/OPSIGHT/config"
)

// V04Migration adds the import_jobs table so telemetry loads are auditable.
// Databases initialized at 0.4 or later get the table from the schema pass.
type V04Migration struct{}

func (m *V04Migration) GetMajorVersion() float64 {
	return 0.4
}

func (m *V04Migration) HasSchemaUpdate() bool {
	return true
}

func (m *V04Migration) UpdateSchema(ctx context.Context, config *config.Config, db DBExecutor) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS import_jobs (
			id UUID PRIMARY KEY,
			source_file VARCHAR(500) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			rows_read BIGINT NOT NULL DEFAULT 0,
			operators_created INTEGER NOT NULL DEFAULT 0,
			sessions_created INTEGER NOT NULL DEFAULT 0,
			events_inserted BIGINT NOT NULL DEFAULT 0,
			error_message TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			started_at TIMESTAMP,
			completed_at TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create import_jobs table: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_import_jobs_created_at ON import_jobs(created_at)
	`)
	if err != nil {
		return fmt.Errorf("failed to create import_jobs index: %w", err)
	}

	return nil
}

func init() {
	Register(&V04Migration{})
}
