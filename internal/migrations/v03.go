package migrations

import (
	"context"
	"fmt"

	"github.com/bctala/OPSIGHT/config"
)

// V03Migration retrofits the unique constraints that baseline versioning and
// detection deduplication rely on. Databases initialized before 0.3 were
// created without them.
type V03Migration struct{}

func (m *V03Migration) GetMajorVersion() float64 {
	return 0.3
}

func (m *V03Migration) HasSchemaUpdate() bool {
	return true
}

func (m *V03Migration) UpdateSchema(ctx context.Context, config *config.Config, db DBExecutor) error {
	_, err := db.ExecContext(ctx, `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_constraint
				WHERE conname = 'uq_baseline_operator_shift_version'
				AND conrelid = 'baseline_profiles'::regclass
			) THEN
				ALTER TABLE baseline_profiles ADD CONSTRAINT uq_baseline_operator_shift_version UNIQUE (operator_id, shift_id, baseline_version);
			END IF;
		EXCEPTION
			WHEN duplicate_object THEN
				NULL;
		END $$
	`)
	if err != nil {
		return fmt.Errorf("failed to add baseline uniqueness constraint: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_constraint
				WHERE conname = 'uq_detection_event_baseline_model'
				AND conrelid = 'detections'::regclass
			) THEN
				ALTER TABLE detections ADD CONSTRAINT uq_detection_event_baseline_model UNIQUE (event_id, baseline_id, model_type);
			END IF;
		EXCEPTION
			WHEN duplicate_object THEN
				NULL;
		END $$
	`)
	if err != nil {
		return fmt.Errorf("failed to add detection uniqueness constraint: %w", err)
	}

	return nil
}

func init() {
	Register(&V03Migration{})
}
