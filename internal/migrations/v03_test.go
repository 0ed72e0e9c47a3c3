package migrations

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bctala/OPSIGHT/config"
)

func TestV03Migration_GetMajorVersion(t *testing.T) {
	migration := &V03Migration{}
	assert.Equal(t, 0.3, migration.GetMajorVersion())
}

func TestV03Migration_HasSchemaUpdate(t *testing.T) {
	migration := &V03Migration{}
	assert.True(t, migration.HasSchemaUpdate())
}

func TestV03Migration_UpdateSchema(t *testing.T) {
	migration := &V03Migration{}
	ctx := context.Background()
	cfg := &config.Config{}

	t.Run("Success - adds both constraints", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec("uq_baseline_operator_shift_version").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("uq_detection_event_baseline_model").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = migration.UpdateSchema(ctx, cfg, db)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error - baseline constraint fails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec("uq_baseline_operator_shift_version").
			WillReturnError(assert.AnError)

		err = migration.UpdateSchema(ctx, cfg, db)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to add baseline uniqueness constraint")
	})

	t.Run("Error - detection constraint fails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec("uq_baseline_operator_shift_version").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("uq_detection_event_baseline_model").
			WillReturnError(assert.AnError)

		err = migration.UpdateSchema(ctx, cfg, db)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to add detection uniqueness constraint")
	})
}

func TestV03Migration_Registered(t *testing.T) {
	found := false
	for _, m := range GetRegisteredMigrations() {
		if m.GetMajorVersion() == 0.3 {
			found = true
			break
		}
	}
	assert.True(t, found, "V03Migration should be registered")
}
