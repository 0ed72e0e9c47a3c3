package migrations

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bctala/OPSIGHT/config"
)

func TestV04Migration_GetMajorVersion(t *testing.T) {
	migration := &V04Migration{}
	assert.Equal(t, 0.4, migration.GetMajorVersion())
}

func TestV04Migration_HasSchemaUpdate(t *testing.T) {
	migration := &V04Migration{}
	assert.True(t, migration.HasSchemaUpdate())
}

func TestV04Migration_UpdateSchema(t *testing.T) {
	migration := &V04Migration{}
	ctx := context.Background()
	cfg := &config.Config{}

	t.Run("Success - creates import_jobs", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS import_jobs").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_import_jobs_created_at").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = migration.UpdateSchema(ctx, cfg, db)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error - table creation fails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS import_jobs").
			WillReturnError(assert.AnError)

		err = migration.UpdateSchema(ctx, cfg, db)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create import_jobs table")
	})
}

func TestV04Migration_Registered(t *testing.T) {
	found := false
	for _, m := range GetRegisteredMigrations() {
		if m.GetMajorVersion() == 0.4 {
			found = true
			break
		}
	}
	assert.True(t, found, "V04Migration should be registered")
}
