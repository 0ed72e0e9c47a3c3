package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bctala/OPSIGHT/internal/domain"
	"github.com/bctala/OPSIGHT/internal/repository/testutil"
)

func TestCrewRepository_Create(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewCrewRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`INSERT INTO crews \(crew_name, created_at\)`).
		WithArgs("Alpha", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"crew_id"}).AddRow(3))

	crew := &domain.Crew{CrewName: "Alpha"}
	require.NoError(t, repo.Create(ctx, crew))
	assert.Equal(t, 3, crew.CrewID)
	assert.False(t, crew.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCrewRepository_GetByName(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewCrewRepository(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT crew_id, crew_name, created_at FROM crews WHERE crew_name = \$1`).
			WithArgs("Alpha").
			WillReturnRows(sqlmock.NewRows([]string{"crew_id", "crew_name", "created_at"}).
				AddRow(3, "Alpha", time.Now().UTC()))

		crew, err := repo.GetByName(ctx, "Alpha")
		require.NoError(t, err)
		assert.Equal(t, 3, crew.CrewID)
		assert.Equal(t, "Alpha", crew.CrewName)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT crew_id, crew_name, created_at FROM crews WHERE crew_name = \$1`).
			WithArgs("Ghost").
			WillReturnRows(sqlmock.NewRows([]string{"crew_id", "crew_name", "created_at"}))

		_, err := repo.GetByName(ctx, "Ghost")
		require.Error(t, err)
		assert.IsType(t, &domain.ErrCrewNotFound{}, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCrewRepository_Delete(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewCrewRepository(db)
	ctx := context.Background()

	t.Run("deletes existing crew", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM crews WHERE crew_id = \$1`).
			WithArgs(3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(ctx, 3))
	})

	t.Run("unknown crew", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM crews WHERE crew_id = \$1`).
			WithArgs(99).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(ctx, 99)
		require.Error(t, err)
		assert.IsType(t, &domain.ErrCrewNotFound{}, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCrewRepository_Rotations(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewCrewRepository(db)
	ctx := context.Background()
	anchor := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	t.Run("set rotation assigns id", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO crew_rotations \(crew_id, anchor_date, on_days, off_days, created_at\)`).
			WithArgs(3, anchor, 4, 4, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"rotation_id"}).AddRow(12))

		rotation := &domain.CrewRotation{CrewID: 3, AnchorDate: anchor, OnDays: 4, OffDays: 4}
		require.NoError(t, repo.SetRotation(ctx, rotation))
		assert.Equal(t, 12, rotation.RotationID)
	})

	t.Run("get rotation returns the latest", func(t *testing.T) {
		mock.ExpectQuery(`FROM crew_rotations\s+WHERE crew_id = \$1\s+ORDER BY created_at DESC, rotation_id DESC\s+LIMIT 1`).
			WithArgs(3).
			WillReturnRows(sqlmock.NewRows([]string{"rotation_id", "crew_id", "anchor_date", "on_days", "off_days", "created_at"}).
				AddRow(12, 3, anchor, 4, 4, time.Now().UTC()))

		rotation, err := repo.GetRotation(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, 12, rotation.RotationID)
		assert.Equal(t, 4, rotation.OnDays)
	})

	t.Run("no rotation recorded", func(t *testing.T) {
		mock.ExpectQuery(`FROM crew_rotations`).
			WithArgs(7).
			WillReturnRows(sqlmock.NewRows([]string{"rotation_id", "crew_id", "anchor_date", "on_days", "off_days", "created_at"}))

		_, err := repo.GetRotation(ctx, 7)
		require.Error(t, err)
		assert.IsType(t, &domain.ErrRotationNotFound{}, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
