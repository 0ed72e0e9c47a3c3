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

func TestOperatorRepository_EnsureExist(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewOperatorRepository(db)

	t.Run("counts only new rows", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO operators \(operator_id, operator_rank, created_at\)`).
			WithArgs("Op-1", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO operators \(operator_id, operator_rank, created_at\)`).
			WithArgs("Op-2", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`INSERT INTO operators \(operator_id, operator_rank, created_at\)`).
			WithArgs("Op-3", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		created, err := repo.EnsureExist(context.Background(), []string{"Op-1", "Op-2", "Op-3"})
		require.NoError(t, err)
		assert.Equal(t, 2, created)
	})

	t.Run("empty input issues no queries", func(t *testing.T) {
		created, err := repo.EnsureExist(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, 0, created)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOperatorRepository_Get(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewOperatorRepository(db)

	t.Run("null crew and shift", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"operator_id", "crew_id", "default_shift_id", "operator_rank", "created_at",
		}).AddRow("Op-9", nil, nil, true, time.Now().UTC())

		mock.ExpectQuery(`SELECT operator_id, crew_id, default_shift_id, operator_rank, created_at`).
			WithArgs("Op-9").
			WillReturnRows(rows)

		operator, err := repo.Get(context.Background(), "Op-9")
		require.NoError(t, err)
		assert.Equal(t, "Op-9", operator.OperatorID)
		assert.Nil(t, operator.CrewID)
		assert.Nil(t, operator.DefaultShiftID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT operator_id, crew_id`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"operator_id"}))

		operator, err := repo.Get(context.Background(), "missing")
		require.Error(t, err)
		assert.Nil(t, operator)
		assert.IsType(t, &domain.ErrOperatorNotFound{}, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOperatorRepository_AssignCrew(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewOperatorRepository(db)

	mock.ExpectExec(`UPDATE operators SET crew_id = \$1 WHERE operator_id = \$2`).
		WithArgs(2, "Op-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.AssignCrew(context.Background(), "Op-1", 2))

	mock.ExpectExec(`UPDATE operators SET crew_id`).
		WithArgs(2, "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.AssignCrew(context.Background(), "missing", 2)
	assert.IsType(t, &domain.ErrOperatorNotFound{}, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
