package repository

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bctala/OPSIGHT/internal/domain"
	"github.com/bctala/OPSIGHT/internal/repository/testutil"
)

func sampleEvent(sessionID int64) *domain.Event {
	return &domain.Event{
		SessionID:       sessionID,
		OperatorID:      "Op-1",
		Timestamp:       time.Date(2026, 3, 10, 6, 15, 0, 0, time.UTC),
		TimeInterval:    0.42,
		Address:         "4",
		FunctionCode:    "3",
		CommandResponse: "command",
		ControlMode:     "auto",
		ControlScheme:   "pump",
		CRC:             53970,
		DataLength:      12,
		PumpState:       "on",
		SolenoidState:   "closed",
		SetPoint:        10.5,
		PipelinePSI:     11.2,
		Label:           "normal",
	}
}

func TestEventRepository_Insert(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewEventRepository(db)
	event := sampleEvent(101)

	mock.ExpectQuery(`INSERT INTO events (.+) RETURNING event_id`).
		WillReturnRows(sqlmock.NewRows([]string{"event_id"}).AddRow(555))

	err := repo.Insert(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, int64(555), event.EventID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_BulkInsert(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewEventRepository(db)
	events := []*domain.Event{sampleEvent(101), sampleEvent(101)}

	t.Run("copies the batch in one transaction", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectPrepare(`COPY "events" (.+) FROM STDIN`)
		mock.ExpectExec(`COPY "events" (.+) FROM STDIN`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`COPY "events" (.+) FROM STDIN`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		// Flush with no args
		mock.ExpectExec(`COPY "events" (.+) FROM STDIN`).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		inserted, err := repo.BulkInsert(context.Background(), events)
		require.NoError(t, err)
		assert.Equal(t, int64(2), inserted)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		inserted, err := repo.BulkInsert(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, int64(0), inserted)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_List(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewEventRepository(db)
	event := sampleEvent(101)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM events WHERE session_id = \$1 AND label = \$2`).
		WithArgs(int64(101), "attack").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	eventRow := []driver.Value{int64(1)}
	for _, v := range eventValues(event) {
		eventRow = append(eventRow, v)
	}
	mock.ExpectQuery(`SELECT event_id, (.+) FROM events WHERE session_id = \$1 AND label = \$2 ORDER BY timestamp, event_id LIMIT 1`).
		WithArgs(int64(101), "attack").
		WillReturnRows(sqlmock.NewRows(append([]string{"event_id"}, eventColumns...)).AddRow(eventRow...))

	events, total, err := repo.List(context.Background(), domain.EventListParams{
		SessionID: 101,
		Label:     "attack",
		Limit:     1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), total)
	require.Len(t, events, 1)
	assert.Equal(t, int64(1), events[0].EventID)
	assert.Equal(t, "Op-1", events[0].OperatorID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_CountBySession(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewEventRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM events WHERE session_id = \$1`).
		WithArgs(int64(101)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(128))

	count, err := repo.CountBySession(context.Background(), 101)
	require.NoError(t, err)
	assert.Equal(t, int64(128), count)

	assert.NoError(t, mock.ExpectationsWereMet())
}
