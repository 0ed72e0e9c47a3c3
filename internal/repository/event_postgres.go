package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/bctala/OPSIGHT/internal/domain"
)

type eventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new PostgreSQL event repository
func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{db: db}
}

// eventColumns excludes event_id, which the database generates
var eventColumns = []string{
	"session_id", "operator_id", "timestamp", "time_interval",
	"address", "function_code", "command_response", "control_mode", "control_scheme",
	"crc", "data_length", "invalid_function_code", "invalid_data_length",
	"pump_state", "solenoid_state",
	"set_point", "pipeline_psi",
	"pid_cycle_time", "pid_deadband", "pid_gain", "pid_rate", "pid_reset",
	"delta_set_point", "delta_pipeline_psi",
	"delta_pid_cycle_time", "delta_pid_deadband", "delta_pid_gain", "delta_pid_rate", "delta_pid_reset",
	"label",
}

func eventValues(event *domain.Event) []interface{} {
	return []interface{}{
		event.SessionID, event.OperatorID, event.Timestamp, event.TimeInterval,
		event.Address, event.FunctionCode, event.CommandResponse, event.ControlMode, event.ControlScheme,
		event.CRC, event.DataLength, event.InvalidFunctionCode, event.InvalidDataLength,
		event.PumpState, event.SolenoidState,
		event.SetPoint, event.PipelinePSI,
		event.PIDCycleTime, event.PIDDeadband, event.PIDGain, event.PIDRate, event.PIDReset,
		event.DeltaSetPoint, event.DeltaPipelinePSI,
		event.DeltaPIDCycleTime, event.DeltaPIDDeadband, event.DeltaPIDGain, event.DeltaPIDRate, event.DeltaPIDReset,
		event.Label,
	}
}

func scanEvent(scanner interface {
	Scan(dest ...interface{}) error
}, event *domain.Event) error {
	return scanner.Scan(
		&event.EventID,
		&event.SessionID, &event.OperatorID, &event.Timestamp, &event.TimeInterval,
		&event.Address, &event.FunctionCode, &event.CommandResponse, &event.ControlMode, &event.ControlScheme,
		&event.CRC, &event.DataLength, &event.InvalidFunctionCode, &event.InvalidDataLength,
		&event.PumpState, &event.SolenoidState,
		&event.SetPoint, &event.PipelinePSI,
		&event.PIDCycleTime, &event.PIDDeadband, &event.PIDGain, &event.PIDRate, &event.PIDReset,
		&event.DeltaSetPoint, &event.DeltaPipelinePSI,
		&event.DeltaPIDCycleTime, &event.DeltaPIDDeadband, &event.DeltaPIDGain, &event.DeltaPIDRate, &event.DeltaPIDReset,
		&event.Label,
	)
}

func (r *eventRepository) Insert(ctx context.Context, event *domain.Event) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Insert("events").
		Columns(eventColumns...).
		Values(eventValues(event)...).
		Suffix("RETURNING event_id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&event.EventID); err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// BulkInsert streams the batch through COPY inside a single transaction
func (r *eventRepository) BulkInsert(ctx context.Context, events []*domain.Event) (int64, error) {
	if len(events) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("events", eventColumns...))
	if err != nil {
		return 0, fmt.Errorf("failed to prepare copy: %w", err)
	}

	for _, event := range events {
		if _, err := stmt.ExecContext(ctx, eventValues(event)...); err != nil {
			_ = stmt.Close()
			return 0, fmt.Errorf("failed to buffer event for session %d: %w", event.SessionID, err)
		}
	}

	// Flush the COPY buffer
	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		return 0, fmt.Errorf("failed to flush events: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return 0, fmt.Errorf("failed to close copy statement: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit events: %w", err)
	}
	return int64(len(events)), nil
}

func (r *eventRepository) Get(ctx context.Context, eventID int64) (*domain.Event, error) {
	var event domain.Event
	row := r.db.QueryRowContext(ctx,
		"SELECT event_id, "+strings.Join(eventColumns, ", ")+" FROM events WHERE event_id = $1",
		eventID,
	)
	err := scanEvent(row, &event)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrEventNotFound{EventID: eventID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &event, nil
}

func (r *eventRepository) List(ctx context.Context, params domain.EventListParams) ([]*domain.Event, int64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applyFilters := func(b sq.SelectBuilder) sq.SelectBuilder {
		if params.SessionID != 0 {
			b = b.Where(sq.Eq{"session_id": params.SessionID})
		}
		if params.OperatorID != "" {
			b = b.Where(sq.Eq{"operator_id": params.OperatorID})
		}
		if params.Address != "" {
			b = b.Where(sq.Eq{"address": params.Address})
		}
		if params.FunctionCode != "" {
			b = b.Where(sq.Eq{"function_code": params.FunctionCode})
		}
		if params.Label != "" {
			b = b.Where(sq.Eq{"label": params.Label})
		}
		if params.From != nil {
			b = b.Where(sq.GtOrEq{"timestamp": *params.From})
		}
		if params.To != nil {
			b = b.Where(sq.Lt{"timestamp": *params.To})
		}
		return b
	}

	// Total count with the same filters
	countQuery, countArgs, err := applyFilters(psql.Select("COUNT(*)").From("events")).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	queryBuilder := applyFilters(
		psql.Select(append([]string{"event_id"}, eventColumns...)...).From("events"),
	).OrderBy("timestamp", "event_id")

	if params.Limit > 0 {
		queryBuilder = queryBuilder.Limit(uint64(params.Limit))
	}
	if params.Offset > 0 {
		queryBuilder = queryBuilder.Offset(uint64(params.Offset))
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		event := &domain.Event{}
		if err := scanEvent(rows, event); err != nil {
			return nil, 0, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *eventRepository) CountBySession(ctx context.Context, sessionID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM events WHERE session_id = $1",
		sessionID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}
