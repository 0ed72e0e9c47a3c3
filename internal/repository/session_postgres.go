package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/bctala/OPSIGHT/internal/domain"
)

type sessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new PostgreSQL session repository
func NewSessionRepository(db *sql.DB) domain.SessionRepository {
	return &sessionRepository{db: db}
}

const sessionColumns = "session_id, shift_instance_id, operator_id, shift_id, session_start, session_end, inactivity_threshold_min, created_at"

func scanSession(scanner interface {
	Scan(dest ...interface{}) error
}, session *domain.Session) error {
	var shiftInstanceID sql.NullInt64
	var sessionEnd sql.NullTime

	err := scanner.Scan(
		&session.SessionID,
		&shiftInstanceID,
		&session.OperatorID,
		&session.ShiftID,
		&session.SessionStart,
		&sessionEnd,
		&session.InactivityThresholdMin,
		&session.CreatedAt,
	)
	if err != nil {
		return err
	}

	if shiftInstanceID.Valid {
		id := int(shiftInstanceID.Int64)
		session.ShiftInstanceID = &id
	}
	if sessionEnd.Valid {
		session.SessionEnd = &sessionEnd.Time
	}
	return nil
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO sessions (session_id, shift_instance_id, operator_id, shift_id, session_start, session_end, inactivity_threshold_min, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		session.SessionID,
		session.ShiftInstanceID,
		session.OperatorID,
		session.ShiftID,
		session.SessionStart,
		session.SessionEnd,
		session.InactivityThresholdMin,
		session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *sessionRepository) Get(ctx context.Context, sessionID int64) (*domain.Session, error) {
	var session domain.Session
	row := r.db.QueryRowContext(ctx,
		"SELECT "+sessionColumns+" FROM sessions WHERE session_id = $1",
		sessionID,
	)
	err := scanSession(row, &session)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrSessionNotFound{SessionID: sessionID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

func (r *sessionRepository) List(ctx context.Context, params domain.SessionListParams) ([]*domain.Session, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	queryBuilder := psql.Select(
		"session_id", "shift_instance_id", "operator_id", "shift_id",
		"session_start", "session_end", "inactivity_threshold_min", "created_at",
	).From("sessions")

	if params.OperatorID != "" {
		queryBuilder = queryBuilder.Where(sq.Eq{"operator_id": params.OperatorID})
	}
	if params.ShiftID != 0 {
		queryBuilder = queryBuilder.Where(sq.Eq{"shift_id": params.ShiftID})
	}
	if params.From != nil {
		queryBuilder = queryBuilder.Where(sq.GtOrEq{"session_start": *params.From})
	}
	if params.To != nil {
		queryBuilder = queryBuilder.Where(sq.Lt{"session_start": *params.To})
	}

	queryBuilder = queryBuilder.OrderBy("session_start DESC", "session_id DESC")

	if params.Limit > 0 {
		queryBuilder = queryBuilder.Limit(uint64(params.Limit))
	}
	if params.Offset > 0 {
		queryBuilder = queryBuilder.Offset(uint64(params.Offset))
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.Session
	for rows.Next() {
		session := &domain.Session{}
		if err := scanSession(rows, session); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// EnsureExist inserts sessions whose IDs are not yet present. Existing rows
// keep their original bounds.
func (r *sessionRepository) EnsureExist(ctx context.Context, sessions []*domain.Session) (int, error) {
	if len(sessions) == 0 {
		return 0, nil
	}

	created := 0
	now := time.Now().UTC()
	for _, session := range sessions {
		if err := session.Validate(); err != nil {
			return created, err
		}
		if session.CreatedAt.IsZero() {
			session.CreatedAt = now
		}

		result, err := r.db.ExecContext(ctx, `
			INSERT INTO sessions (session_id, shift_instance_id, operator_id, shift_id, session_start, session_end, inactivity_threshold_min, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (session_id) DO NOTHING
		`,
			session.SessionID,
			session.ShiftInstanceID,
			session.OperatorID,
			session.ShiftID,
			session.SessionStart,
			session.SessionEnd,
			session.InactivityThresholdMin,
			session.CreatedAt,
		)
		if err != nil {
			return created, fmt.Errorf("failed to ensure session %d: %w", session.SessionID, err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return created, fmt.Errorf("failed to get rows affected: %w", err)
		}
		created += int(rowsAffected)
	}
	return created, nil
}

func (r *sessionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sessions").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return count, nil
}

func (r *sessionRepository) Delete(ctx context.Context, sessionID int64) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM sessions WHERE session_id = $1",
		sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.ErrSessionNotFound{SessionID: sessionID}
	}
	return nil
}
