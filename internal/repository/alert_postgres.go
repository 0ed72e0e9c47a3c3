package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/bctala/OPSIGHT/internal/domain"
)

type alertRepository struct {
	db *sql.DB
}

// NewAlertRepository creates a new PostgreSQL alert repository
func NewAlertRepository(db *sql.DB) domain.AlertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) Create(ctx context.Context, alert *domain.Alert) error {
	if err := alert.Validate(); err != nil {
		return err
	}
	if alert.AlertTime.IsZero() {
		alert.AlertTime = time.Now().UTC()
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO alerts (event_id, session_id, detection_id, alert_time, severity, alert_category, alert_description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING alert_id
	`,
		alert.EventID,
		alert.SessionID,
		alert.DetectionID,
		alert.AlertTime,
		alert.Severity,
		alert.AlertCategory,
		alert.AlertDescription,
	).Scan(&alert.AlertID)
	if err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}
	return nil
}

func (r *alertRepository) Get(ctx context.Context, alertID int) (*domain.Alert, error) {
	var alert domain.Alert
	err := r.db.QueryRowContext(ctx, `
		SELECT alert_id, event_id, session_id, detection_id, alert_time, severity, alert_category, alert_description
		FROM alerts
		WHERE alert_id = $1
	`, alertID).Scan(
		&alert.AlertID,
		&alert.EventID,
		&alert.SessionID,
		&alert.DetectionID,
		&alert.AlertTime,
		&alert.Severity,
		&alert.AlertCategory,
		&alert.AlertDescription,
	)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrAlertNotFound{AlertID: alertID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}
	return &alert, nil
}

func (r *alertRepository) List(ctx context.Context, params domain.AlertListParams) ([]*domain.Alert, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	queryBuilder := psql.Select(
		"alert_id", "event_id", "session_id", "detection_id",
		"alert_time", "severity", "alert_category", "alert_description",
	).From("alerts")

	if params.MinSeverity > 0 {
		queryBuilder = queryBuilder.Where(sq.GtOrEq{"severity": params.MinSeverity})
	}
	if params.Category != "" {
		queryBuilder = queryBuilder.Where(sq.Eq{"alert_category": params.Category})
	}
	if params.From != nil {
		queryBuilder = queryBuilder.Where(sq.GtOrEq{"alert_time": *params.From})
	}
	if params.To != nil {
		queryBuilder = queryBuilder.Where(sq.Lt{"alert_time": *params.To})
	}

	queryBuilder = queryBuilder.OrderBy("alert_time DESC", "alert_id DESC")

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
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	var alerts []*domain.Alert
	for rows.Next() {
		alert := &domain.Alert{}
		err := rows.Scan(
			&alert.AlertID,
			&alert.EventID,
			&alert.SessionID,
			&alert.DetectionID,
			&alert.AlertTime,
			&alert.Severity,
			&alert.AlertCategory,
			&alert.AlertDescription,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, alert)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *alertRepository) Delete(ctx context.Context, alertID int) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM alerts WHERE alert_id = $1", alertID)
	if err != nil {
		return fmt.Errorf("failed to delete alert: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.ErrAlertNotFound{AlertID: alertID}
	}
	return nil
}
