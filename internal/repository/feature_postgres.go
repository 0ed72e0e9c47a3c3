package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bctala/OPSIGHT/internal/domain"
)

type featureRepository struct {
	db *sql.DB
}

// NewFeatureRepository creates a new PostgreSQL session feature repository
func NewFeatureRepository(db *sql.DB) domain.FeatureRepository {
	return &featureRepository{db: db}
}

func (r *featureRepository) Upsert(ctx context.Context, features *domain.SessionFeatures) error {
	if features.CreatedAt.IsZero() {
		features.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO session_features (
			session_id,
			command_frequency, inter_command_mean, inter_command_std, command_burst_rate,
			control_mode_change_rate, high_risk_command_ratio, invalid_command_rate,
			pump_state_change_rate, setpoint_shock_event_rate, pid_modification_rate,
			command_entropy, process_command_correlation, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (session_id)
		DO UPDATE SET
			command_frequency = EXCLUDED.command_frequency,
			inter_command_mean = EXCLUDED.inter_command_mean,
			inter_command_std = EXCLUDED.inter_command_std,
			command_burst_rate = EXCLUDED.command_burst_rate,
			control_mode_change_rate = EXCLUDED.control_mode_change_rate,
			high_risk_command_ratio = EXCLUDED.high_risk_command_ratio,
			invalid_command_rate = EXCLUDED.invalid_command_rate,
			pump_state_change_rate = EXCLUDED.pump_state_change_rate,
			setpoint_shock_event_rate = EXCLUDED.setpoint_shock_event_rate,
			pid_modification_rate = EXCLUDED.pid_modification_rate,
			command_entropy = EXCLUDED.command_entropy,
			process_command_correlation = EXCLUDED.process_command_correlation
		RETURNING session_features_id
	`
	err := r.db.QueryRowContext(ctx, query,
		features.SessionID,
		features.CommandFrequency,
		features.InterCommandMean,
		features.InterCommandStd,
		features.CommandBurstRate,
		features.ControlModeChangeRate,
		features.HighRiskCommandRatio,
		features.InvalidCommandRate,
		features.PumpStateChangeRate,
		features.SetpointShockEventRate,
		features.PIDModificationRate,
		features.CommandEntropy,
		features.ProcessCommandCorrelation,
		features.CreatedAt,
	).Scan(&features.SessionFeaturesID)
	if err != nil {
		return fmt.Errorf("failed to upsert session features: %w", err)
	}
	return nil
}

func (r *featureRepository) Get(ctx context.Context, sessionID int64) (*domain.SessionFeatures, error) {
	var features domain.SessionFeatures
	query := `
		SELECT session_features_id, session_id,
			command_frequency, inter_command_mean, inter_command_std, command_burst_rate,
			control_mode_change_rate, high_risk_command_ratio, invalid_command_rate,
			pump_state_change_rate, setpoint_shock_event_rate, pid_modification_rate,
			command_entropy, process_command_correlation, created_at
		FROM session_features
		WHERE session_id = $1
	`
	err := r.db.QueryRowContext(ctx, query, sessionID).Scan(
		&features.SessionFeaturesID,
		&features.SessionID,
		&features.CommandFrequency,
		&features.InterCommandMean,
		&features.InterCommandStd,
		&features.CommandBurstRate,
		&features.ControlModeChangeRate,
		&features.HighRiskCommandRatio,
		&features.InvalidCommandRate,
		&features.PumpStateChangeRate,
		&features.SetpointShockEventRate,
		&features.PIDModificationRate,
		&features.CommandEntropy,
		&features.ProcessCommandCorrelation,
		&features.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrFeaturesNotFound{SessionID: sessionID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session features: %w", err)
	}
	return &features, nil
}

func (r *featureRepository) Delete(ctx context.Context, sessionID int64) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM session_features WHERE session_id = $1",
		sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete session features: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.ErrFeaturesNotFound{SessionID: sessionID}
	}
	return nil
}
