package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/bctala/OPSIGHT/internal/domain"
)

type baselineRepository struct {
	db *sql.DB
}

// NewBaselineRepository creates a new PostgreSQL baseline repository
func NewBaselineRepository(db *sql.DB) domain.BaselineRepository {
	return &baselineRepository{db: db}
}

const baselineColumns = "baseline_id, operator_id, shift_id, baseline_version, trained_from, trained_to, profile_json, created_at"

func scanBaseline(scanner interface {
	Scan(dest ...interface{}) error
}, baseline *domain.BaselineProfile) error {
	var shiftID sql.NullInt64

	err := scanner.Scan(
		&baseline.BaselineID,
		&baseline.OperatorID,
		&shiftID,
		&baseline.BaselineVersion,
		&baseline.TrainedFrom,
		&baseline.TrainedTo,
		&baseline.ProfileJSON,
		&baseline.CreatedAt,
	)
	if err != nil {
		return err
	}

	if shiftID.Valid {
		id := int(shiftID.Int64)
		baseline.ShiftID = &id
	}
	return nil
}

func (r *baselineRepository) Create(ctx context.Context, baseline *domain.BaselineProfile) error {
	if baseline.CreatedAt.IsZero() {
		baseline.CreatedAt = time.Now().UTC()
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO baseline_profiles (operator_id, shift_id, baseline_version, trained_from, trained_to, profile_json, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING baseline_id
	`,
		baseline.OperatorID,
		baseline.ShiftID,
		baseline.BaselineVersion,
		baseline.TrainedFrom,
		baseline.TrainedTo,
		baseline.ProfileJSON,
		baseline.CreatedAt,
	).Scan(&baseline.BaselineID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pqUniqueViolation {
			return &domain.ErrBaselineExists{
				OperatorID:      baseline.OperatorID,
				BaselineVersion: baseline.BaselineVersion,
			}
		}
		return fmt.Errorf("failed to create baseline: %w", err)
	}
	return nil
}

func (r *baselineRepository) Get(ctx context.Context, baselineID int) (*domain.BaselineProfile, error) {
	var baseline domain.BaselineProfile
	row := r.db.QueryRowContext(ctx,
		"SELECT "+baselineColumns+" FROM baseline_profiles WHERE baseline_id = $1",
		baselineID,
	)
	err := scanBaseline(row, &baseline)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrBaselineNotFound{Message: "baseline not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get baseline: %w", err)
	}
	return &baseline, nil
}

// GetLatest returns the newest baseline for the operator and shift scope.
// A nil shiftID matches baselines trained without a shift dimension.
func (r *baselineRepository) GetLatest(ctx context.Context, operatorID string, shiftID *int) (*domain.BaselineProfile, error) {
	var baseline domain.BaselineProfile
	var row *sql.Row

	if shiftID != nil {
		row = r.db.QueryRowContext(ctx,
			"SELECT "+baselineColumns+" FROM baseline_profiles WHERE operator_id = $1 AND shift_id = $2 ORDER BY created_at DESC, baseline_id DESC LIMIT 1",
			operatorID, *shiftID,
		)
	} else {
		row = r.db.QueryRowContext(ctx,
			"SELECT "+baselineColumns+" FROM baseline_profiles WHERE operator_id = $1 AND shift_id IS NULL ORDER BY created_at DESC, baseline_id DESC LIMIT 1",
			operatorID,
		)
	}

	err := scanBaseline(row, &baseline)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrBaselineNotFound{Message: "no baseline for operator " + operatorID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest baseline: %w", err)
	}
	return &baseline, nil
}

func (r *baselineRepository) ListByOperator(ctx context.Context, operatorID string) ([]*domain.BaselineProfile, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+baselineColumns+" FROM baseline_profiles WHERE operator_id = $1 ORDER BY created_at DESC, baseline_id DESC",
		operatorID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list baselines: %w", err)
	}
	defer rows.Close()

	var baselines []*domain.BaselineProfile
	for rows.Next() {
		baseline := &domain.BaselineProfile{}
		if err := scanBaseline(rows, baseline); err != nil {
			return nil, fmt.Errorf("failed to scan baseline: %w", err)
		}
		baselines = append(baselines, baseline)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return baselines, nil
}

func (r *baselineRepository) Delete(ctx context.Context, baselineID int) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM baseline_profiles WHERE baseline_id = $1",
		baselineID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete baseline: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.ErrBaselineNotFound{Message: "baseline not found"}
	}
	return nil
}
