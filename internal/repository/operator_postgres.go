package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bctala/OPSIGHT/internal/domain"
)

type operatorRepository struct {
	db *sql.DB
}

// NewOperatorRepository creates a new PostgreSQL operator repository
func NewOperatorRepository(db *sql.DB) domain.OperatorRepository {
	return &operatorRepository{db: db}
}

func (r *operatorRepository) Create(ctx context.Context, operator *domain.Operator) error {
	if operator.CreatedAt.IsZero() {
		operator.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO operators (operator_id, crew_id, default_shift_id, operator_rank, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		operator.OperatorID,
		operator.CrewID,
		operator.DefaultShiftID,
		operator.OperatorRank,
		operator.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create operator: %w", err)
	}
	return nil
}

func (r *operatorRepository) Get(ctx context.Context, operatorID string) (*domain.Operator, error) {
	var operator domain.Operator
	var crewID, defaultShiftID sql.NullInt64

	query := `
		SELECT operator_id, crew_id, default_shift_id, operator_rank, created_at
		FROM operators
		WHERE operator_id = $1
	`
	err := r.db.QueryRowContext(ctx, query, operatorID).Scan(
		&operator.OperatorID,
		&crewID,
		&defaultShiftID,
		&operator.OperatorRank,
		&operator.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrOperatorNotFound{OperatorID: operatorID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get operator: %w", err)
	}

	if crewID.Valid {
		id := int(crewID.Int64)
		operator.CrewID = &id
	}
	if defaultShiftID.Valid {
		id := int(defaultShiftID.Int64)
		operator.DefaultShiftID = &id
	}
	return &operator, nil
}

func (r *operatorRepository) List(ctx context.Context) ([]*domain.Operator, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT operator_id, crew_id, default_shift_id, operator_rank, created_at
		FROM operators
		ORDER BY operator_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list operators: %w", err)
	}
	defer rows.Close()

	var operators []*domain.Operator
	for rows.Next() {
		operator := &domain.Operator{}
		var crewID, defaultShiftID sql.NullInt64

		err := rows.Scan(
			&operator.OperatorID,
			&crewID,
			&defaultShiftID,
			&operator.OperatorRank,
			&operator.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan operator: %w", err)
		}

		if crewID.Valid {
			id := int(crewID.Int64)
			operator.CrewID = &id
		}
		if defaultShiftID.Valid {
			id := int(defaultShiftID.Int64)
			operator.DefaultShiftID = &id
		}
		operators = append(operators, operator)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return operators, nil
}

// EnsureExist inserts any missing operator IDs with default rank. Existing
// rows are left untouched.
func (r *operatorRepository) EnsureExist(ctx context.Context, operatorIDs []string) (int, error) {
	if len(operatorIDs) == 0 {
		return 0, nil
	}

	created := 0
	now := time.Now().UTC()
	for _, operatorID := range operatorIDs {
		result, err := r.db.ExecContext(ctx, `
			INSERT INTO operators (operator_id, operator_rank, created_at)
			VALUES ($1, TRUE, $2)
			ON CONFLICT (operator_id) DO NOTHING
		`, operatorID, now)
		if err != nil {
			return created, fmt.Errorf("failed to ensure operator %s: %w", operatorID, err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return created, fmt.Errorf("failed to get rows affected: %w", err)
		}
		created += int(rowsAffected)
	}
	return created, nil
}

func (r *operatorRepository) AssignCrew(ctx context.Context, operatorID string, crewID int) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE operators SET crew_id = $1 WHERE operator_id = $2",
		crewID, operatorID,
	)
	if err != nil {
		return fmt.Errorf("failed to assign crew: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.ErrOperatorNotFound{OperatorID: operatorID}
	}
	return nil
}

func (r *operatorRepository) SetDefaultShift(ctx context.Context, operatorID string, shiftID int) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE operators SET default_shift_id = $1 WHERE operator_id = $2",
		shiftID, operatorID,
	)
	if err != nil {
		return fmt.Errorf("failed to set default shift: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.ErrOperatorNotFound{OperatorID: operatorID}
	}
	return nil
}

func (r *operatorRepository) Delete(ctx context.Context, operatorID string) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM operators WHERE operator_id = $1",
		operatorID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete operator: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.ErrOperatorNotFound{OperatorID: operatorID}
	}
	return nil
}
