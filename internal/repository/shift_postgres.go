package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/bctala/OPSIGHT/internal/domain"
)

type shiftRepository struct {
	db *sql.DB
}

// NewShiftRepository creates a new PostgreSQL shift repository
func NewShiftRepository(db *sql.DB) domain.ShiftRepository {
	return &shiftRepository{db: db}
}

func (r *shiftRepository) CreateDefinition(ctx context.Context, def *domain.ShiftDefinition) error {
	if def.CreatedAt.IsZero() {
		def.CreatedAt = time.Now().UTC()
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO shift_definitions (shift_name, start_time, end_time, duration_hours, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING shift_id
	`,
		def.ShiftName,
		def.StartTime,
		def.EndTime,
		def.DurationHours,
		def.CreatedAt,
	).Scan(&def.ShiftID)
	if err != nil {
		return fmt.Errorf("failed to create shift definition: %w", err)
	}
	return nil
}

func scanShiftDefinition(scanner interface {
	Scan(dest ...interface{}) error
}, def *domain.ShiftDefinition) error {
	var startTime, endTime sql.NullString
	var durationHours sql.NullInt64

	err := scanner.Scan(
		&def.ShiftID,
		&def.ShiftName,
		&startTime,
		&endTime,
		&durationHours,
		&def.CreatedAt,
	)
	if err != nil {
		return err
	}

	if startTime.Valid {
		def.StartTime = &startTime.String
	}
	if endTime.Valid {
		def.EndTime = &endTime.String
	}
	if durationHours.Valid {
		hours := int(durationHours.Int64)
		def.DurationHours = &hours
	}
	return nil
}

const shiftDefinitionColumns = "shift_id, shift_name, start_time, end_time, duration_hours, created_at"

func (r *shiftRepository) GetDefinition(ctx context.Context, shiftID int) (*domain.ShiftDefinition, error) {
	var def domain.ShiftDefinition
	row := r.db.QueryRowContext(ctx,
		"SELECT "+shiftDefinitionColumns+" FROM shift_definitions WHERE shift_id = $1",
		shiftID,
	)
	err := scanShiftDefinition(row, &def)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrShiftNotFound{Message: "shift definition not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shift definition: %w", err)
	}
	return &def, nil
}

func (r *shiftRepository) GetDefinitionByName(ctx context.Context, name string) (*domain.ShiftDefinition, error) {
	var def domain.ShiftDefinition
	row := r.db.QueryRowContext(ctx,
		"SELECT "+shiftDefinitionColumns+" FROM shift_definitions WHERE shift_name = $1",
		name,
	)
	err := scanShiftDefinition(row, &def)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrShiftNotFound{Message: "shift definition not found: " + name}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shift definition: %w", err)
	}
	return &def, nil
}

func (r *shiftRepository) ListDefinitions(ctx context.Context) ([]*domain.ShiftDefinition, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+shiftDefinitionColumns+" FROM shift_definitions ORDER BY shift_id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift definitions: %w", err)
	}
	defer rows.Close()

	var defs []*domain.ShiftDefinition
	for rows.Next() {
		def := &domain.ShiftDefinition{}
		if err := scanShiftDefinition(rows, def); err != nil {
			return nil, fmt.Errorf("failed to scan shift definition: %w", err)
		}
		defs = append(defs, def)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return defs, nil
}

// NameToID maps upper-cased shift names to their IDs
func (r *shiftRepository) NameToID(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT shift_id, shift_name FROM shift_definitions",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load shift names: %w", err)
	}
	defer rows.Close()

	nameToID := make(map[string]int)
	for rows.Next() {
		var shiftID int
		var shiftName string
		if err := rows.Scan(&shiftID, &shiftName); err != nil {
			return nil, fmt.Errorf("failed to scan shift name: %w", err)
		}
		nameToID[strings.ToUpper(strings.TrimSpace(shiftName))] = shiftID
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return nameToID, nil
}

func (r *shiftRepository) DeleteDefinition(ctx context.Context, shiftID int) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM shift_definitions WHERE shift_id = $1",
		shiftID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete shift definition: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.ErrShiftNotFound{Message: "shift definition not found"}
	}
	return nil
}

func (r *shiftRepository) CreateInstance(ctx context.Context, instance *domain.ShiftInstance) error {
	if instance.CreatedAt.IsZero() {
		instance.CreatedAt = time.Now().UTC()
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO shift_instances (crew_id, shift_id, shift_start, shift_end, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING shift_instance_id
	`,
		instance.CrewID,
		instance.ShiftID,
		instance.ShiftStart,
		instance.ShiftEnd,
		instance.CreatedAt,
	).Scan(&instance.ShiftInstanceID)
	if err != nil {
		return fmt.Errorf("failed to create shift instance: %w", err)
	}
	return nil
}

func (r *shiftRepository) GetInstance(ctx context.Context, shiftInstanceID int) (*domain.ShiftInstance, error) {
	var instance domain.ShiftInstance
	var shiftStart, shiftEnd sql.NullTime

	err := r.db.QueryRowContext(ctx, `
		SELECT shift_instance_id, crew_id, shift_id, shift_start, shift_end, created_at
		FROM shift_instances
		WHERE shift_instance_id = $1
	`, shiftInstanceID).Scan(
		&instance.ShiftInstanceID,
		&instance.CrewID,
		&instance.ShiftID,
		&shiftStart,
		&shiftEnd,
		&instance.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrShiftNotFound{Message: "shift instance not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shift instance: %w", err)
	}

	if shiftStart.Valid {
		instance.ShiftStart = &shiftStart.Time
	}
	if shiftEnd.Valid {
		instance.ShiftEnd = &shiftEnd.Time
	}
	return &instance, nil
}

func (r *shiftRepository) ListInstances(ctx context.Context, params domain.ShiftInstanceListParams) ([]*domain.ShiftInstance, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	queryBuilder := psql.Select(
		"shift_instance_id", "crew_id", "shift_id", "shift_start", "shift_end", "created_at",
	).From("shift_instances")

	if params.CrewID != 0 {
		queryBuilder = queryBuilder.Where(sq.Eq{"crew_id": params.CrewID})
	}
	if params.ShiftID != 0 {
		queryBuilder = queryBuilder.Where(sq.Eq{"shift_id": params.ShiftID})
	}
	if params.From != nil {
		queryBuilder = queryBuilder.Where(sq.GtOrEq{"shift_start": *params.From})
	}
	if params.To != nil {
		queryBuilder = queryBuilder.Where(sq.Lt{"shift_start": *params.To})
	}

	queryBuilder = queryBuilder.OrderBy("shift_start DESC NULLS LAST", "shift_instance_id DESC")

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
		return nil, fmt.Errorf("failed to list shift instances: %w", err)
	}
	defer rows.Close()

	var instances []*domain.ShiftInstance
	for rows.Next() {
		instance := &domain.ShiftInstance{}
		var shiftStart, shiftEnd sql.NullTime

		err := rows.Scan(
			&instance.ShiftInstanceID,
			&instance.CrewID,
			&instance.ShiftID,
			&shiftStart,
			&shiftEnd,
			&instance.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift instance: %w", err)
		}

		if shiftStart.Valid {
			instance.ShiftStart = &shiftStart.Time
		}
		if shiftEnd.Valid {
			instance.ShiftEnd = &shiftEnd.Time
		}
		instances = append(instances, instance)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return instances, nil
}

func (r *shiftRepository) DeleteInstance(ctx context.Context, shiftInstanceID int) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM shift_instances WHERE shift_instance_id = $1",
		shiftInstanceID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete shift instance: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.ErrShiftNotFound{Message: "shift instance not found"}
	}
	return nil
}
