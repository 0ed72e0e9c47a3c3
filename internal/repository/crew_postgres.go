package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bctala/OPSIGHT/internal/domain"
)

type crewRepository struct {
	db *sql.DB
}

// NewCrewRepository creates a new PostgreSQL crew repository
func NewCrewRepository(db *sql.DB) domain.CrewRepository {
	return &crewRepository{db: db}
}

func (r *crewRepository) Create(ctx context.Context, crew *domain.Crew) error {
	if crew.CreatedAt.IsZero() {
		crew.CreatedAt = time.Now().UTC()
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO crews (crew_name, created_at)
		VALUES ($1, $2)
		RETURNING crew_id
	`, crew.CrewName, crew.CreatedAt).Scan(&crew.CrewID)
	if err != nil {
		return fmt.Errorf("failed to create crew: %w", err)
	}
	return nil
}

func (r *crewRepository) Get(ctx context.Context, crewID int) (*domain.Crew, error) {
	var crew domain.Crew
	err := r.db.QueryRowContext(ctx,
		"SELECT crew_id, crew_name, created_at FROM crews WHERE crew_id = $1",
		crewID,
	).Scan(&crew.CrewID, &crew.CrewName, &crew.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrCrewNotFound{Message: "crew not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get crew: %w", err)
	}
	return &crew, nil
}

func (r *crewRepository) GetByName(ctx context.Context, name string) (*domain.Crew, error) {
	var crew domain.Crew
	err := r.db.QueryRowContext(ctx,
		"SELECT crew_id, crew_name, created_at FROM crews WHERE crew_name = $1",
		name,
	).Scan(&crew.CrewID, &crew.CrewName, &crew.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrCrewNotFound{Message: "crew not found: " + name}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get crew: %w", err)
	}
	return &crew, nil
}

func (r *crewRepository) List(ctx context.Context) ([]*domain.Crew, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT crew_id, crew_name, created_at FROM crews ORDER BY crew_name",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list crews: %w", err)
	}
	defer rows.Close()

	var crews []*domain.Crew
	for rows.Next() {
		crew := &domain.Crew{}
		if err := rows.Scan(&crew.CrewID, &crew.CrewName, &crew.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan crew: %w", err)
		}
		crews = append(crews, crew)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return crews, nil
}

func (r *crewRepository) Delete(ctx context.Context, crewID int) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM crews WHERE crew_id = $1", crewID)
	if err != nil {
		return fmt.Errorf("failed to delete crew: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.ErrCrewNotFound{Message: "crew not found"}
	}
	return nil
}

func (r *crewRepository) SetRotation(ctx context.Context, rotation *domain.CrewRotation) error {
	if rotation.CreatedAt.IsZero() {
		rotation.CreatedAt = time.Now().UTC()
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO crew_rotations (crew_id, anchor_date, on_days, off_days, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING rotation_id
	`,
		rotation.CrewID,
		rotation.AnchorDate,
		rotation.OnDays,
		rotation.OffDays,
		rotation.CreatedAt,
	).Scan(&rotation.RotationID)
	if err != nil {
		return fmt.Errorf("failed to set rotation: %w", err)
	}
	return nil
}

// GetRotation returns the most recently recorded rotation for a crew
func (r *crewRepository) GetRotation(ctx context.Context, crewID int) (*domain.CrewRotation, error) {
	var rotation domain.CrewRotation
	err := r.db.QueryRowContext(ctx, `
		SELECT rotation_id, crew_id, anchor_date, on_days, off_days, created_at
		FROM crew_rotations
		WHERE crew_id = $1
		ORDER BY created_at DESC, rotation_id DESC
		LIMIT 1
	`, crewID).Scan(
		&rotation.RotationID,
		&rotation.CrewID,
		&rotation.AnchorDate,
		&rotation.OnDays,
		&rotation.OffDays,
		&rotation.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrRotationNotFound{CrewID: crewID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rotation: %w", err)
	}
	return &rotation, nil
}

func (r *crewRepository) ListRotations(ctx context.Context, crewID int) ([]*domain.CrewRotation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT rotation_id, crew_id, anchor_date, on_days, off_days, created_at
		FROM crew_rotations
		WHERE crew_id = $1
		ORDER BY created_at DESC, rotation_id DESC
	`, crewID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rotations: %w", err)
	}
	defer rows.Close()

	var rotations []*domain.CrewRotation
	for rows.Next() {
		rotation := &domain.CrewRotation{}
		err := rows.Scan(
			&rotation.RotationID,
			&rotation.CrewID,
			&rotation.AnchorDate,
			&rotation.OnDays,
			&rotation.OffDays,
			&rotation.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rotation: %w", err)
		}
		rotations = append(rotations, rotation)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return rotations, nil
}
