package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/bctala/OPSIGHT/internal/domain"
)

type detectionRepository struct {
	db *sql.DB
}

// NewDetectionRepository creates a new PostgreSQL detection repository
func NewDetectionRepository(db *sql.DB) domain.DetectionRepository {
	return &detectionRepository{db: db}
}

const detectionColumns = "detection_id, event_id, baseline_id, model_type, anomaly_score, threshold, evidence_json, predicted_label, detection_time"

func scanDetection(scanner interface {
	Scan(dest ...interface{}) error
}, detection *domain.Detection) error {
	return scanner.Scan(
		&detection.DetectionID,
		&detection.EventID,
		&detection.BaselineID,
		&detection.ModelType,
		&detection.AnomalyScore,
		&detection.Threshold,
		&detection.EvidenceJSON,
		&detection.PredictedLabel,
		&detection.DetectionTime,
	)
}

func (r *detectionRepository) Create(ctx context.Context, detection *domain.Detection) error {
	if detection.DetectionTime.IsZero() {
		detection.DetectionTime = time.Now().UTC()
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO detections (event_id, baseline_id, model_type, anomaly_score, threshold, evidence_json, predicted_label, detection_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING detection_id
	`,
		detection.EventID,
		detection.BaselineID,
		detection.ModelType,
		detection.AnomalyScore,
		detection.Threshold,
		detection.EvidenceJSON,
		detection.PredictedLabel,
		detection.DetectionTime,
	).Scan(&detection.DetectionID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pqUniqueViolation {
			return &domain.ErrDetectionExists{
				EventID:   detection.EventID,
				ModelType: detection.ModelType,
			}
		}
		return fmt.Errorf("failed to create detection: %w", err)
	}
	return nil
}

func (r *detectionRepository) Get(ctx context.Context, detectionID int) (*domain.Detection, error) {
	var detection domain.Detection
	row := r.db.QueryRowContext(ctx,
		"SELECT "+detectionColumns+" FROM detections WHERE detection_id = $1",
		detectionID,
	)
	err := scanDetection(row, &detection)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrDetectionNotFound{DetectionID: detectionID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get detection: %w", err)
	}
	return &detection, nil
}

func (r *detectionRepository) ListByEvent(ctx context.Context, eventID int64) ([]*domain.Detection, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+detectionColumns+" FROM detections WHERE event_id = $1 ORDER BY detection_time",
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list detections: %w", err)
	}
	defer rows.Close()

	return collectDetections(rows)
}

func (r *detectionRepository) ListByBaseline(ctx context.Context, baselineID int, from, to *time.Time) ([]*domain.Detection, error) {
	query := "SELECT " + detectionColumns + " FROM detections WHERE baseline_id = $1"
	args := []interface{}{baselineID}

	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND detection_time >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND detection_time < $%d", len(args))
	}
	query += " ORDER BY detection_time"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list detections: %w", err)
	}
	defer rows.Close()

	return collectDetections(rows)
}

func collectDetections(rows *sql.Rows) ([]*domain.Detection, error) {
	var detections []*domain.Detection
	for rows.Next() {
		detection := &domain.Detection{}
		if err := scanDetection(rows, detection); err != nil {
			return nil, fmt.Errorf("failed to scan detection: %w", err)
		}
		detections = append(detections, detection)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return detections, nil
}

func (r *detectionRepository) Delete(ctx context.Context, detectionID int) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM detections WHERE detection_id = $1",
		detectionID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete detection: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.ErrDetectionNotFound{DetectionID: detectionID}
	}
	return nil
}
