package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bctala/OPSIGHT/internal/domain"
)

type ctiRepository struct {
	db *sql.DB
}

// NewCTIRepository creates a new PostgreSQL CTI repository
func NewCTIRepository(db *sql.DB) domain.CTIRepository {
	return &ctiRepository{db: db}
}

const ctiColumns = "cti_id, cti_type, cti_name, external_id, rule, confidence, created_at"

func scanCTIObject(scanner interface {
	Scan(dest ...interface{}) error
}, object *domain.CTIObject) error {
	var externalID, rule sql.NullString
	var confidence sql.NullInt64

	err := scanner.Scan(
		&object.CTIID,
		&object.CTIType,
		&object.CTIName,
		&externalID,
		&rule,
		&confidence,
		&object.CreatedAt,
	)
	if err != nil {
		return err
	}

	if externalID.Valid {
		object.ExternalID = &externalID.String
	}
	if rule.Valid {
		object.Rule = &rule.String
	}
	if confidence.Valid {
		c := int(confidence.Int64)
		object.Confidence = &c
	}
	return nil
}

func (r *ctiRepository) CreateObject(ctx context.Context, object *domain.CTIObject) error {
	if err := object.Validate(); err != nil {
		return err
	}
	if object.CreatedAt.IsZero() {
		object.CreatedAt = time.Now().UTC()
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO cti_objects (cti_type, cti_name, external_id, rule, confidence, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING cti_id
	`,
		object.CTIType,
		object.CTIName,
		object.ExternalID,
		object.Rule,
		object.Confidence,
		object.CreatedAt,
	).Scan(&object.CTIID)
	if err != nil {
		return fmt.Errorf("failed to create cti object: %w", err)
	}
	return nil
}

func (r *ctiRepository) GetObject(ctx context.Context, ctiID int) (*domain.CTIObject, error) {
	var object domain.CTIObject
	row := r.db.QueryRowContext(ctx,
		"SELECT "+ctiColumns+" FROM cti_objects WHERE cti_id = $1",
		ctiID,
	)
	err := scanCTIObject(row, &object)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrCTIObjectNotFound{CTIID: ctiID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cti object: %w", err)
	}
	return &object, nil
}

func (r *ctiRepository) ListObjects(ctx context.Context, ctiType string) ([]*domain.CTIObject, error) {
	var rows *sql.Rows
	var err error

	if ctiType != "" {
		rows, err = r.db.QueryContext(ctx,
			"SELECT "+ctiColumns+" FROM cti_objects WHERE cti_type = $1 ORDER BY cti_name",
			ctiType,
		)
	} else {
		rows, err = r.db.QueryContext(ctx,
			"SELECT "+ctiColumns+" FROM cti_objects ORDER BY cti_name",
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list cti objects: %w", err)
	}
	defer rows.Close()

	var objects []*domain.CTIObject
	for rows.Next() {
		object := &domain.CTIObject{}
		if err := scanCTIObject(rows, object); err != nil {
			return nil, fmt.Errorf("failed to scan cti object: %w", err)
		}
		objects = append(objects, object)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return objects, nil
}

func (r *ctiRepository) DeleteObject(ctx context.Context, ctiID int) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM cti_objects WHERE cti_id = $1", ctiID)
	if err != nil {
		return fmt.Errorf("failed to delete cti object: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.ErrCTIObjectNotFound{CTIID: ctiID}
	}
	return nil
}

func (r *ctiRepository) LinkAlert(ctx context.Context, link *domain.AlertCTILink) error {
	if link.LinkCreatedAt.IsZero() {
		link.LinkCreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO alert_cti_links (alert_id, cti_id, match_reason, link_created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (alert_id, cti_id) DO NOTHING
	`,
		link.AlertID,
		link.CTIID,
		link.MatchReason,
		link.LinkCreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to link alert to cti object: %w", err)
	}
	return nil
}

func (r *ctiRepository) GetLinks(ctx context.Context, alertID int) ([]*domain.AlertCTILink, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT alert_id, cti_id, match_reason, link_created_at
		FROM alert_cti_links
		WHERE alert_id = $1
		ORDER BY link_created_at
	`, alertID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cti links: %w", err)
	}
	defer rows.Close()

	var links []*domain.AlertCTILink
	for rows.Next() {
		link := &domain.AlertCTILink{}
		var matchReason sql.NullString

		err := rows.Scan(&link.AlertID, &link.CTIID, &matchReason, &link.LinkCreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cti link: %w", err)
		}

		if matchReason.Valid {
			link.MatchReason = &matchReason.String
		}
		links = append(links, link)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return links, nil
}

func (r *ctiRepository) UnlinkAlert(ctx context.Context, alertID, ctiID int) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM alert_cti_links WHERE alert_id = $1 AND cti_id = $2",
		alertID, ctiID,
	)
	if err != nil {
		return fmt.Errorf("failed to unlink alert from cti object: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.ErrCTILinkNotFound{AlertID: alertID, CTIID: ctiID}
	}
	return nil
}
