package domain

import (
	"context"
	"time"
)

// CTIObject represents a cyber threat intelligence artifact (technique,
// indicator, rule) that alerts can be linked against
type CTIObject struct {
	CTIID      int       `json:"cti_id"`
	CTIType    string    `json:"cti_type"`
	CTIName    string    `json:"cti_name"`
	ExternalID *string   `json:"external_id,omitempty"`
	Rule       *string   `json:"rule,omitempty"`
	Confidence *int      `json:"confidence,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Validate checks the CTI object fields before persistence
func (o *CTIObject) Validate() error {
	if o.CTIType == "" {
		return NewValidationError("cti_type is required")
	}
	if o.CTIName == "" {
		return NewValidationError("cti_name is required")
	}
	return nil
}

// AlertCTILink associates an alert with a CTI object
type AlertCTILink struct {
	AlertID       int       `json:"alert_id"`
	CTIID         int       `json:"cti_id"`
	MatchReason   *string   `json:"match_reason,omitempty"`
	LinkCreatedAt time.Time `json:"link_created_at"`
}

// CTIRepository defines the interface for CTI object and link persistence
type CTIRepository interface {
	// CreateObject persists a new CTI object and fills in its generated ID
	CreateObject(ctx context.Context, object *CTIObject) error

	// GetObject retrieves a CTI object by ID
	GetObject(ctx context.Context, ctiID int) (*CTIObject, error)

	// ListObjects retrieves CTI objects, optionally filtered by type
	ListObjects(ctx context.Context, ctiType string) ([]*CTIObject, error)

	// DeleteObject removes a CTI object
	DeleteObject(ctx context.Context, ctiID int) error

	// LinkAlert associates an alert with a CTI object
	LinkAlert(ctx context.Context, link *AlertCTILink) error

	// GetLinks retrieves all CTI links for an alert
	GetLinks(ctx context.Context, alertID int) ([]*AlertCTILink, error)

	// UnlinkAlert removes the association between an alert and a CTI object
	UnlinkAlert(ctx context.Context, alertID, ctiID int) error
}

// ErrCTIObjectNotFound is returned when a CTI object is not found
type ErrCTIObjectNotFound struct {
	CTIID int
}

func (e *ErrCTIObjectNotFound) Error() string {
	return "cti object not found"
}

// ErrCTILinkNotFound is returned when an alert/CTI link is not found
type ErrCTILinkNotFound struct {
	AlertID int
	CTIID   int
}

func (e *ErrCTILinkNotFound) Error() string {
	return "alert cti link not found"
}
