package service

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/bctala/OPSIGHT/internal/domain"
	"github.com/bctala/OPSIGHT/pkg/logger"
)

// BaselineService validates and stores trained baseline profiles
type BaselineService struct {
	repo   domain.BaselineRepository
	logger logger.Logger
}

// NewBaselineService creates a new baseline service
func NewBaselineService(repo domain.BaselineRepository, logger logger.Logger) *BaselineService {
	return &BaselineService{
		repo:   repo,
		logger: logger,
	}
}

// Create validates the profile payload and persists the baseline
func (s *BaselineService) Create(ctx context.Context, baseline *domain.BaselineProfile) error {
	if baseline.OperatorID == "" {
		return domain.NewValidationError("operator_id is required")
	}
	if baseline.BaselineVersion == "" {
		return domain.NewValidationError("baseline_version is required")
	}
	if baseline.TrainedFrom.IsZero() || baseline.TrainedTo.IsZero() {
		return domain.NewValidationError("training window is required")
	}
	if !baseline.TrainedFrom.Before(baseline.TrainedTo) {
		return domain.NewValidationError("trained_from must be before trained_to")
	}
	if err := ValidateProfileJSON(baseline.ProfileJSON); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, baseline); err != nil {
		if _, ok := err.(*domain.ErrBaselineExists); ok {
			return err
		}
		s.logger.WithField("operator_id", baseline.OperatorID).WithField("error", err.Error()).Error("Failed to create baseline")
		return err
	}

	s.logger.WithField("operator_id", baseline.OperatorID).
		WithField("baseline_version", baseline.BaselineVersion).
		Info("Baseline created")
	return nil
}

// GetLatest returns the newest baseline for the operator and shift scope
func (s *BaselineService) GetLatest(ctx context.Context, operatorID string, shiftID *int) (*domain.BaselineProfile, error) {
	return s.repo.GetLatest(ctx, operatorID, shiftID)
}

// ListByOperator returns all baselines for an operator, newest first
func (s *BaselineService) ListByOperator(ctx context.Context, operatorID string) ([]*domain.BaselineProfile, error) {
	return s.repo.ListByOperator(ctx, operatorID)
}

// ValidateProfileJSON checks that a profile document is a JSON object
// covering every behavioral feature with numeric mean and std statistics.
func ValidateProfileJSON(profileJSON string) error {
	if !gjson.Valid(profileJSON) {
		return domain.NewValidationError("profile_json is not valid JSON")
	}

	root := gjson.Parse(profileJSON)
	if !root.IsObject() {
		return domain.NewValidationError("profile_json must be a JSON object")
	}

	for _, name := range domain.FeatureNames {
		feature := root.Get(name)
		if !feature.Exists() {
			return domain.NewValidationError(fmt.Sprintf("profile_json is missing feature %q", name))
		}

		mean := feature.Get("mean")
		std := feature.Get("std")
		if mean.Type != gjson.Number {
			return domain.NewValidationError(fmt.Sprintf("feature %q has no numeric mean", name))
		}
		if std.Type != gjson.Number {
			return domain.NewValidationError(fmt.Sprintf("feature %q has no numeric std", name))
		}
		if std.Float() < 0 {
			return domain.NewValidationError(fmt.Sprintf("feature %q has negative std", name))
		}
	}

	return nil
}
