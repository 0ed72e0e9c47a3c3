package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bctala/OPSIGHT/internal/domain"
	"github.com/bctala/OPSIGHT/internal/repository"
	"github.com/bctala/OPSIGHT/pkg/logger"
)

// validProfileJSON builds a profile covering every behavioral feature
func validProfileJSON() string {
	var b strings.Builder
	b.WriteString("{")
	for i, name := range domain.FeatureNames {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `%q:{"mean":1.5,"std":0.2}`, name)
	}
	b.WriteString("}")
	return b.String()
}

func TestValidateProfileJSON(t *testing.T) {
	t.Run("valid profile", func(t *testing.T) {
		assert.NoError(t, ValidateProfileJSON(validProfileJSON()))
	})

	t.Run("invalid json", func(t *testing.T) {
		err := ValidateProfileJSON("{not json")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not valid JSON")
	})

	t.Run("not an object", func(t *testing.T) {
		err := ValidateProfileJSON(`[1, 2, 3]`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be a JSON object")
	})

	t.Run("missing feature", func(t *testing.T) {
		profile := strings.Replace(validProfileJSON(), `"command_entropy"`, `"renamed_feature"`, 1)
		err := ValidateProfileJSON(profile)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "command_entropy")
	})

	t.Run("non-numeric mean", func(t *testing.T) {
		profile := strings.Replace(validProfileJSON(), `{"mean":1.5,"std":0.2}`, `{"mean":"high","std":0.2}`, 1)
		err := ValidateProfileJSON(profile)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no numeric mean")
	})

	t.Run("missing std", func(t *testing.T) {
		profile := strings.Replace(validProfileJSON(), `{"mean":1.5,"std":0.2}`, `{"mean":1.5}`, 1)
		err := ValidateProfileJSON(profile)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no numeric std")
	})

	t.Run("negative std", func(t *testing.T) {
		profile := strings.Replace(validProfileJSON(), `{"mean":1.5,"std":0.2}`, `{"mean":1.5,"std":-0.1}`, 1)
		err := ValidateProfileJSON(profile)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "negative std")
	})
}

func TestBaselineService_Create(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	baseline := func() *domain.BaselineProfile {
		return &domain.BaselineProfile{
			OperatorID:      "Op-1",
			BaselineVersion: "v1",
			TrainedFrom:     from,
			TrainedTo:       to,
			ProfileJSON:     validProfileJSON(),
		}
	}

	t.Run("persists valid baseline", func(t *testing.T) {
		repo := new(repository.MockBaselineRepository)
		svc := NewBaselineService(repo, logger.NewMockLogger())

		repo.On("Create", ctx, mock.AnythingOfType("*domain.BaselineProfile")).Return(nil)

		require.NoError(t, svc.Create(ctx, baseline()))
		repo.AssertExpectations(t)
	})

	t.Run("rejects inverted training window", func(t *testing.T) {
		repo := new(repository.MockBaselineRepository)
		svc := NewBaselineService(repo, logger.NewMockLogger())

		b := baseline()
		b.TrainedFrom, b.TrainedTo = b.TrainedTo, b.TrainedFrom

		err := svc.Create(ctx, b)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "trained_from must be before trained_to")
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects incomplete profile", func(t *testing.T) {
		repo := new(repository.MockBaselineRepository)
		svc := NewBaselineService(repo, logger.NewMockLogger())

		b := baseline()
		b.ProfileJSON = `{"command_frequency":{"mean":1.5,"std":0.2}}`

		err := svc.Create(ctx, b)
		require.Error(t, err)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("passes duplicate version through", func(t *testing.T) {
		repo := new(repository.MockBaselineRepository)
		svc := NewBaselineService(repo, logger.NewMockLogger())

		repo.On("Create", ctx, mock.AnythingOfType("*domain.BaselineProfile")).
			Return(&domain.ErrBaselineExists{OperatorID: "Op-1", BaselineVersion: "v1"})

		err := svc.Create(ctx, baseline())
		require.Error(t, err)
		assert.IsType(t, &domain.ErrBaselineExists{}, err)
	})
}

func TestBaselineService_GetLatest(t *testing.T) {
	ctx := context.Background()
	repo := new(repository.MockBaselineRepository)
	svc := NewBaselineService(repo, logger.NewMockLogger())

	shiftID := domain.DayShiftID
	expected := &domain.BaselineProfile{BaselineID: 4, OperatorID: "Op-1"}
	repo.On("GetLatest", ctx, "Op-1", &shiftID).Return(expected, nil)

	baseline, err := svc.GetLatest(ctx, "Op-1", &shiftID)
	require.NoError(t, err)
	assert.Equal(t, expected, baseline)
	repo.AssertExpectations(t)
}
