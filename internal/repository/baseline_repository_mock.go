package repository

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bctala/OPSIGHT/internal/domain"
)

// MockBaselineRepository is a mock implementation of the BaselineRepository interface
type MockBaselineRepository struct {
	mock.Mock
}

func (m *MockBaselineRepository) Create(ctx context.Context, baseline *domain.BaselineProfile) error {
	args := m.Called(ctx, baseline)
	return args.Error(0)
}

func (m *MockBaselineRepository) Get(ctx context.Context, baselineID int) (*domain.BaselineProfile, error) {
	args := m.Called(ctx, baselineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BaselineProfile), args.Error(1)
}

func (m *MockBaselineRepository) GetLatest(ctx context.Context, operatorID string, shiftID *int) (*domain.BaselineProfile, error) {
	args := m.Called(ctx, operatorID, shiftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BaselineProfile), args.Error(1)
}

func (m *MockBaselineRepository) ListByOperator(ctx context.Context, operatorID string) ([]*domain.BaselineProfile, error) {
	args := m.Called(ctx, operatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.BaselineProfile), args.Error(1)
}

func (m *MockBaselineRepository) Delete(ctx context.Context, baselineID int) error {
	args := m.Called(ctx, baselineID)
	return args.Error(0)
}
