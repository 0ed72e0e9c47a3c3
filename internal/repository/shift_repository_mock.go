package repository

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bctala/OPSIGHT/internal/domain"
)

// MockShiftRepository is a mock implementation of the ShiftRepository interface
type MockShiftRepository struct {
	mock.Mock
}

func (m *MockShiftRepository) CreateDefinition(ctx context.Context, def *domain.ShiftDefinition) error {
	args := m.Called(ctx, def)
	return args.Error(0)
}

func (m *MockShiftRepository) GetDefinition(ctx context.Context, shiftID int) (*domain.ShiftDefinition, error) {
	args := m.Called(ctx, shiftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShiftDefinition), args.Error(1)
}

func (m *MockShiftRepository) GetDefinitionByName(ctx context.Context, name string) (*domain.ShiftDefinition, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShiftDefinition), args.Error(1)
}

func (m *MockShiftRepository) ListDefinitions(ctx context.Context) ([]*domain.ShiftDefinition, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ShiftDefinition), args.Error(1)
}

func (m *MockShiftRepository) NameToID(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockShiftRepository) DeleteDefinition(ctx context.Context, shiftID int) error {
	args := m.Called(ctx, shiftID)
	return args.Error(0)
}

func (m *MockShiftRepository) CreateInstance(ctx context.Context, instance *domain.ShiftInstance) error {
	args := m.Called(ctx, instance)
	return args.Error(0)
}

func (m *MockShiftRepository) GetInstance(ctx context.Context, shiftInstanceID int) (*domain.ShiftInstance, error) {
	args := m.Called(ctx, shiftInstanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShiftInstance), args.Error(1)
}

func (m *MockShiftRepository) ListInstances(ctx context.Context, params domain.ShiftInstanceListParams) ([]*domain.ShiftInstance, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ShiftInstance), args.Error(1)
}

func (m *MockShiftRepository) DeleteInstance(ctx context.Context, shiftInstanceID int) error {
	args := m.Called(ctx, shiftInstanceID)
	return args.Error(0)
}
