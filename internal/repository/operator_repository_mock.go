package repository

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bctala/OPSIGHT/internal/domain"
)

// MockOperatorRepository is a mock implementation of the OperatorRepository interface
type MockOperatorRepository struct {
	mock.Mock
}

func (m *MockOperatorRepository) Create(ctx context.Context, operator *domain.Operator) error {
	args := m.Called(ctx, operator)
	return args.Error(0)
}

func (m *MockOperatorRepository) Get(ctx context.Context, operatorID string) (*domain.Operator, error) {
	args := m.Called(ctx, operatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Operator), args.Error(1)
}

func (m *MockOperatorRepository) List(ctx context.Context) ([]*domain.Operator, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Operator), args.Error(1)
}

func (m *MockOperatorRepository) EnsureExist(ctx context.Context, operatorIDs []string) (int, error) {
	args := m.Called(ctx, operatorIDs)
	return args.Int(0), args.Error(1)
}

func (m *MockOperatorRepository) AssignCrew(ctx context.Context, operatorID string, crewID int) error {
	args := m.Called(ctx, operatorID, crewID)
	return args.Error(0)
}

func (m *MockOperatorRepository) SetDefaultShift(ctx context.Context, operatorID string, shiftID int) error {
	args := m.Called(ctx, operatorID, shiftID)
	return args.Error(0)
}

func (m *MockOperatorRepository) Delete(ctx context.Context, operatorID string) error {
	args := m.Called(ctx, operatorID)
	return args.Error(0)
}
