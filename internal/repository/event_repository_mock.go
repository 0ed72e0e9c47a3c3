package repository

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bctala/OPSIGHT/internal/domain"
)

// MockEventRepository is a mock implementation of the EventRepository interface
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Insert(ctx context.Context, event *domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) BulkInsert(ctx context.Context, events []*domain.Event) (int64, error) {
	args := m.Called(ctx, events)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEventRepository) Get(ctx context.Context, eventID int64) (*domain.Event, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventRepository) List(ctx context.Context, params domain.EventListParams) ([]*domain.Event, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Event), args.Get(1).(int64), args.Error(2)
}

func (m *MockEventRepository) CountBySession(ctx context.Context, sessionID int64) (int64, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(int64), args.Error(1)
}
