package repository

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bctala/OPSIGHT/internal/domain"
)

// MockImportJobRepository is a mock implementation of the ImportJobRepository interface
type MockImportJobRepository struct {
	mock.Mock
}

func (m *MockImportJobRepository) Create(ctx context.Context, job *domain.ImportJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockImportJobRepository) Get(ctx context.Context, id string) (*domain.ImportJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImportJob), args.Error(1)
}

func (m *MockImportJobRepository) MarkRunning(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockImportJobRepository) MarkCompleted(ctx context.Context, id string, counters domain.ImportCounters) error {
	args := m.Called(ctx, id, counters)
	return args.Error(0)
}

func (m *MockImportJobRepository) MarkFailed(ctx context.Context, id string, counters domain.ImportCounters, errorMessage string) error {
	args := m.Called(ctx, id, counters, errorMessage)
	return args.Error(0)
}

func (m *MockImportJobRepository) ListRecent(ctx context.Context, limit int) ([]*domain.ImportJob, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ImportJob), args.Error(1)
}
