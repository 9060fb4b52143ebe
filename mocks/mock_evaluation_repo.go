package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"claimlens/internal/domain"
)

// MockEvaluationRepo is a mock implementation of port.EvaluationRepository.
type MockEvaluationRepo struct {
	mock.Mock
}

func (m *MockEvaluationRepo) Create(ctx context.Context, eval *domain.Evaluation) error {
	args := m.Called(ctx, eval)
	return args.Error(0)
}

func (m *MockEvaluationRepo) GetByID(ctx context.Context, evalID uuid.UUID) (*domain.Evaluation, error) {
	args := m.Called(ctx, evalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Evaluation), args.Error(1)
}

func (m *MockEvaluationRepo) List(ctx context.Context, offset, limit int) ([]domain.Evaluation, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Evaluation), args.Int(1), args.Error(2)
}

func (m *MockEvaluationRepo) ListAll(ctx context.Context) ([]domain.Evaluation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Evaluation), args.Error(1)
}

func (m *MockEvaluationRepo) Delete(ctx context.Context, evalID uuid.UUID) error {
	args := m.Called(ctx, evalID)
	return args.Error(0)
}
