package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"claimlens/internal/domain"
)

// MockPolicyFileRepo is a mock implementation of port.PolicyFileRepository.
type MockPolicyFileRepo struct {
	mock.Mock
}

func (m *MockPolicyFileRepo) Create(ctx context.Context, meta *domain.PolicyFile) error {
	args := m.Called(ctx, meta)
	return args.Error(0)
}

func (m *MockPolicyFileRepo) GetByID(ctx context.Context, fileID uuid.UUID) (*domain.PolicyFile, error) {
	args := m.Called(ctx, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PolicyFile), args.Error(1)
}

func (m *MockPolicyFileRepo) List(ctx context.Context, offset, limit int) ([]domain.PolicyFile, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.PolicyFile), args.Int(1), args.Error(2)
}

func (m *MockPolicyFileRepo) UpdateStatus(ctx context.Context, fileID uuid.UUID, status domain.FileStatus) error {
	args := m.Called(ctx, fileID, status)
	return args.Error(0)
}

func (m *MockPolicyFileRepo) Delete(ctx context.Context, fileID uuid.UUID) error {
	args := m.Called(ctx, fileID)
	return args.Error(0)
}
