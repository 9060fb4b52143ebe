package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"claimlens/internal/domain"
	"claimlens/internal/service"
)

// MockFileService is a mock implementation of service.FileService.
type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) Upload(ctx context.Context, input service.FileUploadInput) (*domain.PolicyFile, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PolicyFile), args.Error(1)
}

func (m *MockFileService) GetByID(ctx context.Context, fileID uuid.UUID) (*domain.PolicyFile, error) {
	args := m.Called(ctx, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PolicyFile), args.Error(1)
}

func (m *MockFileService) List(ctx context.Context, offset, limit int) ([]domain.PolicyFile, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.PolicyFile), args.Int(1), args.Error(2)
}

func (m *MockFileService) GetDownloadURL(ctx context.Context, fileID uuid.UUID) (string, error) {
	args := m.Called(ctx, fileID)
	return args.String(0), args.Error(1)
}

func (m *MockFileService) Fetch(ctx context.Context, fileID uuid.UUID) (*domain.PolicyFile, []byte, error) {
	args := m.Called(ctx, fileID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.PolicyFile), args.Get(1).([]byte), args.Error(2)
}

func (m *MockFileService) Delete(ctx context.Context, fileID uuid.UUID) error {
	args := m.Called(ctx, fileID)
	return args.Error(0)
}
