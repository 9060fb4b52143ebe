package port

import (
	"context"

	"github.com/google/uuid"

	"claimlens/internal/domain"
)

// PolicyFileRepository persists policy document metadata.
type PolicyFileRepository interface {
	Create(ctx context.Context, meta *domain.PolicyFile) error
	GetByID(ctx context.Context, fileID uuid.UUID) (*domain.PolicyFile, error)
	List(ctx context.Context, offset, limit int) ([]domain.PolicyFile, int, error)
	UpdateStatus(ctx context.Context, fileID uuid.UUID, status domain.FileStatus) error
	Delete(ctx context.Context, fileID uuid.UUID) error
}
