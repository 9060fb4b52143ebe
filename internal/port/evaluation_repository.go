package port

import (
	"context"

	"github.com/google/uuid"

	"claimlens/internal/domain"
)

// EvaluationRepository persists finished evaluation runs for the history view.
type EvaluationRepository interface {
	Create(ctx context.Context, eval *domain.Evaluation) error
	GetByID(ctx context.Context, evalID uuid.UUID) (*domain.Evaluation, error)
	List(ctx context.Context, offset, limit int) ([]domain.Evaluation, int, error)
	ListAll(ctx context.Context) ([]domain.Evaluation, error)
	Delete(ctx context.Context, evalID uuid.UUID) error
}
