package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"claimlens/internal/domain"
	"claimlens/internal/port"
)

type evaluationRepo struct {
	db *sqlx.DB
}

// NewEvaluationRepo creates a new PostgreSQL-backed EvaluationRepository.
func NewEvaluationRepo(db *sqlx.DB) port.EvaluationRepository {
	return &evaluationRepo{db: db}
}

func (r *evaluationRepo) Create(ctx context.Context, eval *domain.Evaluation) error {
	eval.CreatedAt = time.Now().UTC()

	query := `INSERT INTO evaluations
		(id, narrative, document_names, model, status, decision, amount,
		 clause_count, result, failure_kind, failure_detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		eval.ID, eval.Narrative, eval.DocumentNames, eval.Model, eval.Status,
		eval.Decision, eval.Amount, eval.ClauseCount, eval.Result,
		eval.FailureKind, eval.FailureDetail, eval.CreatedAt)
	if err != nil {
		return fmt.Errorf("evaluationRepo.Create: %w", err)
	}
	return nil
}

func (r *evaluationRepo) GetByID(ctx context.Context, evalID uuid.UUID) (*domain.Evaluation, error) {
	var eval domain.Evaluation
	err := r.db.GetContext(ctx, &eval,
		"SELECT * FROM evaluations WHERE id = $1", evalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("evaluationRepo.GetByID: %w", err)
	}
	return &eval, nil
}

func (r *evaluationRepo) List(ctx context.Context, offset, limit int) ([]domain.Evaluation, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM evaluations")
	if err != nil {
		return nil, 0, fmt.Errorf("evaluationRepo.List count: %w", err)
	}

	var evals []domain.Evaluation
	err = r.db.SelectContext(ctx, &evals,
		"SELECT * FROM evaluations ORDER BY created_at DESC LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("evaluationRepo.List: %w", err)
	}
	return evals, total, nil
}

func (r *evaluationRepo) ListAll(ctx context.Context) ([]domain.Evaluation, error) {
	var evals []domain.Evaluation
	err := r.db.SelectContext(ctx, &evals,
		"SELECT * FROM evaluations ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("evaluationRepo.ListAll: %w", err)
	}
	return evals, nil
}

func (r *evaluationRepo) Delete(ctx context.Context, evalID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM evaluations WHERE id = $1", evalID)
	if err != nil {
		return fmt.Errorf("evaluationRepo.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
