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

type policyFileRepo struct {
	db *sqlx.DB
}

// NewPolicyFileRepo creates a new PostgreSQL-backed PolicyFileRepository.
func NewPolicyFileRepo(db *sqlx.DB) port.PolicyFileRepository {
	return &policyFileRepo{db: db}
}

func (r *policyFileRepo) Create(ctx context.Context, meta *domain.PolicyFile) error {
	now := time.Now().UTC()
	meta.CreatedAt = now
	meta.UpdatedAt = now

	query := `INSERT INTO policy_files
		(id, file_name, original_name, file_type, file_size,
		 s3_bucket, s3_key, content_type, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		meta.ID, meta.FileName, meta.OriginalName, meta.FileType, meta.FileSize,
		meta.S3Bucket, meta.S3Key, meta.ContentType, meta.Status,
		meta.CreatedAt, meta.UpdatedAt)
	if err != nil {
		return fmt.Errorf("policyFileRepo.Create: %w", err)
	}
	return nil
}

func (r *policyFileRepo) GetByID(ctx context.Context, fileID uuid.UUID) (*domain.PolicyFile, error) {
	var meta domain.PolicyFile
	err := r.db.GetContext(ctx, &meta,
		"SELECT * FROM policy_files WHERE id = $1 AND status != $2",
		fileID, domain.FileStatusDeleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("policyFileRepo.GetByID: %w", err)
	}
	return &meta, nil
}

func (r *policyFileRepo) List(ctx context.Context, offset, limit int) ([]domain.PolicyFile, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM policy_files WHERE status != $1", domain.FileStatusDeleted)
	if err != nil {
		return nil, 0, fmt.Errorf("policyFileRepo.List count: %w", err)
	}

	var files []domain.PolicyFile
	err = r.db.SelectContext(ctx, &files,
		`SELECT * FROM policy_files
		 WHERE status != $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		domain.FileStatusDeleted, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("policyFileRepo.List: %w", err)
	}
	return files, total, nil
}

func (r *policyFileRepo) UpdateStatus(ctx context.Context, fileID uuid.UUID, status domain.FileStatus) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE policy_files SET status = $1, updated_at = $2 WHERE id = $3",
		status, time.Now().UTC(), fileID)
	if err != nil {
		return fmt.Errorf("policyFileRepo.UpdateStatus: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *policyFileRepo) Delete(ctx context.Context, fileID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE policy_files SET status = $1, updated_at = $2 WHERE id = $3",
		domain.FileStatusDeleted, time.Now().UTC(), fileID)
	if err != nil {
		return fmt.Errorf("policyFileRepo.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
