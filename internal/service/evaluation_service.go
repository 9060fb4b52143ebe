package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"claimlens/internal/config"
	"claimlens/internal/domain"
	"claimlens/internal/evaluator"
	"claimlens/internal/ingest"
	"claimlens/internal/port"
	"claimlens/internal/reasoner"
)

// EvaluateInput is the DTO for claim evaluation requests. Uploads are
// directly attached files; PolicyFileIDs reference stored library files
// that are downloaded and appended after the uploads, in the given order.
type EvaluateInput struct {
	Narrative     string
	Uploads       []ingest.Source
	PolicyFileIDs []uuid.UUID
	Credential    string // optional per-request override of the configured key
}

// EvaluationService runs the claim evaluation pipeline and records each
// finished run. The pipeline itself stays persistence-free; history is a
// service-layer concern.
type EvaluationService interface {
	Evaluate(ctx context.Context, input EvaluateInput) (*domain.Evaluation, error)
	GetByID(ctx context.Context, evalID uuid.UUID) (*domain.Evaluation, error)
	List(ctx context.Context, offset, limit int) ([]domain.Evaluation, int, error)
	ListAll(ctx context.Context) ([]domain.Evaluation, error)
	Delete(ctx context.Context, evalID uuid.UUID) error
}

type evaluationService struct {
	pipeline *evaluator.Pipeline
	evalRepo port.EvaluationRepository
	fileSvc  FileService
	cfg      *config.ReasonerConfig
}

// NewEvaluationService creates a new EvaluationService implementation.
func NewEvaluationService(
	pipeline *evaluator.Pipeline,
	evalRepo port.EvaluationRepository,
	fileSvc FileService,
	cfg *config.ReasonerConfig,
) EvaluationService {
	return &evaluationService{
		pipeline: pipeline,
		evalRepo: evalRepo,
		fileSvc:  fileSvc,
		cfg:      cfg,
	}
}

func (s *evaluationService) Evaluate(ctx context.Context, input EvaluateInput) (*domain.Evaluation, error) {
	if input.Narrative == "" {
		return nil, domain.ErrEmptyNarrative
	}

	credential := input.Credential
	if credential == "" {
		credential = s.cfg.APIKey
	}

	sources := input.Uploads
	for _, fileID := range input.PolicyFileIDs {
		meta, data, err := s.fileSvc.Fetch(ctx, fileID)
		if err != nil {
			return nil, err
		}
		sources = append(sources, ingest.FromBytes(meta.OriginalName, meta.ContentType, data))
	}

	out, err := s.pipeline.Evaluate(ctx, input.Narrative, sources, credential)
	if err != nil {
		s.recordFailure(ctx, input.Narrative, sources, err)
		return nil, err
	}

	eval := &domain.Evaluation{
		ID:            uuid.New(),
		Narrative:     input.Narrative,
		DocumentNames: marshalNames(sourceNames(sources)),
		Model:         s.cfg.DefaultModel,
		Status:        domain.EvaluationStatusCompleted,
		Decision:      out.Result.Decision,
		Amount:        out.Result.Amount,
		ClauseCount:   len(out.Result.Justification),
	}
	resultJSON, err := json.Marshal(out.Result)
	if err != nil {
		return nil, fmt.Errorf("marshaling evaluation result: %w", err)
	}
	eval.Result = resultJSON

	if err := s.evalRepo.Create(ctx, eval); err != nil {
		// The decision is already in hand; losing the history row should
		// not fail the evaluation.
		log.Printf("evaluationService.Evaluate: failed to record run: %v", err)
	}

	return eval, nil
}

// recordFailure writes a failed run to the history. A SchemaError's raw
// reasoner text is logged here so it is never silently discarded.
func (s *evaluationService) recordFailure(ctx context.Context, narrative string, sources []ingest.Source, evalErr error) {
	var schemaErr *evaluator.SchemaError
	if errors.As(evalErr, &schemaErr) {
		log.Printf("evaluationService.Evaluate: unvalidatable reasoner output: %s", truncate(schemaErr.Raw, 500))
	}

	eval := &domain.Evaluation{
		ID:            uuid.New(),
		Narrative:     narrative,
		DocumentNames: marshalNames(sourceNames(sources)),
		Model:         s.cfg.DefaultModel,
		Status:        domain.EvaluationStatusFailed,
		FailureKind:   FailureKind(evalErr),
		FailureDetail: evalErr.Error(),
	}
	if err := s.evalRepo.Create(ctx, eval); err != nil {
		log.Printf("evaluationService.recordFailure: failed to record run: %v", err)
	}
}

func (s *evaluationService) GetByID(ctx context.Context, evalID uuid.UUID) (*domain.Evaluation, error) {
	return s.evalRepo.GetByID(ctx, evalID)
}

func (s *evaluationService) List(ctx context.Context, offset, limit int) ([]domain.Evaluation, int, error) {
	return s.evalRepo.List(ctx, offset, limit)
}

func (s *evaluationService) ListAll(ctx context.Context) ([]domain.Evaluation, error) {
	return s.evalRepo.ListAll(ctx)
}

func (s *evaluationService) Delete(ctx context.Context, evalID uuid.UUID) error {
	return s.evalRepo.Delete(ctx, evalID)
}

// FailureKind classifies a pipeline error into its taxonomy name for the
// history record.
func FailureKind(err error) string {
	var (
		ingestErr    *ingest.IngestionError
		authErr      *reasoner.AuthError
		transportErr *reasoner.TransportError
		serviceErr   *reasoner.ServiceError
		schemaErr    *evaluator.SchemaError
		decisionErr  *evaluator.UnrecognizedDecisionError
	)
	switch {
	case errors.As(err, &ingestErr):
		return "ingestion_error"
	case errors.As(err, &authErr):
		return "auth_error"
	case errors.As(err, &transportErr):
		return "transport_error"
	case errors.As(err, &serviceErr):
		return "service_error"
	case errors.As(err, &schemaErr):
		return "schema_error"
	case errors.As(err, &decisionErr):
		return "unrecognized_decision"
	default:
		return "internal_error"
	}
}

func sourceNames(sources []ingest.Source) []string {
	names := make([]string, len(sources))
	for i, src := range sources {
		names[i] = src.Name
	}
	return names
}

func marshalNames(names []string) json.RawMessage {
	data, err := json.Marshal(names)
	if err != nil {
		return json.RawMessage("[]")
	}
	return data
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
