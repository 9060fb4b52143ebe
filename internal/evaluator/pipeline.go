package evaluator

import (
	"context"

	"claimlens/internal/domain"
	"claimlens/internal/ingest"
	"claimlens/internal/port"
	"claimlens/internal/prompt"
)

// Output carries a completed pipeline run: the validated result plus the
// documents it was evaluated against.
type Output struct {
	Result    *domain.EvaluationResult
	Documents []domain.Document
}

// Pipeline orchestrates one claim evaluation: ingest the uploaded files,
// compose the instruction payload, send it to the reasoning service, and
// validate the response. Stages run strictly in order; the first failing
// stage short-circuits the rest and its typed failure propagates unchanged.
// The pipeline holds no state across invocations and performs no
// persistence, caching or retries.
type Pipeline struct {
	ingestor  *ingest.Ingestor
	reasoner  port.Reasoner
	validator Validator
}

// NewPipeline creates a Pipeline over the given reasoner.
func NewPipeline(ingestor *ingest.Ingestor, r port.Reasoner, validator Validator) *Pipeline {
	return &Pipeline{
		ingestor:  ingestor,
		reasoner:  r,
		validator: validator,
	}
}

// Evaluate runs the full pipeline for one claim. It returns a fully
// validated result or one of the typed failures (IngestionError, AuthError,
// TransportError, ServiceError, SchemaError); never a partial result.
func (p *Pipeline) Evaluate(ctx context.Context, narrative string, sources []ingest.Source, credential string) (*Output, error) {
	docs, err := p.ingestor.Ingest(ctx, sources)
	if err != nil {
		return nil, err
	}

	payload := prompt.Compose(narrative, docs)

	raw, err := p.reasoner.Complete(ctx, payload, credential)
	if err != nil {
		return nil, err
	}

	result, err := p.validator.Validate(raw)
	if err != nil {
		return nil, err
	}

	return &Output{Result: result, Documents: docs}, nil
}
