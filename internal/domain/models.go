package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Document is one policy document converted to analyzable text.
// Created per evaluation invocation and discarded when it completes.
type Document struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// ParsedQuery holds the structured fields the reasoning service extracted
// from the claim narrative. Every field is optional: absence means the field
// was not extractable, not that the narrative was invalid.
type ParsedQuery struct {
	Age            *int   `json:"age,omitempty"`
	Gender         string `json:"gender,omitempty"`
	Procedure      string `json:"procedure,omitempty"`
	Location       string `json:"location,omitempty"`
	PolicyDuration string `json:"policyDuration,omitempty"`
}

// PolicyClause is one piece of evidence from the policy documents
// supporting the coverage decision.
type PolicyClause struct {
	Title      string `json:"title"`
	PageNumber *int   `json:"pageNumber,omitempty"`
	Snippet    string `json:"snippet"`
	Reasoning  string `json:"reasoning"`
}

// EvaluationResult is the validated coverage decision returned by the
// pipeline. Amount is only semantically meaningful when Decision is
// Approved, but may be present regardless. Justification may be empty;
// an unjustified decision is structurally valid.
type EvaluationResult struct {
	ParsedQuery   ParsedQuery    `json:"parsedQuery"`
	Decision      Decision       `json:"decision"`
	Amount        *float64       `json:"amount,omitempty"`
	Justification []PolicyClause `json:"justification"`
}

// PolicyFile stores metadata about a policy document kept in the library.
type PolicyFile struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	FileName     string     `db:"file_name" json:"file_name"`
	OriginalName string     `db:"original_name" json:"original_name"`
	FileType     FileType   `db:"file_type" json:"file_type"`
	FileSize     int64      `db:"file_size" json:"file_size"`
	S3Bucket     string     `db:"s3_bucket" json:"s3_bucket"`
	S3Key        string     `db:"s3_key" json:"s3_key"`
	ContentType  string     `db:"content_type" json:"content_type"`
	Status       FileStatus `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Evaluation records one pipeline run for the history view. The pipeline
// itself never persists anything; the evaluation service writes this record
// after the run finishes.
type Evaluation struct {
	ID            uuid.UUID        `db:"id" json:"id"`
	Narrative     string           `db:"narrative" json:"narrative"`
	DocumentNames json.RawMessage  `db:"document_names" json:"document_names"`
	Model         string           `db:"model" json:"model"`
	Status        EvaluationStatus `db:"status" json:"status"`
	Decision      Decision         `db:"decision" json:"decision,omitempty"`
	Amount        *float64         `db:"amount" json:"amount,omitempty"`
	ClauseCount   int              `db:"clause_count" json:"clause_count"`
	Result        json.RawMessage  `db:"result" json:"result,omitempty"`
	FailureKind   string           `db:"failure_kind" json:"failure_kind,omitempty"`
	FailureDetail string           `db:"failure_detail" json:"failure_detail,omitempty"`
	CreatedAt     time.Time        `db:"created_at" json:"created_at"`
}
