package evaluator

import (
	"encoding/json"
	"fmt"
	"strings"

	"claimlens/internal/domain"
)

// SchemaError indicates the reasoning service's raw output was not valid
// structured data or was missing required structure. Raw preserves the
// original text for diagnostic logging by the caller; it is never discarded
// silently.
type SchemaError struct {
	Reason  string
	Missing []string
	Raw     string
}

func (e *SchemaError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("response missing required field(s): %s", strings.Join(e.Missing, ", "))
	}
	return e.Reason
}

// UnrecognizedDecisionError indicates the response carried a decision
// literal outside the three the wire schema requests. Only produced when
// strict validation is enabled.
type UnrecognizedDecisionError struct {
	Decision string
}

func (e *UnrecognizedDecisionError) Error() string {
	return fmt.Sprintf("unrecognized decision %q: expected Approved, Rejected, or More Info Needed", e.Decision)
}

// requiredFields are the top-level keys every response must carry.
var requiredFields = []string{"parsedQuery", "decision", "justification"}

// Validator parses and checks raw reasoning-service output against the
// expected schema.
type Validator struct {
	// Strict additionally rejects decision literals outside the requested
	// set. Off by default: inner field constraints are the reasoning
	// service's responsibility and historically were not enforced on
	// receipt.
	Strict bool
}

// Validate parses raw as one structured value and checks the required
// top-level fields. On success the parsed value is returned typed as an
// EvaluationResult with no further normalization.
func (v Validator) Validate(raw string) (*domain.EvaluationResult, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &top); err != nil {
		return nil, &SchemaError{
			Reason: "response was not valid JSON",
			Raw:    raw,
		}
	}

	var missing []string
	for _, field := range requiredFields {
		if _, ok := top[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing, Raw: raw}
	}

	var result domain.EvaluationResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, &SchemaError{
			Reason: fmt.Sprintf("response did not match the expected structure: %v", err),
			Raw:    raw,
		}
	}

	if v.Strict && !result.Decision.Valid() {
		return nil, &UnrecognizedDecisionError{Decision: string(result.Decision)}
	}

	return &result, nil
}
