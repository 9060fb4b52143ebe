package evaluator_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claimlens/internal/domain"
	"claimlens/internal/evaluator"
)

const validResponse = `{
	"parsedQuery": {"age": 46, "gender": "male", "procedure": "knee surgery", "location": "Pune", "policyDuration": "3 months"},
	"decision": "Approved",
	"amount": 150000,
	"justification": [
		{"title": "Orthopedic coverage", "pageNumber": 12, "snippet": "Knee procedures are covered", "reasoning": "The procedure falls under orthopedic coverage."}
	]
}`

func TestValidate_Success(t *testing.T) {
	v := evaluator.Validator{}

	result, err := v.Validate(validResponse)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, domain.DecisionApproved, result.Decision)
	require.NotNil(t, result.ParsedQuery.Age)
	assert.Equal(t, 46, *result.ParsedQuery.Age)
	require.NotNil(t, result.Amount)
	assert.Equal(t, float64(150000), *result.Amount)
	require.Len(t, result.Justification, 1)
	assert.Equal(t, "Orthopedic coverage", result.Justification[0].Title)
}

func TestValidate_NotJSON(t *testing.T) {
	v := evaluator.Validator{}

	result, err := v.Validate("I'm sorry, I cannot evaluate this claim.")

	assert.Nil(t, result)
	var schemaErr *evaluator.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "response was not valid JSON", schemaErr.Reason)
	assert.Equal(t, "I'm sorry, I cannot evaluate this claim.", schemaErr.Raw)
}

func TestValidate_MissingFieldsNamed(t *testing.T) {
	v := evaluator.Validator{}

	result, err := v.Validate(`{"parsedQuery": {}}`)

	assert.Nil(t, result)
	var schemaErr *evaluator.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, []string{"decision", "justification"}, schemaErr.Missing)
	assert.Contains(t, err.Error(), "decision")
	assert.Contains(t, err.Error(), "justification")
}

func TestValidate_StructureMismatch(t *testing.T) {
	v := evaluator.Validator{}

	// justification must be an array, not a string.
	result, err := v.Validate(`{"parsedQuery": {}, "decision": "Approved", "justification": "because"}`)

	assert.Nil(t, result)
	var schemaErr *evaluator.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Contains(t, schemaErr.Reason, "did not match the expected structure")
}

func TestValidate_NullAmountIsValid(t *testing.T) {
	v := evaluator.Validator{}

	result, err := v.Validate(`{"parsedQuery": {}, "decision": "Rejected", "amount": null, "justification": []}`)

	require.NoError(t, err)
	assert.Nil(t, result.Amount)
	assert.Empty(t, result.Justification)
}

func TestValidate_UnknownDecisionPassesByDefault(t *testing.T) {
	v := evaluator.Validator{}

	result, err := v.Validate(`{"parsedQuery": {}, "decision": "Maybe", "justification": []}`)

	require.NoError(t, err)
	assert.Equal(t, domain.Decision("Maybe"), result.Decision)
}

func TestValidate_StrictRejectsUnknownDecision(t *testing.T) {
	v := evaluator.Validator{Strict: true}

	result, err := v.Validate(`{"parsedQuery": {}, "decision": "Maybe", "justification": []}`)

	assert.Nil(t, result)
	var decisionErr *evaluator.UnrecognizedDecisionError
	require.True(t, errors.As(err, &decisionErr))
	assert.Equal(t, "Maybe", decisionErr.Decision)
	assert.Contains(t, err.Error(), "More Info Needed")
}

func TestValidate_StrictAcceptsKnownDecisions(t *testing.T) {
	v := evaluator.Validator{Strict: true}

	for _, decision := range []string{"Approved", "Rejected", "More Info Needed"} {
		result, err := v.Validate(`{"parsedQuery": {}, "decision": "` + decision + `", "justification": []}`)
		require.NoError(t, err, "decision %q should validate", decision)
		assert.Equal(t, domain.Decision(decision), result.Decision)
	}
}

func TestValidate_EmptyParsedQueryIsValid(t *testing.T) {
	v := evaluator.Validator{}

	result, err := v.Validate(`{"parsedQuery": {}, "decision": "More Info Needed", "justification": []}`)

	require.NoError(t, err)
	assert.Nil(t, result.ParsedQuery.Age)
	assert.Empty(t, result.ParsedQuery.Procedure)
}
