package prompt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"claimlens/internal/domain"
	"claimlens/internal/prompt"
)

func TestCompose_Deterministic(t *testing.T) {
	docs := []domain.Document{
		{Name: "policy-a.txt", Text: "Clause 1"},
		{Name: "policy-b.txt", Text: "Clause 2"},
	}

	first := prompt.Compose("46M, knee surgery in Pune", docs)
	second := prompt.Compose("46M, knee surgery in Pune", docs)

	assert.Equal(t, first, second)
}

func TestCompose_ContainsNarrativeVerbatim(t *testing.T) {
	narrative := "46-year-old male, knee surgery in Pune, 3-month-old insurance policy"

	payload := prompt.Compose(narrative, nil)

	assert.Contains(t, payload, narrative)
}

func TestCompose_DocumentsDelimitedInOrder(t *testing.T) {
	docs := []domain.Document{
		{Name: "base-policy.txt", Text: "Base policy terms"},
		{Name: "rider.txt", Text: "Rider terms"},
	}

	payload := prompt.Compose("claim", docs)

	firstIdx := strings.Index(payload, "--- Document: base-policy.txt ---")
	secondIdx := strings.Index(payload, "--- Document: rider.txt ---")
	assert.GreaterOrEqual(t, firstIdx, 0)
	assert.Greater(t, secondIdx, firstIdx)
	assert.Contains(t, payload, "Base policy terms")
	assert.Contains(t, payload, "Rider terms")
}

func TestCompose_EmptyDocumentSetIsMarked(t *testing.T) {
	payload := prompt.Compose("claim", nil)

	assert.Contains(t, payload, "(no policy documents were provided)")
	assert.NotContains(t, payload, "--- Document:")
}

func TestCompose_EmbedsWireSchema(t *testing.T) {
	payload := prompt.Compose("claim", nil)

	// The schema literals are a wire contract; the validator checks the
	// same field names on the way back.
	assert.Contains(t, payload, `"parsedQuery"`)
	assert.Contains(t, payload, `"decision"`)
	assert.Contains(t, payload, `"justification"`)
	assert.Contains(t, payload, `"policyDuration"`)
	assert.Contains(t, payload, `"pageNumber"`)
	assert.Contains(t, payload, `"Approved", "Rejected", "More Info Needed"`)
}

func TestSystemInstruction_DemandsJSONOnly(t *testing.T) {
	assert.Contains(t, prompt.SystemInstruction, "JSON")
	assert.Contains(t, prompt.SystemInstruction, "insurance claim")
}
