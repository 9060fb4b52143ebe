package prompt

import (
	"strings"

	"claimlens/internal/domain"
)

// SystemInstruction fixes the assistant's role for the reasoning service.
// It is sent as the system turn on every request.
const SystemInstruction = `You are an insurance claim evaluation assistant. You analyze medical insurance claims against policy documents and respond ONLY with a valid JSON object matching the requested schema. Never include markdown formatting, code fences, or prose outside the JSON object.`

// schemaBlock is the literal output schema the reasoning service must
// follow. Field names and decision literals are part of the wire contract
// the response validator checks against.
const schemaBlock = `Respond with a single JSON object using exactly this structure:
{
  "parsedQuery": {
    "age": 0,
    "gender": "",
    "procedure": "",
    "location": "",
    "policyDuration": ""
  },
  "decision": "Approved" | "Rejected" | "More Info Needed",
  "amount": null,
  "justification": [
    {
      "title": "",
      "pageNumber": 1,
      "snippet": "",
      "reasoning": ""
    }
  ]
}

Rules:
- "decision" must be exactly one of: "Approved", "Rejected", "More Info Needed".
- Omit parsedQuery fields that cannot be extracted from the claim description.
- "amount" is the estimated covered amount as a number, or null when it cannot be derived.
- Each justification entry must quote the relevant policy clause in "snippet" and explain its bearing on the decision in "reasoning".
- Include the page number of the clause when it can be determined.
- Respond with the JSON object only, no surrounding text.`

// Compose builds the single instruction payload sent as the user turn:
// role statement, the verbatim claim narrative, each policy document under
// a named delimiter in ingestion order, the literal output schema, and the
// behavioral guidance. Deterministic for identical inputs.
func Compose(narrative string, documents []domain.Document) string {
	var b strings.Builder

	b.WriteString("Evaluate the following medical insurance claim against the attached policy documents.\n\n")

	b.WriteString("CLAIM DESCRIPTION:\n")
	b.WriteString(narrative)
	b.WriteString("\n\n")

	b.WriteString("POLICY DOCUMENTS:\n")
	if len(documents) == 0 {
		b.WriteString("(no policy documents were provided)\n")
	}
	for _, doc := range documents {
		b.WriteString("--- Document: ")
		b.WriteString(doc.Name)
		b.WriteString(" ---\n")
		b.WriteString(doc.Text)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString("TASK:\n")
	b.WriteString("1. Extract the structured fields (age, gender, procedure, location, policy duration) from the claim description.\n")
	b.WriteString("2. Locate the policy clauses relevant to the claim: exclusions, waiting periods, and coverage limits.\n")
	b.WriteString("3. Decide whether the claim is Approved, Rejected, or More Info Needed, and justify the decision with the located clauses.\n")
	b.WriteString("4. Estimate the covered amount when the policy makes it derivable.\n\n")

	b.WriteString(schemaBlock)

	return b.String()
}
