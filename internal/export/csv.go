package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"claimlens/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the export header row (16 columns).
var columns = []string{
	"Evaluation ID",
	"Created At",
	"Status",
	"Model",
	"Documents",
	"Narrative",
	"Decision",
	"Approved Amount",
	"Clause Count",
	"Patient Age",
	"Gender",
	"Procedure",
	"Location",
	"Policy Duration",
	"Failure Kind",
	"Failure Detail",
}

// CSVWriter wraps csv.Writer for exporting evaluation history as CSV.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes CSV to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the 16-column header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteEvaluations converts a batch of evaluations to CSV rows and writes them.
func (w *CSVWriter) WriteEvaluations(evals []domain.Evaluation) error {
	for i := range evals {
		row := evaluationToRow(&evals[i])
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

// evaluationToRow converts a single evaluation to a 16-element string slice.
// If the run failed or the stored result JSON is invalid, the metadata
// columns are filled and the decision columns are left empty.
func evaluationToRow(eval *domain.Evaluation) []string {
	row := make([]string, len(columns))

	// Metadata columns (always filled)
	row[0] = eval.ID.String()
	row[1] = eval.CreatedAt.Format(time.RFC3339)
	row[2] = string(eval.Status)
	row[3] = eval.Model
	row[4] = joinDocumentNames(eval.DocumentNames)
	row[5] = eval.Narrative
	row[14] = eval.FailureKind
	row[15] = eval.FailureDetail

	// Decision columns: only if the run completed and the result is valid
	if eval.Status != domain.EvaluationStatusCompleted || len(eval.Result) == 0 {
		return row
	}

	var result domain.EvaluationResult
	if err := json.Unmarshal(eval.Result, &result); err != nil {
		return row
	}

	row[6] = string(result.Decision)
	row[7] = formatAmount(result.Amount)
	row[8] = strconv.Itoa(len(result.Justification))
	row[9] = formatAge(result.ParsedQuery.Age)
	row[10] = result.ParsedQuery.Gender
	row[11] = result.ParsedQuery.Procedure
	row[12] = result.ParsedQuery.Location
	row[13] = result.ParsedQuery.PolicyDuration

	return row
}

// joinDocumentNames renders the stored JSON name array as a readable list.
func joinDocumentNames(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return string(raw)
	}
	return strings.Join(names, "; ")
}

func formatAmount(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func formatAge(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(name, ext string) string {
	sanitized := SanitizeFilename(name)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.%s", sanitized, date, ext)
}
