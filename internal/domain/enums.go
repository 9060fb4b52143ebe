package domain

// Decision is the categorical outcome of a claim evaluation.
type Decision string

const (
	DecisionApproved Decision = "Approved"
	DecisionRejected Decision = "Rejected"
	DecisionMoreInfo Decision = "More Info Needed"
)

// KnownDecisions holds the decision literals the wire schema requests.
var KnownDecisions = map[Decision]bool{
	DecisionApproved: true,
	DecisionRejected: true,
	DecisionMoreInfo: true,
}

// Valid reports whether d is one of the three requested literals.
func (d Decision) Valid() bool {
	return KnownDecisions[d]
}

// FileType represents the allowed policy file types for upload.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeDOCX FileType = "docx"
	FileTypeTXT  FileType = "txt"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF:  "application/pdf",
	FileTypeDOCX: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	FileTypeTXT:  "text/plain",
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"docx": FileTypeDOCX,
	"doc":  FileTypeDOCX,
	"txt":  FileTypeTXT,
	"md":   FileTypeTXT,
}

// FileStatus represents the lifecycle of an uploaded policy file.
type FileStatus string

const (
	FileStatusPending  FileStatus = "pending"
	FileStatusUploaded FileStatus = "uploaded"
	FileStatusFailed   FileStatus = "failed"
	FileStatusDeleted  FileStatus = "deleted"
)

// EvaluationStatus represents the outcome of a recorded pipeline run.
type EvaluationStatus string

const (
	EvaluationStatusCompleted EvaluationStatus = "completed"
	EvaluationStatusFailed    EvaluationStatus = "failed"
)
