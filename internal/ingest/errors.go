package ingest

import "fmt"

// IngestionError indicates one uploaded document could not be read or
// decoded. The whole ingestion fails when any single read fails.
type IngestionError struct {
	FileName string
	Err      error
}

func (e *IngestionError) Error() string {
	return fmt.Sprintf("ingesting document %q: %v", e.FileName, e.Err)
}

func (e *IngestionError) Unwrap() error {
	return e.Err
}
