package ingest

import (
	"fmt"
	"io"
	"mime"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// TextExtractor converts one uploaded file's bytes into analyzable text.
// One variant exists per format family; real structural extraction for
// binary formats is a collaborator to be substituted later without touching
// the pipeline contract.
type TextExtractor interface {
	Extract(name, contentType string, r io.Reader) (string, error)
}

// textualTypes are non-"text/*" MIME types still treated as plain text.
var textualTypes = map[string]bool{
	"application/json": true,
	"application/xml":  true,
}

// ExtractorFor returns the extractor responsible for the given content type.
func ExtractorFor(contentType string) TextExtractor {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = contentType
	}
	if strings.HasPrefix(mediaType, "text/") || textualTypes[mediaType] {
		return PlainTextExtractor{}
	}
	return PlaceholderExtractor{}
}

// PlainTextExtractor passes textual content through verbatim, decoding it
// from the charset the upload declared (UTF-8 when none is declared).
type PlainTextExtractor struct{}

func (PlainTextExtractor) Extract(name, contentType string, r io.Reader) (string, error) {
	_, params, err := mime.ParseMediaType(contentType)
	charset := ""
	if err == nil {
		charset = params["charset"]
	}
	if charset != "" && !strings.EqualFold(charset, "utf-8") {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return "", fmt.Errorf("unknown charset %q: %w", charset, err)
		}
		r = transform.NewReader(r, enc.NewDecoder())
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	return string(data), nil
}

// PlaceholderExtractor handles binary formats (PDF, Word) that this service
// does not structurally parse. It drains the reader and substitutes a
// clearly labeled non-extracted text block so the reasoning service knows
// the content is unavailable rather than empty.
type PlaceholderExtractor struct{}

func (PlaceholderExtractor) Extract(name, contentType string, r io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	return fmt.Sprintf(
		"[Content of %q (%s) was not extracted: binary document formats are not parsed by this service. "+
			"Treat this document as present but unreadable; request a plain-text copy if its clauses are needed.]",
		name, contentType,
	), nil
}
