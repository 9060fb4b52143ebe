package ingest

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"

	"golang.org/x/sync/errgroup"

	"claimlens/internal/domain"
)

// Source is one uploaded file queued for text extraction. Open must return
// an independent reader each call so sources can be read concurrently.
type Source struct {
	Name        string
	ContentType string
	Open        func() (io.ReadCloser, error)
}

// FromBytes builds a Source over an in-memory payload.
func FromBytes(name, contentType string, data []byte) Source {
	return Source{
		Name:        name,
		ContentType: contentType,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// FromMultipart builds a Source over a multipart file header.
func FromMultipart(header *multipart.FileHeader) Source {
	return Source{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Open: func() (io.ReadCloser, error) {
			return header.Open()
		},
	}
}

// Ingestor converts uploaded files into (name, text) documents.
type Ingestor struct {
	// Resolve picks the extractor for a content type. Defaults to ExtractorFor.
	Resolve func(contentType string) TextExtractor
}

// NewIngestor creates an Ingestor with the default extractor resolution.
func NewIngestor() *Ingestor {
	return &Ingestor{Resolve: ExtractorFor}
}

// Ingest reads every source concurrently and returns one Document per
// source, in the original source order regardless of completion order.
// This is a join, not a race: if any read fails the whole ingestion fails
// with an IngestionError and partial results are discarded. An empty source
// set is valid and yields an empty document list.
func (ing *Ingestor) Ingest(ctx context.Context, sources []Source) ([]domain.Document, error) {
	resolve := ing.Resolve
	if resolve == nil {
		resolve = ExtractorFor
	}

	docs := make([]domain.Document, len(sources))
	g, ctx := errgroup.WithContext(ctx)

	for i, src := range sources {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return &IngestionError{FileName: src.Name, Err: err}
			}
			r, err := src.Open()
			if err != nil {
				return &IngestionError{FileName: src.Name, Err: err}
			}
			defer func() { _ = r.Close() }()

			text, err := resolve(src.ContentType).Extract(src.Name, src.ContentType, r)
			if err != nil {
				return &IngestionError{FileName: src.Name, Err: err}
			}
			docs[i] = domain.Document{Name: src.Name, Text: text}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}
