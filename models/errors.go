package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for the ingestion and retrieval pipeline. Handlers match
// these with errors.Is to pick an HTTP status; services wrap them with %w and
// a human-readable message.
var (
	// ErrUnsupportedFormat is returned for files that are neither PDF nor DOCX.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrScrapeFailed is returned when the scraping API yields no content.
	ErrScrapeFailed = errors.New("scrape failed")

	// ErrAlreadyIngested is returned when a URL already has stored chunks and
	// force was not set.
	ErrAlreadyIngested = errors.New("url already ingested")

	// ErrStorageFailed indicates a partial or total write failure against the
	// vector database.
	ErrStorageFailed = errors.New("vector storage failed")

	// ErrUpstreamTimeout indicates an external call exceeded its deadline.
	ErrUpstreamTimeout = errors.New("upstream call timed out")

	// ErrGenerationFailed indicates the embedding or completion call failed
	// while answering a question.
	ErrGenerationFailed = errors.New("answer generation failed")

	// ErrNotFound indicates the target of a delete or update does not exist.
	ErrNotFound = errors.New("source not found")
)

// PartialStoreError reports which chunks could not be embedded or upserted.
// Stored chunks stay stored; callers can retry exactly the failed subset.
type PartialStoreError struct {
	Stored int
	Failed []int // indexes into the chunk slice passed to Store
}

func (e *PartialStoreError) Error() string {
	return fmt.Sprintf("stored %d chunks, %d failed (indexes %v)", e.Stored, len(e.Failed), e.Failed)
}

// Unwrap lets errors.Is(err, ErrStorageFailed) match partial failures.
func (e *PartialStoreError) Unwrap() error { return ErrStorageFailed }
