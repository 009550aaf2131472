package services

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hr-intervals/hr-assistant/models"
	"github.com/hr-intervals/hr-assistant/pkg/log"
)

// AdminService exposes the knowledge-base management operations behind the
// admin API: thin composition over the loader, scraper and vector store.
type AdminService interface {
	// ListSources returns every stored source with its chunk count.
	ListSources(ctx context.Context) (*models.ListSourcesResponse, error)

	// UploadDocument loads a PDF/DOCX file, stamps metadata, and stores its
	// chunks. The source name is the file's base name.
	UploadDocument(ctx context.Context, path, docType string) (*models.IngestResponse, error)

	// ScrapeURL ingests a single web page.
	ScrapeURL(ctx context.Context, url string, force bool) (*models.IngestResponse, error)

	// ScrapeBatch ingests several URLs, collecting per-URL outcomes instead
	// of failing the whole batch.
	ScrapeBatch(ctx context.Context, urls []string, force bool) *models.BatchScrapeResponse

	// DeleteSource removes all chunks of one source. Deleting a source that
	// does not exist removes nothing and succeeds.
	DeleteSource(ctx context.Context, source string) error

	// UpdateDocument replaces oldSource with a freshly uploaded file. The
	// delete is not rolled back if the upload fails.
	UpdateDocument(ctx context.Context, oldSource, path, docType string) (*models.UpdateResponse, error)
}

type adminServiceImpl struct {
	store        VectorStore
	scraper      Scraper
	chunkSize    int
	chunkOverlap int
}

// NewAdminService creates an AdminService over the given store and scraper.
func NewAdminService(store VectorStore, scraper Scraper, chunkSize, chunkOverlap int) AdminService {
	return &adminServiceImpl{
		store:        store,
		scraper:      scraper,
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
	}
}

func (a *adminServiceImpl) ListSources(ctx context.Context) (*models.ListSourcesResponse, error) {
	sources, err := a.store.ListSources(ctx)
	if err != nil {
		return nil, err
	}
	total, err := a.store.TotalChunks(ctx)
	if err != nil {
		return nil, err
	}
	return &models.ListSourcesResponse{Count: len(sources), TotalChunks: total, Sources: sources}, nil
}

func (a *adminServiceImpl) UploadDocument(ctx context.Context, path, docType string) (*models.IngestResponse, error) {
	if !models.ValidDocType(docType) {
		docType = models.DocTypeDocument
	}

	docs, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}

	sourceName := filepath.Base(path)
	docs = AnnotateDocuments(docs, sourceName, docType)

	chunks, err := ChunkDocuments(docs, a.chunkSize, a.chunkOverlap)
	if err != nil {
		return nil, fmt.Errorf("failed to chunk %s: %w", sourceName, err)
	}

	stored, err := a.store.Store(ctx, chunks)
	if err != nil {
		return nil, err
	}
	log.Infof("ingested %s: %d pages, %d chunks", sourceName, len(docs), stored)
	return &models.IngestResponse{Source: sourceName, Type: docType, Chunks: stored}, nil
}

func (a *adminServiceImpl) ScrapeURL(ctx context.Context, url string, force bool) (*models.IngestResponse, error) {
	chunks, err := a.scraper.Ingest(ctx, url, force)
	if err != nil {
		return nil, err
	}
	return &models.IngestResponse{Source: url, Type: models.DocTypeWebpage, Chunks: chunks}, nil
}

func (a *adminServiceImpl) ScrapeBatch(ctx context.Context, urls []string, force bool) *models.BatchScrapeResponse {
	resp := &models.BatchScrapeResponse{}
	for _, url := range urls {
		chunks, err := a.scraper.Ingest(ctx, url, force)
		if err != nil {
			resp.Failed++
			resp.Results = append(resp.Results, models.BatchScrapeResult{URL: url, Error: err.Error()})
			continue
		}
		resp.Succeeded++
		resp.Results = append(resp.Results, models.BatchScrapeResult{URL: url, Chunks: chunks})
	}
	return resp
}

func (a *adminServiceImpl) DeleteSource(ctx context.Context, source string) error {
	return a.store.DeleteSource(ctx, source)
}

func (a *adminServiceImpl) UpdateDocument(ctx context.Context, oldSource, path, docType string) (*models.UpdateResponse, error) {
	if err := a.store.DeleteSource(ctx, oldSource); err != nil {
		return nil, err
	}
	ingest, err := a.UploadDocument(ctx, path, docType)
	if err != nil {
		// The old chunks are already gone; surface that explicitly so the
		// caller knows a re-upload is required.
		return nil, fmt.Errorf("deleted %q but upload of replacement failed: %w", oldSource, err)
	}
	return &models.UpdateResponse{Deleted: oldSource, Ingest: *ingest}, nil
}
