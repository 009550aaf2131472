package services

import (
	"context"

	"github.com/hr-intervals/hr-assistant/models"
)

// fakeVectorStore implements VectorStore for tests without a running vector
// database.
type fakeVectorStore struct {
	stored       []models.Document
	storeErr     error
	counts       map[string]int
	countErr     error
	retrieveDocs []models.SourceDocument
	retrieveErr  error
	deleted      []string
	deleteErr    error
	sources      []models.SourceInfo
	listErr      error
	total        int
}

func (f *fakeVectorStore) Store(_ context.Context, chunks []models.Document) (int, error) {
	if f.storeErr != nil {
		return 0, f.storeErr
	}
	f.stored = append(f.stored, chunks...)
	return len(chunks), nil
}

func (f *fakeVectorStore) Retrieve(_ context.Context, _ string, _ int) ([]models.SourceDocument, error) {
	if f.retrieveErr != nil {
		return nil, f.retrieveErr
	}
	return f.retrieveDocs, nil
}

func (f *fakeVectorStore) ListSources(_ context.Context) ([]models.SourceInfo, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.sources, nil
}

func (f *fakeVectorStore) DeleteSource(_ context.Context, source string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, source)
	return nil
}

func (f *fakeVectorStore) CountBySource(_ context.Context, source string) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.counts[source], nil
}

func (f *fakeVectorStore) TotalChunks(_ context.Context) (int, error) {
	if f.total > 0 {
		return f.total, nil
	}
	return len(f.stored), nil
}

// fakeEmbedder returns canned vectors or errors per call.
type fakeEmbedder struct {
	embedFn func(text string) ([]float32, error)
}

func (f *fakeEmbedder) EmbedText(_ context.Context, text string) ([]float32, error) {
	return f.embedFn(text)
}

// fakeChatModel records what it was asked and returns a fixed answer.
type fakeChatModel struct {
	answer        string
	err           error
	lastSystem    string
	lastHistories [][]Turn
	lastQuestion  string
}

func (f *fakeChatModel) Generate(_ context.Context, systemPrompt string, history []Turn, question string) (string, error) {
	f.lastSystem = systemPrompt
	histCopy := make([]Turn, len(history))
	copy(histCopy, history)
	f.lastHistories = append(f.lastHistories, histCopy)
	f.lastQuestion = question
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

// fakeScraper returns per-URL chunk counts or errors.
type fakeScraper struct {
	results map[string]int
	errs    map[string]error
}

func (f *fakeScraper) Fetch(_ context.Context, url string) (string, error) {
	if err := f.errs[url]; err != nil {
		return "", err
	}
	return "# page", nil
}

func (f *fakeScraper) Exists(_ context.Context, url string) int {
	return f.results[url]
}

func (f *fakeScraper) Ingest(_ context.Context, url string, _ bool) (int, error) {
	if err := f.errs[url]; err != nil {
		return 0, err
	}
	return f.results[url], nil
}
