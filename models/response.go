package models

// ChatResponse is returned by POST /api/v1/chat. Warning is set when the
// question looks like it contains personal information about an individual.
type ChatResponse struct {
	Answer    string           `json:"answer"`
	Sources   []SourceDocument `json:"sources,omitempty"`
	SessionID string           `json:"sessionID"`
	Warning   string           `json:"warning,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// IngestResponse reports the outcome of an upload or scrape.
type IngestResponse struct {
	Source string `json:"source"`
	Type   string `json:"type,omitempty"`
	Chunks int    `json:"chunks"`
}

// ListSourcesResponse is returned by GET /api/v1/admin/sources. TotalChunks
// is the size of the whole collection, which can exceed the sum of the
// per-source counts when records were stored without source metadata.
type ListSourcesResponse struct {
	Count       int          `json:"count"`
	TotalChunks int          `json:"total_chunks"`
	Sources     []SourceInfo `json:"sources"`
}

// BatchScrapeResult is the per-URL outcome of a batch scrape.
type BatchScrapeResult struct {
	URL    string `json:"url"`
	Chunks int    `json:"chunks,omitempty"`
	Error  string `json:"error,omitempty"`
}

// BatchScrapeResponse summarizes a batch scrape run.
type BatchScrapeResponse struct {
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
	Results   []BatchScrapeResult `json:"results"`
}

// UpdateResponse reports the two steps of a document update.
type UpdateResponse struct {
	Deleted string         `json:"deleted"`
	Ingest  IngestResponse `json:"ingest"`
}
