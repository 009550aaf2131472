package models

// ChatRequest is the body for POST /api/v1/chat.
type ChatRequest struct {
	Question  string `json:"question" binding:"required"`
	SessionID string `json:"sessionID,omitempty"`
}

// ScrapeRequest is the body for POST /api/v1/admin/scrape.
type ScrapeRequest struct {
	URL   string `json:"url" binding:"required"`
	Force bool   `json:"force,omitempty"`
}

// BatchScrapeRequest is the body for POST /api/v1/admin/scrape/batch.
type BatchScrapeRequest struct {
	URLs  []string `json:"urls" binding:"required"`
	Force bool     `json:"force,omitempty"`
}

// DeleteSourceRequest is the body for DELETE /api/v1/admin/sources.
type DeleteSourceRequest struct {
	Source string `json:"source" binding:"required"`
}
