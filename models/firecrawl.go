package models

// FirecrawlScrapeRequest is the request body for the scraping API's /v1/scrape
// endpoint. Only the markdown format is requested.
type FirecrawlScrapeRequest struct {
	URL     string   `json:"url"`
	Formats []string `json:"formats"`
}

// FirecrawlScrapeResponse covers both response shapes the API has been seen
// to return: markdown at the top level, or nested under "data". Callers must
// go through Markdown() rather than reading fields directly.
type FirecrawlScrapeResponse struct {
	Success      bool   `json:"success"`
	MarkdownBody string `json:"markdown,omitempty"`
	Data         struct {
		Markdown string `json:"markdown,omitempty"`
	} `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// Markdown returns the scraped content regardless of which shape the API
// used, or "" when the response carries no content.
func (r *FirecrawlScrapeResponse) Markdown() string {
	if r.Data.Markdown != "" {
		return r.Data.Markdown
	}
	return r.MarkdownBody
}
