package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/hr-intervals/hr-assistant/models"
	"github.com/hr-intervals/hr-assistant/pkg/log"
)

// Scraper fetches web pages through the scraping API and ingests them into
// the vector store.
type Scraper interface {
	// Fetch returns the page content as Markdown.
	Fetch(ctx context.Context, url string) (string, error)

	// Exists returns the number of chunks already stored for the URL. Backend
	// errors are reported as 0, the same as "never scraped".
	Exists(ctx context.Context, url string) int

	// Ingest scrapes the URL and stores its chunks. Unless force is set, a
	// URL that already has stored chunks fails with models.ErrAlreadyIngested.
	Ingest(ctx context.Context, url string, force bool) (int, error)
}

// firecrawlScraper implements Scraper against a Firecrawl-compatible API.
type firecrawlScraper struct {
	httpClient   *http.Client
	baseURL      string
	apiKey       string
	store        VectorStore
	chunkSize    int
	chunkOverlap int
}

// NewFirecrawlScraper creates a Scraper. The http client's timeout bounds
// every scrape call; a timeout surfaces as models.ErrUpstreamTimeout.
func NewFirecrawlScraper(httpClient *http.Client, baseURL, apiKey string, store VectorStore, chunkSize, chunkOverlap int) Scraper {
	return &firecrawlScraper{
		httpClient:   httpClient,
		baseURL:      baseURL,
		apiKey:       apiKey,
		store:        store,
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
	}
}

func (s *firecrawlScraper) Fetch(ctx context.Context, url string) (string, error) {
	reqBody, err := json.Marshal(models.FirecrawlScrapeRequest{
		URL:     url,
		Formats: []string{"markdown"},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal scrape request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/scrape", bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create scrape http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return "", fmt.Errorf("%w: scrape of %s", models.ErrUpstreamTimeout, url)
		}
		return "", fmt.Errorf("failed to call scraping api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: scraping api returned status %d, body: %s",
			models.ErrScrapeFailed, resp.StatusCode, string(bodyBytes))
	}

	var scrapeResp models.FirecrawlScrapeResponse
	if err := json.NewDecoder(resp.Body).Decode(&scrapeResp); err != nil {
		return "", fmt.Errorf("failed to decode scrape response: %w", err)
	}

	markdown := scrapeResp.Markdown()
	if markdown == "" {
		return "", fmt.Errorf("%w: no content retrieved for %s", models.ErrScrapeFailed, url)
	}
	return markdown, nil
}

func (s *firecrawlScraper) Exists(ctx context.Context, url string) int {
	count, err := s.store.CountBySource(ctx, url)
	if err != nil {
		log.Warnf("existence check for %s failed, treating as not found: %v", url, err)
		return 0
	}
	return count
}

func (s *firecrawlScraper) Ingest(ctx context.Context, url string, force bool) (int, error) {
	if !force {
		if count := s.Exists(ctx, url); count > 0 {
			return 0, fmt.Errorf("%w: %s has %d stored chunks, use force to re-scrape",
				models.ErrAlreadyIngested, url, count)
		}
	}

	markdown, err := s.Fetch(ctx, url)
	if err != nil {
		return 0, err
	}
	log.Infof("scraped %d characters from %s", len(markdown), url)

	docs := AnnotateDocuments([]models.Document{{Content: markdown}}, url, models.DocTypeWebpage)
	chunks, err := ChunkDocuments(docs, s.chunkSize, s.chunkOverlap)
	if err != nil {
		return 0, fmt.Errorf("failed to chunk scraped page: %w", err)
	}
	return s.store.Store(ctx, chunks)
}

// isTimeout reports whether a transport error is a timeout (the http client
// wraps deadline expiry in a *url.Error).
func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
