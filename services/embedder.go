package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/hr-intervals/hr-assistant/models"
)

// Embedder turns a text span into a fixed-dimension vector.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// geminiEmbedder implements Embedder on the Gemini embeddings API.
type geminiEmbedder struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiEmbedder creates an Embedder backed by the given client and
// embedding model. Every call runs under the given timeout.
func NewGeminiEmbedder(client *genai.Client, model string, timeout time.Duration) Embedder {
	return &geminiEmbedder{client: client, model: model, timeout: timeout}
}

func (e *geminiEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	result, err := e.client.Models.EmbedContent(ctx, e.model, genai.Text(text), nil)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: embedding call", models.ErrUpstreamTimeout)
		}
		return nil, fmt.Errorf("embedding api call failed: %w", err)
	}
	if len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("embedding api returned no vector")
	}
	return result.Embeddings[0].Values, nil
}
