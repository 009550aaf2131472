package services

import (
	"github.com/tmc/langchaingo/textsplitter"

	"github.com/hr-intervals/hr-assistant/models"
)

// chunkSeparators are tried in priority order: paragraph, line, sentence,
// word, character. The final "" guarantees a split is always possible.
var chunkSeparators = []string{"\n\n", "\n", ". ", " ", ""}

// ChunkDocuments splits documents into bounded-size chunks with overlap,
// carrying each parent document's metadata onto its chunks. Splitting is
// deterministic for a given input and configuration.
func ChunkDocuments(docs []models.Document, chunkSize, chunkOverlap int) ([]models.Document, error) {
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(chunkOverlap),
		textsplitter.WithSeparators(chunkSeparators),
	)

	var chunks []models.Document
	for _, doc := range docs {
		parts, err := splitter.SplitText(doc.Content)
		if err != nil {
			return nil, err
		}
		for _, part := range parts {
			if part == "" {
				continue
			}
			chunks = append(chunks, models.Document{
				Content:  part,
				Metadata: doc.Metadata,
			})
		}
	}
	return chunks, nil
}
