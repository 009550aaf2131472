package services

import (
	"context"
	"encoding/json"
	"fmt"

	chromago "github.com/amikos-tech/chroma-go/pkg/api/v2"
	"github.com/amikos-tech/chroma-go/pkg/embeddings"
	"github.com/google/uuid"

	"github.com/hr-intervals/hr-assistant/models"
	"github.com/hr-intervals/hr-assistant/pkg/log"
)

// listPageSize bounds a single scroll page when aggregating sources. The
// listing loop pages until exhaustion, so collections larger than one page
// are reported in full.
const listPageSize = 100

// VectorStore wraps chunk embedding and persistence in the vector database.
type VectorStore interface {
	// Store embeds each chunk and upserts it. It returns how many chunks were
	// stored; when some chunks fail the error is a *models.PartialStoreError
	// naming the failed indexes, and the successful chunks stay stored.
	Store(ctx context.Context, chunks []models.Document) (int, error)

	// Retrieve returns the k nearest chunks to the query by embedding
	// similarity.
	Retrieve(ctx context.Context, query string, k int) ([]models.SourceDocument, error)

	// ListSources aggregates stored chunks by their source metadata.
	ListSources(ctx context.Context) ([]models.SourceInfo, error)

	// DeleteSource removes every chunk whose source equals the given value.
	// A source with no stored chunks deletes zero records and is not an error.
	DeleteSource(ctx context.Context, source string) error

	// CountBySource returns the number of stored chunks for one source.
	CountBySource(ctx context.Context, source string) (int, error)

	// TotalChunks returns the size of the whole collection.
	TotalChunks(ctx context.Context) (int, error)
}

// chromaVectorStore implements VectorStore on a Chroma collection.
type chromaVectorStore struct {
	collection chromago.Collection
	embedder   Embedder
}

// NewChromaVectorStore creates a VectorStore backed by the given collection
// and embedder.
func NewChromaVectorStore(collection chromago.Collection, embedder Embedder) VectorStore {
	return &chromaVectorStore{collection: collection, embedder: embedder}
}

// embedChunks embeds every chunk, returning one vector per chunk and the
// indexes of chunks whose embedding call failed. Failed slots hold a nil
// vector so indexes stay aligned.
func embedChunks(ctx context.Context, embedder Embedder, chunks []models.Document) ([][]float32, []int) {
	vectors := make([][]float32, len(chunks))
	var failed []int
	for i, chunk := range chunks {
		vector, err := embedder.EmbedText(ctx, chunk.Content)
		if err != nil {
			log.Warnf("could not embed chunk %d: %v", i, err)
			failed = append(failed, i)
			continue
		}
		vectors[i] = vector
	}
	return vectors, failed
}

func (s *chromaVectorStore) Store(ctx context.Context, chunks []models.Document) (int, error) {
	if len(chunks) == 0 {
		return 0, nil
	}

	vectors, failed := embedChunks(ctx, s.embedder, chunks)

	stored := 0
	for i, chunk := range chunks {
		if vectors[i] == nil {
			continue
		}
		metadata := chromago.NewDocumentMetadata(
			chromago.NewStringAttribute("source", chunk.Metadata.Source),
			chromago.NewStringAttribute("type", chunk.Metadata.Type),
			chromago.NewStringAttribute("upload_date", chunk.Metadata.UploadDate),
		)
		docID := chromago.DocumentID(fmt.Sprintf("%s-chunk%d", uuid.New().String(), i))
		err := s.collection.Add(ctx,
			chromago.WithIDs(docID),
			chromago.WithTexts(chunk.Content),
			chromago.WithEmbeddings(embeddings.NewEmbeddingFromFloat32(vectors[i])),
			chromago.WithMetadatas(metadata),
		)
		if err != nil {
			log.Warnf("could not add chunk %d to collection: %v", i, err)
			failed = append(failed, i)
			continue
		}
		stored++
	}

	if len(failed) > 0 {
		return stored, &models.PartialStoreError{Stored: stored, Failed: failed}
	}
	log.Infof("stored %d chunks", stored)
	return stored, nil
}

func (s *chromaVectorStore) Retrieve(ctx context.Context, query string, k int) ([]models.SourceDocument, error) {
	queryVector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query text: %w", err)
	}

	results, err := s.collection.Query(
		ctx,
		chromago.WithQueryEmbeddings(embeddings.NewEmbeddingFromFloat32(queryVector)),
		chromago.WithNResults(k),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection: %w", err)
	}

	return collectQueryResults(results.GetDocumentsGroups(), results.GetMetadatasGroups()), nil
}

// collectQueryResults flattens the first query group into source documents.
// The metadata group can be shorter than the document group (or absent
// entirely); such documents get no metadata rather than panicking.
func collectQueryResults(documentGroups []chromago.Documents, metadataGroups []chromago.DocumentMetadatas) []models.SourceDocument {
	if len(documentGroups) == 0 {
		return nil
	}
	var metadatas chromago.DocumentMetadatas
	if len(metadataGroups) > 0 {
		metadatas = metadataGroups[0]
	}

	var documents []models.SourceDocument
	for i, doc := range documentGroups[0] {
		if doc.ContentString() == "" {
			continue
		}
		var metaMap map[string]interface{}
		if len(metadatas) > i {
			metaMap = metadataToMap(metadatas[i])
		}
		documents = append(documents, models.SourceDocument{
			Text:     doc.ContentString(),
			Metadata: metaMap,
		})
	}
	return documents
}

func (s *chromaVectorStore) ListSources(ctx context.Context) ([]models.SourceInfo, error) {
	infoBySource := make(map[string]*models.SourceInfo)
	order := []string{}

	offset := 0
	for {
		results, err := s.collection.Get(ctx,
			chromago.WithLimitGet(listPageSize),
			chromago.WithOffsetGet(offset),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scroll collection: %w", err)
		}
		ids := results.GetIDs()
		if len(ids) == 0 {
			break
		}

		for _, meta := range results.GetMetadatas() {
			metaMap := metadataToMap(meta)
			source := stringField(metaMap, "source")
			info, ok := infoBySource[source]
			if !ok {
				info = &models.SourceInfo{
					Name:       source,
					Type:       stringField(metaMap, "type"),
					UploadDate: stringField(metaMap, "upload_date"),
				}
				infoBySource[source] = info
				order = append(order, source)
			}
			info.ChunkCount++
		}

		if len(ids) < listPageSize {
			break
		}
		offset += len(ids)
	}

	sources := make([]models.SourceInfo, 0, len(order))
	for _, name := range order {
		sources = append(sources, *infoBySource[name])
	}
	return sources, nil
}

func (s *chromaVectorStore) DeleteSource(ctx context.Context, source string) error {
	where := chromago.EqString("source", source)
	if err := s.collection.Delete(ctx, chromago.WithWhereDelete(where)); err != nil {
		return fmt.Errorf("failed to delete records for %q: %w", source, err)
	}
	log.Infof("deleted all chunks for source %q", source)
	return nil
}

func (s *chromaVectorStore) CountBySource(ctx context.Context, source string) (int, error) {
	where := chromago.EqString("source", source)

	count := 0
	offset := 0
	for {
		results, err := s.collection.Get(ctx,
			chromago.WithWhereGet(where),
			chromago.WithLimitGet(listPageSize),
			chromago.WithOffsetGet(offset),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to count records for %q: %w", source, err)
		}
		ids := results.GetIDs()
		count += len(ids)
		if len(ids) < listPageSize {
			break
		}
		offset += len(ids)
	}
	return count, nil
}

func (s *chromaVectorStore) TotalChunks(ctx context.Context) (int, error) {
	count, err := s.collection.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count items in collection: %w", err)
	}
	return int(count), nil
}

// metadataToMap converts a chroma DocumentMetadata into a plain map. The
// metadata type exposes no accessor for all values, so it goes through a
// JSON round-trip.
func metadataToMap(meta chromago.DocumentMetadata) map[string]interface{} {
	if meta == nil {
		return map[string]interface{}{}
	}
	jsonBytes, err := json.Marshal(meta)
	if err != nil {
		log.Warnf("could not marshal chunk metadata: %v", err)
		return map[string]interface{}{}
	}
	var metaMap map[string]interface{}
	if err := json.Unmarshal(jsonBytes, &metaMap); err != nil {
		log.Warnf("could not unmarshal chunk metadata: %v", err)
		return map[string]interface{}{}
	}
	return metaMap
}

// stringField reads a metadata string, degrading missing values to "Unknown"
// so listing keeps working for records stored without full metadata.
func stringField(metaMap map[string]interface{}, key string) string {
	if v, ok := metaMap[key].(string); ok && v != "" {
		return v
	}
	return "Unknown"
}
