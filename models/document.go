package models

// Document type values stored in vector record metadata. The zero value for
// an unknown record is deliberately "Unknown" so listing never fails on
// legacy records with missing metadata.
const (
	DocTypeDocument = "document"
	DocTypePolicy   = "policy"
	DocTypeGuide    = "guide"
	DocTypeArticle  = "article"
	DocTypeWebpage  = "webpage"
)

// ValidDocType reports whether t is one of the accepted document types.
func ValidDocType(t string) bool {
	switch t {
	case DocTypeDocument, DocTypePolicy, DocTypeGuide, DocTypeArticle, DocTypeWebpage:
		return true
	}
	return false
}

// DocumentMetadata identifies where a piece of content came from. Source is
// the grouping key for listing and deletion: every chunk derived from one
// file or URL carries the same value.
type DocumentMetadata struct {
	Source     string `json:"source"`
	Type       string `json:"type"`
	UploadDate string `json:"upload_date"` // YYYY-MM-DD
}

// Document is a unit of source content: one PDF page, one DOCX file, or one
// scraped web page. Chunking preserves the metadata of the parent document.
type Document struct {
	Content  string           `json:"content"`
	Metadata DocumentMetadata `json:"metadata"`
}

// SourceDocument is a chunk retrieved from the vector database, returned to
// callers for citation display.
type SourceDocument struct {
	Text     string                 `json:"text"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// SourceInfo aggregates the stored chunks of a single source.
type SourceInfo struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	UploadDate string `json:"upload_date"`
	ChunkCount int    `json:"chunk_count"`
}
