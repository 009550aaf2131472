package services

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/unidoc/unipdf/v3/common/license"
	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"

	"github.com/hr-intervals/hr-assistant/models"
	"github.com/hr-intervals/hr-assistant/pkg/log"
)

func init() {
	// The license key has to be set before any unipdf call, so this happens
	// here rather than in main.
	if err := godotenv.Load(); err == nil {
		// .env found; environment now carries its values.
	}
	if key := os.Getenv("UNIDOC_LICENSE_KEY"); key != "" {
		if err := license.SetMeteredKey(key); err != nil {
			fmt.Printf("ERROR: Failed to set Unidoc license key: %v. PDF processing will fail.\n", err)
		}
	}
}

// LoadDocument reads a PDF or DOCX file and returns one Document per PDF page
// or one Document for the whole DOCX body. Any other extension fails with
// models.ErrUnsupportedFormat.
func LoadDocument(path string) ([]models.Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return loadPDF(path)
	case ".docx":
		return loadDOCX(path)
	default:
		return nil, fmt.Errorf("%w: only .pdf and .docx are supported, got %q",
			models.ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// AnnotateDocuments stamps source metadata onto documents. Pure function, no
// I/O; the returned slice is a copy.
func AnnotateDocuments(docs []models.Document, sourceName, docType string) []models.Document {
	annotated := make([]models.Document, len(docs))
	uploadDate := time.Now().Format("2006-01-02")
	for i, doc := range docs {
		doc.Metadata = models.DocumentMetadata{
			Source:     sourceName,
			Type:       docType,
			UploadDate: uploadDate,
		}
		annotated[i] = doc
	}
	return annotated
}

// loadPDF extracts text page by page with unipdf.
func loadPDF(path string) ([]models.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pdfReader, err := model.NewPdfReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf %s: %w", path, err)
	}

	numPages, err := pdfReader.GetNumPages()
	if err != nil {
		return nil, err
	}

	docs := make([]models.Document, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page, err := pdfReader.GetPage(i)
		if err != nil {
			return nil, err
		}
		ex, err := extractor.New(page)
		if err != nil {
			return nil, err
		}
		text, err := ex.ExtractText()
		if err != nil {
			return nil, err
		}
		docs = append(docs, models.Document{Content: text})
	}
	log.Infof("loaded %d pages from %s", len(docs), filepath.Base(path))
	return docs, nil
}

// loadDOCX extracts the text of word/document.xml. DOCX is a ZIP archive of
// XML parts; paragraph runs are joined with newlines.
func loadDOCX(path string) ([]models.Document, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open docx %s: %w", path, err)
	}
	defer reader.Close()

	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, err
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		text := parseDocumentXML(content)
		log.Infof("loaded %d characters from %s", len(text), filepath.Base(path))
		return []models.Document{{Content: text}}, nil
	}
	return nil, fmt.Errorf("docx %s has no word/document.xml", path)
}

// documentXML mirrors the parts of word/document.xml we read.
type documentXML struct {
	Body struct {
		Paragraphs []docxParagraph `xml:"p"`
	} `xml:"body"`
}

type docxParagraph struct {
	Runs []docxRun `xml:"r"`
}

type docxRun struct {
	Text []docxText `xml:"t"`
}

type docxText struct {
	Content string `xml:",chardata"`
}

func parseDocumentXML(content []byte) string {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return ""
	}
	var sb strings.Builder
	for i, para := range doc.Body.Paragraphs {
		if i > 0 {
			sb.WriteString("\n")
		}
		for _, run := range para.Runs {
			for _, text := range run.Text {
				sb.WriteString(text.Content)
			}
		}
	}
	return strings.TrimSpace(sb.String())
}
