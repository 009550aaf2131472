package services

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hr-intervals/hr-assistant/models"
)

// writeTestDOCX builds a minimal DOCX (a ZIP with word/document.xml) on disk,
// one <w:p> per paragraph.
func writeTestDOCX(t *testing.T, dir, name string, paragraphs []string) string {
	t.Helper()

	var xmlBody bytes.Buffer
	xmlBody.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	xmlBody.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		xmlBody.WriteString(`<w:p><w:r><w:t>`)
		xmlBody.WriteString(p)
		xmlBody.WriteString(`</w:t></w:r></w:p>`)
	}
	xmlBody.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entry, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = entry.Write(xmlBody.Bytes())
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestLoadDocumentDOCX(t *testing.T) {
	path := writeTestDOCX(t, t.TempDir(), "handbook.docx", []string{
		"Employee Handbook",
		"Vacation requests require two weeks notice.",
	})

	docs, err := LoadDocument(path)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Employee Handbook\nVacation requests require two weeks notice.", docs[0].Content)
}

func TestLoadDocumentDOCXUppercaseExtension(t *testing.T) {
	path := writeTestDOCX(t, t.TempDir(), "policy.DOCX", []string{"Sick leave policy."})

	docs, err := LoadDocument(path)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Sick leave policy.", docs[0].Content)
}

func TestLoadDocumentUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o644))

	_, err := LoadDocument(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrUnsupportedFormat)
}

func TestLoadDocumentMissingDocumentXML(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entry, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	_, err = entry.Write([]byte("<styles/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(dir, "broken.docx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	_, err = LoadDocument(path)
	assert.Error(t, err)
}

func TestAnnotateDocuments(t *testing.T) {
	docs := []models.Document{
		{Content: "page one"},
		{Content: "page two"},
	}

	annotated := AnnotateDocuments(docs, "benefits.pdf", models.DocTypePolicy)

	require.Len(t, annotated, 2)
	today := time.Now().Format("2006-01-02")
	for _, doc := range annotated {
		assert.Equal(t, "benefits.pdf", doc.Metadata.Source)
		assert.Equal(t, models.DocTypePolicy, doc.Metadata.Type)
		assert.Equal(t, today, doc.Metadata.UploadDate)
	}
	// The input slice is untouched.
	assert.Empty(t, docs[0].Metadata.Source)
}
