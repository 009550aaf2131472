package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  mode: release\n"), 0o644))

	Init(path)

	assert.Equal(t, "release", Conf.Server.Mode)
	assert.Equal(t, "8080", Conf.Server.Port)
	assert.Equal(t, "hr-knowledge-base", Conf.Chroma.Collection)
	assert.Equal(t, "gemini-2.5-flash", Conf.Gemini.ChatModel)
	assert.Equal(t, "gemini-embedding-001", Conf.Gemini.EmbeddingModel)
	assert.InDelta(t, 0.3, Conf.Gemini.Temperature, 1e-9)
	assert.Equal(t, 1000, Conf.Chunking.Size)
	assert.Equal(t, 200, Conf.Chunking.Overlap)
	assert.Equal(t, 5, Conf.Retrieval.TopK)
	assert.Equal(t, 3, Conf.Retrieval.MaxSources)
	assert.Equal(t, 60*time.Second, Conf.GeminiTimeout())
}

func TestInitOverridesFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: "9090"
chunking:
  size: 500
  overlap: 50
retrieval:
  top_k: 8
sessions:
  ttl_minutes: 30
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	Init(path)

	assert.Equal(t, "9090", Conf.Server.Port)
	assert.Equal(t, 500, Conf.Chunking.Size)
	assert.Equal(t, 50, Conf.Chunking.Overlap)
	assert.Equal(t, 8, Conf.Retrieval.TopK)
	assert.Equal(t, 30, Conf.Sessions.TTLMinutes)
}

func TestInitKeepsExplicitZeros(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
gemini:
  temperature: 0
chunking:
  overlap: 0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	Init(path)

	assert.Zero(t, Conf.Gemini.Temperature, "an explicit zero temperature must not snap back to the default")
	assert.Zero(t, Conf.Chunking.Overlap, "an explicit zero overlap must not snap back to the default")
	// Untouched keys still default.
	assert.Equal(t, 1000, Conf.Chunking.Size)
}
