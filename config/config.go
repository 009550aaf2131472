// Package config loads application settings from configs/config.yaml and
// secrets from the environment (.env is loaded if present).
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Conf holds the loaded configuration for the whole process.
var Conf Config

// Config mirrors the structure of config.yaml. Secrets (API keys) are never
// put in the file; they come from the environment.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Chroma    ChromaConfig    `mapstructure:"chroma"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	Firecrawl FirecrawlConfig `mapstructure:"firecrawl"`
	Chunking  ChunkingConfig  `mapstructure:"chunking"`
	Retrieval RetrievalConfig `mapstructure:"retrieval"`
	Sessions  SessionsConfig  `mapstructure:"sessions"`
	Watch     WatchConfig     `mapstructure:"watch"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ChromaConfig holds the vector database connection settings.
type ChromaConfig struct {
	URL        string `mapstructure:"url"`
	Collection string `mapstructure:"collection"`
}

// GeminiConfig holds the embedding+completion provider settings.
type GeminiConfig struct {
	ChatModel      string  `mapstructure:"chat_model"`
	EmbeddingModel string  `mapstructure:"embedding_model"`
	Temperature    float64 `mapstructure:"temperature"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds"`
}

// FirecrawlConfig holds the scraping provider settings.
type FirecrawlConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// ChunkingConfig controls the recursive text splitter.
type ChunkingConfig struct {
	Size    int `mapstructure:"size"`
	Overlap int `mapstructure:"overlap"`
}

// RetrievalConfig controls nearest-neighbor retrieval and citation display.
type RetrievalConfig struct {
	TopK       int `mapstructure:"top_k"`
	MaxSources int `mapstructure:"max_sources"`
}

// SessionsConfig controls chat history eviction. TTLMinutes of 0 disables
// eviction and histories live for the process lifetime.
type SessionsConfig struct {
	TTLMinutes int `mapstructure:"ttl_minutes"`
}

// WatchConfig controls the optional documents-directory watcher.
type WatchConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

// Init reads the YAML config file into Conf and loads the local .env file
// when one exists. Defaults are registered with viper before reading, so an
// explicit zero in the file (temperature: 0, overlap: 0) is kept as zero.
func Init(configPath string) {
	if err := godotenv.Load(); err != nil {
		// Not an error: production deployments set real env vars.
	}

	setDefaults()
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("failed to read config file: %w", err))
	}
	if err := viper.Unmarshal(&Conf); err != nil {
		panic(fmt.Errorf("failed to unmarshal config: %w", err))
	}
}

func setDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("chroma.collection", "hr-knowledge-base")
	viper.SetDefault("gemini.chat_model", "gemini-2.5-flash")
	viper.SetDefault("gemini.embedding_model", "gemini-embedding-001")
	viper.SetDefault("gemini.temperature", 0.3)
	viper.SetDefault("gemini.timeout_seconds", 60)
	viper.SetDefault("firecrawl.base_url", "https://api.firecrawl.dev")
	viper.SetDefault("firecrawl.timeout_seconds", 60)
	viper.SetDefault("chunking.size", 1000)
	viper.SetDefault("chunking.overlap", 200)
	viper.SetDefault("retrieval.top_k", 5)
	viper.SetDefault("retrieval.max_sources", 3)
}

// GeminiAPIKey returns the provider API key from the environment.
func GeminiAPIKey() string { return os.Getenv("GEMINI_API_KEY") }

// FirecrawlAPIKey returns the scraping API key from the environment.
func FirecrawlAPIKey() string { return os.Getenv("FIRECRAWL_API_KEY") }

// GeminiTimeout returns the configured deadline for provider calls.
func (c *Config) GeminiTimeout() time.Duration {
	return time.Duration(c.Gemini.TimeoutSeconds) * time.Second
}

// FirecrawlTimeout returns the configured deadline for scraping calls.
func (c *Config) FirecrawlTimeout() time.Duration {
	return time.Duration(c.Firecrawl.TimeoutSeconds) * time.Second
}
