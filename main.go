package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	chromago "github.com/amikos-tech/chroma-go/pkg/api/v2"
	"github.com/gin-gonic/gin"
	"google.golang.org/genai"

	"github.com/hr-intervals/hr-assistant/config"
	"github.com/hr-intervals/hr-assistant/controller"
	"github.com/hr-intervals/hr-assistant/pkg/log"
	"github.com/hr-intervals/hr-assistant/services"
)

func main() {
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	log.Init(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()

	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Vector database client and collection.
	chromaClient, err := chromago.NewHTTPClient(chromago.WithBaseURL(cfg.Chroma.URL))
	if err != nil {
		log.Fatal("failed to create chroma client", err)
	}
	defer func() {
		if cerr := chromaClient.Close(); cerr != nil {
			log.Warnf("failed to close chroma client: %v", cerr)
		}
	}()

	collection, err := getOrCreateCollection(rootCtx, chromaClient, cfg.Chroma.Collection)
	if err != nil {
		log.Fatal("failed to get or create collection", err)
	}

	// Embedding+completion provider.
	geminiClient, err := genai.NewClient(rootCtx, &genai.ClientConfig{
		APIKey:  config.GeminiAPIKey(),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		log.Fatal("failed to create Gemini client, make sure GEMINI_API_KEY is set", err)
	}
	log.Info("connected to Google Gemini")

	// Services.
	embedder := services.NewGeminiEmbedder(geminiClient, cfg.Gemini.EmbeddingModel, cfg.GeminiTimeout())
	vectorStore := services.NewChromaVectorStore(collection, embedder)

	scraperHTTPClient := &http.Client{Timeout: cfg.FirecrawlTimeout()}
	scraper := services.NewFirecrawlScraper(
		scraperHTTPClient,
		cfg.Firecrawl.BaseURL,
		config.FirecrawlAPIKey(),
		vectorStore,
		cfg.Chunking.Size,
		cfg.Chunking.Overlap,
	)

	sessions := services.NewMemorySessionStore(time.Duration(cfg.Sessions.TTLMinutes) * time.Minute)
	if cfg.Sessions.TTLMinutes > 0 {
		go sessions.StartEviction(rootCtx, time.Minute)
	}

	chatModel := services.NewGeminiChatModel(
		geminiClient,
		cfg.Gemini.ChatModel,
		float32(cfg.Gemini.Temperature),
		cfg.GeminiTimeout(),
	)
	ragService := services.NewRAGService(vectorStore, sessions, chatModel, cfg.Retrieval.TopK, cfg.Retrieval.MaxSources)
	adminService := services.NewAdminService(vectorStore, scraper, cfg.Chunking.Size, cfg.Chunking.Overlap)

	chatController := controller.NewChatController(ragService)
	adminController := controller.NewAdminController(adminService)

	// Optional documents-directory watcher.
	if cfg.Watch.Enabled {
		watcher := services.NewDocumentWatcher(adminService)
		go watcher.Watch(rootCtx, cfg.Watch.Dir)
	}

	// HTTP router.
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(corsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "HR Assistant API",
			"version": "1.0.0",
		})
	})

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/chat", chatController.Ask)

		admin := apiV1.Group("/admin")
		{
			admin.GET("/sources", adminController.ListSources)
			admin.DELETE("/sources", adminController.DeleteSource)
			admin.PUT("/sources", adminController.UpdateDocument)
			admin.POST("/documents", adminController.UploadDocument)
			admin.POST("/scrape", adminController.ScrapeURL)
			admin.POST("/scrape/batch", adminController.ScrapeBatch)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Infof("HR assistant server starting on http://localhost:%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received, stopping server")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server shutdown failed", err)
	}
	log.Info("server stopped")
}

// getOrCreateCollection returns the named collection, creating it on first
// run.
func getOrCreateCollection(ctx context.Context, client chromago.Client, name string) (chromago.Collection, error) {
	collection, err := client.GetOrCreateCollection(
		ctx,
		name,
		chromago.WithCollectionMetadataCreate(
			chromago.NewMetadata(
				chromago.NewStringAttribute("description", "HR knowledge base"),
				chromago.NewStringAttribute("created_by", "hr_assistant"),
			),
		),
	)
	if err != nil {
		return nil, err
	}
	log.Infof("using collection %q", name)
	return collection, nil
}

// corsMiddleware allows the separately-hosted chat and admin UIs to call the
// API.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
