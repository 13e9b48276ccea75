package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"tangerina/internal/config"
	"tangerina/internal/http"
	"tangerina/internal/indexer"
	"tangerina/internal/llm"
	"tangerina/internal/rag"
	"tangerina/internal/seed"
	"tangerina/internal/storage"
	"tangerina/internal/vectorstore"
	"tangerina/internal/websearch"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	blogRepo := storage.NewBlogRepo(db)

	// Initialize Qdrant vector store
	ctx := context.Background()

	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}

	// Ensure collection exists with correct vector size
	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}
	slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)

	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)

	// Create indexing pipeline
	pipeline := indexer.NewPipeline(blogRepo, embedder, vectorStore, cfg.QdrantCollection)

	// Create LLM client (external service layer)
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)

	// Web search is optional: with no API key the engine answers from local context only
	webSearcher := websearch.NewClient(cfg.SerperAPIKey)

	// Create RAG engine
	retriever := rag.NewRetriever(embedder, vectorStore, cfg.QdrantCollection, cfg.RetrievalTopK, cfg.RetrievalPool)
	ragEngine := rag.NewEngine(retriever, llmClient, webSearcher)
	slog.Info("RAG engine initialized")

	// Seed starter content on fresh deployments
	if cfg.SeedDir != "" {
		importer := seed.NewImporter(blogRepo, cfg.SeedDir)
		imported, err := importer.Import(ctx)
		if err != nil {
			log.Fatalf("Failed to import seed blogs: %v", err)
		}
		slog.Info("Seed blogs imported", "dir", cfg.SeedDir, "count", imported)
	}

	// Index any blogs whose embeddings are missing or stale. Runs in the
	// background so startup is not blocked by the embedding service.
	go func() {
		stats, err := pipeline.IndexAll(ctx)
		if err != nil {
			slog.Error("Background indexing failed", "error", err)
			return
		}
		slog.Info("Background indexing completed",
			"indexed", stats.Indexed, "skipped", stats.Skipped, "failed", stats.Failed)
	}()

	// Create router with dependencies
	router := http.NewRouter(&http.Deps{
		Engine:      ragEngine,
		BlogRepo:    blogRepo,
		Pipeline:    pipeline,
		VectorStore: vectorStore,
		Collection:  cfg.QdrantCollection,
	})

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
