// Package app wires configuration into the shared components used by the binaries.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	"assembly-rag/internal/agent"
	"assembly-rag/internal/answer"
	"assembly-rag/internal/assemble"
	"assembly-rag/internal/config"
	"assembly-rag/internal/embedcache"
	"assembly-rag/internal/indexer"
	"assembly-rag/internal/llm"
	"assembly-rag/internal/retrieval"
	"assembly-rag/internal/service"
	"assembly-rag/internal/storage"
	"assembly-rag/internal/vectorstore"
	"assembly-rag/internal/websearch"
)

// App holds the constructed components. Every shared handle is built once here
// and injected; nothing is a package-level singleton.
type App struct {
	Config       *config.Config
	DB           *sql.DB
	VectorStore  *vectorstore.QdrantStore
	Minutes      *storage.MinutesRepo
	Statements   *storage.StatementRepo
	Embedder     *llm.EmbeddingsClient
	WebSearch    *websearch.Client
	Pipeline     *indexer.Pipeline
	Orchestrator *agent.Orchestrator
	AskService   service.AskService
}

// SetupLogging installs the default slog logger writing to w at the configured level and format.
func SetupLogging(cfg *config.Config, w io.Writer) {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)
}

// New opens the database and vector store and builds the query and indexing stacks.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := storage.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create Qdrant client: %w", err)
	}
	a := &App{Config: cfg, DB: db, VectorStore: vectorStore}

	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.EmbeddingVectorSize); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to ensure Qdrant collection: %w", err)
	}
	slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.EmbeddingVectorSize)

	a.Minutes = storage.NewMinutesRepo(db)
	a.Statements = storage.NewStatementRepo(db)
	a.Embedder = llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.EmbeddingVectorSize)

	cache, err := embedcache.New(a.Embedder, cfg.EmbeddingCacheSize)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.WebSearch = websearch.NewClient(cfg.TavilyBaseURL, cfg.TavilyAPIKey, cfg.TavilySearchDepth)
	if !cfg.WebSearchEnabled() {
		slog.Warn("TAVILY_API_KEY not set, web search disabled")
	}

	merger := retrieval.NewMerger(
		retrieval.NewInternalRetriever(cache, vectorStore, a.Statements, cfg.QdrantCollection),
		retrieval.NewExternalRetriever(a.WebSearch),
		cfg.RetrievalTimeout,
	)

	chat := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)
	generator := answer.NewGenerator(chat, cfg.AnswerTemperature, cfg.AnswerMaxTokens)

	var budget *assemble.Budget
	if counter, err := assemble.NewTokenCounter(cfg.LLMModelName); err != nil {
		slog.Warn("token counter unavailable, context budget disabled", "error", err)
	} else {
		budget = assemble.NewBudget(counter, cfg.ContextTokenBudget)
	}

	a.Orchestrator = agent.NewOrchestrator(merger, generator, agent.Config{
		DefaultK:  cfg.DefaultK,
		StepLimit: cfg.StepLimit,
		Budget:    budget,
	})
	a.AskService = service.NewAskService(a.Orchestrator)

	a.Pipeline = indexer.NewPipeline(
		cfg.MinutesDir,
		a.Minutes,
		a.Statements,
		a.Embedder,
		vectorStore,
		cfg.QdrantCollection,
		cfg.EmbeddingModelName,
	)

	slog.Info("RAG system initialized", "llm_model", cfg.LLMModelName, "web_search", cfg.WebSearchEnabled())
	return a, nil
}

// ValidateEmbeddings embeds a probe text and checks the vector size (fail-fast).
func (a *App) ValidateEmbeddings(ctx context.Context) error {
	vectors, err := a.Embedder.EmbedTexts(ctx, []string{"test"})
	if err != nil {
		return fmt.Errorf("failed to validate embedding client: %w", err)
	}
	if len(vectors) == 0 || len(vectors[0]) != a.Config.EmbeddingVectorSize {
		return fmt.Errorf("embedding vector size mismatch: expected %d", a.Config.EmbeddingVectorSize)
	}
	slog.Info("Embedding client validated", "vector_size", a.Config.EmbeddingVectorSize)
	return nil
}

// Close releases the database and vector store connections.
func (a *App) Close() {
	if a.VectorStore != nil {
		_ = a.VectorStore.Close()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}
