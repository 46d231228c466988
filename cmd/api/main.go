package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"assembly-rag/internal/app"
	"assembly-rag/internal/config"
	"assembly-rag/internal/handlers"
	"assembly-rag/internal/http"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API answers questions about Korean National Assembly meeting minutes,
// combining the indexed minutes with live web search.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: Assembly RAG API
//   description: |
//     Question answering over National Assembly minutes. Each question is routed to the
//     minutes index, web search or both, and answered in plain spoken Korean.
//   version: 1.0.0
// schemes:
//   - http
//   - https
// consumes:
//   - application/json
// produces:
//   - application/json

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	app.SetupLogging(cfg, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer a.Close()

	if err := a.ValidateEmbeddings(ctx); err != nil {
		log.Fatalf("%v", err)
	}

	deps := &http.Deps{
		AskHandler:    handlers.NewAskHandler(a.AskService),
		HealthHandler: handlers.NewHealthHandler(a.VectorStore, a.Statements, cfg.QdrantCollection, cfg.WebSearchEnabled()),
	}
	if cfg.MinutesDir != "" {
		deps.IndexHandler = handlers.NewIndexHandler(ctx, a.Pipeline)

		// Start indexing in background after router is ready
		go func() {
			slog.Info("Starting background indexing of minutes", "dir", cfg.MinutesDir)
			stats, err := a.Pipeline.IndexAll(ctx)
			if err != nil {
				slog.Error("Indexing completed with errors", "error", err)
				return
			}
			slog.Info("Indexing completed successfully",
				"files", stats.FilesProcessed,
				"statements_indexed", stats.StatementsIndexed,
				"statements_unchanged", stats.StatementsUnchanged,
				"index_version", stats.IndexVersion,
			)
		}()
	} else {
		slog.Info("MINUTES_DIR not set, serving the existing index only")
	}

	srv := &nethttp.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           http.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Starting API server", "addr", srv.Addr)
		slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			log.Fatalf("API server failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Received shutdown signal, initiating graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	slog.Info("Server shutdown completed")
}
