package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"assembly-rag/internal/contextutil"
	"assembly-rag/internal/indexer"
)

// Indexer runs and inspects corpus indexing.
type Indexer interface {
	Reindex(ctx context.Context, force bool) (*indexer.Stats, error)
	Coverage(ctx context.Context) (*indexer.Coverage, error)
}

// IndexHandler handles HTTP requests for triggering re-indexing.
type IndexHandler struct {
	indexer Indexer
	// background is the parent context of runs started by the handler; they
	// outlive the request but stop on shutdown.
	background context.Context
}

// NewIndexHandler creates a new IndexHandler. Runs it starts are canceled with background.
func NewIndexHandler(background context.Context, idx Indexer) *IndexHandler {
	return &IndexHandler{indexer: idx, background: background}
}

// IndexResponse represents the response from the index endpoint.
type IndexResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// ServeHTTP triggers re-indexing of the minutes directory. With ?force=true the
// vector collection and catalog are cleared first.
func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	force := r.URL.Query().Get("force") == "true"

	if force {
		logger.InfoContext(ctx, "force re-indexing triggered via API")
	} else {
		logger.InfoContext(ctx, "re-indexing triggered via API")
	}

	go func() {
		indexCtx := contextutil.WithLogger(h.background, logger)
		stats, err := h.indexer.Reindex(indexCtx, force)
		switch {
		case errors.Is(err, indexer.ErrInProgress):
			logger.WarnContext(indexCtx, "re-indexing skipped", "error", err)
		case err != nil:
			logger.ErrorContext(indexCtx, "re-indexing completed with errors", "error", err)
		default:
			logger.InfoContext(indexCtx, "re-indexing completed successfully",
				"files", stats.FilesProcessed,
				"statements_indexed", stats.StatementsIndexed,
			)
		}
	}()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	message := "Indexing started. Check server logs for progress."
	if force {
		message = "Force re-indexing started (all existing data cleared). Check server logs for progress."
	}
	_ = json.NewEncoder(w).Encode(IndexResponse{
		Message: message,
		Status:  "accepted",
	})
}

// Coverage reports the size of the current index.
func (h *IndexHandler) Coverage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	cov, err := h.indexer.Coverage(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to read index coverage", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to read index coverage")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(cov); err != nil {
		logger.ErrorContext(ctx, "failed to encode coverage", "error", err)
	}
}
