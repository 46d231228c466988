package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"assembly-rag/internal/handlers"
	"assembly-rag/internal/metrics"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	AskHandler    *handlers.AskHandler
	HealthHandler *handlers.HealthHandler
	// IndexHandler is nil when no minutes directory is configured.
	IndexHandler *handlers.IndexHandler
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)
	r.Use(BearerLogger)

	// Path used by Open WebUI pipelines.
	r.Method(http.MethodPost, "/ask_rag", deps.AskHandler)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", deps.HealthHandler)
		r.Route("/v1", func(r chi.Router) {
			r.Method(http.MethodPost, "/ask", deps.AskHandler)
			if deps.IndexHandler != nil {
				r.Method(http.MethodPost, "/index", deps.IndexHandler)
				r.Get("/index/coverage", deps.IndexHandler.Coverage)
			}
		})
	})

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}
