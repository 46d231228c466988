package retrieval

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_searcher.go -package=mocks assembly-rag/internal/retrieval Searcher,QueryEmbedder,WebSearcher

import (
	"context"

	"assembly-rag/internal/websearch"
)

// Searcher is a retrieval executor. Failures are logged by the implementation and
// surface as an empty result, never as an error.
type Searcher interface {
	Search(ctx context.Context, req Request) []Document
	Source() SourceType
}

// QueryEmbedder turns query text into a vector, typically through the embedding cache.
type QueryEmbedder interface {
	Get(ctx context.Context, text string) ([]float32, error)
}

// WebSearcher is the web search provider used by ExternalRetriever.
type WebSearcher interface {
	Configured() bool
	Search(ctx context.Context, query string, maxResults int) (*websearch.SearchResponse, error)
}
