package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks assembly-rag/internal/vectorstore VectorStore

import "context"

// Point is one embedded statement. ID must be a UUID; Payload carries the Field* keys.
type Point struct {
	ID      string
	Vector  []float32
	Payload map[string]any
}

// SearchResult is a scored hit with the point's payload.
type SearchResult struct {
	PointID string
	Score   float32
	Payload map[string]any
}

// VectorStore is the subset of the vector index the retriever and indexer need.
// Collection management lives on QdrantStore since only startup code calls it.
type VectorStore interface {
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search returns the k nearest points. Filters are exact payload matches
	// combined with AND; string values match keyword fields, integers match integer fields.
	Search(ctx context.Context, collection string, query []float32, k int, filters map[string]any) ([]SearchResult, error)

	Delete(ctx context.Context, collection string, ids []string) error
}
