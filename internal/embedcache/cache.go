// Package embedcache memoizes query embeddings keyed by exact text.
package embedcache

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_provider.go -package=mocks assembly-rag/internal/embedcache Provider

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"assembly-rag/internal/contextutil"
	"assembly-rag/internal/metrics"
)

// DefaultSize is the number of vectors kept when no size is configured.
const DefaultSize = 1000

// Provider produces embeddings for a batch of texts.
type Provider interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Cache is a bounded text-to-vector cache in front of a Provider.
// Eviction follows insertion order: lookups use Peek so a hit never refreshes an entry.
// Concurrent misses for the same text share one provider call.
type Cache struct {
	provider Provider
	entries  *lru.Cache[string, []float32]
	inflight singleflight.Group
}

// New creates a cache holding at most size vectors.
func New(provider Provider, size int) (*Cache, error) {
	if provider == nil {
		return nil, fmt.Errorf("embedding provider is required")
	}
	if size <= 0 {
		size = DefaultSize
	}
	entries, err := lru.New[string, []float32](size)
	if err != nil {
		return nil, fmt.Errorf("init embedding cache: %w", err)
	}
	return &Cache{provider: provider, entries: entries}, nil
}

// Get returns the embedding for text, calling the provider on a miss.
// Provider errors are returned unchanged and nothing is cached.
func (c *Cache) Get(ctx context.Context, text string) ([]float32, error) {
	if vec, ok := c.entries.Peek(text); ok {
		metrics.IncEmbeddingCache("hit")
		return vec, nil
	}
	metrics.IncEmbeddingCache("miss")

	v, err, shared := c.inflight.Do(text, func() (any, error) {
		if vec, ok := c.entries.Peek(text); ok {
			return vec, nil
		}
		vectors, err := c.provider.EmbedTexts(ctx, []string{text})
		if err != nil {
			return nil, err
		}
		if len(vectors) != 1 {
			return nil, fmt.Errorf("expected 1 embedding, got %d", len(vectors))
		}
		c.entries.Add(text, vectors[0])
		return vectors[0], nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		contextutil.LoggerFromContext(ctx).DebugContext(ctx, "shared in-flight embedding", "text_length", len(text))
	}
	return v.([]float32), nil
}

// Len reports the number of cached vectors.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Contains reports whether text is cached without touching its position.
func (c *Cache) Contains(text string) bool {
	return c.entries.Contains(text)
}

// Purge drops every cached vector.
func (c *Cache) Purge() {
	c.entries.Purge()
}
