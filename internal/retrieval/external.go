package retrieval

import (
	"context"
	"fmt"
	"time"

	"assembly-rag/internal/contextutil"
	"assembly-rag/internal/metrics"
)

// SummaryURL marks the synthesized web answer, which has no page of its own.
const SummaryURL = "tavily_summary"

// ExternalRetriever searches the web. It returns nothing when no provider is configured.
type ExternalRetriever struct {
	client WebSearcher
}

// NewExternalRetriever creates an ExternalRetriever; client may be nil.
func NewExternalRetriever(client WebSearcher) *ExternalRetriever {
	return &ExternalRetriever{client: client}
}

// Source implements Searcher.
func (r *ExternalRetriever) Source() SourceType {
	return SourceExternal
}

// Search runs one web query. A synthesized answer, when present, becomes the first document.
func (r *ExternalRetriever) Search(ctx context.Context, req Request) (docs []Document) {
	if r.client == nil || !r.client.Configured() || req.K <= 0 {
		return nil
	}

	logger := contextutil.LoggerFromContext(ctx)
	start := time.Now()
	defer func() {
		metrics.ObserveRetriever(string(SourceExternal), start, len(docs))
	}()

	resp, err := r.client.Search(ctx, req.Query, req.K)
	if err != nil {
		logger.WarnContext(ctx, "external search failed", "error", err)
		return nil
	}

	docs = make([]Document, 0, len(resp.Results)+1)
	if resp.Answer != "" {
		docs = append(docs, Document{
			SourceType: SourceExternalSummary,
			Content:    resp.Answer,
			Score:      1.0,
			SourceName: SourceNameSummary,
			Web: &WebMeta{
				Title: fmt.Sprintf("%s에 대한 요약 답변", req.Query),
				URL:   SummaryURL,
			},
		})
	}
	for _, res := range resp.Results {
		docs = append(docs, Document{
			SourceType: SourceExternal,
			Content:    res.Content,
			Score:      res.Score,
			SourceName: SourceNameWeb,
			Web: &WebMeta{
				Title: res.Title,
				URL:   res.URL,
			},
		})
	}

	docs = keepValid(docs)
	logger.DebugContext(ctx, "external search complete", "documents", len(docs), "has_summary", resp.Answer != "")
	return docs
}
