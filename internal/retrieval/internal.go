package retrieval

import (
	"context"
	"time"

	"assembly-rag/internal/contextutil"
	"assembly-rag/internal/metrics"
	"assembly-rag/internal/routing"
	"assembly-rag/internal/storage"
	"assembly-rag/internal/vectorstore"
)

// InternalRetriever searches the meeting-minutes vector index.
type InternalRetriever struct {
	embedder   QueryEmbedder
	store      vectorstore.VectorStore
	statements storage.StatementStore
	collection string
}

// NewInternalRetriever creates an InternalRetriever. statements may be nil, in which
// case hits without payload content are dropped instead of hydrated.
func NewInternalRetriever(embedder QueryEmbedder, store vectorstore.VectorStore, statements storage.StatementStore, collection string) *InternalRetriever {
	return &InternalRetriever{
		embedder:   embedder,
		store:      store,
		statements: statements,
		collection: collection,
	}
}

// Source implements Searcher.
func (r *InternalRetriever) Source() SourceType {
	return SourceInternal
}

// Search embeds the expanded query and returns the k nearest statements in index order.
func (r *InternalRetriever) Search(ctx context.Context, req Request) (docs []Document) {
	logger := contextutil.LoggerFromContext(ctx)
	start := time.Now()
	defer func() {
		metrics.ObserveRetriever(string(SourceInternal), start, len(docs))
	}()

	if req.K <= 0 {
		return nil
	}

	expanded := routing.Expand(req.Query)
	vec, err := r.embedder.Get(ctx, expanded)
	if err != nil {
		logger.WarnContext(ctx, "internal search: embedding failed", "error", err)
		return nil
	}

	hits, err := r.store.Search(ctx, r.collection, vec, req.K, req.Filter.Map())
	if err != nil {
		logger.WarnContext(ctx, "internal search: vector search failed", "error", err)
		return nil
	}

	details := r.hydrate(ctx, hits)

	docs = make([]Document, 0, len(hits))
	for _, hit := range hits {
		doc := Document{
			SourceType: SourceInternal,
			Content:    vectorstore.PayloadString(hit.Payload, vectorstore.FieldContent),
			Score:      float64(hit.Score),
			SourceName: SourceNameMinutes,
			Statement: &StatementMeta{
				DocumentID:     vectorstore.PayloadString(hit.Payload, vectorstore.FieldDocumentID),
				SpeakerName:    vectorstore.PayloadString(hit.Payload, vectorstore.FieldSpeakerName),
				Position:       vectorstore.PayloadString(hit.Payload, vectorstore.FieldPosition),
				MinutesDate:    vectorstore.PayloadString(hit.Payload, vectorstore.FieldMinutesDate),
				AssemblyNumber: vectorstore.PayloadString(hit.Payload, vectorstore.FieldAssemblyNumber),
				SessionNumber:  vectorstore.PayloadString(hit.Payload, vectorstore.FieldSessionNumber),
				MinutesType:    vectorstore.PayloadString(hit.Payload, vectorstore.FieldMinutesType),
			},
		}
		if d, ok := details[doc.Statement.DocumentID]; ok {
			fillFromDetail(&doc, d)
		}
		docs = append(docs, doc)
	}

	docs = keepValid(docs)
	logger.DebugContext(ctx, "internal search complete",
		"expanded_query", expanded,
		"hits", len(hits),
		"documents", len(docs),
	)
	return docs
}

// hydrate loads catalog rows for hits whose payload lacks content.
func (r *InternalRetriever) hydrate(ctx context.Context, hits []vectorstore.SearchResult) map[string]*storage.StatementDetail {
	if r.statements == nil {
		return nil
	}
	var ids []string
	for _, hit := range hits {
		if vectorstore.PayloadString(hit.Payload, vectorstore.FieldContent) != "" {
			continue
		}
		if id := vectorstore.PayloadString(hit.Payload, vectorstore.FieldDocumentID); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	details, err := r.statements.GetDetails(ctx, ids)
	if err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "internal search: failed to load statement details", "error", err, "count", len(ids))
		return nil
	}
	return details
}

func fillFromDetail(doc *Document, d *storage.StatementDetail) {
	if doc.Content == "" {
		doc.Content = d.Content
	}
	meta := doc.Statement
	if meta.SpeakerName == "" {
		meta.SpeakerName = d.SpeakerName
	}
	if meta.Position == "" {
		meta.Position = d.Position
	}
	if meta.MinutesDate == "" {
		meta.MinutesDate = d.Minutes.MinutesDate
	}
	if meta.AssemblyNumber == "" {
		meta.AssemblyNumber = d.Minutes.AssemblyNumber
	}
	if meta.SessionNumber == "" {
		meta.SessionNumber = d.Minutes.SessionNumber
	}
	if meta.MinutesType == "" {
		meta.MinutesType = d.Minutes.MinutesType
	}
}
