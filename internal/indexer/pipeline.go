// Package indexer embeds meeting-minutes statements and stores them in Qdrant and SQLite.
package indexer

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_embedder.go -package=mocks assembly-rag/internal/indexer Embedder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/sethvargo/go-retry"

	"assembly-rag/internal/contextutil"
	"assembly-rag/internal/corpus"
	"assembly-rag/internal/llm"
	"assembly-rag/internal/metrics"
	"assembly-rag/internal/storage"
	"assembly-rag/internal/vectorstore"
)

// Batch sizes for the embedding provider and the vector store.
const (
	EmbedBatchSize  = 50
	UpsertBatchSize = 500
)

// ErrInProgress is returned when a full indexing run is already active.
var ErrInProgress = errors.New("indexing already in progress")

// Embedder produces embeddings for a batch of texts, in input order.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Pipeline indexes transcript files from a corpus directory.
type Pipeline struct {
	root           string
	minutesRepo    storage.MinutesStore
	statementRepo  storage.StatementStore
	embedder       Embedder
	vectorStore    vectorstore.VectorStore
	collection     string
	embeddingModel string
	backoff        func() retry.Backoff
	running        atomic.Bool
}

// NewPipeline creates a new indexing pipeline. root may be empty when only
// IndexFile and ClearAll are used.
func NewPipeline(
	root string,
	minutesRepo storage.MinutesStore,
	statementRepo storage.StatementStore,
	embedder Embedder,
	vectorStore vectorstore.VectorStore,
	collection string,
	embeddingModel string,
) *Pipeline {
	return &Pipeline{
		root:           root,
		minutesRepo:    minutesRepo,
		statementRepo:  statementRepo,
		embedder:       embedder,
		vectorStore:    vectorStore,
		collection:     collection,
		embeddingModel: embeddingModel,
		backoff: func() retry.Backoff {
			return retry.WithMaxRetries(3, retry.WithJitter(100*time.Millisecond, retry.NewExponential(500*time.Millisecond)))
		},
	}
}

type pendingStatement struct {
	record storage.StatementRecord
	text   string
}

// IndexFile indexes one transcript file. Statements with an empty summary are
// skipped and statements whose contextual text is unchanged are not re-embedded.
func (p *Pipeline) IndexFile(ctx context.Context, path string) (*Stats, error) {
	t, err := corpus.Load(path)
	if err != nil {
		return nil, err
	}

	stats := &Stats{}
	if err := p.indexTranscript(ctx, t, path, stats); err != nil {
		return nil, err
	}
	stats.FilesProcessed = 1
	stats.finalize(p.embeddingModel)
	return stats, nil
}

func (p *Pipeline) indexTranscript(ctx context.Context, t *corpus.Transcript, sourceFile string, total *Stats) error {
	logger := contextutil.LoggerFromContext(ctx)

	existing, err := p.statementRepo.HashesByMinutes(ctx, t.ID)
	if err != nil {
		return fmt.Errorf("failed to load existing hashes: %w", err)
	}

	stats := &Stats{}
	defer func() {
		metrics.AddIndexed("indexed", stats.StatementsIndexed)
		metrics.AddIndexed("unchanged", stats.StatementsUnchanged)
		metrics.AddIndexed("skipped", stats.StatementsSkipped)
		metrics.AddIndexed("failed", stats.StatementsFailed)
		total.add(stats)
	}()

	var pending []pendingStatement
	for _, s := range t.Statements {
		stats.StatementsSeen++
		if strings.TrimSpace(s.Summary) == "" {
			stats.StatementsSkipped++
			continue
		}

		text := ContextualText(t, s)
		hash := contentHash(text)
		docID := t.DocumentID(s)
		if existing[docID] == hash {
			stats.StatementsUnchanged++
			continue
		}

		pending = append(pending, pendingStatement{
			record: storage.StatementRecord{
				DocumentID:  docID,
				MinutesID:   t.ID,
				SpeechOrder: s.SpeechOrder,
				SpeakerName: s.SpeakerName,
				Position:    s.Position,
				Content:     text,
				Hash:        hash,
				PointID:     PointID(docID),
			},
			text: text,
		})
	}

	if err := p.minutesRepo.Upsert(ctx, &storage.MinutesRecord{
		ID:             t.ID,
		MinutesType:    t.Type,
		MinutesDate:    t.Date,
		AssemblyNumber: t.AssemblyNumber,
		SessionNumber:  t.SessionNumber,
		SubSession:     t.SubSession,
		SourceFile:     sourceFile,
	}); err != nil {
		return fmt.Errorf("failed to upsert minutes: %w", err)
	}

	if len(pending) == 0 {
		logger.DebugContext(ctx, "no changed statements", "minutes_id", t.ID, "unchanged", stats.StatementsUnchanged)
		return nil
	}

	points := make([]vectorstore.Point, 0, len(pending))
	embedded := make([]pendingStatement, 0, len(pending))
	for start := 0; start < len(pending); start += EmbedBatchSize {
		batch := pending[start:min(start+EmbedBatchSize, len(pending))]
		texts := make([]string, len(batch))
		for i, ps := range batch {
			texts[i] = ps.text
		}

		vectors, err := p.embedBatch(ctx, texts)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			stats.StatementsFailed += len(batch)
			logger.ErrorContext(ctx, "failed to embed batch", "minutes_id", t.ID, "batch_start", start, "size", len(batch), "error", err)
			continue
		}

		for i, ps := range batch {
			points = append(points, vectorstore.Point{
				ID:      ps.record.PointID,
				Vector:  vectors[i],
				Payload: payload(t, ps.record),
			})
			embedded = append(embedded, ps)
		}
	}

	for start := 0; start < len(points); start += UpsertBatchSize {
		end := min(start+UpsertBatchSize, len(points))
		if err := p.vectorStore.Upsert(ctx, p.collection, points[start:end]); err != nil {
			stats.StatementsFailed += end - start
			logger.ErrorContext(ctx, "failed to upsert vectors", "minutes_id", t.ID, "count", end-start, "error", err)
			continue
		}
		// Catalog rows are written only after their points exist.
		for i := start; i < end; i++ {
			rec := embedded[i].record
			if err := p.statementRepo.Upsert(ctx, &rec); err != nil {
				return fmt.Errorf("failed to upsert statement %s: %w", rec.DocumentID, err)
			}
			stats.StatementsIndexed++
			stats.observeText(embedded[i].text)
		}
	}

	logger.InfoContext(ctx, "indexed minutes",
		"minutes_id", t.ID,
		"indexed", stats.StatementsIndexed,
		"unchanged", stats.StatementsUnchanged,
		"skipped", stats.StatementsSkipped,
		"failed", stats.StatementsFailed,
	)
	return nil
}

// embedBatch calls the embedder, retrying rate limits and server errors with backoff.
func (p *Pipeline) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	var vectors [][]float32
	err := retry.Do(ctx, p.backoff(), func(ctx context.Context) error {
		out, err := p.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			var statusErr *llm.StatusError
			if errors.As(err, &statusErr) && statusErr.Retryable() {
				return retry.RetryableError(err)
			}
			return err
		}
		vectors = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(texts), len(vectors))
	}
	return vectors, nil
}

func payload(t *corpus.Transcript, rec storage.StatementRecord) map[string]any {
	return map[string]any{
		vectorstore.FieldDocumentID:     rec.DocumentID,
		vectorstore.FieldMinutesID:      t.ID,
		vectorstore.FieldMinutesType:    t.Type,
		vectorstore.FieldMinutesDate:    t.Date,
		vectorstore.FieldAssemblyNumber: t.AssemblyNumber,
		vectorstore.FieldSessionNumber:  t.SessionNumber,
		vectorstore.FieldSubSession:     t.SubSession,
		vectorstore.FieldSpeechOrder:    rec.SpeechOrder,
		vectorstore.FieldSpeakerName:    rec.SpeakerName,
		vectorstore.FieldPosition:       rec.Position,
		vectorstore.FieldContent:        rec.Content,
	}
}

// IndexAll scans the corpus directory and indexes every transcript.
// Errors for individual files are logged but don't stop the run.
func (p *Pipeline) IndexAll(ctx context.Context) (*Stats, error) {
	return p.Reindex(ctx, false)
}

// Reindex indexes the corpus, clearing the vector collection and catalog first
// when force is set. Clearing and indexing run under one in-progress guard, so a
// concurrent run or clear gets ErrInProgress and never sees a half-cleared index.
func (p *Pipeline) Reindex(ctx context.Context, force bool) (*Stats, error) {
	if p.root == "" {
		return nil, fmt.Errorf("minutes directory is not configured")
	}
	if !p.running.CompareAndSwap(false, true) {
		return nil, ErrInProgress
	}
	defer p.running.Store(false)

	if force {
		if err := p.clear(ctx); err != nil {
			return nil, err
		}
	}
	return p.indexAll(ctx)
}

func (p *Pipeline) indexAll(ctx context.Context) (*Stats, error) {
	logger := contextutil.LoggerFromContext(ctx)

	files, err := corpus.Scan(ctx, p.root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan minutes directory: %w", err)
	}

	logger.InfoContext(ctx, "starting indexing", "total_files", len(files))

	stats := &Stats{}
	for _, file := range files {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		fileCtx := contextutil.WithAttrs(ctx, "rel_path", file.RelPath)
		t, err := corpus.Load(file.AbsPath)
		if err == nil {
			err = p.indexTranscript(fileCtx, t, file.RelPath, stats)
		}
		if err != nil {
			if ctx.Err() != nil {
				return stats, ctx.Err()
			}
			stats.FilesFailed++
			logger.ErrorContext(ctx, "failed to index file", "rel_path", file.RelPath, "error", err)
			continue
		}
		stats.FilesProcessed++
	}
	stats.finalize(p.embeddingModel)

	logger.InfoContext(ctx, "indexing completed",
		"total_files", len(files),
		"success", stats.FilesProcessed,
		"errors", stats.FilesFailed,
		"statements_indexed", stats.StatementsIndexed,
	)

	if stats.FilesFailed > 0 {
		return stats, fmt.Errorf("indexing completed with %d errors", stats.FilesFailed)
	}
	return stats, nil
}

// ClearAll removes every indexed point and catalog row. It returns ErrInProgress
// while an indexing run is active.
func (p *Pipeline) ClearAll(ctx context.Context) error {
	if !p.running.CompareAndSwap(false, true) {
		return ErrInProgress
	}
	defer p.running.Store(false)
	return p.clear(ctx)
}

func (p *Pipeline) clear(ctx context.Context) error {
	ids, err := p.statementRepo.ListPointIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list point IDs: %w", err)
	}
	for start := 0; start < len(ids); start += UpsertBatchSize {
		end := min(start+UpsertBatchSize, len(ids))
		if err := p.vectorStore.Delete(ctx, p.collection, ids[start:end]); err != nil {
			return fmt.Errorf("failed to delete points: %w", err)
		}
	}
	if err := p.statementRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear catalog: %w", err)
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "cleared index", "points", len(ids))
	return nil
}
