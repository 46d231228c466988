package retrieval

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"assembly-rag/internal/contextutil"
	"assembly-rag/internal/routing"
)

// DefaultTimeout bounds a single retrieval branch when none is configured.
const DefaultTimeout = 15 * time.Second

// MergeResult holds the merged list and the raw output of each branch.
type MergeResult struct {
	Documents []Document
	Internal  []Document
	External  []Document
}

// Merger fans a query out to the internal and external searchers and merges the results.
type Merger struct {
	internal Searcher
	external Searcher
	timeout  time.Duration
}

// NewMerger creates a Merger. Either searcher may be nil, which behaves as an empty branch.
func NewMerger(internal, external Searcher, timeout time.Duration) *Merger {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Merger{internal: internal, external: external, timeout: timeout}
}

// Merge retrieves documents for req under strategy and returns at most req.K of them.
// Unknown strategies behave like hybrid_internal_priority.
func (m *Merger) Merge(ctx context.Context, req Request, strategy routing.Strategy) MergeResult {
	k := req.K
	if k <= 0 {
		return MergeResult{}
	}
	// k=1 leaves halved branches at zero; run skips them.
	half := k / 2

	var res MergeResult
	switch strategy {
	case routing.InternalOnly:
		res.Internal = m.run(ctx, m.internal, req.withK(k))
		res.Documents = Prioritize(res.Internal, nil, k)
	case routing.ExternalPriority:
		res.Internal, res.External = m.fanOut(ctx, req.withK(half), req.withK(k/2+2))
		res.Documents = Prioritize(res.External, res.Internal, k)
	case routing.HybridBalanced:
		res.Internal, res.External = m.fanOut(ctx, req.withK(half), req.withK(half))
		res.Documents = Interleave(res.Internal, res.External, k)
	default:
		res.Internal, res.External = m.fanOut(ctx, req.withK(k/2+2), req.withK(half))
		res.Documents = Prioritize(res.Internal, res.External, k)
	}
	return res
}

// fanOut runs both branches concurrently. Neither branch can fail the other.
func (m *Merger) fanOut(ctx context.Context, internalReq, externalReq Request) (internal, external []Document) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(2)
	g.Go(func() error {
		internal = m.run(gctx, m.internal, internalReq)
		return nil
	})
	g.Go(func() error {
		external = m.run(gctx, m.external, externalReq)
		return nil
	})
	_ = g.Wait()
	return internal, external
}

// run executes one branch under the per-branch timeout; a timed-out branch yields nothing.
func (m *Merger) run(ctx context.Context, s Searcher, req Request) []Document {
	if s == nil || req.K <= 0 {
		return nil
	}

	bctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	done := make(chan []Document, 1)
	go func() {
		done <- s.Search(bctx, req)
	}()

	select {
	case docs := <-done:
		return keepValid(docs)
	case <-bctx.Done():
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "retrieval branch abandoned",
			"source", s.Source(),
			"timeout", m.timeout,
			"error", bctx.Err(),
		)
		return nil
	}
}

// Interleave alternates a[0], b[0], a[1], b[1], ... until k documents are collected
// or both lists are exhausted.
func Interleave(a, b []Document, k int) []Document {
	out := make([]Document, 0, min(k, len(a)+len(b)))
	for i := 0; len(out) < k && (i < len(a) || i < len(b)); i++ {
		if i < len(a) {
			out = append(out, a[i])
		}
		if len(out) < k && i < len(b) {
			out = append(out, b[i])
		}
	}
	return out
}

// Prioritize concatenates first and second and keeps the first k documents.
func Prioritize(first, second []Document, k int) []Document {
	if k <= 0 {
		return nil
	}
	out := make([]Document, 0, min(k, len(first)+len(second)))
	out = append(out, first...)
	out = append(out, second...)
	if len(out) > k {
		out = out[:k]
	}
	return out
}
