package agent

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_agent.go -package=mocks assembly-rag/internal/agent Merger,Generator

import (
	"context"
	"strings"
	"time"

	"assembly-rag/internal/answer"
	"assembly-rag/internal/assemble"
	"assembly-rag/internal/contextutil"
	"assembly-rag/internal/metrics"
	"assembly-rag/internal/retrieval"
	"assembly-rag/internal/routing"
)

// Defaults applied by NewOrchestrator.
const (
	DefaultK         = 5
	DefaultStepLimit = 10
)

// Merger retrieves and merges documents for a strategy.
type Merger interface {
	Merge(ctx context.Context, req retrieval.Request, strategy routing.Strategy) retrieval.MergeResult
}

// Generator writes the final answer.
type Generator interface {
	Generate(ctx context.Context, query, contextText string, strategy routing.Strategy) answer.Result
}

// Config tunes an Orchestrator.
type Config struct {
	DefaultK  int
	StepLimit int
	// Budget trims the merged documents before rendering; nil keeps them all.
	Budget *assemble.Budget
}

// Orchestrator runs entry, strategy, search and answer stages in order.
type Orchestrator struct {
	merger    Merger
	generator Generator
	budget    *assemble.Budget
	defaultK  int
	stepLimit int
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(merger Merger, generator Generator, cfg Config) *Orchestrator {
	if cfg.DefaultK <= 0 {
		cfg.DefaultK = DefaultK
	}
	if cfg.StepLimit <= 0 {
		cfg.StepLimit = DefaultStepLimit
	}
	return &Orchestrator{
		merger:    merger,
		generator: generator,
		budget:    cfg.Budget,
		defaultK:  cfg.DefaultK,
		stepLimit: cfg.StepLimit,
	}
}

// Run drives one query to a terminal state. It never returns an error: every
// failure ends in a terminal reason with a substitute answer.
func (o *Orchestrator) Run(ctx context.Context, req Request) Result {
	logger := contextutil.LoggerFromContext(ctx)

	k := req.K
	if k <= 0 {
		k = o.defaultK
	}

	st := &QueryState{
		Query:     req.Query,
		State:     StateEntry,
		StartedAt: time.Now(),
		Durations: make(map[State]time.Duration, 4),
	}

	for st.State != StateTerminal {
		if ctx.Err() != nil {
			st.State = st.terminate(ReasonCanceled, answer.Fallback)
			break
		}
		if st.StepCount > o.stepLimit {
			st.State = st.terminate(ReasonStepLimit, answer.Fallback)
			break
		}

		current := st.State
		start := time.Now()
		st.State = o.step(ctx, st, req, k)
		st.Durations[current] += time.Since(start)

		logger.DebugContext(ctx, "orchestrator step",
			"from", current.String(),
			"to", st.State.String(),
			"step", st.StepCount,
		)
	}

	st.EndedAt = time.Now()
	elapsed := st.EndedAt.Sub(st.StartedAt)
	metrics.ObserveRun(string(st.Reason), elapsed)

	logger.InfoContext(ctx, "query finished",
		"reason", st.Reason,
		"strategy", st.Strategy,
		"internal_count", len(st.Internal),
		"external_count", len(st.External),
		"step_count", st.StepCount,
		"duration", elapsed,
	)

	return Result{
		Answer:         st.Answer,
		Strategy:       st.Strategy,
		Internal:       st.Internal,
		External:       st.External,
		Documents:      st.Documents,
		Context:        st.Context,
		StepCount:      st.StepCount,
		ProcessingTime: elapsed,
		Reason:         st.Reason,
	}
}

// step executes the current stage and returns the next state.
func (o *Orchestrator) step(ctx context.Context, st *QueryState, req Request, k int) State {
	switch st.State {
	case StateEntry:
		st.StepCount++
		if strings.TrimSpace(st.Query) == "" {
			return st.terminate(ReasonNoQuery, NoQueryAnswer)
		}
		return StateStrategy

	case StateStrategy:
		st.StepCount++
		// Classification runs on the expanded query so synonyms count as keywords.
		st.ExpandedQuery = routing.Expand(st.Query)
		if req.Strategy.Valid() {
			st.Strategy = req.Strategy
			st.Forced = true
		} else {
			st.Strategy = routing.Classify(st.ExpandedQuery)
		}
		metrics.IncStrategy(st.Strategy.String())

		contextutil.LoggerFromContext(ctx).DebugContext(ctx, "strategy selected",
			"strategy", st.Strategy,
			"forced", st.Forced,
			"expanded_query", st.ExpandedQuery,
		)
		if st.StepCount > o.stepLimit {
			return st.terminate(ReasonStepLimit, answer.Fallback)
		}
		return StateSearch

	case StateSearch:
		st.StepCount++
		res := o.merger.Merge(ctx, retrieval.Request{Query: st.Query, K: k, Filter: req.Filter}, st.Strategy)
		st.Internal = res.Internal
		st.External = res.External
		st.Documents = res.Documents
		if st.StepCount > o.stepLimit {
			return st.terminate(ReasonStepLimit, answer.Fallback)
		}
		if len(st.Internal) == 0 && len(st.External) == 0 {
			return st.terminate(ReasonNoResults, NoResultsAnswer)
		}
		return StateAnswer

	case StateAnswer:
		st.StepCount++
		st.Context = assemble.Render(o.budget.Fit(st.Documents))
		res := o.generator.Generate(ctx, st.Query, st.Context, st.Strategy)
		if !res.Generated {
			return st.terminate(ReasonGenerationError, res.Answer)
		}
		return st.terminate(ReasonSuccess, res.Answer)

	default:
		return StateTerminal
	}
}
