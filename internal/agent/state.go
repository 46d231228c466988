// Package agent sequences a query through routing, retrieval and answer generation
// as an explicit state machine with a hard step ceiling.
package agent

import (
	"time"

	"assembly-rag/internal/retrieval"
	"assembly-rag/internal/routing"
)

// State is an orchestrator stage.
type State int

const (
	StateEntry State = iota
	StateStrategy
	StateSearch
	StateAnswer
	StateTerminal
)

func (s State) String() string {
	switch s {
	case StateEntry:
		return "entry"
	case StateStrategy:
		return "strategy"
	case StateSearch:
		return "search"
	case StateAnswer:
		return "answer"
	case StateTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Reason explains why a run reached the terminal state.
type Reason string

const (
	ReasonSuccess         Reason = "success"
	ReasonNoQuery         Reason = "no query"
	ReasonStepLimit       Reason = "step limit"
	ReasonNoResults       Reason = "no results"
	ReasonGenerationError Reason = "generation error"
	ReasonCanceled        Reason = "canceled"
)

// Answers used when a run ends without a generated answer.
const (
	NoQueryAnswer   = "질문이 없습니다."
	NoResultsAnswer = "죄송합니다. 질문과 관련된 정보를 찾을 수 없습니다. 다른 방식으로 질문해 주시거나, 더 구체적인 내용으로 다시 질문해 주세요."
)

// QueryState is the request-scoped state carried between stages.
type QueryState struct {
	Query         string
	ExpandedQuery string
	Strategy      routing.Strategy
	Forced        bool

	Internal  []retrieval.Document
	External  []retrieval.Document
	Documents []retrieval.Document

	Context string
	Answer  string

	StepCount int
	State     State
	Reason    Reason

	StartedAt time.Time
	EndedAt   time.Time
	Durations map[State]time.Duration
}

func (s *QueryState) terminate(reason Reason, answer string) State {
	s.Reason = reason
	s.Answer = answer
	return StateTerminal
}

// Request is one question for the orchestrator.
type Request struct {
	Query string
	// K caps the merged document list; non-positive selects the orchestrator default.
	K int
	// Strategy forces a retrieval strategy when valid; otherwise the query is classified.
	Strategy routing.Strategy
	Filter   retrieval.Filter
}

// Result is the terminal output of a run.
type Result struct {
	Answer         string
	Strategy       routing.Strategy
	Internal       []retrieval.Document
	External       []retrieval.Document
	Documents      []retrieval.Document
	Context        string
	StepCount      int
	ProcessingTime time.Duration
	Reason         Reason
}

// Success reports whether the run produced a generated answer.
func (r Result) Success() bool {
	return r.Reason == ReasonSuccess
}

// InternalCount is the number of minutes documents retrieved.
func (r Result) InternalCount() int {
	return len(r.Internal)
}

// ExternalCount is the number of web documents retrieved, including a summary.
func (r Result) ExternalCount() int {
	return len(r.External)
}
