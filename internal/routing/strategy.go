// Package routing expands raw questions with domain synonyms and picks a retrieval strategy.
package routing

import "fmt"

// Strategy selects which retrievers run and how their results are merged.
type Strategy string

const (
	// InternalOnly searches the meeting-minutes index alone.
	InternalOnly Strategy = "internal_only"
	// ExternalPriority favours web results and pads them ahead of the minutes.
	ExternalPriority Strategy = "external_priority"
	// HybridBalanced interleaves minutes and web results one for one.
	HybridBalanced Strategy = "hybrid_balanced"
	// HybridInternalPriority favours minutes and pads them ahead of web results.
	HybridInternalPriority Strategy = "hybrid_internal_priority"
)

// Strategies lists every strategy in routing priority order.
var Strategies = []Strategy{InternalOnly, ExternalPriority, HybridBalanced, HybridInternalPriority}

var labels = map[Strategy]string{
	InternalOnly:           "국회 회의록 전용",
	ExternalPriority:       "최신 정보 우선",
	HybridBalanced:         "균형 검색",
	HybridInternalPriority: "국회 우선",
}

var descriptions = map[Strategy]string{
	InternalOnly:           "국회 회의록만을 참고하여",
	ExternalPriority:       "최신 웹 정보를 우선으로 하여",
	HybridBalanced:         "국회 회의록과 최신 웹 정보를 균형있게 참고하여",
	HybridInternalPriority: "국회 회의록을 중심으로 최신 정보를 보완하여",
}

const defaultDescription = "다양한 정보를 종합하여"

func (s Strategy) String() string {
	return string(s)
}

// Valid reports whether s is one of the four known strategies.
func (s Strategy) Valid() bool {
	_, ok := labels[s]
	return ok
}

// Label is the Korean display name shown to users.
func (s Strategy) Label() string {
	if l, ok := labels[s]; ok {
		return l
	}
	return string(s)
}

// Description is the phrase the answer prompt uses to say how sources were weighed.
func (s Strategy) Description() string {
	if d, ok := descriptions[s]; ok {
		return d
	}
	return defaultDescription
}

// UsesExternal reports whether the strategy queries web search.
func (s Strategy) UsesExternal() bool {
	return s != InternalOnly
}

// ParseStrategy converts a wire value into a Strategy.
func ParseStrategy(raw string) (Strategy, error) {
	s := Strategy(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown strategy %q", raw)
	}
	return s, nil
}
