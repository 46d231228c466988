package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_runner.go -package=mocks assembly-rag/internal/service Runner
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_ask_service.go -package=mocks -mock_names=AskService=MockAskService assembly-rag/internal/service AskService

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"assembly-rag/internal/agent"
	"assembly-rag/internal/contextutil"
	"assembly-rag/internal/retrieval"
	"assembly-rag/internal/routing"
)

// Request bounds.
const (
	MaxK           = 20
	MaxQueryLength = 1000
)

// Runner runs one question through the retrieval pipeline.
// This interface is defined from the service layer's perspective (consumer-first).
type Runner interface {
	Run(ctx context.Context, req agent.Request) agent.Result
}

// AskRequest represents a question in the domain layer.
type AskRequest struct {
	Query string
	// K is the result budget; zero selects the configured default.
	K int
	// Strategy forces a retrieval strategy by wire name; empty means classify.
	Strategy string

	AssemblyNumber string
	MinutesType    string
	SpeakerName    string
}

// AskResponse represents the outcome of a question in the domain layer.
type AskResponse struct {
	Answer         string
	Strategy       routing.Strategy
	Internal       []retrieval.Document
	External       []retrieval.Document
	Documents      []retrieval.Document
	StepCount      int
	ProcessingTime time.Duration
	Reason         agent.Reason
}

// Success reports whether an answer was generated.
func (r AskResponse) Success() bool {
	return r.Reason == agent.ReasonSuccess
}

// AskService answers questions about the assembly minutes.
type AskService interface {
	Ask(ctx context.Context, req AskRequest) (AskResponse, error)
}

// askService implements AskService.
type askService struct {
	runner Runner
}

// NewAskService creates a new AskService.
func NewAskService(runner Runner) AskService {
	return &askService{runner: runner}
}

// Ask validates req and runs it. An empty query is not a validation error:
// the run ends with the "no query" diagnostic instead.
func (s *askService) Ask(ctx context.Context, req AskRequest) (AskResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	agentReq, err := toAgentRequest(req)
	if err != nil {
		logger.WarnContext(ctx, "invalid ask request", "error", err)
		return AskResponse{}, err
	}

	result := s.runner.Run(ctx, agentReq)

	logger.InfoContext(ctx, "ask request processed",
		"strategy", result.Strategy,
		"reason", result.Reason,
		"internal", result.InternalCount(),
		"external", result.ExternalCount(),
	)
	return AskResponse{
		Answer:         result.Answer,
		Strategy:       result.Strategy,
		Internal:       result.Internal,
		External:       result.External,
		Documents:      result.Documents,
		StepCount:      result.StepCount,
		ProcessingTime: result.ProcessingTime,
		Reason:         result.Reason,
	}, nil
}

func toAgentRequest(req AskRequest) (agent.Request, error) {
	if utf8.RuneCountInString(req.Query) > MaxQueryLength {
		return agent.Request{}, &ValidationError{Field: "query", Message: "too long"}
	}
	if req.K < 0 || req.K > MaxK {
		return agent.Request{}, &ValidationError{Field: "k", Message: fmt.Sprintf("must be between 0 and %d", MaxK)}
	}

	var strategy routing.Strategy
	if raw := strings.TrimSpace(req.Strategy); raw != "" {
		s, err := routing.ParseStrategy(raw)
		if err != nil {
			return agent.Request{}, &ValidationError{Field: "strategy", Message: err.Error()}
		}
		strategy = s
	}

	return agent.Request{
		Query:    req.Query,
		K:        req.K,
		Strategy: strategy,
		Filter: retrieval.Filter{
			AssemblyNumber: strings.TrimSpace(req.AssemblyNumber),
			MinutesType:    strings.TrimSpace(req.MinutesType),
			SpeakerName:    strings.TrimSpace(req.SpeakerName),
		},
	}, nil
}
