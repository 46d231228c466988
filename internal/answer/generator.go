// Package answer produces the spoken-style final answer from the assembled context.
package answer

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chat_client.go -package=mocks assembly-rag/internal/answer ChatClient

import (
	"context"
	"strings"

	"assembly-rag/internal/contextutil"
	"assembly-rag/internal/llm"
	"assembly-rag/internal/routing"
)

// Fallback is returned whenever the model cannot produce an answer.
const Fallback = "죄송합니다. 답변을 생성하는 중에 문제가 발생했습니다. 다시 질문해 주시기 바랍니다."

// Defaults for the completion request.
const (
	DefaultTemperature float32 = 0.3
	DefaultMaxTokens           = 2000
)

// ChatClient is the chat completion API the generator needs.
type ChatClient interface {
	ChatWithMessages(ctx context.Context, messages []llm.Message, params llm.ChatParams) (string, error)
}

// Result reports the answer and whether the model actually produced it.
type Result struct {
	Answer    string
	Generated bool
}

// Generator turns a query and its context into an answer.
type Generator struct {
	client      ChatClient
	temperature float32
	maxTokens   int
}

// NewGenerator creates a Generator. Non-positive values select the defaults.
func NewGenerator(client ChatClient, temperature float32, maxTokens int) *Generator {
	if temperature <= 0 {
		temperature = DefaultTemperature
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Generator{client: client, temperature: temperature, maxTokens: maxTokens}
}

// Generate makes one chat completion call. It never fails: provider errors and
// empty replies yield Fallback with Generated set to false.
func (g *Generator) Generate(ctx context.Context, query, contextText string, strategy routing.Strategy) Result {
	logger := contextutil.LoggerFromContext(ctx)

	messages := []llm.Message{
		{Role: "system", Content: SystemPrompt(strategy)},
		{Role: "user", Content: UserPrompt(query, contextText, strategy)},
	}

	reply, err := g.client.ChatWithMessages(ctx, messages, llm.ChatParams{
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
	})
	if err != nil {
		logger.ErrorContext(ctx, "answer generation failed", "error", err, "strategy", strategy)
		return Result{Answer: Fallback}
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		logger.WarnContext(ctx, "answer generation returned empty reply", "strategy", strategy)
		return Result{Answer: Fallback}
	}

	logger.DebugContext(ctx, "answer generated", "answer_length", len(reply))
	return Result{Answer: reply, Generated: true}
}
