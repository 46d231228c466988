package assemble

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"assembly-rag/internal/retrieval"
)

const defaultEncoding = "cl100k_base"

// TokenCounter counts prompt tokens.
type TokenCounter interface {
	Count(text string) int
}

type tiktokenCounter struct {
	enc *tiktoken.Tiktoken
}

// NewTokenCounter returns a tiktoken counter for model, falling back to cl100k_base
// for models tiktoken does not know.
func NewTokenCounter(model string) (TokenCounter, error) {
	if m := strings.TrimSpace(model); m != "" {
		if enc, err := tiktoken.EncodingForModel(m); err == nil {
			return &tiktokenCounter{enc: enc}, nil
		}
	}
	enc, err := tiktoken.GetEncoding(defaultEncoding)
	if err != nil {
		return nil, fmt.Errorf("get default encoding: %w", err)
	}
	return &tiktokenCounter{enc: enc}, nil
}

func (c *tiktokenCounter) Count(text string) int {
	return len(c.enc.Encode(text, nil, nil))
}

// Budget trims the document list so the rendered context fits a token limit.
type Budget struct {
	counter TokenCounter
	limit   int
}

// NewBudget creates a Budget. A nil counter or non-positive limit disables trimming.
func NewBudget(counter TokenCounter, limit int) *Budget {
	return &Budget{counter: counter, limit: limit}
}

// Fit drops documents from the tail until the rendered context fits. The first
// document is always kept so a non-empty retrieval never renders as empty.
func (b *Budget) Fit(docs []retrieval.Document) []retrieval.Document {
	if b == nil || b.counter == nil || b.limit <= 0 {
		return docs
	}
	n := len(docs)
	for n > 1 && b.counter.Count(Render(docs[:n])) > b.limit {
		n--
	}
	return docs[:n]
}
