package indexer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
	"unicode/utf8"
)

// TokensPerRune approximates tokens from rune count (about 4 characters per token).
const TokensPerRune = 4.0

// Stats summarizes one indexing run.
type Stats struct {
	FilesProcessed      int        `json:"files_processed"`
	FilesFailed         int        `json:"files_failed"`
	StatementsSeen      int        `json:"statements_seen"`
	StatementsIndexed   int        `json:"statements_indexed"`
	StatementsUnchanged int        `json:"statements_unchanged"`
	StatementsSkipped   int        `json:"statements_skipped"`
	StatementsFailed    int        `json:"statements_failed"`
	TokenStats          TokenStats `json:"token_stats"`
	IndexVersion        string     `json:"index_version"`

	tokenCounts []int
}

// TokenStats describes the estimated token counts of embedded texts.
type TokenStats struct {
	Min  int     `json:"min"`
	Max  int     `json:"max"`
	Mean float64 `json:"mean"`
	P95  int     `json:"p95"`
}

func (s *Stats) add(o *Stats) {
	s.StatementsSeen += o.StatementsSeen
	s.StatementsIndexed += o.StatementsIndexed
	s.StatementsUnchanged += o.StatementsUnchanged
	s.StatementsSkipped += o.StatementsSkipped
	s.StatementsFailed += o.StatementsFailed
	s.tokenCounts = append(s.tokenCounts, o.tokenCounts...)
}

func (s *Stats) observeText(text string) {
	n := int(math.Round(float64(utf8.RuneCountInString(text)) / TokensPerRune))
	if n < 1 {
		n = 1
	}
	s.tokenCounts = append(s.tokenCounts, n)
}

func (s *Stats) finalize(embeddingModel string) {
	s.TokenStats = computeTokenStats(s.tokenCounts)
	s.IndexVersion = IndexVersion(embeddingModel)
}

// IndexVersion identifies an index build: text layout, embedding model and batch size.
func IndexVersion(embeddingModel string) string {
	input := fmt.Sprintf("%s|%s|embedBatch=%d", TextFormatVersion, embeddingModel, EmbedBatchSize)
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])[:16]
}

// Coverage is the current size of the catalog.
type Coverage struct {
	Minutes      int    `json:"minutes"`
	Statements   int    `json:"statements"`
	IndexVersion string `json:"index_version"`
}

// Coverage reports how many transcripts and statements are indexed.
func (p *Pipeline) Coverage(ctx context.Context) (*Coverage, error) {
	minutes, err := p.minutesRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count minutes: %w", err)
	}
	statements, err := p.statementRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count statements: %w", err)
	}
	return &Coverage{
		Minutes:      minutes,
		Statements:   statements,
		IndexVersion: IndexVersion(p.embeddingModel),
	}, nil
}

// computeTokenStats computes min, max, mean, and p95 from token counts.
func computeTokenStats(tokenCounts []int) TokenStats {
	if len(tokenCounts) == 0 {
		return TokenStats{}
	}

	sorted := make([]int, len(tokenCounts))
	copy(sorted, tokenCounts)
	sort.Ints(sorted)

	sum := 0
	for _, count := range tokenCounts {
		sum += count
	}
	mean := float64(sum) / float64(len(tokenCounts))

	p95Index := int(math.Ceil(float64(len(sorted)) * 0.95))
	if p95Index >= len(sorted) {
		p95Index = len(sorted) - 1
	}

	return TokenStats{
		Min:  sorted[0],
		Max:  sorted[len(sorted)-1],
		Mean: math.Round(mean*100) / 100,
		P95:  sorted[p95Index],
	}
}
