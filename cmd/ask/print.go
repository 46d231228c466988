package main

import (
	"fmt"
	"io"
	"strings"

	"assembly-rag/internal/agent"
	"assembly-rag/internal/assemble"
	"assembly-rag/internal/retrieval"
)

// maxListedSources caps each source list in the details section.
const maxListedSources = 3

func printResult(out io.Writer, r agent.Result) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintf(out, "\n최종 답변:\n%s\n%s\n", rule, r.Answer)

	fmt.Fprintf(out, "\n처리 정보:\n%s\n", strings.Repeat("-", 30))
	fmt.Fprintf(out, "검색 전략: %s\n", r.Strategy.Label())
	fmt.Fprintf(out, "총 처리 시간: %.1f초\n", r.ProcessingTime.Seconds())
	fmt.Fprintf(out, "실행 단계: %d단계\n", r.StepCount)
	fmt.Fprintf(out, "국회 회의록: %d개\n", r.InternalCount())
	fmt.Fprintf(out, "웹 검색 결과: %d개\n", r.ExternalCount())
	if !r.Success() {
		fmt.Fprintf(out, "종료 사유: %s\n", r.Reason)
	}

	listed := make([]retrieval.Document, 0, 2*maxListedSources)
	listed = append(listed, head(r.Internal, maxListedSources)...)
	listed = append(listed, head(r.External, maxListedSources)...)
	if sources := assemble.Sources(listed); sources != "" {
		fmt.Fprintf(out, "\n출처:\n%s", sources)
	}
}

func head(docs []retrieval.Document, n int) []retrieval.Document {
	if len(docs) > n {
		return docs[:n]
	}
	return docs
}
