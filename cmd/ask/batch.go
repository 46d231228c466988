package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"assembly-rag/internal/agent"
	"assembly-rag/internal/service"
)

// referenceQueries exercise every routing path.
var referenceQueries = []string{
	"최근 환경 발의안 3개만",
	"저출생 문제에 대한 국회 논의는 어떤가요?",
	"2025년 AI 기술 동향은 어떻게 되나요?",
	"기후변화 대응 정책에 대해 알려주세요",
	"국정감사에서 나온 주요 이슈는 무엇인가요?",
}

func batchCmd() *cobra.Command {
	var k int
	cmd := &cobra.Command{
		Use:   "batch [query...]",
		Short: "배치 테스트 (인자가 없으면 기준 질문 5개)",
		RunE: func(cmd *cobra.Command, args []string) error {
			queries := args
			if len(queries) == 0 {
				queries = referenceQueries
			}
			a, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			runBatch(cmd.Context(), a.Orchestrator, cmd.OutOrStdout(), queries, k)
			return nil
		},
	}
	cmd.Flags().IntVar(&k, "k", 0, "number of documents to retrieve (0 uses RAG_DEFAULT_K)")
	return cmd
}

// runBatch runs each query in turn and prints a one-line result per query and
// a closing summary. It returns the number of successful runs.
func runBatch(ctx context.Context, runner service.Runner, out io.Writer, queries []string, k int) int {
	fmt.Fprintln(out, "배치 테스트 모드")

	start := time.Now()
	succeeded := 0
	for i, q := range queries {
		if ctx.Err() != nil {
			break
		}
		fmt.Fprintf(out, "\n[%d/%d] %s\n", i+1, len(queries), q)
		r := runner.Run(ctx, agent.Request{Query: q, K: k})
		if r.Success() {
			succeeded++
			fmt.Fprintf(out, "완료 - 전략: %s, 시간: %.1f초, 단계: %d, 국회 %d개 + 웹 %d개\n",
				r.Strategy, r.ProcessingTime.Seconds(), r.StepCount, r.InternalCount(), r.ExternalCount())
		} else {
			fmt.Fprintf(out, "실패 - %s\n", r.Reason)
		}
	}

	total := time.Since(start)
	fmt.Fprintln(out, "\n배치 테스트 완료 요약:")
	fmt.Fprintf(out, "  총 처리 시간: %.1f초\n", total.Seconds())
	if len(queries) > 0 {
		fmt.Fprintf(out, "  평균 처리 시간: %.1f초\n", total.Seconds()/float64(len(queries)))
	}
	fmt.Fprintf(out, "  성공률: %d/%d\n", succeeded, len(queries))
	return succeeded
}
