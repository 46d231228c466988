package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"assembly-rag/internal/agent"
	"assembly-rag/internal/routing"
	"assembly-rag/internal/service"
)

var quitWords = map[string]bool{"quit": true, "exit": true, "q": true, "종료": true, "그만": true}

// Longer prefixes first so "/국회우선" is not read as "/국회".
var strategyPrefixes = []struct {
	prefix   string
	strategy routing.Strategy
}{
	{"/국회우선", routing.HybridInternalPriority},
	{"/국회", routing.InternalOnly},
	{"/최신", routing.ExternalPriority},
	{"/균형", routing.HybridBalanced},
}

func interactiveCmd() *cobra.Command {
	var k int
	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "대화형 질문 답변",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			return runInteractive(cmd.Context(), a.Orchestrator, cmd.InOrStdin(), cmd.OutOrStdout(), k)
		},
	}
	cmd.Flags().IntVar(&k, "k", 0, "number of documents to retrieve (0 uses RAG_DEFAULT_K)")
	return cmd
}

// parseLine splits an input line into a query and an optional forced strategy.
func parseLine(line string) (query string, strategy routing.Strategy, quit bool) {
	line = strings.TrimSpace(line)
	if quitWords[strings.ToLower(line)] {
		return "", "", true
	}
	for _, p := range strategyPrefixes {
		if rest, ok := strings.CutPrefix(line, p.prefix); ok {
			return strings.TrimSpace(rest), p.strategy, false
		}
	}
	return line, "", false
}

func runInteractive(ctx context.Context, runner service.Runner, in io.Reader, out io.Writer, k int) error {
	fmt.Fprintln(out, "국회 회의록 + 웹 검색 통합 질의응답")
	fmt.Fprintln(out, "자유롭게 질문해 주세요. (종료: quit, exit, 종료)")
	fmt.Fprintln(out, "전략 지정: /국회, /최신, /균형, /국회우선 으로 질문을 시작하세요.")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\n질문: ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		query, strategy, quit := parseLine(scanner.Text())
		if quit {
			fmt.Fprintln(out, "시스템을 종료합니다. 이용해 주셔서 감사합니다.")
			return nil
		}
		if query == "" {
			fmt.Fprintln(out, "질문을 입력해 주세요.")
			continue
		}

		result := runner.Run(ctx, agent.Request{Query: query, K: k, Strategy: strategy})
		printResult(out, result)
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}
