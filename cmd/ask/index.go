package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func indexCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "index",
		Short: "MINUTES_DIR의 회의록을 색인",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := setup(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			stats, err := a.Pipeline.Reindex(ctx, force)
			if stats != nil {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "파일: %d개 처리, %d개 실패\n", stats.FilesProcessed, stats.FilesFailed)
				fmt.Fprintf(out, "발언: %d개 색인, %d개 변경 없음, %d개 건너뜀, %d개 실패\n",
					stats.StatementsIndexed, stats.StatementsUnchanged, stats.StatementsSkipped, stats.StatementsFailed)
				fmt.Fprintf(out, "토큰: 최소 %d, 최대 %d, 평균 %.2f, p95 %d\n",
					stats.TokenStats.Min, stats.TokenStats.Max, stats.TokenStats.Mean, stats.TokenStats.P95)
				fmt.Fprintf(out, "색인 버전: %s\n", stats.IndexVersion)
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "clear the vector collection and catalog before indexing")
	return cmd
}
