// Command ask answers questions about the assembly minutes from a terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"assembly-rag/internal/app"
	"assembly-rag/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ask",
		Short:         "국회 회의록 + 웹 검색 질의응답",
		Long:          "Answers questions from National Assembly minutes and web search in plain spoken Korean.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		interactiveCmd(),
		batchCmd(),
		indexCmd(),
	)
	return root
}

// setup loads configuration and builds the application. Logs go to stderr so
// they do not interleave with answers.
func setup(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	app.SetupLogging(cfg, os.Stderr)
	return app.New(ctx, cfg)
}
