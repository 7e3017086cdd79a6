// Command chateval scores chatbot answers against expected answers with a
// heuristic, rubric-based evaluator.
//
// Run a batch from a dataset file:
//
//	chateval run testdata/support.yaml --all --save
//
// Evaluate a single answer in detail:
//
//	chateval evaluate -q "When do you open?" -e "At 9" -a "We open at 9"
//
// Serve the HTTP API:
//
//	chateval serve --config chateval.yaml
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// populated by ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var configPath string

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := buildRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chateval",
		Short: "Heuristic evaluation of chatbot answers",
		Long: `chateval scores chatbot answers against expected answers on accuracy,
relevance, coherence, completeness, toxicity and hallucination, and
reports pass/fail per item and per batch.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML configuration file (or set CHATEVAL_CONFIG)")

	rootCmd.AddCommand(
		buildRunCmd(),
		buildCampaignCmd(),
		buildEvaluateCmd(),
		buildCriteriaCmd(),
		buildSummaryCmd(),
		buildCompareCmd(),
		buildExportCmd(),
		buildServeCmd(),
		buildStoreCmd(),
		buildVersionCmd(),
	)
	return rootCmd
}

func buildVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "chateval version %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}
