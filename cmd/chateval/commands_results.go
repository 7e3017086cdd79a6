package main

import (
	"github.com/spf13/cobra"
)

func buildSummaryCmd() *cobra.Command {
	var (
		dir      string
		campaign string
		failures bool
	)
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize saved runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(cmd, dir, campaign, failures)
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Results directory (defaults to the configured one)")
	cmd.Flags().StringVar(&campaign, "campaign", "", "Only runs of this campaign")
	cmd.Flags().BoolVar(&failures, "failures", false, "List failed items of each run")
	return cmd
}

func buildCompareCmd() *cobra.Command {
	var (
		dir      string
		campaign string
	)
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Rank saved runs by pass rate and average score",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, dir, campaign)
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Results directory (defaults to the configured one)")
	cmd.Flags().StringVar(&campaign, "campaign", "", "Only runs of this campaign")
	return cmd
}

func buildExportCmd() *cobra.Command {
	var (
		out    string
		format string
		run    int
	)
	cmd := &cobra.Command{
		Use:   "export <result-file>",
		Short: "Export a saved run as CSV or JSON",
		Long: `Export the item results of a saved run file as CSV or JSON.

Multi-run campaign files hold several runs; --run selects one (1-based,
defaults to the last run).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], out, format, run)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (defaults to stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "Export format: csv or json")
	cmd.Flags().IntVar(&run, "run", 0, "Run number inside a multi-run file")
	return cmd
}
