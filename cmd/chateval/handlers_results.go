package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agusespa/chateval/internal/evaluation"
	"github.com/agusespa/chateval/internal/types"
)

func loadRuns(dir, campaign string) ([]types.BatchRun, error) {
	if dir == "" {
		a, err := loadApp()
		if err != nil {
			return nil, err
		}
		dir = a.cfg.Results.Dir
	}

	runs, err := evaluation.NewResultsManager(dir, nil).LoadRuns()
	if err != nil {
		return nil, err
	}
	if campaign == "" {
		return runs, nil
	}

	var filtered []types.BatchRun
	for _, r := range runs {
		if r.Campaign == campaign {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

func runSummary(cmd *cobra.Command, dir, campaign string, failures bool) error {
	runs, err := loadRuns(dir, campaign)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No saved runs found.")
		return nil
	}

	for i := range runs {
		evaluation.PrintRun(out, &runs[i])
		if failures {
			evaluation.PrintFailures(out, runs[i].Results)
		}
	}
	return nil
}

func runCompare(cmd *cobra.Command, dir, campaign string) error {
	runs, err := loadRuns(dir, campaign)
	if err != nil {
		return err
	}
	evaluation.CompareRuns(runs).PrintComparison(cmd.OutOrStdout())
	return nil
}

// readRunFile reads a single-run or multi-run result file
func readRunFile(path string) ([]types.BatchRun, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read result file %s: %w", path, err)
	}

	var campaign types.CampaignResult
	if err := json.Unmarshal(data, &campaign); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result file %s: %w", path, err)
	}
	if len(campaign.IndividualRuns) > 0 {
		return campaign.IndividualRuns, nil
	}

	var run types.BatchRun
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result file %s: %w", path, err)
	}
	return []types.BatchRun{run}, nil
}

func runExport(cmd *cobra.Command, file, outPath, format string, runNumber int) error {
	format = strings.ToLower(format)
	if format != "csv" && format != "json" {
		return fmt.Errorf("unsupported export format %q (want csv or json)", format)
	}

	runs, err := readRunFile(file)
	if err != nil {
		return err
	}
	idx := len(runs) - 1
	if runNumber > 0 {
		if runNumber > len(runs) {
			return fmt.Errorf("run %d out of range: file holds %d runs", runNumber, len(runs))
		}
		idx = runNumber - 1
	}
	run := runs[idx]

	var w io.Writer = cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create export file %s: %w", outPath, err)
		}
		defer f.Close()
		w = f
	}

	if format == "csv" {
		return evaluation.ExportCSV(w, run.Results)
	}
	return evaluation.ExportJSON(w, run.Summary, run.Results)
}
