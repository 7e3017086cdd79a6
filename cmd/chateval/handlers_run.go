package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/agusespa/chateval/internal/criteria"
	"github.com/agusespa/chateval/internal/dataset"
	"github.com/agusespa/chateval/internal/evaluation"
	"github.com/agusespa/chateval/internal/types"
)

func runDataset(cmd *cobra.Command, path string, opts runOptions) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	ds, err := dataset.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	runner := a.newRunner()
	if opts.detailed {
		return runDetailed(cmd, runner, ds, opts)
	}

	campaign := types.Campaign{
		Key:            ds.Name,
		Dataset:        path,
		EvaluatorModel: opts.model,
		Criteria:       a.applyThresholds(opts.checks.criteria(cmd)),
	}

	model := opts.model
	if model == "" {
		model = runner.Options().EvaluatorModel
	}
	out := cmd.OutOrStdout()
	evaluation.PrintRunHeader(out, campaign.Key, model, 1)

	spin, onProgress := progress(cmd.ErrOrStderr(), "Evaluating "+ds.Name)
	spin.Start()
	run, err := runner.RunOnce(cmd.Context(), campaign, ds.Items, 1, onProgress)
	spin.Stop()
	if err != nil {
		if run != nil && len(run.Results) > 0 {
			fmt.Fprintf(out, "Run interrupted after %d of %d items.\n", len(run.Results), len(ds.Items))
			evaluation.PrintRun(out, run)
		}
		return err
	}

	evaluation.PrintRun(out, run)
	if opts.showFailures {
		evaluation.PrintFailures(out, run.Results)
	}

	if opts.save {
		saved, err := a.resultsManager().SaveRun(run)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Results saved to %s\n", saved)
	}
	if opts.exportPath != "" {
		if err := exportToFile(opts.exportPath, run.Summary, run.Results); err != nil {
			return err
		}
		fmt.Fprintf(out, "Results exported to %s\n", opts.exportPath)
	}
	return nil
}

func runDetailed(cmd *cobra.Command, runner *evaluation.Runner, ds *dataset.Dataset, opts runOptions) error {
	cfg := types.AutoEvalConfig{
		ID:             ds.ID,
		Name:           ds.Name,
		DatasetID:      ds.ID,
		EvaluatorModel: opts.model,
	}
	if opts.criteriaFile != "" {
		list, err := criteria.LoadFile(opts.criteriaFile)
		if err != nil {
			return err
		}
		cfg.Criteria = list
	}
	if opts.checks.overallThreshold > 0 {
		cfg.PassThreshold = opts.checks.overallThreshold
	}

	spin, onProgress := progress(cmd.ErrOrStderr(), "Evaluating "+ds.Name)
	spin.Start()
	result, err := runner.RunBatchEvaluation(cmd.Context(), cfg, ds.Items, onProgress)
	spin.Stop()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n--- Detailed evaluation of %s (%s) ---\n", ds.Name, result.EvaluatorModel)
	fmt.Fprintf(out, "  Questions:      %d\n", result.TotalQuestions)
	fmt.Fprintf(out, "  Passed:         %d\n", result.PassedCount)
	fmt.Fprintf(out, "  Failed:         %d\n", result.FailedCount)
	fmt.Fprintf(out, "  Pass Rate:      %.2f%%\n", result.PassRate)
	fmt.Fprintf(out, "  Overall Score:  %.2f\n", result.OverallScore)
	fmt.Fprintf(out, "  Estimated Cost: $%.4f\n", result.EstimatedCost)
	fmt.Fprintf(out, "  Duration:       %.2fs\n\n", result.Duration.Seconds())

	ids := make([]string, 0, len(result.CriterionAverages))
	for id := range result.CriterionAverages {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  CRITERION\tAVERAGE")
	for _, id := range ids {
		fmt.Fprintf(tw, "  %s\t%.2f\n", id, result.CriterionAverages[types.CriterionID(id)])
	}
	_ = tw.Flush()
	fmt.Fprintln(out)

	if opts.showFailures {
		for i, r := range result.Results {
			if r.Passed {
				continue
			}
			fmt.Fprintf(out, "  #%d %.2f  %s\n", i+1, r.OverallScore, r.Suggestions)
		}
	}
	return nil
}

func listCampaigns(cmd *cobra.Command, file string) error {
	campaigns, err := evaluation.LoadCampaigns(file)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Available campaigns:")
	for _, c := range campaigns {
		if c.Description != "" {
			fmt.Fprintf(out, "  %s: %s\n", c.Key, c.Description)
		} else {
			fmt.Fprintf(out, "  %s\n", c.Key)
		}
	}
	return nil
}

func runCampaigns(cmd *cobra.Command, file, key string, save bool) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	campaigns, err := evaluation.LoadCampaigns(file)
	if err != nil {
		return fmt.Errorf("failed to load campaigns: %w", err)
	}
	if err := evaluation.ValidateCampaigns(campaigns); err != nil {
		return fmt.Errorf("invalid campaign file %s: %w", file, err)
	}

	selected := evaluation.FilterByKey(campaigns, key)
	if len(selected) == 0 {
		return fmt.Errorf("campaign with key '%s' not found (available: %s)", key,
			strings.Join(evaluation.ListCampaignKeys(campaigns), ", "))
	}

	runner := a.newRunner()
	rm := a.resultsManager()
	out := cmd.OutOrStdout()

	for _, c := range selected {
		ds, err := dataset.Load(evaluation.ResolveDataset(file, c))
		if err != nil {
			return fmt.Errorf("campaign %s: %w", c.Key, err)
		}
		c.Criteria = a.applyThresholds(c.Criteria)

		runs := evaluation.DefaultRuns(c)
		model := c.EvaluatorModel
		if model == "" {
			model = runner.Options().EvaluatorModel
		}
		evaluation.PrintRunHeader(out, c.Key, model, runs)

		spin, _ := progress(cmd.ErrOrStderr(), "Evaluating "+c.Key)
		spin.Start()
		result, err := runner.RunCampaign(cmd.Context(), c, ds.Items, func(run, current, total int) {
			if current == 1 && runs > 1 {
				spin.Update(fmt.Sprintf("Evaluating %s (run %d/%d)", c.Key, run, runs))
			}
			spin.SetProgress(current, total)
		})
		spin.Stop()
		if err != nil {
			return err
		}

		if runs == 1 {
			evaluation.PrintRun(out, &result.IndividualRuns[0])
		} else {
			for i := range result.IndividualRuns {
				evaluation.PrintMultiRunProgress(out, i+1, runs)
				evaluation.PrintRun(out, &result.IndividualRuns[i])
			}
			evaluation.PrintCampaignSummary(out, result)
		}

		if save {
			path, err := rm.SaveCampaign(result)
			if err != nil {
				a.logger.Warn("failed to save campaign results", "campaign", c.Key, "error", err)
				continue
			}
			fmt.Fprintf(out, "Results saved to %s\n", path)
		}
	}

	fmt.Fprintln(out, "All campaigns complete.")
	fmt.Fprintln(out, "To compare results, run: chateval compare")
	return nil
}

// exportToFile picks the format from the file extension; anything but .csv is JSON
func exportToFile(path string, summary types.EvaluationSummary, results []types.AutoEvaluationResult) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file %s: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		err = evaluation.ExportCSV(f, results)
	} else {
		err = evaluation.ExportJSON(f, summary, results)
	}
	if err != nil {
		return err
	}
	return f.Close()
}
