package main

import (
	"github.com/spf13/cobra"

	"github.com/agusespa/chateval/internal/types"
)

// checkFlags binds the per-criterion check and threshold flags
type checkFlags struct {
	all              bool
	accuracy         bool
	relevance        bool
	coherence        bool
	completeness     bool
	toxicity         bool
	hallucination    bool
	overallThreshold float64
}

func (f *checkFlags) bind(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.all, "all", false, "Check every criterion (default when no check is selected)")
	cmd.Flags().BoolVar(&f.accuracy, "accuracy", false, "Check accuracy")
	cmd.Flags().BoolVar(&f.relevance, "relevance", false, "Check relevance")
	cmd.Flags().BoolVar(&f.coherence, "coherence", false, "Check coherence")
	cmd.Flags().BoolVar(&f.completeness, "completeness", false, "Check completeness")
	cmd.Flags().BoolVar(&f.toxicity, "toxicity", false, "Check toxicity")
	cmd.Flags().BoolVar(&f.hallucination, "hallucination", false, "Check hallucination")
	cmd.Flags().Float64Var(&f.overallThreshold, "overall-threshold", 0, "Overall pass mark (1-5); defaults to the configured value")
}

func (f *checkFlags) criteria(cmd *cobra.Command) types.EvaluationCriteria {
	c := types.EvaluationCriteria{
		CheckAccuracy:      f.accuracy,
		CheckRelevance:     f.relevance,
		CheckCoherence:     f.coherence,
		CheckCompleteness:  f.completeness,
		CheckToxicity:      f.toxicity,
		CheckHallucination: f.hallucination,
	}
	if f.all || !c.AnyChecked() {
		c = types.AllChecks()
	}
	if cmd.Flags().Changed("overall-threshold") {
		c.OverallThreshold = types.Float(f.overallThreshold)
	}
	return c
}

type runOptions struct {
	checks       checkFlags
	save         bool
	showFailures bool
	exportPath   string
	detailed     bool
	model        string
	criteriaFile string
}

// buildRunCmd creates the "run" command that evaluates one dataset file.
func buildRunCmd() *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run <dataset>",
		Short: "Evaluate every item of a dataset",
		Long: `Evaluate every item of a dataset file (.json, .yaml or .csv).

By default each item is scored on the selected checks and must pass every
criterion threshold plus the overall threshold. With --detailed the weighted
path is used instead: every enabled catalogue criterion is scored, averaged
per criterion and an evaluator cost estimate is reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDataset(cmd, args[0], opts)
		},
	}
	opts.checks.bind(cmd)
	cmd.Flags().BoolVar(&opts.save, "save", false, "Save the run to the results directory")
	cmd.Flags().BoolVar(&opts.showFailures, "failures", false, "List failed items with their issues")
	cmd.Flags().StringVarP(&opts.exportPath, "export", "o", "", "Export results to a .csv or .json file")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "Use the weighted per-question evaluation")
	cmd.Flags().StringVar(&opts.model, "model", "", "Evaluator model used for the cost estimate")
	cmd.Flags().StringVar(&opts.criteriaFile, "criteria", "", "Criteria file with custom weights (detailed mode)")
	return cmd
}

// buildCampaignCmd creates the "campaign" command that runs configured campaigns.
func buildCampaignCmd() *cobra.Command {
	var (
		file string
		key  string
		list bool
		save bool
	)
	cmd := &cobra.Command{
		Use:   "campaign",
		Short: "Run evaluation campaigns from a campaign file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				return listCampaigns(cmd, file)
			}
			return runCampaigns(cmd, file, key, save)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "campaigns.yaml", "Path to the campaign file")
	cmd.Flags().StringVarP(&key, "key", "k", "", "Run only the campaign with this key")
	cmd.Flags().BoolVar(&list, "list", false, "List campaign keys and exit")
	cmd.Flags().BoolVar(&save, "save", true, "Save results to the results directory")
	return cmd
}
