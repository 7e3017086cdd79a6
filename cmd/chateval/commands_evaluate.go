package main

import (
	"github.com/spf13/cobra"
)

type evaluateOptions struct {
	question     string
	expected     string
	actual       string
	criteriaFile string
	threshold    float64
	asJSON       bool
}

// buildEvaluateCmd creates the "evaluate" command for a single answer.
func buildEvaluateCmd() *cobra.Command {
	var opts evaluateOptions
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate one answer with per-criterion reasoning",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.question, "question", "q", "", "The question asked")
	cmd.Flags().StringVarP(&opts.expected, "expected", "e", "", "The reference answer")
	cmd.Flags().StringVarP(&opts.actual, "actual", "a", "", "The chatbot's answer")
	cmd.Flags().StringVar(&opts.criteriaFile, "criteria", "", "Criteria file with custom weights")
	cmd.Flags().Float64Var(&opts.threshold, "threshold", 0, "Overall pass mark (defaults to the configured value)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the result as JSON")
	_ = cmd.MarkFlagRequired("question")
	_ = cmd.MarkFlagRequired("actual")
	return cmd
}

// buildCriteriaCmd creates the "criteria" command that shows the catalogue.
func buildCriteriaCmd() *cobra.Command {
	var (
		models bool
		file   string
	)
	cmd := &cobra.Command{
		Use:   "criteria",
		Short: "List evaluation criteria, thresholds and evaluator models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if models {
				return listModels(cmd)
			}
			return listCriteria(cmd, file)
		},
	}
	cmd.Flags().BoolVar(&models, "models", false, "List evaluator models and their cost per question")
	cmd.Flags().StringVar(&file, "file", "", "Validate and list a custom criteria file")
	return cmd
}
