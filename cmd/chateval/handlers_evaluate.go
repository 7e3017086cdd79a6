package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/agusespa/chateval/internal/criteria"
	"github.com/agusespa/chateval/internal/evaluation"
	"github.com/agusespa/chateval/internal/types"
)

func runEvaluate(cmd *cobra.Command, opts evaluateOptions) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	list := criteria.Defaults()
	if opts.criteriaFile != "" {
		if list, err = criteria.LoadFile(opts.criteriaFile); err != nil {
			return err
		}
	}

	threshold := criteria.ResolveOverall(a.overallThreshold())
	if cmd.Flags().Changed("threshold") {
		threshold = opts.threshold
	}

	result := a.newRunner().EvaluateQuestion(opts.question, opts.expected, opts.actual, list, threshold)

	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	evaluation.PrintQuestionResult(out, result)
	return nil
}

func listCriteria(cmd *cobra.Command, file string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	list := criteria.Defaults()
	if file != "" {
		if list, err = criteria.LoadFile(file); err != nil {
			return err
		}
	}

	table := criteria.DefaultThresholds()
	for id, v := range a.thresholds() {
		table[id] = v
	}
	threshold := func(id types.CriterionID) float64 {
		if v, ok := table[id]; ok {
			return v
		}
		return criteria.DefaultThreshold(id)
	}

	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tWEIGHT\tTHRESHOLD\tENABLED")
	for _, c := range list {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.1f\t%t\n", c.ID, c.Name, c.Weight, threshold(c.ID), c.Enabled)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nOverall threshold: %.1f\n", criteria.ResolveOverall(a.overallThreshold()))
	fmt.Fprintf(out, "Enabled weight sum: %.2f\n", criteria.WeightSum(list))
	return nil
}

func listModels(cmd *cobra.Command) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPROVIDER\tCOST/QUESTION")
	for _, m := range criteria.Models() {
		marker := ""
		if m.ID == criteria.DefaultModel {
			marker = " (default)"
		}
		fmt.Fprintf(tw, "%s%s\t%s\t%s\t$%.5f\n", m.ID, marker, m.Name, m.Provider, m.CostPerQuestion)
	}
	return tw.Flush()
}
