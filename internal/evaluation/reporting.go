package evaluation

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/agusespa/chateval/internal/types"
)

func PrintRunHeader(w io.Writer, campaign, model string, numRuns int) {
	if numRuns == 1 {
		fmt.Fprintf(w, "Running evaluation for campaign: %s, evaluator: %s\n", campaign, model)
	} else {
		fmt.Fprintf(w, "Running %d evaluations for campaign: %s, evaluator: %s\n", numRuns, campaign, model)
	}
}

func PrintMultiRunProgress(w io.Writer, runNum, totalRuns int) {
	fmt.Fprintf(w, "\n--- Run %d/%d ---\n", runNum, totalRuns)
}

// PrintSummary prints a batch summary block
func PrintSummary(w io.Writer, title string, s types.EvaluationSummary) {
	fmt.Fprintf(w, "\n--- Summary for %s ---\n", title)
	fmt.Fprintf(w, "  Total:         %d\n", s.TotalTests)
	fmt.Fprintf(w, "  Passed:        %d\n", s.Passed)
	fmt.Fprintf(w, "  Failed:        %d\n", s.Failed)
	fmt.Fprintf(w, "  Average Score: %.2f\n", s.AverageScore)
	fmt.Fprintf(w, "  Pass Rate:     %.2f%%\n", s.PassRate)
	fmt.Fprintln(w)
}

// PrintRun prints the summary of one run plus its per-criterion statistics
func PrintRun(w io.Writer, run *types.BatchRun) {
	PrintSummary(w, fmt.Sprintf("%s (%s)", run.Campaign, run.EvaluatorModel), run.Summary)
	fmt.Fprintf(w, "  Total Duration: %.2fs\n", run.TotalDuration.Seconds())
	PrintCriterionStats(w, run.CriterionStats)
}

func PrintCriterionStats(w io.Writer, stats map[types.CriterionID]types.CriterionStats) {
	if len(stats) == 0 {
		return
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)

	fmt.Fprintln(w, "\n  Criterion Performance:")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "    CRITERION\tMEAN\tSTD\tMIN\tMAX\tPASS")
	for _, id := range ids {
		s := stats[types.CriterionID(id)]
		fmt.Fprintf(tw, "    %s\t%.2f\t%.2f\t%.1f\t%.1f\t%.1f%%\n", id, s.Mean, s.StdDev, s.Min, s.Max, s.PassRate)
	}
	_ = tw.Flush()
	fmt.Fprintln(w)
}

func PrintCampaignSummary(w io.Writer, r *types.CampaignResult) {
	fmt.Fprintf(w, "\n--- Campaign Summary for %s (%s) ---\n", r.Campaign, r.EvaluatorModel)
	fmt.Fprintf(w, "  Runs: %d\n", r.TotalRuns)
	fmt.Fprintf(w, "  Average Score: %.2f (±%.3f)\n", r.AggregatedStats.AverageScore, r.AggregatedStats.ScoreStdDev)
	fmt.Fprintf(w, "  Score Range: %.2f - %.2f\n", r.AggregatedStats.MinScore, r.AggregatedStats.MaxScore)
	fmt.Fprintf(w, "  Pass Rate: %.2f%% (±%.3f%%)\n", r.AggregatedStats.AveragePassRate, r.AggregatedStats.PassRateStdDev)
	fmt.Fprintf(w, "  Consistency: %.1f%%\n", r.AggregatedStats.Consistency*100)
	fmt.Fprintf(w, "  Average Duration: %.2fs (±%.3fs)\n", r.AggregatedStats.AverageDuration, r.AggregatedStats.DurationStdDev)
	fmt.Fprintf(w, "  Total Duration: %.2fs\n", r.TotalDuration.Seconds())
	fmt.Fprintln(w)
}

// PrintFailures lists failed items with their issues
func PrintFailures(w io.Writer, results []types.AutoEvaluationResult) {
	failed := FailedResults(results)
	if len(failed) == 0 {
		return
	}
	fmt.Fprintf(w, "  Failed items (%d):\n", len(failed))
	for _, r := range failed {
		fmt.Fprintf(w, "    #%d %s\n", r.Index+1, truncate(r.Question, 60))
		for _, issue := range r.Issues {
			fmt.Fprintf(w, "       - %s\n", issue)
		}
	}
	fmt.Fprintln(w)
}

// PrintQuestionResult prints a detailed single-question evaluation
func PrintQuestionResult(w io.Writer, r types.QuestionEvalResult) {
	status := "FAIL"
	if r.Passed {
		status = "PASS"
	}
	fmt.Fprintf(w, "\n--- %s (%s) ---\n", status, r.EvaluatorModel)
	fmt.Fprintf(w, "  Overall Score: %.2f\n", r.OverallScore)
	fmt.Fprintf(w, "  Similarity:    %.2f\n\n", r.Similarity)

	ids := make([]string, 0, len(r.CriteriaScores))
	for id := range r.CriteriaScores {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  CRITERION\tSCORE\tWEIGHT\tREASONING")
	for _, id := range ids {
		s := r.CriteriaScores[types.CriterionID(id)]
		fmt.Fprintf(tw, "  %s\t%.1f\t%.2f\t%s\n", id, s.Score, s.Weight, s.Reasoning)
	}
	_ = tw.Flush()

	fmt.Fprintf(w, "\n  Assessment:  %s\n", r.OverallAssessment)
	fmt.Fprintf(w, "  Suggestions: %s\n\n", r.Suggestions)
}

// PrintComparison prints a formatted comparison of evaluation runs
func (rc *RunComparison) PrintComparison(w io.Writer) {
	fmt.Fprintln(w, "\n--- Evaluation Comparison ---")

	if len(rc.Runs) == 0 {
		fmt.Fprintln(w, "No runs to compare.")
		return
	}

	fmt.Fprintln(w, "\nBest Overall (by pass rate):")
	fmt.Fprintf(w, "  Campaign: %s, Evaluator: %s, Pass Rate: %.2f%%, Score: %.2f\n",
		rc.Best.Campaign, rc.Best.EvaluatorModel, rc.Best.Summary.PassRate, rc.Best.Summary.AverageScore)

	fmt.Fprintln(w, "\nHighest Average Score:")
	fmt.Fprintf(w, "  Campaign: %s, Evaluator: %s, Score: %.2f\n",
		rc.HighestScore.Campaign, rc.HighestScore.EvaluatorModel, rc.HighestScore.Summary.AverageScore)

	fmt.Fprintln(w, "\nFastest Execution:")
	fmt.Fprintf(w, "  Campaign: %s, Evaluator: %s, Time: %.2fs\n",
		rc.Fastest.Campaign, rc.Fastest.EvaluatorModel, rc.Fastest.TotalDuration.Seconds())

	fmt.Fprintln(w, "\nMost Consistent:")
	fmt.Fprintf(w, "  Campaign: %s, Evaluator: %s, Run: %s\n",
		rc.MostConsistent.Campaign, rc.MostConsistent.EvaluatorModel, shortID(rc.MostConsistent.ID))

	fmt.Fprintln(w, "\n--- Full Ranking ---")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  RANK\tCAMPAIGN\tEVALUATOR\tPASS\tSCORE\tITEMS\tTIME")
	for i, run := range rc.Runs {
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%.1f%%\t%.2f\t%d\t%.2fs\n",
			i+1,
			run.Campaign,
			run.EvaluatorModel,
			run.Summary.PassRate,
			run.Summary.AverageScore,
			run.Summary.TotalTests,
			run.TotalDuration.Seconds(),
		)
	}
	_ = tw.Flush()
	fmt.Fprintln(w)
}

func truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-3]) + "..."
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
