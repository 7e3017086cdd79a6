package evaluation

import "github.com/agusespa/chateval/internal/types"

// GetEvaluationSummary derives pass counts and averages from batch results.
// An empty list yields the zero summary.
func GetEvaluationSummary(results []types.AutoEvaluationResult) types.EvaluationSummary {
	if len(results) == 0 {
		return types.EvaluationSummary{}
	}

	summary := types.EvaluationSummary{TotalTests: len(results)}
	total := 0.0
	for _, r := range results {
		total += r.OverallScore
		if r.Passed {
			summary.Passed++
		}
	}
	summary.Failed = summary.TotalTests - summary.Passed
	summary.AverageScore = total / float64(len(results))
	summary.PassRate = float64(summary.Passed) / float64(summary.TotalTests) * 100
	return summary
}

// FailedResults returns the results that did not pass, in order
func FailedResults(results []types.AutoEvaluationResult) []types.AutoEvaluationResult {
	var out []types.AutoEvaluationResult
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}
