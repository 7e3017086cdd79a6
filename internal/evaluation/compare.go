package evaluation

import (
	"sort"

	"github.com/agusespa/chateval/internal/types"
)

// RunComparison holds comparison results between multiple evaluation runs
type RunComparison struct {
	Runs           []types.BatchRun
	Best           *types.BatchRun
	HighestScore   *types.BatchRun
	Fastest        *types.BatchRun
	MostConsistent *types.BatchRun
}

// CompareRuns ranks runs by pass rate, then by average score, and picks
// the best run on each axis. The input slice is not reordered.
func CompareRuns(runs []types.BatchRun) *RunComparison {
	if len(runs) == 0 {
		return &RunComparison{}
	}

	ranked := append([]types.BatchRun(nil), runs...)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].Summary, ranked[j].Summary
		if a.PassRate != b.PassRate {
			return a.PassRate > b.PassRate
		}
		return a.AverageScore > b.AverageScore
	})

	comparison := &RunComparison{
		Runs: ranked,
		Best: &ranked[0],
	}

	highest, fastest, consistent := 0, 0, 0
	calc := NewStatisticsCalculator()
	consistency := func(run types.BatchRun) float64 {
		scores := make([]float64, len(run.Results))
		for i, r := range run.Results {
			scores[i] = r.OverallScore
		}
		return calc.CalculateConsistency(scores)
	}

	for i, run := range ranked {
		if run.Summary.AverageScore > ranked[highest].Summary.AverageScore {
			highest = i
		}
		if run.TotalDuration < ranked[fastest].TotalDuration {
			fastest = i
		}
		if consistency(run) > consistency(ranked[consistent]) {
			consistent = i
		}
	}
	comparison.HighestScore = &ranked[highest]
	comparison.Fastest = &ranked[fastest]
	comparison.MostConsistent = &ranked[consistent]

	return comparison
}
