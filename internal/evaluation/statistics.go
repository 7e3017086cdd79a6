package evaluation

import (
	"math"
	"slices"

	"github.com/agusespa/chateval/internal/types"
)

// StatisticsCalculator handles all statistical calculations for evaluation results
type StatisticsCalculator struct{}

func NewStatisticsCalculator() *StatisticsCalculator {
	return &StatisticsCalculator{}
}

// CriterionStats computes the score distribution of every criterion present in results
func (s *StatisticsCalculator) CriterionStats(results []types.AutoEvaluationResult) map[types.CriterionID]types.CriterionStats {
	scores := make(map[types.CriterionID][]float64)
	passes := make(map[types.CriterionID]int)
	for _, r := range results {
		for id, c := range r.Criteria {
			scores[id] = append(scores[id], c.Score)
			if c.Passed {
				passes[id]++
			}
		}
	}

	stats := make(map[types.CriterionID]types.CriterionStats, len(scores))
	for id, values := range scores {
		stats[id] = types.CriterionStats{
			Criterion: id,
			Count:     len(values),
			Mean:      s.CalculateMean(values),
			StdDev:    s.CalculateStdDev(values),
			Min:       s.CalculateMin(values),
			Max:       s.CalculateMax(values),
			PassRate:  float64(passes[id]) / float64(len(values)) * 100,
		}
	}
	return stats
}

// AggregateRuns fills in cross-run statistics for a multi-run campaign
func (s *StatisticsCalculator) AggregateRuns(result *types.CampaignResult) {
	if len(result.IndividualRuns) == 0 {
		return
	}

	var scores, passRates, durations []float64
	for _, run := range result.IndividualRuns {
		scores = append(scores, run.Summary.AverageScore)
		passRates = append(passRates, run.Summary.PassRate)
		durations = append(durations, run.TotalDuration.Seconds())
	}

	result.AggregatedStats = types.EvaluationStats{
		AverageScore:    s.CalculateMean(scores),
		ScoreStdDev:     s.CalculateStdDev(scores),
		MinScore:        s.CalculateMin(scores),
		MaxScore:        s.CalculateMax(scores),
		AveragePassRate: s.CalculateMean(passRates),
		PassRateStdDev:  s.CalculateStdDev(passRates),
		AverageDuration: s.CalculateMean(durations),
		DurationStdDev:  s.CalculateStdDev(durations),
		Consistency:     s.CalculateConsistency(scores),
	}
}

// Statistical helper functions
func (s *StatisticsCalculator) CalculateMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// CalculateStdDev is the sample standard deviation
func (s *StatisticsCalculator) CalculateStdDev(values []float64) float64 {
	if len(values) <= 1 {
		return 0
	}
	mean := s.CalculateMean(values)
	sumSquares := 0.0
	for _, v := range values {
		diff := v - mean
		sumSquares += diff * diff
	}
	return math.Sqrt(sumSquares / float64(len(values)-1))
}

func (s *StatisticsCalculator) CalculateMin(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return slices.Min(values)
}

func (s *StatisticsCalculator) CalculateMax(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return slices.Max(values)
}

// CalculateConsistency maps the coefficient of variation to (0,1]; 1 means identical scores
func (s *StatisticsCalculator) CalculateConsistency(values []float64) float64 {
	if len(values) <= 1 {
		return 1.0
	}
	mean := s.CalculateMean(values)
	if mean == 0 {
		return 1.0
	}
	cv := s.CalculateStdDev(values) / mean
	return math.Min(1.0/(1.0+cv), 1.0)
}
