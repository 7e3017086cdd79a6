package scoring

import "github.com/agusespa/chateval/internal/types"

// WeightedAggregate sums score*weight over the enabled criteria that have a score.
// Used by the detailed single-question evaluator. Weights are taken as given
// and are not renormalized.
func WeightedAggregate(scores map[types.CriterionID]types.CriterionScore, list []types.EvaluationCriterion) float64 {
	total := 0.0
	for _, c := range list {
		if !c.Enabled {
			continue
		}
		s, ok := scores[c.ID]
		if !ok {
			continue
		}
		total += s.Score * c.Weight
	}
	return total
}

// UncheckedMeanAggregate is the plain mean of every computed criterion score.
// Used by the batch path. Returns 0 when nothing was computed.
func UncheckedMeanAggregate(results map[types.CriterionID]types.CriterionResult) float64 {
	if len(results) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range results {
		sum += r.Score
	}
	return sum / float64(len(results))
}

// Decide passes only when at least one criterion was computed, the overall
// score meets its threshold and no criterion is below its own threshold.
func Decide(overall, overallThreshold float64, results map[types.CriterionID]types.CriterionResult) bool {
	if len(results) == 0 {
		return false
	}
	if overall < overallThreshold {
		return false
	}
	for _, r := range results {
		if r.Score < r.Threshold {
			return false
		}
	}
	return true
}
