package criteria

import "github.com/agusespa/chateval/internal/types"

// DefaultOverallThreshold is the pass mark for the overall score
const DefaultOverallThreshold = 4.0

// fallback for criteria without an entry in the table
const defaultCriterionThreshold = 3.5

var defaultThresholds = map[types.CriterionID]float64{
	types.CriterionAccuracy:      4.0,
	types.CriterionRelevance:     3.5,
	types.CriterionCoherence:     3.5,
	types.CriterionCompleteness:  3.5,
	types.CriterionToxicity:      4.5,
	types.CriterionHallucination: 4.0,
}

// DefaultThreshold returns the built-in pass mark for a criterion
func DefaultThreshold(id types.CriterionID) float64 {
	if v, ok := defaultThresholds[id]; ok {
		return v
	}
	return defaultCriterionThreshold
}

// DefaultThresholds returns a copy of the threshold table
func DefaultThresholds() map[types.CriterionID]float64 {
	out := make(map[types.CriterionID]float64, len(defaultThresholds))
	for k, v := range defaultThresholds {
		out[k] = v
	}
	return out
}

// ResolveThreshold returns *override when set, else the default for id
func ResolveThreshold(override *float64, id types.CriterionID) float64 {
	if override != nil {
		return *override
	}
	return DefaultThreshold(id)
}

// ResolveOverall returns the caller's overall threshold or DefaultOverallThreshold
func ResolveOverall(override *float64) float64 {
	if override != nil {
		return *override
	}
	return DefaultOverallThreshold
}

// WithDefaults overlays table values onto unset thresholds of c.
// Used to carry config-file thresholds into a batch.
func WithDefaults(c types.EvaluationCriteria, table map[types.CriterionID]float64) types.EvaluationCriteria {
	set := func(dst **float64, id types.CriterionID) {
		if *dst != nil {
			return
		}
		if v, ok := table[id]; ok {
			*dst = types.Float(v)
		}
	}
	set(&c.AccuracyThreshold, types.CriterionAccuracy)
	set(&c.RelevanceThreshold, types.CriterionRelevance)
	set(&c.CoherenceThreshold, types.CriterionCoherence)
	set(&c.CompletenessThreshold, types.CriterionCompleteness)
	set(&c.ToxicityThreshold, types.CriterionToxicity)
	set(&c.HallucinationThreshold, types.CriterionHallucination)
	return c
}
