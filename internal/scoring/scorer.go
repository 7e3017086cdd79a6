package scoring

import "github.com/agusespa/chateval/internal/types"

// CriterionScorer scores one answer against one criterion.
// A model-backed judge can be substituted behind this interface.
type CriterionScorer interface {
	ScoreCriterion(id types.CriterionID, actual, expected string, similarity float64) types.CriterionScore
}

// HeuristicScorer scores answers with word overlap and keyword rules.
// It never calls a model.
type HeuristicScorer struct {
	rng    Random
	jitter Jitter
}

// NewHeuristicScorer builds a scorer. A nil rng falls back to a clock-seeded source.
func NewHeuristicScorer(rng Random, jitter Jitter) *HeuristicScorer {
	if rng == nil {
		rng = NewRandom(0)
	}
	return &HeuristicScorer{rng: rng, jitter: jitter}
}

// ScoreCriterion returns a score in [1,5] with one decimal and a canned reason.
// Weight is left zero; callers set it from their criteria list.
func (s *HeuristicScorer) ScoreCriterion(id types.CriterionID, actual, expected string, similarity float64) types.CriterionScore {
	score := s.Score(id, actual, expected, similarity)
	return types.CriterionScore{
		Score:     score,
		Reasoning: s.Reason(id, score, actual),
	}
}

// Score computes the numeric score only
func (s *HeuristicScorer) Score(id types.CriterionID, actual, expected string, similarity float64) float64 {
	in := ruleInput{
		actual:     actual,
		expected:   expected,
		similarity: similarity,
		baseline:   Baseline(similarity),
	}
	score := ruleFor(id).Adjust(in)
	score = clamp(score + s.jitter.offset(s.rng))
	return round1(score)
}

var _ CriterionScorer = (*HeuristicScorer)(nil)
