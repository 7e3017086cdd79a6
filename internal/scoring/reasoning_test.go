package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agusespa/chateval/internal/types"
)

func TestReason(t *testing.T) {
	first := NewHeuristicScorer(Fixed(), ZeroJitter())
	last := NewHeuristicScorer(Fixed(0.99), ZeroJitter())

	assert.Equal(t, "All key facts of the expected answer are present.", first.Reason(types.CriterionAccuracy, 4.8, ""))
	assert.Equal(t, "Facts and figures match the expected answer.", last.Reason(types.CriterionAccuracy, 4.8, ""))
	assert.Equal(t, "The answer does not address the question.", first.Reason(types.CriterionRelevance, 1.2, ""))

	assert.Equal(t, "Politeness scored 2.0 out of 5 for an answer of 5 characters.",
		first.Reason(types.CriterionID("politeness"), 2.0, "hello"))
	assert.Contains(t, first.Reason(types.CriterionAccuracy, 0.2, ""), "scored 0.2")
}

func TestReason_EveryBucketHasTemplates(t *testing.T) {
	scorer := NewHeuristicScorer(NewRandom(7), ZeroJitter())
	for id, buckets := range reasonTemplates {
		for bucket := 1; bucket <= 5; bucket++ {
			candidates := buckets[bucket]
			assert.NotEmpty(t, candidates, "%s bucket %d", id, bucket)
			assert.Contains(t, candidates, scorer.Reason(id, float64(bucket), "answer"))
		}
	}
}

func TestSuggestions(t *testing.T) {
	tests := []struct {
		name    string
		results map[types.CriterionID]types.CriterionScore
		want    string
	}{
		{
			name: "top three ascending",
			results: map[types.CriterionID]types.CriterionScore{
				types.CriterionAccuracy:  {Score: 2.0},
				types.CriterionTone:      {Score: 3.0},
				types.CriterionClarity:   {Score: 3.0},
				types.CriterionCitations: {Score: 1.5},
				types.CriterionRelevance: {Score: 4.5},
			},
			want: "Reference the documents or links the answer relies on. " +
				"Verify facts and figures against the source documents. " +
				"Use shorter, simpler sentences.",
		},
		{
			name: "exactly four is not weak",
			results: map[types.CriterionID]types.CriterionScore{
				types.CriterionAccuracy: {Score: 4.0},
				types.CriterionTone:     {Score: 3.9},
			},
			want: "Adopt a friendlier, more courteous tone.",
		},
		{
			name: "unknown criterion",
			results: map[types.CriterionID]types.CriterionScore{
				types.CriterionID("politeness"): {Score: 1.0},
			},
			want: "Improve politeness.",
		},
		{
			name: "all strong",
			results: map[types.CriterionID]types.CriterionScore{
				types.CriterionAccuracy: {Score: 4.5},
			},
			want: noActionNeeded,
		},
		{
			name:    "empty",
			results: nil,
			want:    noActionNeeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Suggestions(tt.results))
		})
	}
}

func TestOverallAssessment(t *testing.T) {
	results := map[types.CriterionID]types.CriterionScore{
		types.CriterionAccuracy: {Score: 2.5},
		types.CriterionTone:     {Score: 4.0},
	}

	excellent := OverallAssessment(4.6, results, true)
	assert.Contains(t, excellent, "Excellent")
	assert.NotContains(t, excellent, "does not pass")

	good := OverallAssessment(4.2, results, true)
	assert.Contains(t, good, "Good answer")

	gated := OverallAssessment(4.2, results, false)
	assert.Contains(t, gated, "does not pass")

	acceptable := OverallAssessment(3.5, results, false)
	assert.Contains(t, acceptable, "Acceptable")
	assert.Contains(t, acceptable, "accuracy (2.5)")

	assert.Contains(t, OverallAssessment(2.0, results, false), "Poor")
	assert.Equal(t, "Acceptable answer that needs improvement.", OverallAssessment(3.0, nil, false))
}

func TestWorstCriterion_TieBreaksByID(t *testing.T) {
	id, ok := worstCriterion(map[types.CriterionID]types.CriterionScore{
		types.CriterionTone:     {Score: 2.0},
		types.CriterionClarity:  {Score: 2.0},
		types.CriterionAccuracy: {Score: 3.0},
	})
	assert.True(t, ok)
	assert.Equal(t, types.CriterionClarity, id)
}
