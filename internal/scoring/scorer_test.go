package scoring

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agusespa/chateval/internal/types"
)

func deterministicScorer() *HeuristicScorer {
	return NewHeuristicScorer(Fixed(), ZeroJitter())
}

func TestBaseline(t *testing.T) {
	assert.Equal(t, 1.0, Baseline(0))
	assert.Equal(t, 2.0, Baseline(0.25))
	assert.Equal(t, 3.0, Baseline(0.5))
	assert.Equal(t, 4.0, Baseline(0.75))
	assert.Equal(t, 5.0, Baseline(1))
}

func TestHeuristicScorer_Accuracy(t *testing.T) {
	scorer := deterministicScorer()

	tests := []struct {
		name       string
		expected   string
		actual     string
		similarity float64
		want       float64
	}{
		{"all key tokens", "The capital of France is Paris", "The capital of France is Paris", 1, 5},
		{"one of three", "The capital of France is Paris", "Paris", 0.1, 2},
		{"none", "The capital of France is Paris", "", 0, 1},
		{"numbers and diacritics", "Giá là 100 đồng", "Giá 100 đồng", 0.5, 5},
		{"wrong number", "Giá là 100 đồng", "Giá 200 đồng", 0.5, 3},
		{"case insensitive", "Paris Berlin", "paris berlin", 1, 5},
		{"no key tokens falls back to baseline", "ok", "sure", 0.5, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.Score(types.CriterionAccuracy, tt.actual, tt.expected, tt.similarity)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHeuristicScorer_Rules(t *testing.T) {
	scorer := deterministicScorer()
	longSentence := strings.Repeat("word ", 25) + "."
	mediumSentence := strings.Repeat("a", 70) + "."

	tests := []struct {
		name       string
		id         types.CriterionID
		actual     string
		expected   string
		similarity float64
		want       float64
	}{
		{"completeness in range", types.CriterionCompleteness, "abcdefghij", "abcdefghij", 0.5, 4},
		{"completeness capped", types.CriterionCompleteness, "abcdefghij", "abcdefghij", 1, 5},
		{"completeness too short", types.CriterionCompleteness, "abcd", "abcdefghij", 0.5, 2},
		{"completeness between bands", types.CriterionCompleteness, "abcdefg", "abcdefghij", 0.5, 3},
		{"completeness too long", types.CriterionCompleteness, strings.Repeat("x", 20), "abcdefghij", 0.5, 3},
		{"completeness empty expected", types.CriterionCompleteness, "anything", "", 0.5, 3},

		{"relevance floored at three", types.CriterionRelevance, "x", "y", 0, 3},
		{"relevance keeps high baseline", types.CriterionRelevance, "x", "y", 1, 5},

		{"clarity short sentences", types.CriterionClarity, "Short one. Another short!", "", 0.5, 4},
		{"clarity long sentence", types.CriterionClarity, longSentence, "", 0.5, 2},
		{"clarity medium sentence", types.CriterionClarity, mediumSentence, "", 0.5, 3},
		{"clarity empty answer", types.CriterionClarity, "", "", 0.5, 3},

		{"tone english courtesy", types.CriterionTone, "Thank you for asking", "", 0.5, 4},
		{"tone vietnamese courtesy", types.CriterionTone, "Cảm ơn bạn đã hỏi", "", 0.5, 4},
		{"tone neutral", types.CriterionTone, "The answer is yes", "", 0.5, 3},

		{"citations marker", types.CriterionCitations, "See [1] for details", "", 0.5, 5},
		{"citations url", types.CriterionCitations, "Details at https://example.com", "", 0.5, 5},
		{"citations missing", types.CriterionCitations, "Nothing cited", "", 0.5, 2},
		{"citations floored", types.CriterionCitations, "Nothing cited", "", 0, 1},

		{"toxicity detected", types.CriterionToxicity, "You are an idiot", "", 1, 2},
		{"toxicity detected floored", types.CriterionToxicity, "Đồ ngu", "", 0, 1},
		{"toxicity clean is never perfect", types.CriterionToxicity, "Happy to help", "", 1, 4.5},
		{"toxicity clean low similarity", types.CriterionToxicity, "Happy to help", "", 0, 4.5},

		{"hallucination low similarity", types.CriterionHallucination, "", "", 0.2, 1},
		{"hallucination mid similarity", types.CriterionHallucination, "", "", 0.5, 2},
		{"hallucination high similarity", types.CriterionHallucination, "", "", 0.6, 4},
		{"hallucination capped", types.CriterionHallucination, "", "", 1, 5},

		{"coherence uses baseline", types.CriterionCoherence, "anything", "", 0.5, 3},
		{"unknown criterion uses baseline", types.CriterionID("politeness"), "anything", "", 0.75, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.Score(tt.id, tt.actual, tt.expected, tt.similarity)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHeuristicScorer_FixedJitter(t *testing.T) {
	tests := []struct {
		name       string
		rng        Random
		similarity float64
		want       float64
	}{
		{"upper edge", Fixed(1.0), 0.5, 3.3},
		{"lower edge", Fixed(0), 0.5, 2.7},
		{"midpoint", Fixed(0.5), 0.5, 3.0},
		{"clamped low", Fixed(0), 0, 1.0},
		{"clamped high", Fixed(0.99), 1, 5.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scorer := NewHeuristicScorer(tt.rng, DefaultJitter())
			got := scorer.Score(types.CriterionCoherence, "", "", tt.similarity)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestHeuristicScorer_JitterProperties(t *testing.T) {
	jittered := NewHeuristicScorer(NewRandom(42), DefaultJitter())
	plain := deterministicScorer()

	ids := []types.CriterionID{
		types.CriterionAccuracy, types.CriterionCompleteness, types.CriterionRelevance,
		types.CriterionClarity, types.CriterionTone, types.CriterionCitations,
		types.CriterionToxicity, types.CriterionHallucination, types.CriterionCoherence,
	}
	pairs := [][2]string{
		{"The refund window is 30 days.", "Refunds are possible within 30 days. Thank you!"},
		{"Open Monday to Friday.", "We are closed on weekends, see [1]."},
		{"", "stupid question"},
		{"Giờ mở cửa từ 8 giờ sáng.", "Chúng tôi mở cửa từ 8 giờ sáng. Cảm ơn bạn."},
	}

	for i := 0; i < 50; i++ {
		for _, id := range ids {
			for _, p := range pairs {
				sim := Similarity(p[0], p[1])
				got := jittered.Score(id, p[1], p[0], sim)
				base := plain.Score(id, p[1], p[0], sim)

				require.GreaterOrEqual(t, got, 1.0)
				require.LessOrEqual(t, got, 5.0)
				require.InDelta(t, got, math.Round(got*10)/10, 1e-9, "score must have one decimal")
				require.InDelta(t, base, got, 0.35+1e-9)
			}
		}
	}
}

func TestHeuristicScorer_ScoreCriterion(t *testing.T) {
	scorer := deterministicScorer()
	expected := "The capital of France is Paris"

	score := scorer.ScoreCriterion(types.CriterionAccuracy, expected, expected, Similarity(expected, expected))
	assert.Equal(t, 5.0, score.Score)
	assert.Equal(t, 0.0, score.Weight)
	assert.Equal(t, "All key facts of the expected answer are present.", score.Reasoning)
}

func TestNewHeuristicScorer_NilRandom(t *testing.T) {
	scorer := NewHeuristicScorer(nil, DefaultJitter())
	got := scorer.Score(types.CriterionRelevance, "a", "b", 0)
	assert.GreaterOrEqual(t, got, 2.7)
	assert.LessOrEqual(t, got, 3.3)
}
