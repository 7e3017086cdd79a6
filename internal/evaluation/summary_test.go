package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agusespa/chateval/internal/types"
)

func TestGetEvaluationSummary(t *testing.T) {
	tests := []struct {
		name    string
		results []types.AutoEvaluationResult
		want    types.EvaluationSummary
	}{
		{
			name:    "empty",
			results: nil,
			want:    types.EvaluationSummary{TotalTests: 0, Passed: 0, Failed: 0, AverageScore: 0, PassRate: 0},
		},
		{
			name: "mixed",
			results: []types.AutoEvaluationResult{
				{OverallScore: 4.5, Passed: true},
				{OverallScore: 3.0, Passed: false},
				{OverallScore: 4.2, Passed: true},
				{OverallScore: 2.3, Passed: false},
			},
			want: types.EvaluationSummary{TotalTests: 4, Passed: 2, Failed: 2, AverageScore: 3.5, PassRate: 50},
		},
		{
			name:    "all passed",
			results: []types.AutoEvaluationResult{{OverallScore: 5, Passed: true}},
			want:    types.EvaluationSummary{TotalTests: 1, Passed: 1, AverageScore: 5, PassRate: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetEvaluationSummary(tt.results)
			assert.Equal(t, tt.want.TotalTests, got.TotalTests)
			assert.Equal(t, tt.want.Passed, got.Passed)
			assert.Equal(t, tt.want.Failed, got.Failed)
			assert.InDelta(t, tt.want.AverageScore, got.AverageScore, 1e-9)
			assert.InDelta(t, tt.want.PassRate, got.PassRate, 1e-9)
		})
	}
}

func TestFailedResults(t *testing.T) {
	results := []types.AutoEvaluationResult{
		{Index: 0, Passed: true},
		{Index: 1, Passed: false},
		{Index: 2, Passed: false},
	}
	failed := FailedResults(results)
	assert.Len(t, failed, 2)
	assert.Equal(t, 1, failed[0].Index)
	assert.Equal(t, 2, failed[1].Index)
	assert.Empty(t, FailedResults(nil))
}
