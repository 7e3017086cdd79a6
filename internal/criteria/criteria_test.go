package criteria

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agusespa/chateval/internal/types"
)

func TestDefaults(t *testing.T) {
	list := Defaults()
	require.Len(t, list, 8)

	assert.InDelta(t, 1.0, WeightSum(list), 1e-9)
	require.NoError(t, ValidateWeights(list))

	for _, c := range list {
		assert.True(t, c.Enabled, c.ID)
		require.Len(t, c.Rubric, 5, c.ID)
		for i, level := range c.Rubric {
			assert.Equal(t, i+1, level.Level)
		}
	}
}

func TestDefaults_ReturnsCopy(t *testing.T) {
	list := Defaults()
	list[0].Weight = 0.99
	list[0].Rubric[0].Label = "changed"

	fresh := Defaults()
	assert.Equal(t, 0.25, fresh[0].Weight)
	assert.Equal(t, "Poor", fresh[0].Rubric[0].Label)
}

func TestGet(t *testing.T) {
	c, ok := Get(types.CriterionCitations)
	require.True(t, ok)
	assert.Equal(t, "Citations", c.Name)
	assert.Equal(t, 0.10, c.Weight)

	_, ok = Get(types.CriterionCoherence)
	assert.False(t, ok, "coherence has no catalogue entry")
}

func TestValidateWeights(t *testing.T) {
	tests := []struct {
		name    string
		list    []types.EvaluationCriterion
		wantErr bool
	}{
		{
			name: "sums to one",
			list: []types.EvaluationCriterion{
				{ID: "accuracy", Weight: 0.6, Enabled: true},
				{ID: "tone", Weight: 0.4, Enabled: true},
			},
		},
		{
			name: "within tolerance",
			list: []types.EvaluationCriterion{
				{ID: "accuracy", Weight: 0.505, Enabled: true},
				{ID: "tone", Weight: 0.5, Enabled: true},
			},
		},
		{
			name: "disabled weights ignored",
			list: []types.EvaluationCriterion{
				{ID: "accuracy", Weight: 1.0, Enabled: true},
				{ID: "tone", Weight: 0.5, Enabled: false},
			},
		},
		{
			name: "sum too low",
			list: []types.EvaluationCriterion{
				{ID: "accuracy", Weight: 0.5, Enabled: true},
			},
			wantErr: true,
		},
		{
			name: "duplicate id",
			list: []types.EvaluationCriterion{
				{ID: "accuracy", Weight: 0.5, Enabled: true},
				{ID: "accuracy", Weight: 0.5, Enabled: true},
			},
			wantErr: true,
		},
		{
			name: "weight out of range",
			list: []types.EvaluationCriterion{
				{ID: "accuracy", Weight: 1.5, Enabled: true},
			},
			wantErr: true,
		},
		{
			name:    "nothing enabled",
			list:    []types.EvaluationCriterion{{ID: "accuracy", Weight: 1}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWeights(tt.list)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNormalizeWeights(t *testing.T) {
	list := []types.EvaluationCriterion{
		{ID: "accuracy", Weight: 2, Enabled: true},
		{ID: "tone", Weight: 2, Enabled: true},
		{ID: "clarity", Weight: 7, Enabled: false},
	}
	out := NormalizeWeights(list)
	assert.InDelta(t, 0.5, out[0].Weight, 1e-9)
	assert.InDelta(t, 0.5, out[1].Weight, 1e-9)
	assert.Equal(t, 7.0, out[2].Weight)
	assert.Equal(t, 2.0, list[0].Weight, "input must not be modified")

	zero := NormalizeWeights([]types.EvaluationCriterion{
		{ID: "accuracy", Enabled: true},
		{ID: "tone", Enabled: true},
		{ID: "clarity", Enabled: true},
		{ID: "citations", Enabled: true},
	})
	for _, c := range zero {
		assert.InDelta(t, 0.25, c.Weight, 1e-9)
	}
}

func TestThresholds(t *testing.T) {
	assert.Equal(t, 4.0, DefaultThreshold(types.CriterionAccuracy))
	assert.Equal(t, 3.5, DefaultThreshold(types.CriterionRelevance))
	assert.Equal(t, 3.5, DefaultThreshold(types.CriterionCoherence))
	assert.Equal(t, 3.5, DefaultThreshold(types.CriterionCompleteness))
	assert.Equal(t, 4.5, DefaultThreshold(types.CriterionToxicity))
	assert.Equal(t, 4.0, DefaultThreshold(types.CriterionHallucination))
	assert.Equal(t, 3.5, DefaultThreshold(types.CriterionTone))

	assert.Equal(t, 2.0, ResolveThreshold(types.Float(2.0), types.CriterionAccuracy))
	assert.Equal(t, 4.0, ResolveThreshold(nil, types.CriterionAccuracy))
	assert.Equal(t, DefaultOverallThreshold, ResolveOverall(nil))
	assert.Equal(t, 3.0, ResolveOverall(types.Float(3.0)))
}

func TestWithDefaults(t *testing.T) {
	c := types.EvaluationCriteria{AccuracyThreshold: types.Float(1.0)}
	out := WithDefaults(c, map[types.CriterionID]float64{
		types.CriterionAccuracy:  4.8,
		types.CriterionRelevance: 2.5,
	})
	require.NotNil(t, out.AccuracyThreshold)
	assert.Equal(t, 1.0, *out.AccuracyThreshold)
	require.NotNil(t, out.RelevanceThreshold)
	assert.Equal(t, 2.5, *out.RelevanceThreshold)
	assert.Nil(t, out.ToxicityThreshold)
}

func TestCostPerQuestion(t *testing.T) {
	cost, ok := CostPerQuestion("gpt-4")
	assert.True(t, ok)
	assert.Equal(t, 0.03, cost)

	cost, ok = CostPerQuestion("claude-3-haiku")
	assert.True(t, ok)
	assert.Equal(t, 0.00025, cost)

	cost, ok = CostPerQuestion("unknown-model")
	assert.False(t, ok)
	assert.Equal(t, 0.0, cost)

	assert.True(t, IsKnownModel(DefaultModel))
	assert.Len(t, Models(), 6)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "criteria.yaml")
	yamlData := `
- id: accuracy
  weight: 0.7
  enabled: true
- id: tone
  weight: 0.3
  enabled: true
`
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlData), 0644))

	list, err := LoadFile(yamlPath)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Accuracy", list[0].Name, "name inherited from catalogue")
	assert.Len(t, list[1].Rubric, 5)

	jsonPath := filepath.Join(dir, "criteria.json")
	jsonData := `[{"id":"accuracy","name":"Facts","weight":1,"enabled":true}]`
	require.NoError(t, os.WriteFile(jsonPath, []byte(jsonData), 0644))

	list, err = LoadFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "Facts", list[0].Name)

	badPath := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badPath, []byte("- id: accuracy\n  weight: 0.2\n  enabled: true\n"), 0644))
	_, err = LoadFile(badPath)
	assert.Error(t, err)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
