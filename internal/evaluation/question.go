package evaluation

import (
	"context"
	"fmt"

	"github.com/agusespa/chateval/internal/criteria"
	"github.com/agusespa/chateval/internal/scoring"
	"github.com/agusespa/chateval/internal/types"
)

// EvaluateQuestion is the detailed single-question evaluation on the weighted path.
// Pass/fail gates on the weighted overall score only.
func (r *Runner) EvaluateQuestion(question, expected, actual string, list []types.EvaluationCriterion, threshold float64) types.QuestionEvalResult {
	similarity := scoring.Similarity(actual, expected)

	scores := make(map[types.CriterionID]types.CriterionScore)
	for _, c := range criteria.Enabled(list) {
		cs := r.scorer.ScoreCriterion(c.ID, actual, expected, similarity)
		cs.Weight = c.Weight
		scores[c.ID] = cs
	}

	overall := scoring.WeightedAggregate(scores, list)
	passed := len(scores) > 0 && overall >= threshold

	return types.QuestionEvalResult{
		Question:          question,
		ExpectedAnswer:    expected,
		ActualAnswer:      actual,
		Similarity:        similarity,
		CriteriaScores:    scores,
		OverallScore:      overall,
		Passed:            passed,
		Suggestions:       scoring.Suggestions(scores),
		OverallAssessment: scoring.OverallAssessment(overall, scores, passed),
		EvaluatorModel:    r.opts.EvaluatorModel,
		EvaluatedAt:       r.now(),
	}
}

// RunBatchEvaluation evaluates every item on the weighted path and rolls the
// results up into per-criterion averages, pass counts and a cost estimate.
func (r *Runner) RunBatchEvaluation(ctx context.Context, cfg types.AutoEvalConfig, items []types.Item, onProgress ProgressFunc) (*types.BatchEvaluationResult, error) {
	list := cfg.Criteria
	if len(list) == 0 {
		list = criteria.Defaults()
	}
	model := cfg.EvaluatorModel
	if model == "" {
		model = r.opts.EvaluatorModel
	}
	threshold := cfg.PassThreshold
	if threshold <= 0 {
		threshold = criteria.DefaultOverallThreshold
	}

	evaluator := *r
	evaluator.opts.EvaluatorModel = model

	start := r.now()
	results := make([]types.QuestionEvalResult, len(items))
	err := evaluator.forEach(ctx, len(items), onProgress, func(i int) {
		it := items[i]
		results[i] = evaluator.EvaluateQuestion(it.Question, it.ExpectedAnswer, it.ActualAnswer, list, threshold)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to complete batch evaluation: %w", err)
	}
	end := r.now()

	out := &types.BatchEvaluationResult{
		ConfigID:          cfg.ID,
		EvaluatorModel:    model,
		Results:           results,
		CriterionAverages: make(map[types.CriterionID]float64),
		TotalQuestions:    len(items),
		StartTime:         start,
		EndTime:           end,
		Duration:          end.Sub(start),
	}

	cost, ok := criteria.CostPerQuestion(model)
	if !ok {
		r.logger.Warn("unknown evaluator model, cost estimate is zero", "model", model)
	}
	out.EstimatedCost = float64(len(items)) * cost

	if len(results) == 0 {
		return out, nil
	}

	calc := NewStatisticsCalculator()
	averages := make(map[types.CriterionID]types.CriterionScore)
	for _, c := range criteria.Enabled(list) {
		var values []float64
		for _, res := range results {
			if s, ok := res.CriteriaScores[c.ID]; ok {
				values = append(values, s.Score)
			}
		}
		avg := calc.CalculateMean(values)
		out.CriterionAverages[c.ID] = avg
		averages[c.ID] = types.CriterionScore{Score: avg, Weight: c.Weight}
	}
	out.OverallScore = scoring.WeightedAggregate(averages, list)

	for _, res := range results {
		if res.Passed {
			out.PassedCount++
		}
	}
	out.FailedCount = out.TotalQuestions - out.PassedCount
	out.PassRate = float64(out.PassedCount) / float64(out.TotalQuestions) * 100

	r.logger.Info("batch evaluation finished",
		"model", model,
		"questions", out.TotalQuestions,
		"passed", out.PassedCount,
		"overall", out.OverallScore,
	)
	return out, nil
}
