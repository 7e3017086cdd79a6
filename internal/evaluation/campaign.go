package evaluation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/agusespa/chateval/internal/criteria"
	"github.com/agusespa/chateval/internal/types"
)

// RunOnce executes one batch and wraps it as a BatchRun
func (r *Runner) RunOnce(ctx context.Context, campaign types.Campaign, items []types.Item, runNumber int, onProgress ProgressFunc) (*types.BatchRun, error) {
	run := &types.BatchRun{
		ID:             uuid.NewString(),
		Campaign:       campaign.Key,
		DatasetName:    campaign.Dataset,
		EvaluatorModel: r.modelFor(campaign),
		RunNumber:      runNumber,
		Criteria:       campaign.Criteria,
		StartTime:      r.now(),
	}

	results, err := r.RunBatch(ctx, items, campaign.Criteria, onProgress)
	run.EndTime = r.now()
	run.TotalDuration = run.EndTime.Sub(run.StartTime)
	run.Results = results
	run.Summary = GetEvaluationSummary(results)
	run.CriterionStats = NewStatisticsCalculator().CriterionStats(results)
	if err != nil {
		return run, fmt.Errorf("failed to complete run %d of %s: %w", runNumber, campaign.Key, err)
	}
	return run, nil
}

// RunCampaign executes the campaign the configured number of times and
// aggregates statistics across runs.
func (r *Runner) RunCampaign(ctx context.Context, campaign types.Campaign, items []types.Item, onProgress func(run, current, total int)) (*types.CampaignResult, error) {
	runs := DefaultRuns(campaign)
	result := &types.CampaignResult{
		Campaign:       campaign.Key,
		EvaluatorModel: r.modelFor(campaign),
		TotalRuns:      runs,
		StartTime:      r.now(),
		IndividualRuns: make([]types.BatchRun, 0, runs),
	}

	for i := 1; i <= runs; i++ {
		r.logger.Info("starting campaign run", "campaign", campaign.Key, "run", i, "of", runs)

		var progress ProgressFunc
		if onProgress != nil {
			runNumber := i
			progress = func(current, total int) { onProgress(runNumber, current, total) }
		}

		run, err := r.RunOnce(ctx, campaign, items, i, progress)
		if err != nil {
			return nil, err
		}
		result.IndividualRuns = append(result.IndividualRuns, *run)
	}

	result.EndTime = r.now()
	result.TotalDuration = result.EndTime.Sub(result.StartTime)
	NewStatisticsCalculator().AggregateRuns(result)
	return result, nil
}

func (r *Runner) modelFor(c types.Campaign) string {
	if c.EvaluatorModel != "" {
		return c.EvaluatorModel
	}
	if r.opts.EvaluatorModel != "" {
		return r.opts.EvaluatorModel
	}
	return criteria.DefaultModel
}
