package evaluation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agusespa/chateval/internal/criteria"
	"github.com/agusespa/chateval/internal/scoring"
	"github.com/agusespa/chateval/internal/types"
	"github.com/agusespa/chateval/pkg/logger"
)

// ProgressFunc is called after every completed item with strictly increasing current values
type ProgressFunc func(current, total int)

// Recorder receives per-item and per-batch observations
type Recorder interface {
	ObserveItem(result types.AutoEvaluationResult)
	ObserveBatch(items int, duration time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveItem(types.AutoEvaluationResult) {}
func (nopRecorder) ObserveBatch(int, time.Duration)        {}

type Options struct {
	// Delay is slept before each item to simulate evaluator latency
	Delay time.Duration
	// Concurrency bounds in-flight items; values below 2 run sequentially
	Concurrency int
	// StrictCoherenceFlag scores coherence only when CheckCoherence is set.
	// By default CheckRelevance also pulls coherence in.
	StrictCoherenceFlag bool
	// EvaluatorModel is the label reported on detailed results
	EvaluatorModel string
}

type Runner struct {
	scorer   scoring.CriterionScorer
	opts     Options
	logger   logger.Logger
	recorder Recorder
	now      func() time.Time
}

func NewRunner(scorer scoring.CriterionScorer, opts Options, log logger.Logger) *Runner {
	if log == nil {
		log = logger.Nop()
	}
	if opts.EvaluatorModel == "" {
		opts.EvaluatorModel = criteria.DefaultModel
	}
	return &Runner{
		scorer:   scorer,
		opts:     opts,
		logger:   log,
		recorder: nopRecorder{},
		now:      time.Now,
	}
}

// WithRecorder attaches a metrics recorder
func (r *Runner) WithRecorder(rec Recorder) *Runner {
	if rec != nil {
		r.recorder = rec
	}
	return r
}

func (r *Runner) Options() Options {
	return r.opts
}

// Batch is an in-flight or finished RunBatch call
type Batch struct {
	mu        sync.RWMutex
	results   []types.AutoEvaluationResult
	filled    []bool
	completed int
	done      chan struct{}
	err       error
}

func newBatch(total int) *Batch {
	return &Batch{
		results: make([]types.AutoEvaluationResult, total),
		filled:  make([]bool, total),
		done:    make(chan struct{}),
	}
}

func (b *Batch) store(i int, res types.AutoEvaluationResult) {
	b.mu.Lock()
	b.results[i] = res
	b.filled[i] = true
	b.completed++
	b.mu.Unlock()
}

// Snapshot returns the results completed so far, in input order
func (b *Batch) Snapshot() []types.AutoEvaluationResult {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]types.AutoEvaluationResult, 0, b.completed)
	for i, ok := range b.filled {
		if ok {
			out = append(out, b.results[i])
		}
	}
	return out
}

// Progress reports completed and total item counts
func (b *Batch) Progress() (int, int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.completed, len(b.results)
}

// Wait blocks until the batch ends and returns the completed results.
// After a cancellation the slice holds only the items that finished.
func (b *Batch) Wait() ([]types.AutoEvaluationResult, error) {
	<-b.done
	return b.Snapshot(), b.err
}

// Done is closed when the batch ends
func (b *Batch) Done() <-chan struct{} {
	return b.done
}

// RunBatch scores every item against the checked criteria, preserving input order
func (r *Runner) RunBatch(ctx context.Context, items []types.Item, checks types.EvaluationCriteria, onProgress ProgressFunc) ([]types.AutoEvaluationResult, error) {
	return r.Start(ctx, items, checks, onProgress).Wait()
}

// Start launches a batch in the background
func (r *Runner) Start(ctx context.Context, items []types.Item, checks types.EvaluationCriteria, onProgress ProgressFunc) *Batch {
	batch := newBatch(len(items))
	go func() {
		defer close(batch.done)
		start := r.now()
		err := r.forEach(ctx, len(items), onProgress, func(i int) {
			res := r.evaluateItem(i, items[i], checks)
			batch.store(i, res)
			r.recorder.ObserveItem(res)
			r.logger.Debug("item evaluated", "index", i, "overall", res.OverallScore, "passed", res.Passed)
		})
		elapsed := r.now().Sub(start)
		r.recorder.ObserveBatch(len(items), elapsed)

		if err != nil {
			completed, total := batch.Progress()
			r.logger.Warn("batch interrupted", "completed", completed, "total", total, "error", err)
			batch.err = err
			return
		}
		r.logger.Info("batch finished", "items", len(items), "duration", elapsed)
	}()
	return batch
}

// forEach runs fn for indexes 0..n-1, sequentially or on a bounded pool.
// Progress is reported under a lock so counts never go backwards.
func (r *Runner) forEach(ctx context.Context, n int, onProgress ProgressFunc, fn func(i int)) error {
	var progressMu sync.Mutex
	completed := 0
	report := func() {
		progressMu.Lock()
		defer progressMu.Unlock()
		completed++
		if onProgress != nil {
			onProgress(completed, n)
		}
	}

	if r.opts.Concurrency < 2 {
		for i := 0; i < n; i++ {
			if err := r.wait(ctx); err != nil {
				return err
			}
			fn(i)
			report()
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Concurrency)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := r.wait(gctx); err != nil {
				return err
			}
			fn(i)
			report()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func (r *Runner) wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.opts.Delay <= 0 {
		return nil
	}
	timer := time.NewTimer(r.opts.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// CheckedCriteria lists the criteria a batch computes, in a fixed order
func (r *Runner) CheckedCriteria(checks types.EvaluationCriteria) []types.CriterionID {
	var ids []types.CriterionID
	if checks.CheckAccuracy {
		ids = append(ids, types.CriterionAccuracy)
	}
	if checks.CheckRelevance {
		ids = append(ids, types.CriterionRelevance)
	}
	if checks.CheckCoherence || (checks.CheckRelevance && !r.opts.StrictCoherenceFlag) {
		ids = append(ids, types.CriterionCoherence)
	}
	if checks.CheckCompleteness {
		ids = append(ids, types.CriterionCompleteness)
	}
	if checks.CheckToxicity {
		ids = append(ids, types.CriterionToxicity)
	}
	if checks.CheckHallucination {
		ids = append(ids, types.CriterionHallucination)
	}
	return ids
}

// EvaluateItem scores a single item on the batch path
func (r *Runner) EvaluateItem(item types.Item, checks types.EvaluationCriteria) types.AutoEvaluationResult {
	return r.evaluateItem(0, item, checks)
}

func (r *Runner) evaluateItem(index int, item types.Item, checks types.EvaluationCriteria) types.AutoEvaluationResult {
	similarity := scoring.Similarity(item.ActualAnswer, item.ExpectedAnswer)
	ids := r.CheckedCriteria(checks)

	results := make(map[types.CriterionID]types.CriterionResult, len(ids))
	var issues []string
	for _, id := range ids {
		cs := r.scorer.ScoreCriterion(id, item.ActualAnswer, item.ExpectedAnswer, similarity)
		threshold := criteria.ResolveThreshold(checks.Threshold(id), id)
		passed := cs.Score >= threshold
		results[id] = types.CriterionResult{
			Score:     cs.Score,
			Reason:    cs.Reasoning,
			Threshold: threshold,
			Passed:    passed,
		}
		if !passed {
			issues = append(issues, fmt.Sprintf("%s score %.1f is below threshold %.1f", id, cs.Score, threshold))
		}
	}

	overall := scoring.UncheckedMeanAggregate(results)
	overallThreshold := criteria.ResolveOverall(checks.OverallThreshold)
	if len(results) > 0 && overall < overallThreshold {
		issues = append(issues, fmt.Sprintf("overall score %.2f is below threshold %.1f", overall, overallThreshold))
	}

	return types.AutoEvaluationResult{
		Index:          index,
		Question:       item.Question,
		ExpectedAnswer: item.ExpectedAnswer,
		ActualAnswer:   item.ActualAnswer,
		Similarity:     similarity,
		OverallScore:   overall,
		Passed:         scoring.Decide(overall, overallThreshold, results),
		Criteria:       results,
		Issues:         issues,
	}
}
