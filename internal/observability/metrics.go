package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/agusespa/chateval/internal/types"
)

// Metrics records evaluation activity. It satisfies evaluation.Recorder.
type Metrics struct {
	ItemsEvaluated *prometheus.CounterVec
	CriterionScore *prometheus.HistogramVec
	BatchDuration  prometheus.Histogram
	BatchItems     prometheus.Histogram
}

// NewMetrics registers the evaluation metrics on reg. Passing a fresh
// prometheus.NewRegistry() keeps tests isolated from the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ItemsEvaluated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "chateval_items_evaluated_total",
			Help: "Total number of evaluated items by result",
		}, []string{"result"}),
		CriterionScore: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "chateval_criterion_score",
			Help:    "Distribution of criterion scores on the 1-5 scale",
			Buckets: []float64{1, 1.5, 2, 2.5, 3, 3.5, 4, 4.5, 5},
		}, []string{"criterion"}),
		BatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "chateval_batch_duration_seconds",
			Help:    "Wall-clock duration of evaluation batches",
			Buckets: prometheus.DefBuckets,
		}),
		BatchItems: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "chateval_batch_items",
			Help:    "Number of items per evaluation batch",
			Buckets: prometheus.ExponentialBuckets(1, 4, 6),
		}),
	}
}

func (m *Metrics) ObserveItem(r types.AutoEvaluationResult) {
	if m == nil {
		return
	}
	result := "failed"
	if r.Passed {
		result = "passed"
	}
	m.ItemsEvaluated.WithLabelValues(result).Inc()
	for id, c := range r.Criteria {
		m.CriterionScore.WithLabelValues(string(id)).Observe(c.Score)
	}
}

func (m *Metrics) ObserveBatch(items int, d time.Duration) {
	if m == nil {
		return
	}
	m.BatchDuration.Observe(d.Seconds())
	m.BatchItems.Observe(float64(items))
}
