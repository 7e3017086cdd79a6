package types

import "time"

// AutoEvaluationResult is the batch-path result for one dataset item
type AutoEvaluationResult struct {
	Index          int                             `json:"index"`
	Question       string                          `json:"question"`
	ExpectedAnswer string                          `json:"expectedAnswer"`
	ActualAnswer   string                          `json:"actualAnswer"`
	Similarity     float64                         `json:"similarity"`
	OverallScore   float64                         `json:"overallScore"`
	Passed         bool                            `json:"passed"`
	Criteria       map[CriterionID]CriterionResult `json:"criteria"`
	Issues         []string                        `json:"issues,omitempty"`
}

// EvaluationSummary aggregates a list of batch results
type EvaluationSummary struct {
	TotalTests   int     `json:"totalTests"`
	Passed       int     `json:"passed"`
	Failed       int     `json:"failed"`
	AverageScore float64 `json:"averageScore"`
	PassRate     float64 `json:"passRate"`
}

// QuestionEvalResult is the detailed, weighted evaluation of one question
type QuestionEvalResult struct {
	Question          string                         `json:"question"`
	ExpectedAnswer    string                         `json:"expectedAnswer"`
	ActualAnswer      string                         `json:"actualAnswer"`
	Similarity        float64                        `json:"similarity"`
	CriteriaScores    map[CriterionID]CriterionScore `json:"criteriaScores"`
	OverallScore      float64                        `json:"overallScore"`
	Passed            bool                           `json:"passed"`
	Suggestions       string                         `json:"suggestions"`
	OverallAssessment string                         `json:"overallAssessment"`
	EvaluatorModel    string                         `json:"evaluatorModel"`
	EvaluatedAt       time.Time                      `json:"evaluatedAt"`
}

// AutoEvalConfig configures a whole-job evaluation on the weighted path
type AutoEvalConfig struct {
	ID             string                `json:"id,omitempty" yaml:"id,omitempty"`
	Name           string                `json:"name" yaml:"name"`
	DatasetID      string                `json:"datasetId,omitempty" yaml:"dataset_id,omitempty"`
	EvaluatorModel string                `json:"evaluatorModel" yaml:"evaluator_model"`
	Criteria       []EvaluationCriterion `json:"criteria" yaml:"criteria"`
	PassThreshold  float64               `json:"passThreshold" yaml:"pass_threshold"`
}

// BatchEvaluationResult is the whole-job outcome of RunBatchEvaluation
type BatchEvaluationResult struct {
	ConfigID          string                  `json:"configId,omitempty"`
	EvaluatorModel    string                  `json:"evaluatorModel"`
	Results           []QuestionEvalResult    `json:"results"`
	CriterionAverages map[CriterionID]float64 `json:"criterionAverages"`
	OverallScore      float64                 `json:"overallScore"`
	TotalQuestions    int                     `json:"totalQuestions"`
	PassedCount       int                     `json:"passedCount"`
	FailedCount       int                     `json:"failedCount"`
	PassRate          float64                 `json:"passRate"`
	StartTime         time.Time               `json:"startTime"`
	EndTime           time.Time               `json:"endTime"`
	Duration          time.Duration           `json:"duration"`
	EstimatedCost     float64                 `json:"estimatedCost"`
}

// CriterionStats describes the score distribution of one criterion over a run
type CriterionStats struct {
	Criterion CriterionID `json:"criterion"`
	Count     int         `json:"count"`
	Mean      float64     `json:"mean"`
	StdDev    float64     `json:"std_dev"`
	Min       float64     `json:"min"`
	Max       float64     `json:"max"`
	PassRate  float64     `json:"pass_rate"`
}

// BatchRun represents a single saved batch evaluation run
type BatchRun struct {
	ID             string                         `json:"id"`
	Campaign       string                         `json:"campaign"`
	DatasetName    string                         `json:"dataset_name,omitempty"`
	EvaluatorModel string                         `json:"evaluator_model"`
	RunNumber      int                            `json:"run_number,omitempty"`
	Criteria       EvaluationCriteria             `json:"criteria"`
	StartTime      time.Time                      `json:"start_time"`
	EndTime        time.Time                      `json:"end_time"`
	TotalDuration  time.Duration                  `json:"total_duration"`
	Summary        EvaluationSummary              `json:"summary"`
	CriterionStats map[CriterionID]CriterionStats `json:"criterion_stats,omitempty"`
	Results        []AutoEvaluationResult         `json:"results"`
}

// CampaignResult holds every run of one campaign plus cross-run statistics
type CampaignResult struct {
	Campaign        string          `json:"campaign"`
	EvaluatorModel  string          `json:"evaluator_model"`
	TotalRuns       int             `json:"total_runs"`
	StartTime       time.Time       `json:"start_time"`
	EndTime         time.Time       `json:"end_time"`
	TotalDuration   time.Duration   `json:"total_duration"`
	IndividualRuns  []BatchRun      `json:"individual_runs"`
	AggregatedStats EvaluationStats `json:"aggregated_stats"`
}

// EvaluationStats contains statistical analysis across multiple runs
type EvaluationStats struct {
	AverageScore    float64 `json:"average_score"`
	ScoreStdDev     float64 `json:"score_std_dev"`
	MinScore        float64 `json:"min_score"`
	MaxScore        float64 `json:"max_score"`
	AveragePassRate float64 `json:"average_pass_rate"`
	PassRateStdDev  float64 `json:"pass_rate_std_dev"`
	AverageDuration float64 `json:"average_duration_seconds"`
	DurationStdDev  float64 `json:"duration_std_dev_seconds"`
	Consistency     float64 `json:"consistency"`
}

// Campaign is one entry of a campaign config file
type Campaign struct {
	Key            string             `json:"key" yaml:"key"`
	Description    string             `json:"description,omitempty" yaml:"description,omitempty"`
	Dataset        string             `json:"dataset" yaml:"dataset"`
	EvaluatorModel string             `json:"evaluator_model,omitempty" yaml:"evaluator_model,omitempty"`
	Criteria       EvaluationCriteria `json:"criteria" yaml:"criteria"`
	Runs           int                `json:"runs,omitempty" yaml:"runs,omitempty"`
}
