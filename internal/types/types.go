package types

// CriterionID identifies a scoring criterion
type CriterionID string

const (
	CriterionAccuracy      CriterionID = "accuracy"
	CriterionCompleteness  CriterionID = "completeness"
	CriterionRelevance     CriterionID = "relevance"
	CriterionClarity       CriterionID = "clarity"
	CriterionTone          CriterionID = "tone"
	CriterionCitations     CriterionID = "citations"
	CriterionToxicity      CriterionID = "toxicity"
	CriterionHallucination CriterionID = "hallucination"
	CriterionCoherence     CriterionID = "coherence"
)

// RubricLevel describes one score band of a criterion. Display only.
type RubricLevel struct {
	Level       int    `json:"level" yaml:"level"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description" yaml:"description"`
}

// EvaluationCriterion is a weighted criterion used by the detailed evaluator.
// Weights across enabled criteria should sum to 1.0; nothing enforces it at scoring time.
type EvaluationCriterion struct {
	ID          CriterionID   `json:"id" yaml:"id"`
	Name        string        `json:"name" yaml:"name"`
	Description string        `json:"description" yaml:"description"`
	Weight      float64       `json:"weight" yaml:"weight"`
	Scale       string        `json:"scale" yaml:"scale"`
	Rubric      []RubricLevel `json:"rubric" yaml:"rubric"`
	Enabled     bool          `json:"enabled" yaml:"enabled"`
}

// EvaluationCriteria holds the per-run check flags and optional thresholds
// used by the batch path. Nil thresholds fall back to the default table.
type EvaluationCriteria struct {
	CheckAccuracy      bool `json:"checkAccuracy" yaml:"check_accuracy"`
	CheckRelevance     bool `json:"checkRelevance" yaml:"check_relevance"`
	CheckCoherence     bool `json:"checkCoherence" yaml:"check_coherence"`
	CheckCompleteness  bool `json:"checkCompleteness" yaml:"check_completeness"`
	CheckToxicity      bool `json:"checkToxicity" yaml:"check_toxicity"`
	CheckHallucination bool `json:"checkHallucination" yaml:"check_hallucination"`

	AccuracyThreshold      *float64 `json:"accuracyThreshold,omitempty" yaml:"accuracy_threshold,omitempty"`
	RelevanceThreshold     *float64 `json:"relevanceThreshold,omitempty" yaml:"relevance_threshold,omitempty"`
	CoherenceThreshold     *float64 `json:"coherenceThreshold,omitempty" yaml:"coherence_threshold,omitempty"`
	CompletenessThreshold  *float64 `json:"completenessThreshold,omitempty" yaml:"completeness_threshold,omitempty"`
	ToxicityThreshold      *float64 `json:"toxicityThreshold,omitempty" yaml:"toxicity_threshold,omitempty"`
	HallucinationThreshold *float64 `json:"hallucinationThreshold,omitempty" yaml:"hallucination_threshold,omitempty"`
	OverallThreshold       *float64 `json:"overallThreshold,omitempty" yaml:"overall_threshold,omitempty"`
}

// Threshold returns the caller-supplied threshold for a batch criterion, or nil.
func (c EvaluationCriteria) Threshold(id CriterionID) *float64 {
	switch id {
	case CriterionAccuracy:
		return c.AccuracyThreshold
	case CriterionRelevance:
		return c.RelevanceThreshold
	case CriterionCoherence:
		return c.CoherenceThreshold
	case CriterionCompleteness:
		return c.CompletenessThreshold
	case CriterionToxicity:
		return c.ToxicityThreshold
	case CriterionHallucination:
		return c.HallucinationThreshold
	default:
		return nil
	}
}

// AnyChecked reports whether at least one flag is set.
func (c EvaluationCriteria) AnyChecked() bool {
	return c.CheckAccuracy || c.CheckRelevance || c.CheckCoherence ||
		c.CheckCompleteness || c.CheckToxicity || c.CheckHallucination
}

// AllChecks returns criteria with every flag enabled and default thresholds.
func AllChecks() EvaluationCriteria {
	return EvaluationCriteria{
		CheckAccuracy:      true,
		CheckRelevance:     true,
		CheckCoherence:     true,
		CheckCompleteness:  true,
		CheckToxicity:      true,
		CheckHallucination: true,
	}
}

// Float returns a pointer to v, for optional thresholds.
func Float(v float64) *float64 {
	return &v
}

// CriterionScore is one scorer output for one item and criterion
type CriterionScore struct {
	Score     float64 `json:"score"`
	Weight    float64 `json:"weight"`
	Reasoning string  `json:"reasoning"`
}

// CriterionResult is a checked criterion inside a batch result
type CriterionResult struct {
	Score     float64 `json:"score"`
	Reason    string  `json:"reason"`
	Threshold float64 `json:"threshold"`
	Passed    bool    `json:"passed"`
}

// Item is a single question/answer pair to evaluate
type Item struct {
	Question       string `json:"question" yaml:"question"`
	ExpectedAnswer string `json:"expectedAnswer" yaml:"expected_answer"`
	ActualAnswer   string `json:"actualAnswer" yaml:"actual_answer"`
}
