package criteria

// Model is an evaluator model label with its simulated per-question cost in USD.
// No model is ever called; the label is presentation only.
type Model struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Provider        string  `json:"provider"`
	CostPerQuestion float64 `json:"costPerQuestion"`
}

// DefaultModel is the evaluator label used when none is configured
const DefaultModel = "gpt-4"

var models = []Model{
	{ID: "gpt-4", Name: "GPT-4", Provider: "openai", CostPerQuestion: 0.03},
	{ID: "gpt-4-turbo", Name: "GPT-4 Turbo", Provider: "openai", CostPerQuestion: 0.01},
	{ID: "gpt-3.5-turbo", Name: "GPT-3.5 Turbo", Provider: "openai", CostPerQuestion: 0.002},
	{ID: "claude-3-opus", Name: "Claude 3 Opus", Provider: "anthropic", CostPerQuestion: 0.015},
	{ID: "claude-3-sonnet", Name: "Claude 3 Sonnet", Provider: "anthropic", CostPerQuestion: 0.003},
	{ID: "claude-3-haiku", Name: "Claude 3 Haiku", Provider: "anthropic", CostPerQuestion: 0.00025},
}

// Models returns the known evaluator models
func Models() []Model {
	return append([]Model(nil), models...)
}

// CostPerQuestion looks up the simulated cost of one evaluation. Unknown models cost 0.
func CostPerQuestion(id string) (float64, bool) {
	for _, m := range models {
		if m.ID == id {
			return m.CostPerQuestion, true
		}
	}
	return 0, false
}

// IsKnownModel reports whether id is in the model list
func IsKnownModel(id string) bool {
	_, ok := CostPerQuestion(id)
	return ok
}
