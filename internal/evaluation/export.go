package evaluation

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/agusespa/chateval/internal/types"
)

// CSVHeader is the fixed column layout of exported results
var CSVHeader = []string{
	"Index", "Overall Score", "Accuracy", "Relevance", "Coherence",
	"Completeness", "Toxicity", "Hallucination", "Issues", "Passed",
}

var csvCriteria = []types.CriterionID{
	types.CriterionAccuracy,
	types.CriterionRelevance,
	types.CriterionCoherence,
	types.CriterionCompleteness,
	types.CriterionToxicity,
	types.CriterionHallucination,
}

// Export is the JSON document written by ExportJSON
type Export struct {
	ExportedAt time.Time                    `json:"exportedAt"`
	Summary    types.EvaluationSummary      `json:"summary"`
	Results    []types.AutoEvaluationResult `json:"results"`
}

func ExportJSON(w io.Writer, summary types.EvaluationSummary, results []types.AutoEvaluationResult) error {
	if results == nil {
		results = []types.AutoEvaluationResult{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Export{ExportedAt: time.Now().UTC(), Summary: summary, Results: results}); err != nil {
		return fmt.Errorf("failed to encode json export: %w", err)
	}
	return nil
}

// ExportCSV writes one row per result. Index is 1-based; criteria that were
// not checked are left empty.
func ExportCSV(w io.Writer, results []types.AutoEvaluationResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, r := range results {
		row := make([]string, 0, len(CSVHeader))
		row = append(row, strconv.Itoa(r.Index+1), strconv.FormatFloat(r.OverallScore, 'f', 2, 64))
		for _, id := range csvCriteria {
			if c, ok := r.Criteria[id]; ok {
				row = append(row, strconv.FormatFloat(c.Score, 'f', 1, 64))
			} else {
				row = append(row, "")
			}
		}
		passed := "No"
		if r.Passed {
			passed = "Yes"
		}
		row = append(row, strings.Join(r.Issues, "; "), passed)

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", r.Index+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv export: %w", err)
	}
	return nil
}
