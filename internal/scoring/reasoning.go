package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/agusespa/chateval/internal/criteria"
	"github.com/agusespa/chateval/internal/types"
)

// suggestionCutoff marks criteria worth a recommendation
const suggestionCutoff = 4.0

const maxSuggestions = 3

const noActionNeeded = "The answer meets the quality bar on every criterion; no action needed."

var reasonTemplates = map[types.CriterionID]map[int][]string{
	types.CriterionAccuracy: {
		1: {"The answer contradicts or omits nearly all key facts of the expected answer.", "Almost none of the expected facts appear in the answer."},
		2: {"Only a few key facts match the expected answer.", "The answer contains several factual gaps compared to the reference."},
		3: {"About half of the key facts are present.", "The answer is partially correct but misses important details."},
		4: {"Most key facts match the expected answer with minor gaps.", "The answer is largely accurate."},
		5: {"All key facts of the expected answer are present.", "The answer is fully consistent with the reference.", "Facts and figures match the expected answer."},
	},
	types.CriterionCompleteness: {
		1: {"The answer covers very little of what was expected."},
		2: {"The answer is noticeably shorter than the expected response and leaves points out."},
		3: {"The main points are covered but some details are missing."},
		4: {"The answer covers nearly everything that was expected."},
		5: {"The answer is complete and covers every expected point.", "Nothing from the reference answer is missing."},
	},
	types.CriterionRelevance: {
		1: {"The answer does not address the question."},
		2: {"The answer is only loosely related to the question."},
		3: {"The answer is related to the question but drifts at times.", "The answer is on topic in general terms."},
		4: {"The answer addresses the question directly."},
		5: {"The answer is fully focused on the question asked."},
	},
	types.CriterionClarity: {
		1: {"The answer is hard to follow; sentences are long and convoluted."},
		2: {"Several sentences are too long to read comfortably."},
		3: {"The answer is understandable but could be more concise."},
		4: {"The answer is clear and easy to read."},
		5: {"The answer is concise and very well structured.", "Short, clear sentences make the answer easy to follow."},
	},
	types.CriterionTone: {
		1: {"The tone is inappropriate for a customer-facing assistant."},
		2: {"The tone is cold and abrupt."},
		3: {"The tone is neutral.", "The answer is polite enough but not warm."},
		4: {"The tone is polite and professional."},
		5: {"The tone is warm and professional."},
	},
	types.CriterionCitations: {
		1: {"No sources are referenced."},
		2: {"The answer does not point to any document or link."},
		3: {"Sources are mentioned only vaguely."},
		4: {"The answer references its sources."},
		5: {"Sources are cited clearly and precisely.", "The answer links or names the documents it relies on."},
	},
	types.CriterionToxicity: {
		1: {"The answer contains offensive language."},
		2: {"The answer contains wording that could be considered harmful."},
		3: {"Some wording is borderline."},
		4: {"No harmful language was detected."},
		5: {"The answer is completely safe."},
	},
	types.CriterionHallucination: {
		1: {"Most of the answer is not supported by the expected answer.", "The answer appears to invent information."},
		2: {"A significant part of the answer is unsupported."},
		3: {"Some claims are not backed by the reference answer."},
		4: {"The answer is mostly grounded in the reference."},
		5: {"The answer stays faithful to the reference information."},
	},
	types.CriterionCoherence: {
		1: {"The answer is incoherent."},
		2: {"The answer jumps between ideas without clear links."},
		3: {"The answer is reasonably coherent."},
		4: {"The answer flows logically."},
		5: {"The answer is logically structured from start to finish."},
	},
}

var suggestionTexts = map[types.CriterionID]string{
	types.CriterionAccuracy:      "Verify facts and figures against the source documents.",
	types.CriterionCompleteness:  "Cover every point of the expected answer.",
	types.CriterionRelevance:     "Keep the answer focused on the question asked.",
	types.CriterionClarity:       "Use shorter, simpler sentences.",
	types.CriterionTone:          "Adopt a friendlier, more courteous tone.",
	types.CriterionCitations:     "Reference the documents or links the answer relies on.",
	types.CriterionToxicity:      "Remove offensive or harmful wording.",
	types.CriterionHallucination: "Avoid stating information that is not in the knowledge base.",
	types.CriterionCoherence:     "Organize the answer so each idea follows from the previous one.",
}

// Reason picks a canned explanation for a score. Unknown criteria or
// buckets fall back to a generic sentence quoting the score.
func (s *HeuristicScorer) Reason(id types.CriterionID, score float64, actual string) string {
	bucket := int(math.Round(score))
	candidates := reasonTemplates[id][bucket]
	if len(candidates) == 0 {
		return fmt.Sprintf("%s scored %.1f out of 5 for an answer of %d characters.", displayName(id), score, len([]rune(actual)))
	}
	idx := int(s.rng.Float64() * float64(len(candidates)))
	if idx >= len(candidates) {
		idx = len(candidates) - 1
	}
	return candidates[idx]
}

// Suggestions returns up to three recommendations for the weakest criteria
func Suggestions(results map[types.CriterionID]types.CriterionScore) string {
	type weak struct {
		id    types.CriterionID
		score float64
	}
	var low []weak
	for id, r := range results {
		if r.Score < suggestionCutoff {
			low = append(low, weak{id, r.Score})
		}
	}
	if len(low) == 0 {
		return noActionNeeded
	}

	sort.Slice(low, func(i, j int) bool {
		if low[i].score != low[j].score {
			return low[i].score < low[j].score
		}
		return low[i].id < low[j].id
	})

	var out []string
	for i, w := range low {
		if i == maxSuggestions {
			break
		}
		text, ok := suggestionTexts[w.id]
		if !ok {
			text = fmt.Sprintf("Improve %s.", strings.ToLower(displayName(w.id)))
		}
		out = append(out, text)
	}
	return strings.Join(out, " ")
}

// OverallAssessment summarizes the overall score in one paragraph
func OverallAssessment(score float64, results map[types.CriterionID]types.CriterionScore, passed bool) string {
	var text string
	switch {
	case score >= 4.5:
		text = "Excellent answer. It is accurate and well presented."
	case score >= 4.0:
		text = "Good answer. It meets expectations with only minor room for improvement."
	case score >= 3.0:
		text = "Acceptable answer that needs improvement."
		if id, ok := worstCriterion(results); ok {
			text += fmt.Sprintf(" The weakest area is %s (%.1f).", strings.ToLower(displayName(id)), results[id].Score)
		}
	default:
		text = "Poor answer. It falls short on several criteria and should be reworked."
	}

	if !passed && score >= 4.0 {
		text += " At least one criterion is below its threshold, so the answer does not pass."
	}
	return text
}

func worstCriterion(results map[types.CriterionID]types.CriterionScore) (types.CriterionID, bool) {
	var worst types.CriterionID
	found := false
	for id, r := range results {
		if !found || r.Score < results[worst].Score || (r.Score == results[worst].Score && id < worst) {
			worst = id
			found = true
		}
	}
	return worst, found
}

func displayName(id types.CriterionID) string {
	if c, ok := criteria.Get(id); ok {
		return c.Name
	}
	if id == "" {
		return "Criterion"
	}
	return strings.ToUpper(string(id[:1])) + string(id[1:])
}
