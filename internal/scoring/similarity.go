package scoring

import (
	"strings"
	"unicode/utf8"
)

// minTokenLen drops short words such as articles before comparison
const minTokenLen = 3

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		if utf8.RuneCountInString(tok) > minTokenLen {
			set[tok] = struct{}{}
		}
	}
	return set
}

// Similarity is the Jaccard index of the two strings' word sets.
// Words are case-folded, split on whitespace, and kept only when longer
// than three characters. Punctuation stays attached to words.
func Similarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)

	intersection := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
