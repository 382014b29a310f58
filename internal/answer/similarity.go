package answer

import (
	"github.com/pmezard/go-difflib/difflib"
)

const (
	staffCutoff = 0.7
	matchCutoff = 0.6
)

// similarity scores query against candidate as 2*M/T over characters, where
// M is the number of matched characters and T the total length of both.
// Two empty strings are not considered similar.
func similarity(query, candidate string) float64 {
	if query == "" && candidate == "" {
		return 0
	}
	return difflib.NewMatcher(chars(candidate), chars(query)).Ratio()
}

func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

func closeTo(query, candidate string, cutoff float64) bool {
	if query == "" || candidate == "" {
		return false
	}
	return similarity(query, candidate) >= cutoff
}

// anyClose reports whether word is close to any candidate.
func anyClose(word string, candidates []string, cutoff float64) bool {
	for _, c := range candidates {
		if closeTo(word, c, cutoff) {
			return true
		}
	}
	return false
}
