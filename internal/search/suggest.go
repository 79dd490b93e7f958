package search

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

const (
	// suggestCutoff is the minimum similarity ratio for a suggestion.
	suggestCutoff = 0.6
	// maxSuggestions caps how many suggestions are returned.
	maxSuggestions = 5
)

// similarity returns a ratio in [0,1] between two strings, case-insensitive.
func similarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == b {
		return 1
	}
	la, lb := len([]rune(a)), len([]rune(b))
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 1
	}
	d := levenshtein.ComputeDistance(a, b)
	return 1 - float64(d)/float64(longest)
}

// SuggestSimilar returns up to five candidates at >= 60% similarity to
// partial, most similar first.
func SuggestSimilar(partial string, candidates []string) []string {
	type scored struct {
		name  string
		ratio float64
	}
	var hits []scored
	for _, c := range candidates {
		if r := similarity(partial, c); r >= suggestCutoff {
			hits = append(hits, scored{name: c, ratio: r})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].ratio > hits[j].ratio
	})
	if len(hits) > maxSuggestions {
		hits = hits[:maxSuggestions]
	}
	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.name)
	}
	return out
}
