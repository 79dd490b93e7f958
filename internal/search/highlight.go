package search

import (
	"sort"
	"strings"
)

// Marker wraps highlighted spans in rendered output.
const Marker = "**"

// Highlight wraps every case-insensitive, non-overlapping occurrence of any
// term in marker pairs, preserving the original casing of the matched span.
//
// Terms are processed longest-first so "testing" wins over its prefix "test"
// instead of producing a broken "**test**ing". Text inside an existing marker
// pair is never re-wrapped, which makes it safe to highlight priority terms
// on top of already-highlighted search terms. Output always has balanced,
// non-overlapping marker pairs.
func Highlight(text string, terms []string) string {
	if text == "" || len(terms) == 0 {
		return text
	}
	cleaned := make([]string, 0, len(terms))
	for _, t := range terms {
		if strings.TrimSpace(t) != "" {
			cleaned = append(cleaned, t)
		}
	}
	if len(cleaned) == 0 {
		return text
	}
	sort.SliceStable(cleaned, func(i, j int) bool {
		return len(cleaned[i]) > len(cleaned[j])
	})
	for _, term := range cleaned {
		text = highlightTerm(text, term)
	}
	return text
}

func highlightTerm(text, term string) string {
	runes := []rune(text)
	termRunes := []rune(term)
	n, tlen := len(runes), len(termRunes)
	if tlen == 0 || tlen > n {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + 16)
	inside := false // parity of markers seen so far
	for i := 0; i < n; {
		if runes[i] == '*' && i+1 < n && runes[i+1] == '*' {
			b.WriteString(Marker)
			inside = !inside
			i += 2
			continue
		}
		if !inside && i+tlen <= n && strings.EqualFold(string(runes[i:i+tlen]), term) {
			b.WriteString(Marker)
			b.WriteString(string(runes[i : i+tlen]))
			b.WriteString(Marker)
			i += tlen
			continue
		}
		b.WriteRune(runes[i])
		i++
	}
	return b.String()
}
