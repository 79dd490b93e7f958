package search

import (
	"sort"
	"strings"

	"hackernews-report/internal/model"
)

// RelevanceScore rates how well a title matches the search text.
//
// Full-phrase substring match: +10, plus +5 if the title starts with the
// phrase. Each word found in the title: +1, plus +5 if the title starts with
// it. The sum is divided by len(title)/10 + 1 so short, tightly-matching
// titles beat long ones that match by chance. The weights are kept as-is for
// compatibility with existing rankings.
func RelevanceScore(text, title string) float64 {
	textLower := strings.TrimSpace(strings.ToLower(text))
	titleLower := strings.ToLower(title)

	score := 0.0
	if strings.Contains(titleLower, textLower) {
		score += 10.0
		if strings.HasPrefix(titleLower, textLower) {
			score += 5.0
		}
	}
	for _, word := range strings.Fields(textLower) {
		if strings.Contains(titleLower, word) {
			score += 1.0
			if strings.HasPrefix(titleLower, word) {
				score += 5.0
			}
		}
	}
	return score / (float64(len(title))/10.0 + 1.0)
}

// SortByRelevance orders posts by descending relevance to text. It must be
// given the full filtered set, never a single page: ranking a page-sized
// subset would produce inconsistent ordering across pages. The sort is stable
// on fetch order for equal scores.
func SortByRelevance(posts []model.Post, text string) {
	scores := make([]float64, len(posts))
	for i, p := range posts {
		scores[i] = RelevanceScore(text, p.Title)
	}
	idx := make([]int, len(posts))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})
	sorted := make([]model.Post, len(posts))
	for i, j := range idx {
		sorted[i] = posts[j]
	}
	copy(posts, sorted)
}
