package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, similarity("python", "Python"), 1e-9)
	assert.InDelta(t, 1.0, similarity("", ""), 1e-9)

	// One edit over six characters.
	assert.InDelta(t, 1.0-1.0/6.0, similarity("pythn", "python"), 1e-9)

	assert.Less(t, similarity("go", "javascript"), 0.3)
}

func TestSuggestSimilarOrdersByRatio(t *testing.T) {
	candidates := []string{"Python", "Java", "JavaScript", "Go", "Rust"}
	got := SuggestSimilar("pythn", candidates)
	require.NotEmpty(t, got)
	assert.Equal(t, "Python", got[0])
}

func TestSuggestSimilarCutoff(t *testing.T) {
	candidates := []string{"Python", "Java", "Go"}
	assert.Empty(t, SuggestSimilar("qqqqqqqq", candidates))
}

func TestSuggestSimilarCap(t *testing.T) {
	candidates := []string{"tag1", "tag2", "tag3", "tag4", "tag5", "tag6", "tag7"}
	got := SuggestSimilar("tag0", candidates)
	assert.Len(t, got, 5)
}
