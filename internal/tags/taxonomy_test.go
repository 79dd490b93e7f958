package tags

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTagsBasic(t *testing.T) {
	tax := Default()

	got := tax.ExtractTags("OpenAI releases new ChatGPT model")
	assert.Contains(t, got, "OpenAI")

	got = tax.ExtractTags("Gemini 2.0 benchmark results")
	assert.Contains(t, got, "Google AI")
	assert.NotContains(t, got, "Go")
}

func TestExtractTagsWordBoundaries(t *testing.T) {
	tax := Default()

	// "go " must not fire inside "google".
	got := tax.ExtractTags("Google updates search ranking")
	assert.NotContains(t, got, "Go")

	got = tax.ExtractTags("Go 1.22 released with new routing")
	assert.Contains(t, got, "Go")

	got = tax.ExtractTags("Golang generics in practice")
	assert.Contains(t, got, "Go")
}

func TestExtractTagsDefinitionOrder(t *testing.T) {
	tax := Default()

	// Priority tags are defined before language tags, so OpenAI precedes
	// Python in the result.
	got := tax.ExtractTags("ChatGPT plugin written in Python")
	require.GreaterOrEqual(t, len(got), 2)
	idx := func(name string) int {
		for i, n := range got {
			if n == name {
				return i
			}
		}
		return -1
	}
	assert.Less(t, idx("OpenAI"), idx("Python"))
}

func TestExtractTagsCap(t *testing.T) {
	tax := Default()
	title := "OpenAI Claude Gemini Grok Mistral LLM agents RAG NLP Python"
	got := tax.ExtractTags(title)
	assert.Len(t, got, MaxTagsPerTitle)
}

func TestExtractTagsEmpty(t *testing.T) {
	tax := Default()
	assert.Nil(t, tax.ExtractTags(""))
	assert.Nil(t, tax.ExtractTags("   "))
	assert.Empty(t, tax.ExtractTags("zzz qqq xxx"))
}

func TestAllTagsSorted(t *testing.T) {
	tax := Default()
	all := tax.AllTags()
	require.NotEmpty(t, all)
	assert.True(t, sort.StringsAreSorted(all))
	assert.Contains(t, all, "Go")
	assert.Contains(t, all, "Security")
}

func TestHasAndKeywords(t *testing.T) {
	tax := Default()
	assert.True(t, tax.Has("Python"))
	assert.False(t, tax.Has("python"))
	assert.NotEmpty(t, tax.Keywords("Python"))
	assert.Nil(t, tax.Keywords("NoSuchTag"))
}

func TestPrioritySubset(t *testing.T) {
	tax := Default()
	prio := tax.PriorityTags()
	require.NotEmpty(t, prio)
	assert.Contains(t, prio, "OpenAI")
	assert.NotContains(t, prio, "Python")

	kws := tax.PriorityKeywords()
	assert.Contains(t, kws, "chatgpt")
	assert.NotContains(t, kws, "python")
}

func TestParseRejectsBadInput(t *testing.T) {
	_, err := Parse([]byte("tags: []"))
	assert.Error(t, err)

	_, err = Parse([]byte("tags:\n  - name: A\n  - name: A\n"))
	assert.Error(t, err)
}
