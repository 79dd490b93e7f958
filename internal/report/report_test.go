package report

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"hackernews-report/internal/model"
	"hackernews-report/internal/tags"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportPosts() []model.Post {
	return []model.Post{
		{
			ID: 1, Title: "OpenAI announces a new model", Author: "alice", Score: 300,
			URL: "https://example.com/a", CreatedAt: 1700000000, Type: "story",
			Category: model.CategoryStory, FetchedAt: 1700000100, Tags: []string{"OpenAI"},
		},
		{
			ID: 2, Title: "Rust 1.80 released", Author: "bob", Score: 100,
			CreatedAt: 1700010000, Type: "story",
			Category: model.CategoryStory, FetchedAt: 1700010100, Tags: []string{"Rust"},
		},
		{
			ID: 3, Title: "Hiring backend engineers", Author: "carol", Score: 0,
			CreatedAt: 1700020000, Type: "job",
			Category: model.CategoryJob, FetchedAt: 1700020100,
		},
	}
}

func TestParseFormat(t *testing.T) {
	for raw, want := range map[string]Format{
		"":         FormatMarkdown,
		"md":       FormatMarkdown,
		"Markdown": FormatMarkdown,
		"HTML":     FormatHTML,
		"csv":      FormatCSV,
		"text":     FormatText,
		"json":     FormatJSON,
	} {
		got, err := ParseFormat(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
	_, err := ParseFormat("pdf")
	assert.Error(t, err)
}

func TestComputeStats(t *testing.T) {
	st := computeStats(reportPosts())
	assert.Equal(t, 3, st.TotalPosts)
	assert.Equal(t, 400, st.TotalScore)
	assert.InDelta(t, 400.0/3.0, st.AvgScore, 1e-9)
	assert.Equal(t, map[string]int{"story": 2, "job": 1}, st.Categories)
	require.NotEmpty(t, st.TopTags)
	assert.NotEmpty(t, st.GeneratedAt)
}

func TestComputeStatsEmpty(t *testing.T) {
	st := computeStats(nil)
	assert.Zero(t, st.TotalPosts)
	assert.Zero(t, st.AvgScore)
}

func TestTopN(t *testing.T) {
	counts := map[string]int{"a": 3, "b": 3, "c": 1, "d": 5}
	got := topN(counts, 2)
	require.Len(t, got, 2)
	assert.Equal(t, NameCount{Name: "d", Count: 5}, got[0])
	// Ties break alphabetically.
	assert.Equal(t, NameCount{Name: "a", Count: 3}, got[1])
}

func TestGenerateMarkdown(t *testing.T) {
	svc := NewService("Weekly Digest", tags.Default(), nil)
	out, err := svc.Generate(context.Background(), reportPosts(), FormatMarkdown)
	require.NoError(t, err)

	assert.Contains(t, out, "# Weekly Digest")
	assert.Contains(t, out, "Posts: 3")
	// Priority keyword emphasis survives into markdown.
	assert.Contains(t, out, "**OpenAI** announces")
	assert.Contains(t, out, "https://example.com/a")
	assert.Contains(t, out, "300 points by alice")
}

func TestGenerateHTMLConvertsMarkers(t *testing.T) {
	svc := NewService("Weekly Digest", tags.Default(), nil)
	out, err := svc.Generate(context.Background(), reportPosts(), FormatHTML)
	require.NoError(t, err)

	assert.Contains(t, out, "<strong>OpenAI</strong> announces")
	assert.NotContains(t, out, "**OpenAI**")
	assert.Contains(t, out, "<title>Weekly Digest</title>")
}

func TestGenerateCSV(t *testing.T) {
	svc := NewService("Digest", tags.Default(), nil)
	out, err := svc.Generate(context.Background(), reportPosts(), FormatCSV)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4) // header + 3 posts
	assert.Equal(t, "id", records[0][0])
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "OpenAI announces a new model", records[1][1])
}

func TestGenerateJSON(t *testing.T) {
	svc := NewService("Digest", tags.Default(), nil)
	out, err := svc.Generate(context.Background(), reportPosts(), FormatJSON)
	require.NoError(t, err)

	var data Data
	require.NoError(t, json.Unmarshal([]byte(out), &data))
	assert.Equal(t, "Digest", data.Title)
	assert.Equal(t, 3, data.Stats.TotalPosts)
	require.Len(t, data.Items, 3)
}

func TestGenerateText(t *testing.T) {
	svc := NewService("Digest", tags.Default(), nil)
	out, err := svc.Generate(context.Background(), reportPosts(), FormatText)
	require.NoError(t, err)
	assert.Contains(t, out, "Digest")
	assert.Contains(t, out, "Rust 1.80 released")
}

type fakeSummarizer struct{ text string }

func (f fakeSummarizer) SummarizePosts(context.Context, []model.Post) (string, error) {
	return f.text, nil
}

func TestGenerateWithOverview(t *testing.T) {
	svc := NewService("Digest", tags.Default(), fakeSummarizer{text: "A quiet week."})
	out, err := svc.Generate(context.Background(), reportPosts(), FormatMarkdown)
	require.NoError(t, err)
	assert.Contains(t, out, "## Overview")
	assert.Contains(t, out, "A quiet week.")
}

func TestMarkersToHTML(t *testing.T) {
	assert.Equal(t, "<strong>Go</strong> 1.22", markersToHTML("**Go** 1.22"))
	assert.Equal(t, "a &lt;b&gt;", markersToHTML("a <b>"))
	// Unpaired trailing marker stays literal.
	assert.Equal(t, "broken **tail", markersToHTML("broken **tail"))
}
