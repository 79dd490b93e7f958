// Package report renders stored posts into shareable report documents.
package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	_ "embed"
	"fmt"
	"html"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"time"

	"hackernews-report/internal/ai"
	"hackernews-report/internal/model"
	"hackernews-report/internal/search"
	"hackernews-report/internal/tags"
)

// Format selects the report output format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatCSV      Format = "csv"
	FormatText     Format = "txt"
	FormatJSON     Format = "json"
)

// ParseFormat normalizes a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	case "csv":
		return FormatCSV, nil
	case "txt", "text", "plain":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("report: unknown format %q", s)
	}
}

// Extension returns the file extension for the format, without the dot.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return "md"
	case FormatHTML:
		return "html"
	case FormatCSV:
		return "csv"
	case FormatText:
		return "txt"
	case FormatJSON:
		return "json"
	}
	return "txt"
}

// NameCount is a name with an occurrence count, used for top-N listings.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Stats aggregates the posts included in a report.
type Stats struct {
	TotalPosts  int            `json:"total_posts"`
	TotalScore  int            `json:"total_score"`
	AvgScore    float64        `json:"avg_score"`
	TopTags     []NameCount    `json:"top_tags"`
	TopAuthors  []NameCount    `json:"top_authors"`
	Categories  map[string]int `json:"categories"`
	GeneratedAt string         `json:"generated_at"`
}

// Item is one post prepared for rendering. Title has priority keywords
// wrapped in ** markers; HTMLTitle has the same emphasis as <strong> spans.
type Item struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	HTMLTitle string `json:"-"`
	Author    string `json:"author"`
	Score     int    `json:"score"`
	URL       string `json:"url,omitempty"`
	Category  string `json:"category"`
	Tags      string `json:"tags,omitempty"`
	Created   string `json:"created"`
}

// Data is the full payload handed to the templates.
type Data struct {
	Title    string `json:"title"`
	Overview string `json:"overview,omitempty"`
	Stats    Stats  `json:"stats"`
	Items    []Item `json:"posts"`
}

// Service builds reports from posts. Summarizer is optional; when nil the
// report carries no overview section.
type Service struct {
	Title      string
	Taxonomy   *tags.Taxonomy
	Summarizer ai.Summarizer
}

func NewService(title string, taxonomy *tags.Taxonomy, summarizer ai.Summarizer) *Service {
	if strings.TrimSpace(title) == "" {
		title = "Hacker News Report"
	}
	return &Service{Title: title, Taxonomy: taxonomy, Summarizer: summarizer}
}

//go:embed report.md.tmpl
var markdownTpl string

//go:embed report.html.tmpl
var htmlTpl string

//go:embed report.txt.tmpl
var textTpl string

var (
	compiledMarkdown = template.Must(template.New("report-md").Parse(markdownTpl))
	compiledHTML     = template.Must(template.New("report-html").Parse(htmlTpl))
	compiledText     = template.Must(template.New("report-txt").Parse(textTpl))
)

// Generate renders posts into the requested format. Posts are included in
// the order given; callers decide the ordering.
func (s *Service) Generate(ctx context.Context, posts []model.Post, format Format) (string, error) {
	data := s.buildData(ctx, posts)
	switch format {
	case FormatMarkdown:
		return render(compiledMarkdown, data)
	case FormatHTML:
		return render(compiledHTML, data)
	case FormatText:
		return render(compiledText, data)
	case FormatCSV:
		return renderCSV(posts)
	case FormatJSON:
		b, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return "", fmt.Errorf("report: marshal json: %w", err)
		}
		return string(b) + "\n", nil
	default:
		return "", fmt.Errorf("report: unknown format %q", format)
	}
}

func (s *Service) buildData(ctx context.Context, posts []model.Post) Data {
	var keywords []string
	if s.Taxonomy != nil {
		keywords = s.Taxonomy.PriorityKeywords()
	}
	items := make([]Item, 0, len(posts))
	for _, p := range posts {
		title := search.Highlight(p.Title, keywords)
		items = append(items, Item{
			ID:        p.ID,
			Title:     title,
			HTMLTitle: markersToHTML(title),
			Author:    p.Author,
			Score:     p.Score,
			URL:       p.URL,
			Category:  string(p.Category),
			Tags:      strings.Join(p.Tags, ", "),
			Created:   p.Created().Format("2006-01-02 15:04"),
		})
	}
	data := Data{
		Title: s.Title,
		Stats: computeStats(posts),
		Items: items,
	}
	if s.Summarizer != nil && len(posts) > 0 {
		if overview, err := s.Summarizer.SummarizePosts(ctx, posts); err == nil {
			data.Overview = overview
		}
	}
	return data
}

func computeStats(posts []model.Post) Stats {
	st := Stats{
		Categories:  map[string]int{},
		GeneratedAt: time.Now().UTC().Format("2006-01-02 15:04 UTC"),
	}
	tagCounts := map[string]int{}
	authorCounts := map[string]int{}
	for _, p := range posts {
		st.TotalPosts++
		st.TotalScore += p.Score
		st.Categories[string(p.Category)]++
		authorCounts[p.Author]++
		for _, t := range p.Tags {
			tagCounts[t]++
		}
	}
	if st.TotalPosts > 0 {
		st.AvgScore = float64(st.TotalScore) / float64(st.TotalPosts)
	}
	st.TopTags = topN(tagCounts, 5)
	st.TopAuthors = topN(authorCounts, 5)
	return st
}

// topN returns the n highest counts, ties broken alphabetically.
func topN(counts map[string]int, n int) []NameCount {
	out := make([]NameCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, NameCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// markersToHTML converts ** emphasis pairs into <strong> spans, escaping
// everything else. An unpaired trailing marker is left as literal text.
func markersToHTML(s string) string {
	parts := strings.Split(s, search.Marker)
	var b strings.Builder
	for i, part := range parts {
		if i > 0 {
			if i%2 == 1 && i < len(parts)-1 {
				b.WriteString("<strong>")
			} else if i%2 == 0 {
				b.WriteString("</strong>")
			} else {
				b.WriteString(html.EscapeString(search.Marker))
			}
		}
		b.WriteString(html.EscapeString(part))
	}
	return b.String()
}

func render(tpl *template.Template, data Data) (string, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("report: render: %w", err)
	}
	return buf.String(), nil
}

func renderCSV(posts []model.Post) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"id", "title", "author", "score", "url", "category", "tags", "created"}); err != nil {
		return "", fmt.Errorf("report: write csv header: %w", err)
	}
	for _, p := range posts {
		rec := []string{
			strconv.Itoa(p.ID),
			p.Title,
			p.Author,
			strconv.Itoa(p.Score),
			p.URL,
			string(p.Category),
			strings.Join(p.Tags, ", "),
			p.Created().Format(time.RFC3339),
		}
		if err := w.Write(rec); err != nil {
			return "", fmt.Errorf("report: write csv record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("report: flush csv: %w", err)
	}
	return buf.String(), nil
}
