// Package search implements the query validation, predicate compilation,
// relevance ranking, and term highlighting behind post search.
package search

import (
	"strings"
	"time"

	"hackernews-report/internal/model"
)

// Kind identifies one predicate family.
type Kind int

const (
	KindText Kind = iota
	KindAuthor
	KindTags
	KindScore
	KindDate
)

// Predicate is one compiled filter condition. Exactly the fields relevant to
// its Kind are set. Storage backends render predicates into their own query
// mechanism (parameterized SQL, in-process matching); Match is the reference
// in-memory rendering.
type Predicate struct {
	Kind Kind

	// KindText: every word must occur as a case-insensitive substring of the
	// title. Words are stored lowercased.
	Words []string

	// KindAuthor: case-insensitive substring of the author, stored lowercased.
	Substring string

	// KindTags: the post matches if any tag is present in its stored set.
	Tags []string

	// KindScore: inclusive bounds; nil means unbounded on that side.
	MinScore *int
	MaxScore *int

	// KindDate: inclusive unix-second bounds; nil means unbounded.
	MinTime *int64
	MaxTime *int64
}

// Compile turns a validated query into its filter predicates. Absent criteria
// produce no predicate. Count and fetch must both be driven by the same
// compiled set so totals always agree with page contents.
func Compile(q model.SearchQuery) []Predicate {
	var preds []Predicate
	if q.HasText() {
		words := strings.Fields(strings.ToLower(strings.TrimSpace(q.Text)))
		preds = append(preds, Predicate{Kind: KindText, Words: words})
	}
	if q.Author != "" {
		preds = append(preds, Predicate{Kind: KindAuthor, Substring: strings.ToLower(q.Author)})
	}
	if len(q.Tags) > 0 {
		tags := make([]string, len(q.Tags))
		copy(tags, q.Tags)
		preds = append(preds, Predicate{Kind: KindTags, Tags: tags})
	}
	if q.MinScore != nil || q.MaxScore != nil {
		preds = append(preds, Predicate{Kind: KindScore, MinScore: q.MinScore, MaxScore: q.MaxScore})
	}
	if q.StartDate != nil || q.EndDate != nil {
		p := Predicate{Kind: KindDate}
		if q.StartDate != nil {
			ts := startOfDayUTC(*q.StartDate)
			p.MinTime = &ts
		}
		if q.EndDate != nil {
			ts := endOfDayUTC(*q.EndDate)
			p.MaxTime = &ts
		}
		preds = append(preds, p)
	}
	return preds
}

// Match evaluates all predicates against a post (AND across predicates).
func Match(p model.Post, preds []Predicate) bool {
	for _, pr := range preds {
		if !matchOne(p, pr) {
			return false
		}
	}
	return true
}

func matchOne(p model.Post, pr Predicate) bool {
	switch pr.Kind {
	case KindText:
		title := strings.ToLower(p.Title)
		for _, w := range pr.Words {
			if !strings.Contains(title, w) {
				return false
			}
		}
		return true
	case KindAuthor:
		return strings.Contains(strings.ToLower(p.Author), pr.Substring)
	case KindTags:
		for _, t := range pr.Tags {
			if p.HasTag(t) {
				return true
			}
		}
		return false
	case KindScore:
		if pr.MinScore != nil && p.Score < *pr.MinScore {
			return false
		}
		if pr.MaxScore != nil && p.Score > *pr.MaxScore {
			return false
		}
		return true
	case KindDate:
		if pr.MinTime != nil && p.CreatedAt < *pr.MinTime {
			return false
		}
		if pr.MaxTime != nil && p.CreatedAt > *pr.MaxTime {
			return false
		}
		return true
	}
	return false
}

func startOfDayUTC(d time.Time) int64 {
	y, m, day := d.UTC().Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC).Unix()
}

// endOfDayUTC returns 23:59:59 of the day; created_at is integer seconds so
// the inclusive 23:59:59.999999 boundary collapses to the same value.
func endOfDayUTC(d time.Time) int64 {
	y, m, day := d.UTC().Date()
	return time.Date(y, m, day, 23, 59, 59, 0, time.UTC).Unix()
}
