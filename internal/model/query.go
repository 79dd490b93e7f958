package model

import (
	"fmt"
	"strings"
	"time"
)

// OrderBy selects the result ordering of a search.
type OrderBy string

const (
	OrderRelevance OrderBy = "relevance"
	OrderDateDesc  OrderBy = "date_desc"
	OrderDateAsc   OrderBy = "date_asc"
	OrderScoreDesc OrderBy = "score_desc"
	OrderScoreAsc  OrderBy = "score_asc"
)

// Valid reports membership in the closed set of orderings.
func (o OrderBy) Valid() bool {
	switch o {
	case OrderRelevance, OrderDateDesc, OrderDateAsc, OrderScoreDesc, OrderScoreAsc:
		return true
	}
	return false
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// SearchQuery is an immutable description of search intent. Zero-valued
// optional fields impose no constraint. Use NewSearchQuery for defaults.
type SearchQuery struct {
	Text      string     `json:"text,omitempty"`
	Author    string     `json:"author,omitempty"`
	Tags      []string   `json:"tags,omitempty"`
	MinScore  *int       `json:"min_score,omitempty"`
	MaxScore  *int       `json:"max_score,omitempty"`
	StartDate *time.Time `json:"start_date,omitempty"` // calendar day, UTC
	EndDate   *time.Time `json:"end_date,omitempty"`   // calendar day, UTC
	OrderBy   OrderBy    `json:"order_by"`
	Page      int        `json:"page"`
	PageSize  int        `json:"page_size"`
}

// NewSearchQuery returns a query with default ordering and pagination.
func NewSearchQuery() SearchQuery {
	return SearchQuery{
		OrderBy:  OrderRelevance,
		Page:     1,
		PageSize: DefaultPageSize,
	}
}

// HasText reports whether a non-blank text filter is set.
func (q SearchQuery) HasText() bool {
	return strings.TrimSpace(q.Text) != ""
}

// HasCriteria reports whether at least one filter criterion is set.
func (q SearchQuery) HasCriteria() bool {
	return q.Text != "" || q.Author != "" || len(q.Tags) > 0 ||
		q.MinScore != nil || q.MaxScore != nil ||
		q.StartDate != nil || q.EndDate != nil
}

// Validate checks the query's structural rules and returns every violation.
// An empty slice means the query is valid. Rules are evaluated independently
// so callers can report all problems at once.
func (q SearchQuery) Validate() []string {
	var errs []string
	if !q.HasCriteria() {
		errs = append(errs, "at least one search criterion is required")
	}
	if q.Text != "" && strings.TrimSpace(q.Text) == "" {
		errs = append(errs, "search text cannot be blank")
	}
	if q.MinScore != nil && q.MaxScore != nil && *q.MinScore > *q.MaxScore {
		errs = append(errs, "min_score cannot be greater than max_score")
	}
	if q.StartDate != nil && q.EndDate != nil && q.StartDate.After(*q.EndDate) {
		errs = append(errs, "start_date cannot be after end_date")
	}
	if q.Page < 1 {
		errs = append(errs, "page must be at least 1")
	}
	if q.PageSize < 1 || q.PageSize > MaxPageSize {
		errs = append(errs, fmt.Sprintf("page_size must be between 1 and %d", MaxPageSize))
	}
	if !q.OrderBy.Valid() {
		errs = append(errs, fmt.Sprintf("invalid order_by %q", string(q.OrderBy)))
	}
	return errs
}

// SearchResult is one page of matches plus pagination metadata. Constructed
// once per search; never mutated.
type SearchResult struct {
	Posts        []Post      `json:"posts"`
	TotalResults int         `json:"total_results"`
	Page         int         `json:"page"`
	PageSize     int         `json:"page_size"`
	TotalPages   int         `json:"total_pages"`
	Query        SearchQuery `json:"query"`
}
