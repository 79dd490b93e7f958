package search

import (
	"context"
	"fmt"
	"strings"

	"hackernews-report/internal/model"
	"hackernews-report/internal/tags"
)

// Store is the read-only storage contract the search service needs. Both
// accessors must honor the same predicate semantics; Count is computed by the
// backend, never derived from a fetched page.
type Store interface {
	// FindPosts returns posts matching all predicates. limit == 0 means no
	// limit. order selects the backend ordering; OrderRelevance means natural
	// fetch order (ranking happens in the service).
	FindPosts(ctx context.Context, preds []Predicate, order model.OrderBy, limit, offset int) ([]model.Post, error)
	// CountPosts returns the total number of posts matching all predicates.
	CountPosts(ctx context.Context, preds []Predicate) (int, error)
}

// InvalidQueryError carries every validation failure of a rejected query.
type InvalidQueryError struct {
	Errors []string
}

func (e *InvalidQueryError) Error() string {
	return "invalid search query: " + strings.Join(e.Errors, ", ")
}

// Service is the search facade: it validates queries, compiles predicates,
// executes count and fetch against storage, and applies relevance ranking.
// It is stateless between calls and safe for concurrent use.
type Service struct {
	store    Store
	taxonomy *tags.Taxonomy
}

// NewService creates a search service over the given store and taxonomy.
func NewService(store Store, taxonomy *tags.Taxonomy) *Service {
	return &Service{store: store, taxonomy: taxonomy}
}

// ValidateQuery returns every problem with the query: the structural rules
// plus tag existence against the taxonomy, with "did you mean" suggestions
// for unknown tags. An empty slice means the query is valid.
func (s *Service) ValidateQuery(q model.SearchQuery) []string {
	errs := q.Validate()
	for _, tag := range q.Tags {
		if s.taxonomy.Has(tag) {
			continue
		}
		if sugg := s.SuggestTags(tag); len(sugg) > 0 {
			if len(sugg) > 3 {
				sugg = sugg[:3]
			}
			errs = append(errs, fmt.Sprintf("invalid tag %q, did you mean: %s?", tag, strings.Join(sugg, ", ")))
		} else {
			errs = append(errs, fmt.Sprintf("invalid tag %q", tag))
		}
	}
	return errs
}

// SearchPosts runs a validated search and returns one page of results with
// pagination metadata. It fails with *InvalidQueryError before touching
// storage when validation finds problems; storage errors propagate as-is.
//
// The count and the fetch run as two reads against the same predicates.
// Concurrent ingestion may commit between them, so the pair can observe
// slightly different snapshots; that window is accepted.
func (s *Service) SearchPosts(ctx context.Context, q model.SearchQuery) (model.SearchResult, error) {
	var zero model.SearchResult
	if errs := s.ValidateQuery(q); len(errs) > 0 {
		return zero, &InvalidQueryError{Errors: errs}
	}

	preds := Compile(q)

	total, err := s.store.CountPosts(ctx, preds)
	if err != nil {
		return zero, fmt.Errorf("search: count posts: %w", err)
	}
	totalPages := 0
	if total > 0 {
		totalPages = (total + q.PageSize - 1) / q.PageSize
	}
	result := model.SearchResult{
		TotalResults: total,
		Page:         q.Page,
		PageSize:     q.PageSize,
		TotalPages:   totalPages,
		Query:        q,
	}
	// Pages past the end are empty, not an error.
	if totalPages > 0 && q.Page > totalPages {
		return result, nil
	}
	if total == 0 {
		return result, nil
	}

	offset := (q.Page - 1) * q.PageSize
	if q.OrderBy == model.OrderRelevance && q.HasText() {
		// Relevance ranking needs the full filtered set; paginating first
		// would rank each page in isolation.
		posts, err := s.store.FindPosts(ctx, preds, model.OrderRelevance, 0, 0)
		if err != nil {
			return zero, fmt.Errorf("search: fetch posts: %w", err)
		}
		SortByRelevance(posts, q.Text)
		result.Posts = pageSlice(posts, offset, q.PageSize)
		return result, nil
	}

	order := q.OrderBy
	if order == model.OrderRelevance {
		// No text to rank against: fall back to newest first.
		order = model.OrderDateDesc
	}
	posts, err := s.store.FindPosts(ctx, preds, order, q.PageSize, offset)
	if err != nil {
		return zero, fmt.Errorf("search: fetch posts: %w", err)
	}
	result.Posts = posts
	return result, nil
}

// AvailableTags returns the full sorted taxonomy for UI population.
func (s *Service) AvailableTags() []string {
	return s.taxonomy.AllTags()
}

// SuggestTags returns up to five tags similar to partial, most similar first.
func (s *Service) SuggestTags(partial string) []string {
	return SuggestSimilar(partial, s.taxonomy.AllTags())
}

// HighlightTerms wraps occurrences of terms in text with markers.
func (s *Service) HighlightTerms(text string, terms []string) string {
	return Highlight(text, terms)
}

// PriorityKeywords exposes the taxonomy's priority-topic keywords for
// highlighting regardless of the active search text.
func (s *Service) PriorityKeywords() []string {
	return s.taxonomy.PriorityKeywords()
}

func pageSlice(posts []model.Post, offset, size int) []model.Post {
	if offset >= len(posts) {
		return nil
	}
	end := offset + size
	if end > len(posts) {
		end = len(posts)
	}
	return posts[offset:end]
}
