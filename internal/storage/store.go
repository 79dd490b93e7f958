// Package storage provides post stores behind a common interface: an
// in-memory store, a Redis-backed store, and a Postgres-backed store.
package storage

import (
	"context"
	"errors"
	"sort"

	"hackernews-report/internal/model"
	"hackernews-report/internal/search"
)

// ErrNotFound is returned when a post id does not exist.
var ErrNotFound = errors.New("storage: post not found")

// Store is the full storage contract: the search.Store read side plus the
// ingestion write side and the category listing used by CLI and web.
type Store interface {
	search.Store

	// UpsertPost inserts or updates a post by id. created reports whether the
	// post was new.
	UpsertPost(ctx context.Context, p model.Post) (created bool, err error)
	// GetPost fetches one post by id; ErrNotFound if absent.
	GetPost(ctx context.Context, id int) (model.Post, error)
	// PostsByCategory lists posts, optionally filtered by category ("" for
	// all), ordered per order (relevance falls back to date desc).
	PostsByCategory(ctx context.Context, category model.Category, order model.OrderBy) ([]model.Post, error)
	// CategoryCounts returns the number of posts per category.
	CategoryCounts(ctx context.Context) (map[string]int, error)
	// Ping verifies connectivity to the backend.
	Ping(ctx context.Context) error
	Close() error
}

// sortPosts orders posts in place for the in-process backends. OrderRelevance
// leaves fetch order untouched; the search service ranks those itself.
func sortPosts(posts []model.Post, order model.OrderBy) {
	switch order {
	case model.OrderDateDesc:
		sort.SliceStable(posts, func(i, j int) bool { return posts[i].CreatedAt > posts[j].CreatedAt })
	case model.OrderDateAsc:
		sort.SliceStable(posts, func(i, j int) bool { return posts[i].CreatedAt < posts[j].CreatedAt })
	case model.OrderScoreDesc:
		sort.SliceStable(posts, func(i, j int) bool { return posts[i].Score > posts[j].Score })
	case model.OrderScoreAsc:
		sort.SliceStable(posts, func(i, j int) bool { return posts[i].Score < posts[j].Score })
	}
}

// window applies limit/offset after ordering. limit == 0 means no limit.
func window(posts []model.Post, limit, offset int) []model.Post {
	if offset > 0 {
		if offset >= len(posts) {
			return nil
		}
		posts = posts[offset:]
	}
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	return posts
}
