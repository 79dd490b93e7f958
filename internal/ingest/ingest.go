// Package ingest pulls posts from Hacker News, classifies them, and stores
// them. It is the only write path into the post store.
package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"hackernews-report/internal/hackernews"
	"hackernews-report/internal/model"
	"hackernews-report/internal/storage"
	"hackernews-report/internal/tags"
)

// Result summarizes one fetch-and-store run.
type Result struct {
	NewPosts     int
	UpdatedPosts int
	Errors       []string
}

// Service coordinates the API client, the tag classifier, and the store.
type Service struct {
	Client   *hackernews.Client
	Store    storage.Store
	Taxonomy *tags.Taxonomy
}

func NewService(client *hackernews.Client, store storage.Store, taxonomy *tags.Taxonomy) *Service {
	return &Service{Client: client, Store: store, Taxonomy: taxonomy}
}

// FetchAndStore fetches up to limit posts from the given list, classifies
// their titles, and upserts them. Item-level failures are collected, not
// fatal; the run keeps going with the remaining posts.
func (s *Service) FetchAndStore(ctx context.Context, list string, limit int) (Result, error) {
	var res Result

	ids, err := s.Client.ListIDs(ctx, list, limit)
	if err != nil {
		return res, fmt.Errorf("ingest: fetch %s ids: %w", list, err)
	}
	if len(ids) == 0 {
		slog.Warn("ingest: no ids returned", "list", list)
		return res, nil
	}

	posts, err := s.Client.Items(ctx, ids)
	if err != nil {
		return res, fmt.Errorf("ingest: fetch items: %w", err)
	}
	slog.Info("ingest: fetched items", "list", list, "requested", len(ids), "valid", len(posts))

	for _, p := range posts {
		if !p.IsValid() {
			res.Errors = append(res.Errors, fmt.Sprintf("post %d failed validation", p.ID))
			continue
		}
		// Classification runs once here; searches filter against the stored
		// tag set, never recompute it.
		p.Tags = s.Taxonomy.ExtractTags(p.Title)
		created, err := s.Store.UpsertPost(ctx, p)
		if err != nil {
			slog.Error("ingest: store post failed", "id", p.ID, "error", err)
			res.Errors = append(res.Errors, fmt.Sprintf("store post %d: %v", p.ID, err))
			continue
		}
		if created {
			res.NewPosts++
		} else {
			res.UpdatedPosts++
		}
	}
	slog.Info("ingest: completed", "list", list, "new", res.NewPosts, "updated", res.UpdatedPosts, "errors", len(res.Errors))
	return res, nil
}

// PostsByCategory lists stored posts newest first, optionally filtered.
func (s *Service) PostsByCategory(ctx context.Context, category model.Category) ([]model.Post, error) {
	return s.Store.PostsByCategory(ctx, category, model.OrderDateDesc)
}

// CategoryStats returns post counts per category.
func (s *Service) CategoryStats(ctx context.Context) (map[string]int, error) {
	return s.Store.CategoryCounts(ctx)
}
