package storage

import (
	"context"
	"sort"
	"sync"

	"hackernews-report/internal/model"
	"hackernews-report/internal/search"
)

// MemoryStore keeps posts in process memory. It is the default backend for
// tests and for running without external services.
type MemoryStore struct {
	mu    sync.RWMutex
	posts map[int]model.Post
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{posts: make(map[int]model.Post)}
}

func (s *MemoryStore) UpsertPost(_ context.Context, p model.Post) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.posts[p.ID]
	s.posts[p.ID] = p
	return !exists, nil
}

func (s *MemoryStore) GetPost(_ context.Context, id int) (model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[id]
	if !ok {
		return model.Post{}, ErrNotFound
	}
	return p, nil
}

func (s *MemoryStore) FindPosts(_ context.Context, preds []search.Predicate, order model.OrderBy, limit, offset int) ([]model.Post, error) {
	s.mu.RLock()
	matched := s.matchAll(preds)
	s.mu.RUnlock()
	sortPosts(matched, order)
	return window(matched, limit, offset), nil
}

func (s *MemoryStore) CountPosts(_ context.Context, preds []search.Predicate) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, p := range s.posts {
		if search.Match(p, preds) {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) PostsByCategory(_ context.Context, category model.Category, order model.OrderBy) ([]model.Post, error) {
	s.mu.RLock()
	out := make([]model.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if order == model.OrderRelevance {
		order = model.OrderDateDesc
	}
	sortPosts(out, order)
	return out, nil
}

func (s *MemoryStore) CategoryCounts(_ context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[string]int)
	for _, p := range s.posts {
		counts[string(p.Category)]++
	}
	return counts, nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }

// matchAll must be called with the read lock held. Results come back in id
// order so stable sorts and pagination are deterministic across calls.
func (s *MemoryStore) matchAll(preds []search.Predicate) []model.Post {
	out := make([]model.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if search.Match(p, preds) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
