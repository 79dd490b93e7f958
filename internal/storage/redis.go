package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"hackernews-report/internal/model"
	"hackernews-report/internal/search"

	"github.com/redis/go-redis/v9"
)

const (
	postKeyPrefix = "posts:item:"
	byDateKey     = "posts:index:by_date"  // ZSET member=id score=created_at
	byScoreKey    = "posts:index:by_score" // ZSET member=id score=score
)

// RedisStore keeps posts as JSON values with sorted-set indexes on creation
// time and score. Predicates are evaluated in process over the candidate set;
// the indexes only narrow the fetch, correctness never depends on them.
type RedisStore struct {
	rdb *redis.Client
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func postKey(id int) string {
	return postKeyPrefix + strconv.Itoa(id)
}

func (s *RedisStore) UpsertPost(ctx context.Context, p model.Post) (bool, error) {
	exists, err := s.rdb.Exists(ctx, postKey(p.ID)).Result()
	if err != nil {
		return false, err
	}
	b, err := json.Marshal(p)
	if err != nil {
		return false, err
	}
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, postKey(p.ID), b, 0)
	pipe.ZAdd(ctx, byDateKey, redis.Z{Score: float64(p.CreatedAt), Member: strconv.Itoa(p.ID)})
	pipe.ZAdd(ctx, byScoreKey, redis.Z{Score: float64(p.Score), Member: strconv.Itoa(p.ID)})
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return exists == 0, nil
}

func (s *RedisStore) GetPost(ctx context.Context, id int) (model.Post, error) {
	var zero model.Post
	b, err := s.rdb.Get(ctx, postKey(id)).Bytes()
	if err == redis.Nil {
		return zero, ErrNotFound
	}
	if err != nil {
		return zero, err
	}
	var p model.Post
	if err := json.Unmarshal(b, &p); err != nil {
		return zero, fmt.Errorf("storage: decode post %d: %w", id, err)
	}
	return p, nil
}

func (s *RedisStore) FindPosts(ctx context.Context, preds []search.Predicate, order model.OrderBy, limit, offset int) ([]model.Post, error) {
	matched, err := s.matchAll(ctx, preds)
	if err != nil {
		return nil, err
	}
	sortPosts(matched, order)
	return window(matched, limit, offset), nil
}

func (s *RedisStore) CountPosts(ctx context.Context, preds []search.Predicate) (int, error) {
	matched, err := s.matchAll(ctx, preds)
	if err != nil {
		return 0, err
	}
	return len(matched), nil
}

func (s *RedisStore) PostsByCategory(ctx context.Context, category model.Category, order model.OrderBy) ([]model.Post, error) {
	all, err := s.matchAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, p := range all {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	if order == model.OrderRelevance {
		order = model.OrderDateDesc
	}
	sortPosts(out, order)
	return out, nil
}

func (s *RedisStore) CategoryCounts(ctx context.Context) (map[string]int, error) {
	all, err := s.matchAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, p := range all {
		counts[string(p.Category)]++
	}
	return counts, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

// matchAll loads candidate posts and filters them with the shared predicate
// matcher. A score predicate narrows candidates through the score index;
// otherwise candidates come from the date index, which holds every post.
func (s *RedisStore) matchAll(ctx context.Context, preds []search.Predicate) ([]model.Post, error) {
	ids, err := s.candidateIDs(ctx, preds)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = postKeyPrefix + id
	}
	vals, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	out := make([]model.Post, 0, len(vals))
	for _, v := range vals {
		str, ok := v.(string)
		if !ok {
			continue // index entry without a value; skip
		}
		var p model.Post
		if err := json.Unmarshal([]byte(str), &p); err != nil {
			return nil, fmt.Errorf("storage: decode post: %w", err)
		}
		if search.Match(p, preds) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *RedisStore) candidateIDs(ctx context.Context, preds []search.Predicate) ([]string, error) {
	for _, pr := range preds {
		if pr.Kind != search.KindScore {
			continue
		}
		min, max := "-inf", "+inf"
		if pr.MinScore != nil {
			min = strconv.Itoa(*pr.MinScore)
		}
		if pr.MaxScore != nil {
			max = strconv.Itoa(*pr.MaxScore)
		}
		return s.rdb.ZRangeByScore(ctx, byScoreKey, &redis.ZRangeBy{Min: min, Max: max}).Result()
	}
	return s.rdb.ZRange(ctx, byDateKey, 0, -1).Result()
}
