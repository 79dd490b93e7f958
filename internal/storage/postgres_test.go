package storage

import (
	"testing"

	"hackernews-report/internal/model"
	"hackernews-report/internal/search"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWhereEmpty(t *testing.T) {
	where, args := renderWhere(nil)
	assert.Equal(t, "TRUE", where)
	assert.Empty(t, args)
}

func TestRenderWhereText(t *testing.T) {
	preds := search.Compile(model.SearchQuery{Text: "go generics"})
	where, args := renderWhere(preds)
	assert.Equal(t, "LOWER(title) LIKE $1 AND LOWER(title) LIKE $2", where)
	require.Len(t, args, 2)
	assert.Equal(t, "%go%", args[0])
	assert.Equal(t, "%generics%", args[1])
}

func TestRenderWhereAllPredicates(t *testing.T) {
	min, max := 10, 500
	preds := search.Compile(model.SearchQuery{
		Text:     "rust",
		Author:   "Alice",
		Tags:     []string{"Rust", "Security"},
		MinScore: &min,
		MaxScore: &max,
	})
	where, args := renderWhere(preds)
	assert.Equal(t,
		"LOWER(title) LIKE $1 AND LOWER(author) LIKE $2 AND tags && $3 AND score >= $4 AND score <= $5",
		where)
	require.Len(t, args, 5)
	assert.Equal(t, "%rust%", args[0])
	assert.Equal(t, "%alice%", args[1])
	assert.Equal(t, pq.Array([]string{"Rust", "Security"}), args[2])
	assert.Equal(t, 10, args[3])
	assert.Equal(t, 500, args[4])
}

func TestRenderWhereDateBounds(t *testing.T) {
	var minT, maxT int64 = 1700000000, 1700086399
	preds := []search.Predicate{{Kind: search.KindDate, MinTime: &minT, MaxTime: &maxT}}
	where, args := renderWhere(preds)
	assert.Equal(t, "created_at >= $1 AND created_at <= $2", where)
	assert.Equal(t, []any{minT, maxT}, args)
}

func TestOrderClause(t *testing.T) {
	assert.Equal(t, " ORDER BY created_at DESC", orderClause(model.OrderDateDesc))
	assert.Equal(t, " ORDER BY created_at ASC", orderClause(model.OrderDateAsc))
	assert.Equal(t, " ORDER BY score DESC", orderClause(model.OrderScoreDesc))
	assert.Equal(t, " ORDER BY score ASC", orderClause(model.OrderScoreAsc))
	assert.Equal(t, " ORDER BY id", orderClause(model.OrderRelevance))
}
