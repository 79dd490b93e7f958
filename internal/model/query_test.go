package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func datePtr(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestNewSearchQueryDefaults(t *testing.T) {
	q := NewSearchQuery()
	assert.Equal(t, OrderRelevance, q.OrderBy)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, DefaultPageSize, q.PageSize)
}

func TestValidateOK(t *testing.T) {
	q := NewSearchQuery()
	q.Text = "go generics"
	require.Empty(t, q.Validate())

	q = NewSearchQuery()
	q.MinScore = intPtr(10)
	require.Empty(t, q.Validate())
}

func TestValidateNoCriteria(t *testing.T) {
	q := NewSearchQuery()
	errs := q.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "at least one search criterion is required", errs[0])
}

func TestValidateBlankText(t *testing.T) {
	q := NewSearchQuery()
	q.Text = "   "
	errs := q.Validate()
	assert.Contains(t, errs, "search text cannot be blank")
}

func TestValidateScoreRange(t *testing.T) {
	q := NewSearchQuery()
	q.MinScore = intPtr(100)
	q.MaxScore = intPtr(50)
	assert.Contains(t, q.Validate(), "min_score cannot be greater than max_score")

	// Equal bounds are fine.
	q.MaxScore = intPtr(100)
	assert.Empty(t, q.Validate())
}

func TestValidateDateRange(t *testing.T) {
	q := NewSearchQuery()
	q.StartDate = datePtr("2024-06-01")
	q.EndDate = datePtr("2024-01-01")
	assert.Contains(t, q.Validate(), "start_date cannot be after end_date")
}

func TestValidatePagination(t *testing.T) {
	q := NewSearchQuery()
	q.Text = "go"
	q.Page = 0
	assert.Contains(t, q.Validate(), "page must be at least 1")

	q.Page = 1
	q.PageSize = 0
	assert.Contains(t, q.Validate(), "page_size must be between 1 and 100")

	q.PageSize = MaxPageSize + 1
	assert.Contains(t, q.Validate(), "page_size must be between 1 and 100")

	q.PageSize = MaxPageSize
	assert.Empty(t, q.Validate())
}

func TestValidateOrderBy(t *testing.T) {
	q := NewSearchQuery()
	q.Text = "go"
	q.OrderBy = "points_desc"
	errs := q.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, `invalid order_by "points_desc"`, errs[0])
}

func TestValidateReturnsAllViolations(t *testing.T) {
	q := SearchQuery{
		MinScore: intPtr(10),
		MaxScore: intPtr(5),
		OrderBy:  "bogus",
		Page:     0,
		PageSize: 500,
	}
	errs := q.Validate()
	assert.Len(t, errs, 4)
}

func TestHasTextAndCriteria(t *testing.T) {
	q := NewSearchQuery()
	assert.False(t, q.HasText())
	assert.False(t, q.HasCriteria())

	q.Text = "  "
	assert.False(t, q.HasText())
	assert.True(t, q.HasCriteria())

	q.Text = "zig"
	assert.True(t, q.HasText())
}
