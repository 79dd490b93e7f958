package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	assert.Equal(t, CategoryStory, Categorize("story"))
	assert.Equal(t, CategoryJob, Categorize("job"))
	assert.Equal(t, CategoryAsk, Categorize("ask"))
	assert.Equal(t, CategoryPoll, Categorize("poll"))
	assert.Equal(t, CategoryOther, Categorize("comment"))
	assert.Equal(t, CategoryOther, Categorize(""))
}

func validPost() Post {
	return Post{
		ID:        42,
		Title:     "Show HN: something",
		Author:    "pg",
		Score:     10,
		CreatedAt: 1700000000,
		Type:      "story",
		Category:  CategoryStory,
		FetchedAt: 1700000100,
	}
}

func TestPostIsValid(t *testing.T) {
	assert.True(t, validPost().IsValid())

	p := validPost()
	p.ID = 0
	assert.False(t, p.IsValid())

	p = validPost()
	p.Title = ""
	assert.False(t, p.IsValid())

	p = validPost()
	p.Score = -1
	assert.False(t, p.IsValid())

	p = validPost()
	p.CreatedAt = 0
	assert.False(t, p.IsValid())

	// Zero score is legal.
	p = validPost()
	p.Score = 0
	assert.True(t, p.IsValid())
}

func TestPostCreatedUTC(t *testing.T) {
	p := validPost()
	created := p.Created()
	assert.Equal(t, "UTC", created.Location().String())
	assert.Equal(t, int64(1700000000), created.Unix())
}

func TestPostHasTag(t *testing.T) {
	p := validPost()
	p.Tags = []string{"Go", "Database"}
	assert.True(t, p.HasTag("Go"))
	assert.False(t, p.HasTag("go"))
	assert.False(t, p.HasTag("Rust"))
}
