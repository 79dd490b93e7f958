package model

import "time"

// Category groups posts by their Hacker News item type.
type Category string

const (
	CategoryStory Category = "story"
	CategoryJob   Category = "job"
	CategoryAsk   Category = "ask"
	CategoryPoll  Category = "poll"
	CategoryOther Category = "other"
)

// Categorize maps a raw HN item type to a Category. Unknown types become
// CategoryOther.
func Categorize(postType string) Category {
	switch postType {
	case "story":
		return CategoryStory
	case "job":
		return CategoryJob
	case "ask":
		return CategoryAsk
	case "poll":
		return CategoryPoll
	default:
		return CategoryOther
	}
}

// Post represents a single Hacker News post. Posts are created at ingestion
// time and read-only afterwards; Tags are the denormalized classifier output.
type Post struct {
	ID        int      `json:"id"`
	Title     string   `json:"title"`
	Author    string   `json:"author"`
	Score     int      `json:"score"`
	URL       string   `json:"url,omitempty"`
	CreatedAt int64    `json:"created_at"` // unix seconds
	Type      string   `json:"type"`
	Category  Category `json:"category"`
	FetchedAt int64    `json:"fetched_at"` // unix seconds
	Tags      []string `json:"tags"`
}

// IsValid reports whether the post carries all required fields.
func (p Post) IsValid() bool {
	if p.ID <= 0 {
		return false
	}
	if p.Title == "" || p.Author == "" || p.Type == "" {
		return false
	}
	if p.Score < 0 {
		return false
	}
	if p.CreatedAt <= 0 || p.FetchedAt <= 0 {
		return false
	}
	return true
}

// Created returns the creation time in UTC.
func (p Post) Created() time.Time {
	return time.Unix(p.CreatedAt, 0).UTC()
}

// HasTag reports whether tag is in the post's stored tag set.
func (p Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
