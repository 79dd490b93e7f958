// Package hackernews is a minimal Hacker News API client.
// Docs: https://github.com/HackerNews/API
package hackernews

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hackernews-report/internal/model"
)

const (
	defaultBaseAPI = "https://hacker-news.firebaseio.com/v0"
	maxAttempts    = 3
	baseDelay      = time.Second
	maxDelay       = 10 * time.Second
)

// Client fetches HN items with retry on transient failures: network errors,
// 5xx responses and 429 rate limits are retried with exponential backoff
// (1s, 2s, 4s, capped); other 4xx responses fail immediately.
type Client struct {
	baseAPI string
	client  *http.Client
}

// NewClient creates a client. baseAPI defaults to the official v0 endpoint.
func NewClient(baseAPI string) *Client {
	if strings.TrimSpace(baseAPI) == "" {
		baseAPI = defaultBaseAPI
	}
	return &Client{
		baseAPI: strings.TrimRight(baseAPI, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// hnItem mirrors the subset of HN item fields we care about.
type hnItem struct {
	ID      int    `json:"id"`
	Deleted bool   `json:"deleted"`
	Dead    bool   `json:"dead"`
	Type    string `json:"type"`
	By      string `json:"by"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Time    int64  `json:"time"`
	Score   int    `json:"score"`
}

// ListIDs returns up to limit item IDs from a stories list: one of
// top, new, best, ask, show, job.
func (c *Client) ListIDs(ctx context.Context, list string, limit int) ([]int, error) {
	endpoint := fmt.Sprintf("%s/%s.json", c.baseAPI, url.PathEscape(listEndpoint(list)))
	var ids []int
	if err := c.getJSON(ctx, endpoint, &ids); err != nil {
		return nil, err
	}
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

// Item fetches a single item and converts it to a Post. It returns (nil, nil)
// for deleted, dead, or incomplete items.
func (c *Client) Item(ctx context.Context, id int) (*model.Post, error) {
	endpoint := fmt.Sprintf("%s/item/%d.json", c.baseAPI, id)
	var it *hnItem
	if err := c.getJSON(ctx, endpoint, &it); err != nil {
		return nil, err
	}
	if it == nil || it.Deleted || it.Dead {
		return nil, nil
	}
	if it.Title == "" || it.By == "" || it.Time == 0 {
		slog.Debug("hackernews: skipping incomplete item", "id", id)
		return nil, nil
	}
	score := it.Score
	if score < 0 {
		score = 0
	}
	return &model.Post{
		ID:        it.ID,
		Title:     it.Title,
		Author:    it.By,
		Score:     score,
		URL:       strings.TrimSpace(it.URL),
		CreatedAt: it.Time,
		Type:      it.Type,
		Category:  model.Categorize(it.Type),
		FetchedAt: time.Now().Unix(),
	}, nil
}

// Items resolves multiple IDs with bounded concurrency. Failed or invalid
// items are skipped; the order of the input IDs is preserved.
func (c *Client) Items(ctx context.Context, ids []int) ([]model.Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	const maxWorkers = 8
	type result struct {
		idx  int
		post *model.Post
	}
	sem := make(chan struct{}, maxWorkers)
	done := make(chan result, len(ids))
	for i, id := range ids {
		i, id := i, id
		sem <- struct{}{}
		go func() {
			defer func() { <-sem }()
			ictx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()
			p, err := c.Item(ictx, id)
			if err != nil {
				slog.Warn("hackernews: fetch item failed", "id", id, "error", err)
				done <- result{idx: i}
				return
			}
			done <- result{idx: i, post: p}
		}()
	}
	out := make([]*model.Post, len(ids))
	for range ids {
		r := <-done
		out[r.idx] = r.post
	}
	posts := make([]model.Post, 0, len(ids))
	for _, p := range out {
		if p != nil {
			posts = append(posts, *p)
		}
	}
	return posts, nil
}

// getJSON performs a GET with the retry policy and decodes the body into v.
func (c *Client) getJSON(ctx context.Context, endpoint string, v any) error {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			delay := backoffDelay(attempt - 1)
			slog.Warn("hackernews: retrying request", "url", endpoint, "attempt", attempt+1, "delay", delay, "error", lastErr)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
		body, retryable, err := c.doGet(ctx, endpoint)
		if err == nil {
			return json.Unmarshal(body, v)
		}
		lastErr = err
		if !retryable {
			return err
		}
	}
	return fmt.Errorf("hackernews: request failed after %d attempts: %w", maxAttempts, lastErr)
}

func (c *Client) doGet(ctx context.Context, endpoint string) (body []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, true, err
		}
		return b, true, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("hackernews: %s status %d", endpoint, resp.StatusCode)
	default:
		return nil, false, fmt.Errorf("hackernews: %s status %d", endpoint, resp.StatusCode)
	}
}

func backoffDelay(attempt int) time.Duration {
	d := baseDelay << uint(attempt)
	if d > maxDelay {
		d = maxDelay
	}
	return d
}

func listEndpoint(list string) string {
	switch strings.ToLower(strings.TrimSpace(list)) {
	case "new", "newstories":
		return "newstories"
	case "best", "beststories":
		return "beststories"
	case "ask", "askstories":
		return "askstories"
	case "show", "showstories":
		return "showstories"
	case "job", "jobs", "jobstories":
		return "jobstories"
	default:
		return "topstories"
	}
}
