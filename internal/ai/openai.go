package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"hackernews-report/internal/model"

	openai "github.com/sashabaranov/go-openai"
)

// Summarizer produces a short overview paragraph for a set of posts. Report
// rendering treats it as optional: a nil Summarizer means no overview.
type Summarizer interface {
	SummarizePosts(ctx context.Context, posts []model.Post) (string, error)
}

// OpenAIClient implements Summarizer using the OpenAI Chat Completions API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string // optional
}

func NewOpenAI(cfg Config) *OpenAIClient {
	var c *openai.Client
	if cfg.BaseURL != "" {
		cc := openai.DefaultConfig(cfg.APIKey)
		cc.BaseURL = cfg.BaseURL
		c = openai.NewClientWithConfig(cc)
	} else {
		c = openai.NewClient(cfg.APIKey)
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIClient{client: c, model: model}
}

func (o *OpenAIClient) SummarizePosts(ctx context.Context, posts []model.Post) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 120*time.Second)
	defer cancel()
	if len(posts) == 0 {
		return "", nil
	}
	b := &strings.Builder{}
	for i, p := range posts {
		if i >= 10 {
			break
		}
		fmt.Fprintf(b, "- %s (%s, %d points)\n", p.Title, p.Category, p.Score)
	}
	sys := "Summarize the given Hacker News headlines in 2-4 sentences. " +
		"Focus on the common themes and the most notable items. Plain text, no links."
	user := fmt.Sprintf("Headlines:\n%s", b.String())
	out, err := o.create(ctx, sys, user)
	if err != nil {
		slog.Error("openai: summarize posts error", "err", err)
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (o *OpenAIClient) create(ctx context.Context, system, user string) (string, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 300*time.Second)
		defer cancel()
	}
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.4,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
