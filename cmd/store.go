package cmd

import (
	"context"
	"fmt"
	"strings"

	"hackernews-report/internal/config"
	"hackernews-report/internal/redisclient"
	"hackernews-report/internal/storage"
)

// newStore opens the post store selected by storage.backend.
func newStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	switch strings.ToLower(cfg.Storage.Backend) {
	case "", "memory":
		return storage.NewMemoryStore(), nil
	case "redis":
		rdb := redisclient.New(cfg.Redis)
		return storage.NewRedisStore(rdb), nil
	case "postgres":
		if cfg.Postgres.URL == "" {
			return nil, fmt.Errorf("postgres backend selected but postgres.url is empty")
		}
		return storage.NewPostgresStore(ctx, cfg.Postgres.URL)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
