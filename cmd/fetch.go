package cmd

import (
	"context"
	"fmt"
	"time"

	"hackernews-report/internal/hackernews"
	"hackernews-report/internal/ingest"
	"hackernews-report/internal/tags"

	"github.com/spf13/cobra"
)

var (
	fetchLists []string
	fetchLimit int
)

// fetchCmd runs one fetch-and-store pass and exits.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch posts from Hacker News once and store them",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
		defer cancel()

		store, err := newStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		svc := ingest.NewService(hackernews.NewClient(cfg.HN.BaseAPI), store, tags.Default())

		lists := fetchLists
		if len(lists) == 0 {
			lists = cfg.HN.Lists
		}
		limit := fetchLimit
		if limit <= 0 {
			limit = cfg.HN.LimitPerList
		}
		for _, list := range lists {
			res, err := svc.FetchAndStore(ctx, list, limit)
			if err != nil {
				return err
			}
			fmt.Printf("%s: %d new, %d updated, %d errors\n", list, res.NewPosts, res.UpdatedPosts, len(res.Errors))
			for _, e := range res.Errors {
				fmt.Printf("  error: %s\n", e)
			}
		}
		return nil
	},
}

func init() {
	fetchCmd.Flags().StringSliceVar(&fetchLists, "lists", nil, "story lists to fetch (top, new, best, ask, show, job)")
	fetchCmd.Flags().IntVar(&fetchLimit, "limit", 0, "posts per list (default from config)")
	rootCmd.AddCommand(fetchCmd)
}
