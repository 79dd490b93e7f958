package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hackernews-report/internal/model"
	"hackernews-report/internal/search"
	"hackernews-report/internal/tags"

	"github.com/spf13/cobra"
)

var (
	searchText      string
	searchAuthor    string
	searchTags      []string
	searchMinScore  int
	searchMaxScore  int
	searchStartDate string
	searchEndDate   string
	searchOrderBy   string
	searchPage      int
	searchPageSize  int
	searchHighlight bool
)

// searchCmd queries the stored posts with filters and pagination.
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search stored posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		store, err := newStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		q := model.NewSearchQuery()
		q.Text = searchText
		q.Author = searchAuthor
		q.Tags = searchTags
		if cmd.Flags().Changed("min-score") {
			q.MinScore = &searchMinScore
		}
		if cmd.Flags().Changed("max-score") {
			q.MaxScore = &searchMaxScore
		}
		if searchStartDate != "" {
			t, err := time.Parse("2006-01-02", searchStartDate)
			if err != nil {
				return fmt.Errorf("invalid --start-date: %w", err)
			}
			q.StartDate = &t
		}
		if searchEndDate != "" {
			t, err := time.Parse("2006-01-02", searchEndDate)
			if err != nil {
				return fmt.Errorf("invalid --end-date: %w", err)
			}
			q.EndDate = &t
		}
		if searchOrderBy != "" {
			q.OrderBy = model.OrderBy(searchOrderBy)
		}
		q.Page = searchPage
		q.PageSize = searchPageSize

		svc := search.NewService(store, tags.Default())
		result, err := svc.SearchPosts(ctx, q)
		if err != nil {
			var invalid *search.InvalidQueryError
			if errors.As(err, &invalid) {
				fmt.Println("invalid query:")
				for _, msg := range invalid.Errors {
					fmt.Printf("  - %s\n", msg)
				}
				return fmt.Errorf("query rejected")
			}
			return err
		}

		fmt.Printf("%d results (page %d of %d)\n\n", result.TotalResults, result.Page, result.TotalPages)
		terms := strings.Fields(q.Text)
		for _, p := range result.Posts {
			title := p.Title
			if searchHighlight && len(terms) > 0 {
				title = svc.HighlightTerms(title, terms)
			}
			fmt.Printf("%8d  %4d pts  %-10s  %s\n", p.ID, p.Score, p.Category, title)
			if len(p.Tags) > 0 {
				fmt.Printf("          tags: %s\n", strings.Join(p.Tags, ", "))
			}
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVarP(&searchText, "query", "q", "", "text to match against titles")
	searchCmd.Flags().StringVar(&searchAuthor, "author", "", "author filter (substring)")
	searchCmd.Flags().StringSliceVar(&searchTags, "tags", nil, "tag filters (any match)")
	searchCmd.Flags().IntVar(&searchMinScore, "min-score", 0, "minimum score")
	searchCmd.Flags().IntVar(&searchMaxScore, "max-score", 0, "maximum score")
	searchCmd.Flags().StringVar(&searchStartDate, "start-date", "", "posts on or after this date (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchEndDate, "end-date", "", "posts on or before this date (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchOrderBy, "order-by", "", "relevance, date_desc, date_asc, score_desc, score_asc")
	searchCmd.Flags().IntVar(&searchPage, "page", 1, "result page")
	searchCmd.Flags().IntVar(&searchPageSize, "page-size", model.DefaultPageSize, "results per page")
	searchCmd.Flags().BoolVar(&searchHighlight, "highlight", false, "mark matched terms in titles")
	rootCmd.AddCommand(searchCmd)
}
