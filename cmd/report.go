package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"hackernews-report/internal/ai"
	"hackernews-report/internal/model"
	"hackernews-report/internal/report"
	"hackernews-report/internal/tags"

	"github.com/spf13/cobra"
)

var (
	reportFormat  string
	reportOutput  string
	reportSummary bool
)

// reportCmd renders the stored posts into a report document.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a report from stored posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
		defer cancel()

		format, err := report.ParseFormat(reportFormat)
		if err != nil {
			return err
		}

		store, err := newStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		posts, err := store.PostsByCategory(ctx, "", model.OrderScoreDesc)
		if err != nil {
			return err
		}

		var summarizer ai.Summarizer
		if reportSummary && cfg.OpenAI.APIKey != "" {
			summarizer = ai.NewOpenAI(ai.Config{APIKey: cfg.OpenAI.APIKey, Model: cfg.OpenAI.Model, BaseURL: cfg.OpenAI.BaseURL})
		}
		svc := report.NewService(cfg.Report.Title, tags.Default(), summarizer)
		out, err := svc.Generate(ctx, posts, format)
		if err != nil {
			return err
		}

		if reportOutput == "-" {
			fmt.Print(out)
			return nil
		}
		path := reportOutput
		if path == "" {
			if err := os.MkdirAll(cfg.Report.OutputDir, 0o755); err != nil {
				return err
			}
			name := fmt.Sprintf("report-%s.%s", time.Now().UTC().Format("2006-01-02"), format.Extension())
			path = filepath.Join(cfg.Report.OutputDir, name)
		}
		if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d posts)\n", path, len(posts))
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportFormat, "format", "markdown", "output format: markdown, html, csv, txt, json")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "output file path (- for stdout)")
	reportCmd.Flags().BoolVar(&reportSummary, "summary", false, "include an AI-generated overview (needs openai.api_key)")
	rootCmd.AddCommand(reportCmd)
}
