package cmd

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hackernews-report/internal/ai"
	"hackernews-report/internal/hackernews"
	"hackernews-report/internal/ingest"
	"hackernews-report/internal/report"
	"hackernews-report/internal/search"
	"hackernews-report/internal/tags"
	"hackernews-report/internal/web"
	"hackernews-report/worker"

	"github.com/spf13/cobra"
)

// serveCmd runs the collector and the HTTP API until interrupted.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the collector and the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		store, err := newStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		interval, err := time.ParseDuration(cfg.HN.FetchInterval)
		if err != nil {
			return err
		}

		taxonomy := tags.Default()
		ingestSvc := ingest.NewService(hackernews.NewClient(cfg.HN.BaseAPI), store, taxonomy)
		searchSvc := search.NewService(store, taxonomy)

		var summarizer ai.Summarizer
		if cfg.OpenAI.APIKey != "" {
			summarizer = ai.NewOpenAI(ai.Config{APIKey: cfg.OpenAI.APIKey, Model: cfg.OpenAI.Model, BaseURL: cfg.OpenAI.BaseURL})
		}
		reportSvc := report.NewService(cfg.Report.Title, taxonomy, summarizer)

		collector := &worker.Collector{
			Ingest:       ingestSvc,
			Lists:        cfg.HN.Lists,
			Interval:     interval,
			LimitPerList: cfg.HN.LimitPerList,
		}
		server := web.NewServer(cfg.Server.Addr, searchSvc, store, reportSvc)

		slog.Info("starting collector", "lists", collector.Lists, "interval", interval)
		mgr := worker.NewManager(collector, serverWorker{server})

		// Signal handling for systemd
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			s := <-sigc
			log.Printf("received signal: %s, shutting down", s)
			cancel()
		}()

		return mgr.Start(ctx)
	},
}

// serverWorker adapts the HTTP server to the worker interface.
type serverWorker struct {
	srv *web.Server
}

func (w serverWorker) Start(ctx context.Context) error {
	return w.srv.Run(ctx)
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
