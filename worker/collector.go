package worker

import (
	"context"
	"log/slog"
	"time"

	"hackernews-report/internal/ingest"
)

// Collector polls Hacker News story lists on an interval and feeds them
// through the ingest pipeline.
type Collector struct {
	Ingest       *ingest.Service
	Lists        []string // e.g., top,new,best,ask,show,job
	Interval     time.Duration
	LimitPerList int // how many IDs to fetch per list
}

func (w *Collector) Start(ctx context.Context) error {
	if w.Interval <= 0 {
		w.Interval = 10 * time.Minute
	}
	if w.LimitPerList <= 0 {
		w.LimitPerList = 30
	}

	// initial run
	w.runOnce(ctx)

	t := time.NewTicker(w.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			w.runOnce(ctx)
		}
	}
}

func (w *Collector) runOnce(ctx context.Context) {
	lists := w.Lists
	if len(lists) == 0 {
		lists = []string{"top"}
	}
	for _, list := range lists {
		res, err := w.Ingest.FetchAndStore(ctx, list, w.LimitPerList)
		if err != nil {
			slog.Error("collector: fetch list error", "list", list, "error", err)
			continue
		}
		slog.Info("collector: completed for list", "list", list, "new", res.NewPosts, "updated", res.UpdatedPosts, "errors", len(res.Errors))
	}
}
