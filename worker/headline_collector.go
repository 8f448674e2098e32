package worker

import (
	"context"
	"log/slog"
	"time"

	"cosmos-newsdesk/internal/storage"
	"cosmos-newsdesk/internal/trusted"
)

// HeadlineCollector refreshes the trusted-headline cache on an interval so
// the submission cross-check always has something to compare against.
type HeadlineCollector struct {
	Client   *trusted.Client
	Store    storage.Store
	Interval time.Duration
	TTL      time.Duration
}

func (w *HeadlineCollector) Start(ctx context.Context) error {
	if w.Interval <= 0 {
		w.Interval = 30 * time.Minute
	}
	if w.TTL <= 0 {
		w.TTL = 24 * time.Hour
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

func (w *HeadlineCollector) runOnce(ctx context.Context) {
	headlines, err := w.Client.Headlines(ctx)
	if err != nil {
		slog.Error("headline-collector: fetch error", "error", err)
		return
	}
	if len(headlines) == 0 {
		slog.Warn("headline-collector: page had no headlines")
		return
	}
	if err := w.Store.SetTrustedHeadlines(ctx, headlines, w.TTL); err != nil {
		slog.Error("headline-collector: store error", "error", err)
		return
	}
	slog.Info("headline-collector: cache refreshed", "count", len(headlines))
}
