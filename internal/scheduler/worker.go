// Package scheduler runs the periodic notification sweep.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/anbuchelva/cams/internal/notify"
)

// Worker triggers the digest sweep on a fixed interval. It runs on its own
// goroutine, independent of the request path, and stops when its context is
// cancelled.
type Worker struct {
	notifier *notify.Notifier
	interval time.Duration
}

// NewWorker creates a sweep worker.
func NewWorker(notifier *notify.Notifier, interval time.Duration) *Worker {
	return &Worker{notifier: notifier, interval: interval}
}

// Start runs the worker until the context is cancelled. The first sweep runs
// one full interval after start.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("notification sweep worker started", "interval", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.notifier.Sweep(ctx)
		case <-ctx.Done():
			slog.Info("notification sweep worker stopped")
			return
		}
	}
}
