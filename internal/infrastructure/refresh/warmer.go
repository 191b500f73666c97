package refresh

import (
	"context"
	"log/slog"
	"time"

	"SectorPulse/internal/ports"
)

// Warmer re-runs GetData on a fixed interval so interactive requests mostly
// hit a fresh cache slot. Quota policy is unchanged: a warm pass that finds
// the slot fresh costs nothing, and failed fetches fall back like any other
// read.
type Warmer struct {
	cache    ports.ArticleCache
	interval time.Duration
	limit    int
	logger   *slog.Logger
	stop     chan struct{}
}

// NewWarmer builds a warmer; interval must be positive to have any effect.
func NewWarmer(cache ports.ArticleCache, interval time.Duration, limit int, logger *slog.Logger) *Warmer {
	return &Warmer{cache: cache, interval: interval, limit: limit, logger: logger}
}

// Start begins the warming loop in a goroutine. Calling Start twice is a
// no-op.
func (w *Warmer) Start(ctx context.Context) {
	if w.cache == nil || w.interval <= 0 {
		return
	}
	if w.stop != nil {
		return
	}

	w.stop = make(chan struct{})
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		w.warm(ctx)
		for {
			select {
			case <-ticker.C:
				w.warm(ctx)
			case <-ctx.Done():
				return
			case <-w.stop:
				return
			}
		}
	}()
}

// Stop halts the warming goroutine.
func (w *Warmer) Stop() {
	if w.stop == nil {
		return
	}
	close(w.stop)
	w.stop = nil
}

func (w *Warmer) warm(ctx context.Context) {
	warmCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := w.cache.GetData(warmCtx, w.limit, false); err != nil {
		if w.logger != nil {
			w.logger.Warn("cache warm pass failed", "error", err)
		}
	}
}
