package snapshot

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/vango-dev/bind/pkg/debounce"
)

// autoSaveConfig holds AutoSave options.
type autoSaveConfig struct {
	logger   *slog.Logger
	debounce []debounce.Option
}

// AutoSaveOption configures AutoSave.
type AutoSaveOption func(*autoSaveConfig)

// WithLogger sets the logger for save outcomes. If not set, slog.Default()
// is used.
func WithLogger(l *slog.Logger) AutoSaveOption {
	return func(c *autoSaveConfig) {
		c.logger = l
	}
}

// WithDebounce passes options through to the underlying scheduler, for
// example debounce.MaxWait to bound how stale a stored snapshot can get, or
// debounce.WithClock in tests.
func WithDebounce(opts ...debounce.Option) AutoSaveOption {
	return func(c *autoSaveConfig) {
		c.debounce = append(c.debounce, opts...)
	}
}

// AutoSave watches every source tracked at call time and saves the registry
// to store under key whenever one changes, coalescing bursts of updates
// through a debounce scheduler with the given quiet period. Save errors are
// logged, not returned: the next change retries.
//
// The returned stop function flushes any pending save, then detaches the
// watchers and the timer. Callers own the lifecycle and must call it on
// teardown.
func (r *Registry) AutoSave(ctx context.Context, store Store, key string, wait time.Duration, opts ...AutoSaveOption) (stop func()) {
	cfg := autoSaveConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	d := debounce.New(func(struct{}) struct{} {
		if err := r.Save(ctx, store, key); err != nil {
			cfg.logger.Error("snapshot autosave failed", "key", key, "error", err)
			return struct{}{}
		}
		cfg.logger.Debug("snapshot autosaved", "key", key)
		return struct{}{}
	}, wait, cfg.debounce...)

	r.mu.RLock()
	stops := make([]func(), 0, len(r.entries))
	for _, e := range r.entries {
		if e.transient {
			continue
		}
		stops = append(stops, e.watch(func() { d.Call(struct{}{}) }))
	}
	r.mu.RUnlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			for _, s := range stops {
				s()
			}
			d.Flush()
			d.Cancel()
		})
	}
}
