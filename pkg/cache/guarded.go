package cache

import (
	"context"
	"errors"

	"tawdifak-listings/pkg/logger"
	"tawdifak-listings/pkg/metrics"
)

// Guarded wraps a Store so that no storage failure reaches the caller:
// read failures become misses, write and clear failures are logged and dropped.
// A failed write leaves whatever the store held before.
type Guarded struct {
	store Store
}

func NewGuarded(store Store) *Guarded {
	return &Guarded{store: store}
}

// Get returns the entry and true on a hit.
func (g *Guarded) Get(ctx context.Context, key string) (*Entry, bool) {
	entry, err := g.store.Get(ctx, key)
	if err == nil {
		return entry, true
	}
	if !errors.Is(err, ErrMiss) {
		metrics.CacheFailuresTotal.WithLabelValues("get").Inc()
		logger.GlobalLogger.Errorf("failed to read cache key %s: %v", key, err)
	}
	return nil, false
}

// Set stores the entry; failures are logged only.
func (g *Guarded) Set(ctx context.Context, key string, entry *Entry) {
	if err := g.store.Set(ctx, key, entry); err != nil {
		metrics.CacheFailuresTotal.WithLabelValues("set").Inc()
		logger.GlobalLogger.Errorf("failed to write cache key %s: %v", key, err)
	}
}

// Clear empties the store; failures are logged only.
func (g *Guarded) Clear(ctx context.Context) {
	if err := g.store.Clear(ctx); err != nil {
		metrics.CacheFailuresTotal.WithLabelValues("clear").Inc()
		logger.GlobalLogger.Errorf("failed to clear cache: %v", err)
	}
}
