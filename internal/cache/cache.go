// Package cache keeps the merged timeline in memory between syncs.
package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"gagyebu/internal/logger"
	"gagyebu/internal/models"
)

// Loader reads the full timeline from the store.
type Loader func(ctx context.Context) ([]models.Spending, error)

// Snapshot is what the cache hands out. Fresh is false when the last reload
// failed and older data is being served.
type Snapshot struct {
	Spendings []models.Spending
	Fresh     bool
	LoadedAt  time.Time
}

// SpendingCache holds the last loaded timeline until it is invalidated.
type SpendingCache struct {
	load Loader

	mu       sync.RWMutex
	data     []models.Spending
	loaded   bool
	fresh    bool
	loadedAt time.Time
	// gen counts invalidations; a reload that started before the latest one
	// must not mark its result fresh.
	gen uint64

	group singleflight.Group
}

// New returns an empty cache reading through load.
func New(load Loader) *SpendingCache {
	return &SpendingCache{load: load}
}

// Get returns the cached timeline, reloading it when stale. Concurrent
// reloads are collapsed into one. If a reload fails and an older timeline
// exists, that timeline is returned marked not fresh. A reload overtaken by
// Invalidate is returned marked not fresh and the next Get loads again.
func (c *SpendingCache) Get(ctx context.Context) (Snapshot, error) {
	c.mu.RLock()
	if c.fresh {
		snap := c.snapshotLocked()
		c.mu.RUnlock()
		return snap, nil
	}
	c.mu.RUnlock()

	_, err, _ := c.group.Do("timeline", func() (interface{}, error) {
		c.mu.RLock()
		gen := c.gen
		c.mu.RUnlock()

		data, err := c.load(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.data = data
		c.loaded = true
		c.fresh = c.gen == gen
		c.loadedAt = time.Now()
		c.mu.Unlock()
		return nil, nil
	})

	c.mu.RLock()
	defer c.mu.RUnlock()
	if err != nil {
		if !c.loaded {
			return Snapshot{}, err
		}
		logger.Get().Warnw("timeline reload failed, serving stale data", "error", err, "loaded_at", c.loadedAt)
		snap := c.snapshotLocked()
		snap.Fresh = false
		return snap, nil
	}
	return c.snapshotLocked(), nil
}

// Invalidate marks the cached timeline stale. The data is kept for serving
// if the next reload fails.
func (c *SpendingCache) Invalidate() {
	c.mu.Lock()
	c.fresh = false
	c.gen++
	c.mu.Unlock()
}

func (c *SpendingCache) snapshotLocked() Snapshot {
	out := make([]models.Spending, len(c.data))
	copy(out, c.data)
	return Snapshot{Spendings: out, Fresh: c.fresh, LoadedAt: c.loadedAt}
}
