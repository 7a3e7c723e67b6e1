package cache

import (
	"context"
	"sync"

	"github.com/iho/fxreport/internal/domain"
	"github.com/iho/fxreport/internal/infrastructure/metrics"
)

// Memory is the in-process detail cache: account id to its resolved
// detail rows, alive for the session and rebuilt lazily after every
// invalidation. Entries are overwritten whole, never merged.
type Memory struct {
	mu      sync.RWMutex
	entries map[string][]domain.DetailRow
	metrics *metrics.Metrics
}

// NewMemory creates an empty in-memory detail cache. m may be nil.
func NewMemory(m *metrics.Metrics) *Memory {
	return &Memory{
		entries: make(map[string][]domain.DetailRow),
		metrics: m,
	}
}

// Get returns the cached rows for an account. An account fetched with
// zero rows is a hit with an empty slice, not a miss.
func (c *Memory) Get(ctx context.Context, accountID string) ([]domain.DetailRow, bool, error) {
	c.mu.RLock()
	rows, ok := c.entries[accountID]
	c.mu.RUnlock()

	if c.metrics != nil {
		if ok {
			c.metrics.CacheHits.Inc()
		} else {
			c.metrics.CacheMisses.Inc()
		}
	}

	if !ok {
		return nil, false, nil
	}

	out := make([]domain.DetailRow, len(rows))
	copy(out, rows)
	return out, true, nil
}

// Put stores the rows for one account, overwriting any existing entry.
func (c *Memory) Put(ctx context.Context, accountID string, rows []domain.DetailRow) error {
	c.mu.Lock()
	c.entries[accountID] = cloneRows(rows)
	c.mu.Unlock()
	return nil
}

// PutBatch stores a full preload cycle's result in one critical
// section, so a concurrent reader never observes the cycle half
// applied.
func (c *Memory) PutBatch(ctx context.Context, entries map[string][]domain.DetailRow) error {
	c.mu.Lock()
	for id, rows := range entries {
		c.entries[id] = cloneRows(rows)
	}
	c.mu.Unlock()
	return nil
}

// InvalidateAll drops every entry. Called when the active channel
// selection changes, since cached rows are channel-filtered.
func (c *Memory) InvalidateAll(ctx context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string][]domain.DetailRow)
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.CacheInvalidations.Inc()
	}
	return nil
}

// Len returns the number of cached accounts.
func (c *Memory) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func cloneRows(rows []domain.DetailRow) []domain.DetailRow {
	out := make([]domain.DetailRow, len(rows))
	copy(out, rows)
	return out
}
