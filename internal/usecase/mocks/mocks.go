package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/iho/fxreport/internal/domain"
)

// MockGateway is a mock implementation of Gateway.
type MockGateway struct {
	mu      sync.Mutex
	queries []string

	ExecuteFunc func(ctx context.Context, queryText string) ([]domain.Row, error)
}

func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

func (m *MockGateway) Execute(ctx context.Context, queryText string) ([]domain.Row, error) {
	m.mu.Lock()
	m.queries = append(m.queries, queryText)
	m.mu.Unlock()

	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, queryText)
	}
	return nil, nil
}

// Queries returns every query text Execute has been called with.
func (m *MockGateway) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.queries))
	copy(out, m.queries)
	return out
}

// MockDetailCache is a mock implementation of DetailCache backed by a
// map, with optional overrides per method.
type MockDetailCache struct {
	mu      sync.Mutex
	entries map[string][]domain.DetailRow

	invalidations int

	GetFunc           func(ctx context.Context, accountID string) ([]domain.DetailRow, bool, error)
	PutFunc           func(ctx context.Context, accountID string, rows []domain.DetailRow) error
	PutBatchFunc      func(ctx context.Context, entries map[string][]domain.DetailRow) error
	InvalidateAllFunc func(ctx context.Context) error
}

func NewMockDetailCache() *MockDetailCache {
	return &MockDetailCache{
		entries: make(map[string][]domain.DetailRow),
	}
}

func (m *MockDetailCache) Get(ctx context.Context, accountID string) ([]domain.DetailRow, bool, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, accountID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rows, ok := m.entries[accountID]
	return rows, ok, nil
}

func (m *MockDetailCache) Put(ctx context.Context, accountID string, rows []domain.DetailRow) error {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, accountID, rows)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[accountID] = rows
	return nil
}

func (m *MockDetailCache) PutBatch(ctx context.Context, entries map[string][]domain.DetailRow) error {
	if m.PutBatchFunc != nil {
		return m.PutBatchFunc(ctx, entries)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, rows := range entries {
		m.entries[id] = rows
	}
	return nil
}

func (m *MockDetailCache) InvalidateAll(ctx context.Context) error {
	if m.InvalidateAllFunc != nil {
		return m.InvalidateAllFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string][]domain.DetailRow)
	m.invalidations++
	return nil
}

// Len returns the number of cached accounts.
func (m *MockDetailCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Invalidations returns how many times the cache has been cleared.
func (m *MockDetailCache) Invalidations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.invalidations
}

// MockClock is a settable Clock for throttle tests.
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewMockClock(now time.Time) *MockClock {
	return &MockClock{now: now}
}

func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	return "test-id"
}
