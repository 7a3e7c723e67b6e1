package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/fxreport/internal/domain"
	"github.com/iho/fxreport/internal/query"
	"github.com/iho/fxreport/internal/usecase"
	"github.com/iho/fxreport/internal/usecase/mocks"
)

func newPreloader(gw *mocks.MockGateway, cache *mocks.MockDetailCache, clock *mocks.MockClock) *usecase.Preloader {
	return usecase.NewPreloader(
		query.NewDetailBuilder(domain.DefaultCatalog()),
		gw,
		cache,
		clock,
		&mocks.MockIDGenerator{},
		zerolog.Nop(),
		nil,
		usecase.PreloadConfig{ThrottleWindow: 3 * time.Second},
	)
}

func testClock() *mocks.MockClock {
	return mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
}

func detailGatewayRows(accounts ...string) []domain.Row {
	rows := make([]domain.Row, 0, len(accounts))
	for _, id := range accounts {
		rows = append(rows, domain.Row{
			"AccountID":  id,
			"TrxDate":    "2025-05-01",
			"DocumentNo": "DOC-" + id,
			"Debit":      json.Number("10.00"),
			"Credit":     json.Number("0"),
		})
	}
	return rows
}

func TestPreloader_FetchesAndCachesMissingAccounts(t *testing.T) {
	gw := mocks.NewMockGateway()
	gw.ExecuteFunc = func(ctx context.Context, queryText string) ([]domain.Row, error) {
		return detailGatewayRows("A-1", "A-2"), nil
	}
	cache := mocks.NewMockDetailCache()

	p := newPreloader(gw, cache, testClock())
	p.Preload(context.Background(), []string{"A-1", "A-2"})

	for _, id := range []string{"A-1", "A-2"} {
		rows, ok, err := p.GetDetail(context.Background(), id)
		if err != nil || !ok {
			t.Fatalf("expected %s cached, ok=%v err=%v", id, ok, err)
		}
		if len(rows) != 1 || rows[0].DocumentNumber != "DOC-"+id {
			t.Errorf("unexpected rows for %s: %v", id, rows)
		}
	}
}

func TestPreloader_EmptyResultIsCached(t *testing.T) {
	gw := mocks.NewMockGateway()
	gw.ExecuteFunc = func(ctx context.Context, queryText string) ([]domain.Row, error) {
		// Rows only for A-1; A-2 has no transactions.
		return detailGatewayRows("A-1"), nil
	}
	cache := mocks.NewMockDetailCache()

	p := newPreloader(gw, cache, testClock())
	p.Preload(context.Background(), []string{"A-1", "A-2"})

	rows, ok, err := p.GetDetail(context.Background(), "A-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("account with no transactions must still be cached")
	}
	if len(rows) != 0 {
		t.Errorf("expected empty rows, got %v", rows)
	}
}

func TestPreloader_SkipsCachedAndDuplicateAccounts(t *testing.T) {
	gw := mocks.NewMockGateway()
	gw.ExecuteFunc = func(ctx context.Context, queryText string) ([]domain.Row, error) {
		return detailGatewayRows("A-2"), nil
	}
	cache := mocks.NewMockDetailCache()
	_ = cache.Put(context.Background(), "A-1", []domain.DetailRow{})

	p := newPreloader(gw, cache, testClock())
	p.Preload(context.Background(), []string{"A-1", "A-2", "A-2", "", "A-1"})

	queries := gw.Queries()
	if len(queries) != 1 {
		t.Fatalf("expected a single batched query, got %d", len(queries))
	}
	if strings.Contains(queries[0], "'A-1'") {
		t.Error("cached account must not be re-fetched")
	}
	if got := strings.Count(queries[0], "'A-2'"); got != 1 {
		t.Errorf("expected A-2 exactly once in batch, got %d", got)
	}
}

func TestPreloader_NoCycleWhenEverythingCached(t *testing.T) {
	gw := mocks.NewMockGateway()
	cache := mocks.NewMockDetailCache()
	_ = cache.Put(context.Background(), "A-1", []domain.DetailRow{})

	p := newPreloader(gw, cache, testClock())
	p.Preload(context.Background(), []string{"A-1"})

	if len(gw.Queries()) != 0 {
		t.Error("expected no gateway call when the page is fully cached")
	}
}

func TestPreloader_ThrottlesRapidTriggers(t *testing.T) {
	gw := mocks.NewMockGateway()
	gw.ExecuteFunc = func(ctx context.Context, queryText string) ([]domain.Row, error) {
		return nil, nil
	}
	cache := mocks.NewMockDetailCache()
	clock := testClock()

	p := newPreloader(gw, cache, clock)
	ctx := context.Background()

	p.Preload(ctx, []string{"A-1"})
	if len(gw.Queries()) != 1 {
		t.Fatalf("expected first cycle to run, got %d queries", len(gw.Queries()))
	}

	// Inside the window: skipped, not queued.
	clock.Advance(time.Second)
	p.Preload(ctx, []string{"A-2"})
	if len(gw.Queries()) != 1 {
		t.Error("expected trigger inside throttle window to be skipped")
	}

	// Window elapsed: next trigger runs and picks up the skipped account.
	clock.Advance(3 * time.Second)
	p.Preload(ctx, []string{"A-2"})
	queries := gw.Queries()
	if len(queries) != 2 {
		t.Fatalf("expected second cycle after window, got %d queries", len(queries))
	}
	if !strings.Contains(queries[1], "'A-2'") {
		t.Error("expected skipped account fetched by the later cycle")
	}
}

func TestPreloader_AtMostOneCycleInFlight(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	gw := mocks.NewMockGateway()
	gw.ExecuteFunc = func(ctx context.Context, queryText string) ([]domain.Row, error) {
		close(entered)
		<-release
		return nil, nil
	}
	cache := mocks.NewMockDetailCache()
	clock := testClock()

	p := newPreloader(gw, cache, clock)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		p.Preload(ctx, []string{"A-1"})
	}()
	<-entered

	// Past the throttle window, but a cycle is still in flight.
	clock.Advance(5 * time.Second)
	p.Preload(ctx, []string{"A-2"})

	if len(gw.Queries()) != 1 {
		t.Error("expected concurrent trigger to be skipped while a cycle is in flight")
	}

	close(release)
	wg.Wait()
}

func TestPreloader_DiscardsStaleResultAfterSelectionChange(t *testing.T) {
	gw := mocks.NewMockGateway()
	cache := mocks.NewMockDetailCache()
	clock := testClock()
	p := newPreloader(gw, cache, clock)
	ctx := context.Background()

	if err := p.SetSelection(ctx, []int{2}); err != nil {
		t.Fatalf("set selection failed: %v", err)
	}

	gw.ExecuteFunc = func(c context.Context, queryText string) ([]domain.Row, error) {
		// Selection changes while the fetch is in flight.
		if err := p.SetSelection(ctx, []int{3}); err != nil {
			t.Errorf("set selection failed: %v", err)
		}
		return detailGatewayRows("A-1"), nil
	}

	p.Preload(ctx, []string{"A-1"})

	if _, ok, _ := cache.Get(ctx, "A-1"); ok {
		t.Error("result fetched under the old selection must be discarded")
	}
}

func TestPreloader_FailedCycleLeavesAccountsEligible(t *testing.T) {
	gw := mocks.NewMockGateway()
	gw.ExecuteFunc = func(ctx context.Context, queryText string) ([]domain.Row, error) {
		return nil, errors.New("proxy down")
	}
	cache := mocks.NewMockDetailCache()
	clock := testClock()

	p := newPreloader(gw, cache, clock)
	ctx := context.Background()

	p.Preload(ctx, []string{"A-1"})
	if cache.Len() != 0 {
		t.Error("failed cycle must not cache anything")
	}

	// Next window: the same account is fetched again.
	gw.ExecuteFunc = func(ctx context.Context, queryText string) ([]domain.Row, error) {
		return detailGatewayRows("A-1"), nil
	}
	clock.Advance(4 * time.Second)
	p.Preload(ctx, []string{"A-1"})

	if _, ok, _ := cache.Get(ctx, "A-1"); !ok {
		t.Error("expected account cached after retryable cycle")
	}
}

func TestPreloader_SetSelectionInvalidatesOnlyOnChange(t *testing.T) {
	cache := mocks.NewMockDetailCache()
	p := newPreloader(mocks.NewMockGateway(), cache, testClock())
	ctx := context.Background()

	if err := p.SetSelection(ctx, []int{2, 3}); err != nil {
		t.Fatalf("set selection failed: %v", err)
	}
	first := cache.Invalidations()

	if err := p.SetSelection(ctx, []int{2, 3}); err != nil {
		t.Fatalf("set selection failed: %v", err)
	}
	if cache.Invalidations() != first {
		t.Error("unchanged selection must not invalidate")
	}

	if err := p.SetSelection(ctx, []int{2}); err != nil {
		t.Fatalf("set selection failed: %v", err)
	}
	if cache.Invalidations() != first+1 {
		t.Error("changed selection must invalidate exactly once")
	}
}

func TestPreloader_SelectionFiltersDetailQuery(t *testing.T) {
	gw := mocks.NewMockGateway()
	gw.ExecuteFunc = func(ctx context.Context, queryText string) ([]domain.Row, error) {
		return nil, nil
	}
	p := newPreloader(gw, mocks.NewMockDetailCache(), testClock())
	ctx := context.Background()

	if err := p.SetSelection(ctx, []int{domain.LocalCurrencyIdentifier, 2}); err != nil {
		t.Fatalf("set selection failed: %v", err)
	}
	p.Preload(ctx, []string{"A-1"})

	queries := gw.Queries()
	if len(queries) != 1 {
		t.Fatalf("expected 1 query, got %d", len(queries))
	}
	if !strings.Contains(queries[0], "t.currency_channel IN (0, 2)") {
		t.Errorf("expected selection-filtered detail query, got:\n%s", queries[0])
	}
}

func TestPreloader_RefreshDetailBypassesCacheAndThrottle(t *testing.T) {
	gw := mocks.NewMockGateway()
	gw.ExecuteFunc = func(ctx context.Context, queryText string) ([]domain.Row, error) {
		if strings.Contains(queryText, "'A-1'") {
			return detailGatewayRows("A-1"), nil
		}
		return nil, nil
	}
	cache := mocks.NewMockDetailCache()
	_ = cache.Put(context.Background(), "A-1", []domain.DetailRow{{AccountID: "A-1", DocumentNumber: "STALE"}})
	clock := testClock()

	p := newPreloader(gw, cache, clock)
	ctx := context.Background()

	// Exhaust the throttle window with a preload cycle first.
	p.Preload(ctx, []string{"A-2"})

	rows, err := p.RefreshDetail(ctx, "A-1")
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if len(rows) != 1 || rows[0].DocumentNumber != "DOC-A-1" {
		t.Errorf("expected fresh rows, got %v", rows)
	}

	cached, ok, _ := cache.Get(ctx, "A-1")
	if !ok || len(cached) != 1 || cached[0].DocumentNumber != "DOC-A-1" {
		t.Error("expected refresh to write through the cache")
	}
}

func TestPreloader_RefreshDetailDoesNotCacheAcrossSelectionChange(t *testing.T) {
	gw := mocks.NewMockGateway()
	cache := mocks.NewMockDetailCache()
	p := newPreloader(gw, cache, testClock())
	ctx := context.Background()

	gw.ExecuteFunc = func(c context.Context, queryText string) ([]domain.Row, error) {
		if err := p.SetSelection(ctx, []int{3}); err != nil {
			t.Errorf("set selection failed: %v", err)
		}
		return detailGatewayRows("A-1"), nil
	}

	rows, err := p.RefreshDetail(ctx, "A-1")
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("expected rows returned to the caller, got %v", rows)
	}

	if _, ok, _ := cache.Get(ctx, "A-1"); ok {
		t.Error("stale refresh result must not be cached")
	}
}

func TestPreloader_RefreshDetailPropagatesErrors(t *testing.T) {
	gw := mocks.NewMockGateway()
	gatewayErr := errors.New("proxy down")
	gw.ExecuteFunc = func(ctx context.Context, queryText string) ([]domain.Row, error) {
		return nil, gatewayErr
	}

	p := newPreloader(gw, mocks.NewMockDetailCache(), testClock())

	_, err := p.RefreshDetail(context.Background(), "A-1")
	if !errors.Is(err, gatewayErr) {
		t.Errorf("expected gateway error surfaced, got %v", err)
	}
}
