package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/fxreport/internal/domain"
	"github.com/iho/fxreport/internal/query"
	"github.com/iho/fxreport/internal/usecase"
	"github.com/iho/fxreport/internal/usecase/mocks"
)

func newBalanceFixture(gw *mocks.MockGateway, cache *mocks.MockDetailCache) (*usecase.BalanceUseCase, *usecase.Preloader) {
	catalog := domain.DefaultCatalog()
	preloader := usecase.NewPreloader(
		query.NewDetailBuilder(catalog),
		gw,
		cache,
		mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
		&mocks.MockIDGenerator{},
		zerolog.Nop(),
		nil,
		usecase.PreloadConfig{},
	)
	uc := usecase.NewBalanceUseCase(catalog, query.NewBalanceBuilder(catalog), gw, preloader, zerolog.Nop())
	return uc, preloader
}

func TestBalanceUseCase_GetBalancesPivoted(t *testing.T) {
	gw := mocks.NewMockGateway()
	gw.ExecuteFunc = func(ctx context.Context, queryText string) ([]domain.Row, error) {
		return []domain.Row{
			{
				"AccountID":   "A-1",
				"AccountCode": "120.01",
				"AccountName": "Receivables",
				"USD_Debit":   json.Number("150.00"),
				"USD_Credit":  json.Number("50.00"),
				"EUR_Debit":   nil,
				"EUR_Credit":  nil,
			},
		}, nil
	}

	uc, _ := newBalanceFixture(gw, mocks.NewMockDetailCache())

	rows, err := uc.GetBalances(context.Background(), []int{2, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	usd := rows[0].Channels["USD"]
	if !usd.HasActivity {
		t.Error("expected USD activity")
	}
	if !usd.Balance.Equal(decimal.RequireFromString("100")) {
		t.Errorf("expected USD balance 100, got %s", usd.Balance)
	}
	if usd.Indicator != domain.DebitIndicator {
		t.Errorf("expected debit indicator, got %q", usd.Indicator)
	}

	eur := rows[0].Channels["EUR"]
	if eur.HasActivity {
		t.Error("NULL debit and credit must mean no activity, not zero")
	}
}

func TestBalanceUseCase_ZeroBalanceIsActivity(t *testing.T) {
	gw := mocks.NewMockGateway()
	gw.ExecuteFunc = func(ctx context.Context, queryText string) ([]domain.Row, error) {
		return []domain.Row{
			{
				"AccountID":   "A-1",
				"AccountCode": "120.01",
				"AccountName": "Receivables",
				"USD_Debit":   json.Number("75.00"),
				"USD_Credit":  json.Number("75.00"),
				"EUR_Debit":   nil,
				"EUR_Credit":  nil,
			},
		}, nil
	}

	uc, _ := newBalanceFixture(gw, mocks.NewMockDetailCache())

	rows, err := uc.GetBalances(context.Background(), []int{2, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	usd := rows[0].Channels["USD"]
	if !usd.HasActivity {
		t.Error("explicit zero balance must still be activity")
	}
	if !usd.Balance.IsZero() {
		t.Errorf("expected zero balance, got %s", usd.Balance)
	}
	if usd.Indicator != "" {
		t.Errorf("expected empty indicator for zero balance, got %q", usd.Indicator)
	}
}

func TestBalanceUseCase_LocalOnlyUsesSimpleQuery(t *testing.T) {
	gw := mocks.NewMockGateway()
	gw.ExecuteFunc = func(ctx context.Context, queryText string) ([]domain.Row, error) {
		return []domain.Row{
			{
				"AccountID":   "A-1",
				"AccountCode": "100.01",
				"AccountName": "Cash",
				"Debit":       json.Number("500.00"),
				"Credit":      json.Number("620.00"),
			},
		}, nil
	}

	uc, _ := newBalanceFixture(gw, mocks.NewMockDetailCache())

	rows, err := uc.GetBalances(context.Background(), []int{domain.LocalCurrencyIdentifier})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	queries := gw.Queries()
	if len(queries) != 1 {
		t.Fatalf("expected 1 query, got %d", len(queries))
	}
	if strings.Contains(queries[0], "CHANNEL_") {
		t.Error("local-only selection must not use the pivoted query")
	}

	try := rows[0].Channels["TRY"]
	if try.Indicator != domain.CreditIndicator {
		t.Errorf("expected credit indicator, got %q", try.Indicator)
	}
	if !try.Balance.Equal(decimal.RequireFromString("-120")) {
		t.Errorf("expected balance -120, got %s", try.Balance)
	}
}

func TestBalanceUseCase_EmptySelectionExpandsToCatalog(t *testing.T) {
	gw := mocks.NewMockGateway()
	uc, preloader := newBalanceFixture(gw, mocks.NewMockDetailCache())

	_, err := uc.GetBalances(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	queries := gw.Queries()
	if len(queries) != 1 {
		t.Fatalf("expected 1 query, got %d", len(queries))
	}
	// Full catalog: local plus every foreign channel.
	for _, col := range []string{"TRY_Balance", "USD_Balance", "EUR_Balance", "GBP_Balance", "CHF_Balance", "JPY_Balance"} {
		if !strings.Contains(queries[0], col) {
			t.Errorf("expected column %s in expanded query", col)
		}
	}

	sel := preloader.Selection()
	if len(sel) != 6 {
		t.Errorf("expected full catalog selection recorded, got %v", sel)
	}
}

func TestBalanceUseCase_SelectionChangeInvalidatesDetailCache(t *testing.T) {
	gw := mocks.NewMockGateway()
	cache := mocks.NewMockDetailCache()
	uc, _ := newBalanceFixture(gw, cache)

	ctx := context.Background()

	if _, err := uc.GetBalances(ctx, []int{2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := cache.Invalidations()

	// Same selection again: no invalidation.
	if _, err := uc.GetBalances(ctx, []int{2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.Invalidations() != first {
		t.Error("unchanged selection must not invalidate the detail cache")
	}

	// Changed selection: one more invalidation.
	if _, err := uc.GetBalances(ctx, []int{2, 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.Invalidations() != first+1 {
		t.Error("changed selection must invalidate the detail cache")
	}
}

func TestBalanceUseCase_UnknownChannel(t *testing.T) {
	gw := mocks.NewMockGateway()
	uc, _ := newBalanceFixture(gw, mocks.NewMockDetailCache())

	_, err := uc.GetBalances(context.Background(), []int{2, 42})
	if !errors.Is(err, domain.ErrUnknownChannel) {
		t.Errorf("expected ErrUnknownChannel, got %v", err)
	}
	if len(gw.Queries()) != 0 {
		t.Error("expected no gateway call for invalid selection")
	}
}

func TestBalanceUseCase_GatewayErrorPropagates(t *testing.T) {
	gw := mocks.NewMockGateway()
	gatewayErr := errors.New("proxy down")
	gw.ExecuteFunc = func(ctx context.Context, queryText string) ([]domain.Row, error) {
		return nil, gatewayErr
	}

	uc, _ := newBalanceFixture(gw, mocks.NewMockDetailCache())

	_, err := uc.GetBalances(context.Background(), []int{2})
	if !errors.Is(err, gatewayErr) {
		t.Errorf("expected gateway error surfaced, got %v", err)
	}
}

func TestBalanceUseCase_Currencies(t *testing.T) {
	uc, _ := newBalanceFixture(mocks.NewMockGateway(), mocks.NewMockDetailCache())

	channels := uc.Currencies(context.Background())
	if len(channels) != 6 {
		t.Fatalf("expected 6 catalog entries, got %d", len(channels))
	}
	if channels[0].Code != "TRY" || !channels[0].IsLocal() {
		t.Errorf("expected local currency first, got %+v", channels[0])
	}
}
