package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/iho/fxreport/internal/domain"
	"github.com/iho/fxreport/internal/query"
)

// BalanceUseCase serves the multi-currency balance report. It owns the
// translation from a currency selection to the aggregation query and
// keeps the Preloader's active selection in sync, which drives detail
// cache invalidation.
type BalanceUseCase struct {
	catalog   *domain.Catalog
	builder   *query.BalanceBuilder
	gateway   Gateway
	preloader *Preloader
	logger    zerolog.Logger
}

// NewBalanceUseCase creates a new BalanceUseCase.
func NewBalanceUseCase(
	catalog *domain.Catalog,
	builder *query.BalanceBuilder,
	gateway Gateway,
	preloader *Preloader,
	logger zerolog.Logger,
) *BalanceUseCase {
	return &BalanceUseCase{
		catalog:   catalog,
		builder:   builder,
		gateway:   gateway,
		preloader: preloader,
		logger:    logger,
	}
}

// GetBalances fetches the balance report for the selected channels.
// An empty selection means no filtering and expands to the full
// catalog. Recording the selection invalidates the detail cache when
// it changed, strictly before any detail rows for the new selection
// can be cached.
func (uc *BalanceUseCase) GetBalances(ctx context.Context, channels []int) ([]domain.BalanceRow, error) {
	selection := channels
	if len(selection) == 0 {
		selection = uc.catalog.Identifiers()
	}

	queryText, err := uc.builder.Build(query.BalanceParams{Channels: selection})
	if err != nil {
		return nil, err
	}

	if err := uc.preloader.SetSelection(ctx, selection); err != nil {
		return nil, err
	}

	rows, err := uc.gateway.Execute(ctx, queryText)
	if err != nil {
		uc.logger.Error().Err(err).Ints("channels", selection).Msg("balance fetch failed")
		return nil, err
	}

	return uc.mapRows(selection, rows)
}

// Currencies returns the catalog in load order.
func (uc *BalanceUseCase) Currencies(ctx context.Context) []domain.CurrencyChannel {
	return uc.catalog.Channels()
}

func (uc *BalanceUseCase) mapRows(selection []int, rows []domain.Row) ([]domain.BalanceRow, error) {
	codes, localOnly, err := uc.selectionCodes(selection)
	if err != nil {
		return nil, err
	}

	out := make([]domain.BalanceRow, 0, len(rows))
	for _, r := range rows {
		if localOnly {
			out = append(out, balanceRowFromSimple(r, codes[0]))
		} else {
			out = append(out, balanceRowFromPivoted(r, codes))
		}
	}
	return out, nil
}

// selectionCodes resolves the selected identifiers to their display
// codes, mirroring the builder's dedup, and reports whether the
// selection is exactly the single local channel.
func (uc *BalanceUseCase) selectionCodes(selection []int) ([]string, bool, error) {
	var codes []string
	seen := make(map[int]struct{}, len(selection))
	for _, id := range selection {
		ch, ok := uc.catalog.ByIdentifier(id)
		if !ok {
			return nil, false, domain.ErrUnknownChannel
		}
		channelID := domain.ToChannel(id)
		if _, dup := seen[channelID]; dup {
			continue
		}
		seen[channelID] = struct{}{}
		codes = append(codes, ch.Code)
	}

	_, localSelected := seen[domain.LocalChannelID]
	return codes, len(codes) == 1 && localSelected, nil
}
