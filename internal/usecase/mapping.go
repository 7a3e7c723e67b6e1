package usecase

import (
	"github.com/iho/fxreport/internal/domain"
)

// detailRowFromRow maps one normalized gateway row onto a DetailRow
// using the column aliases the detail query emits.
func detailRowFromRow(r domain.Row) domain.DetailRow {
	return domain.DetailRow{
		AccountID:      r.String("AccountID"),
		Date:           r.Time("TrxDate"),
		DocumentNumber: r.String("DocumentNo"),
		DocumentType:   r.String("DocumentType"),
		Description:    r.String("Description"),
		Debit:          r.Decimal("Debit"),
		Credit:         r.Decimal("Credit"),
		CurrencyCode:   r.String("CurrencyCode"),
		Rate:           r.Decimal("Rate"),
		LocalAmount:    r.Decimal("LocalAmount"),
		Cancelled:      r.Bool("Cancelled"),
	}
}

// groupDetailRows buckets fetched rows by owning account. Every
// requested account gets an entry: accounts the store returned no rows
// for get an explicit empty slice so they are not re-fetched on the
// next cycle.
func groupDetailRows(requested []string, rows []domain.Row) map[string][]domain.DetailRow {
	entries := make(map[string][]domain.DetailRow, len(requested))
	for _, id := range requested {
		entries[id] = []domain.DetailRow{}
	}

	for _, r := range rows {
		dr := detailRowFromRow(r)
		if _, ok := entries[dr.AccountID]; !ok {
			// Row for an account outside the batch; keep it anyway.
			entries[dr.AccountID] = []domain.DetailRow{}
		}
		entries[dr.AccountID] = append(entries[dr.AccountID], dr)
	}
	return entries
}

// balanceRowFromSimple maps one row of the single-currency query.
func balanceRowFromSimple(r domain.Row, localCode string) domain.BalanceRow {
	return domain.BalanceRow{
		AccountID:   r.String("AccountID"),
		AccountCode: r.String("AccountCode"),
		AccountName: r.String("AccountName"),
		Channels: map[string]domain.ChannelAmount{
			localCode: domain.NewChannelAmount(r.Decimal("Debit"), r.Decimal("Credit")),
		},
	}
}

// balanceRowFromPivoted maps one row of the pivoted query. The balance
// is always recomputed as debit − credit; the query's own balance
// column is never the source of truth. A channel whose debit and
// credit cells are both NULL had no activity and stays empty rather
// than zero.
func balanceRowFromPivoted(r domain.Row, codes []string) domain.BalanceRow {
	row := domain.BalanceRow{
		AccountID:   r.String("AccountID"),
		AccountCode: r.String("AccountCode"),
		AccountName: r.String("AccountName"),
		Channels:    make(map[string]domain.ChannelAmount, len(codes)),
	}

	for _, code := range codes {
		debitKey := code + "_Debit"
		creditKey := code + "_Credit"

		if !r.Has(debitKey) && !r.Has(creditKey) {
			row.Channels[code] = domain.ChannelAmount{}
			continue
		}
		row.Channels[code] = domain.NewChannelAmount(r.Decimal(debitKey), r.Decimal(creditKey))
	}
	return row
}
