package query

import (
	"fmt"
	"strings"

	"github.com/iho/fxreport/internal/domain"
)

// BalanceParams selects the currency channels for a balance report.
// Channels holds catalog identifiers; an empty selection is a caller
// error here — "all channels" is expanded upstream before building.
type BalanceParams struct {
	Channels []int
}

// BalanceBuilder emits the aggregation query for the multi-currency
// balance report. Selections of exactly the local channel produce a
// fixed single-currency query; anything else produces a dynamically
// pivoted query with one debit/credit/balance column set per channel.
type BalanceBuilder struct {
	catalog *domain.Catalog
}

// NewBalanceBuilder creates a BalanceBuilder over the given catalog.
func NewBalanceBuilder(catalog *domain.Catalog) *BalanceBuilder {
	return &BalanceBuilder{catalog: catalog}
}

// resolvedChannel is one selected channel after validation and
// identifier mapping.
type resolvedChannel struct {
	channelID int
	code      string
}

// resolve validates the selection against the catalog, maps catalog
// identifiers to channel ids and deduplicates. Duplicate identifiers
// would synthesize duplicate pivot columns, so they are removed before
// any column name is generated.
func (b *BalanceBuilder) resolve(ids []int) ([]resolvedChannel, error) {
	if len(ids) == 0 {
		return nil, domain.ErrEmptySelection
	}

	var out []resolvedChannel
	seen := make(map[int]struct{}, len(ids))
	for _, id := range dedupChannels(ids) {
		ch, ok := b.catalog.ByIdentifier(id)
		if !ok {
			return nil, fmt.Errorf("%w: identifier %d", domain.ErrUnknownChannel, id)
		}
		if err := validateCode(ch.Code); err != nil {
			return nil, err
		}
		channelID := domain.ToChannel(id)
		if _, ok := seen[channelID]; ok {
			continue
		}
		seen[channelID] = struct{}{}
		out = append(out, resolvedChannel{channelID: channelID, code: ch.Code})
	}
	return out, nil
}

// Build emits the balance report query for the selection.
func (b *BalanceBuilder) Build(p BalanceParams) (string, error) {
	channels, err := b.resolve(p.Channels)
	if err != nil {
		return "", err
	}

	if len(channels) == 1 && channels[0].channelID == domain.LocalChannelID {
		return b.buildSimple(), nil
	}
	return b.buildPivoted(channels), nil
}

// buildSimple is the single-currency aggregation: one signed balance
// per account, local channel only.
func (b *BalanceBuilder) buildSimple() string {
	var sb strings.Builder
	sb.WriteString("SELECT a.account_id AS AccountID,\n")
	sb.WriteString("       a.account_code AS AccountCode,\n")
	sb.WriteString("       a.account_name AS AccountName,\n")
	sb.WriteString("       SUM(CASE WHEN t.amount > 0 THEN t.amount ELSE 0 END) AS Debit,\n")
	sb.WriteString("       SUM(CASE WHEN t.amount < 0 THEN -t.amount ELSE 0 END) AS Credit,\n")
	sb.WriteString("       SUM(t.amount) AS Balance,\n")
	sb.WriteString(fmt.Sprintf("       CASE WHEN SUM(t.amount) > 0 THEN '%s' WHEN SUM(t.amount) < 0 THEN '%s' ELSE '' END AS Indicator\n",
		domain.DebitIndicator, domain.CreditIndicator))
	sb.WriteString("FROM ledger_transactions t\n")
	sb.WriteString("JOIN accounts a ON a.account_id = t.account_id\n")
	sb.WriteString(fmt.Sprintf("WHERE t.cancelled = 0 AND t.currency_channel = %d\n", domain.LocalChannelID))
	sb.WriteString("GROUP BY a.account_id, a.account_code, a.account_name\n")
	sb.WriteString("HAVING SUM(CASE WHEN t.amount > 0 THEN t.amount ELSE 0 END) <> 0\n")
	sb.WriteString("    OR SUM(CASE WHEN t.amount < 0 THEN -t.amount ELSE 0 END) <> 0\n")
	sb.WriteString("ORDER BY a.account_name")
	return sb.String()
}

// buildPivoted spreads debit/credit/balance into one column set per
// selected channel. The inner stage sums native amounts per account
// and channel; SUM over a channel with no rows yields NULL, which is
// how "no activity" stays distinct from an explicit zero.
func (b *BalanceBuilder) buildPivoted(channels []resolvedChannel) string {
	var sb strings.Builder

	sb.WriteString("SELECT p.AccountID, p.AccountCode, p.AccountName")
	for _, ch := range channels {
		debitCol := pivotColumn(ch.channelID, "Debit")
		creditCol := pivotColumn(ch.channelID, "Credit")
		sb.WriteString(fmt.Sprintf(",\n       p.%s AS %s_Debit", debitCol, ch.code))
		sb.WriteString(fmt.Sprintf(",\n       p.%s AS %s_Credit", creditCol, ch.code))
		sb.WriteString(fmt.Sprintf(",\n       p.%s - p.%s AS %s_Balance", debitCol, creditCol, ch.code))
		sb.WriteString(fmt.Sprintf(",\n       CASE WHEN COALESCE(p.%s, 0) - COALESCE(p.%s, 0) > 0 THEN '%s'",
			debitCol, creditCol, domain.DebitIndicator))
		sb.WriteString(fmt.Sprintf(" WHEN COALESCE(p.%s, 0) - COALESCE(p.%s, 0) < 0 THEN '%s'",
			debitCol, creditCol, domain.CreditIndicator))
		sb.WriteString(fmt.Sprintf(" ELSE '' END AS %s_Indicator", ch.code))
	}

	sb.WriteString("\nFROM (\n")
	sb.WriteString("    SELECT t.account_id AS AccountID,\n")
	sb.WriteString("           a.account_code AS AccountCode,\n")
	sb.WriteString("           a.account_name AS AccountName")
	for _, ch := range channels {
		sb.WriteString(fmt.Sprintf(",\n           SUM(CASE WHEN t.currency_channel = %d THEN (CASE WHEN t.fc_amount > 0 THEN t.fc_amount ELSE 0 END) END) AS %s",
			ch.channelID, pivotColumn(ch.channelID, "Debit")))
		sb.WriteString(fmt.Sprintf(",\n           SUM(CASE WHEN t.currency_channel = %d THEN (CASE WHEN t.fc_amount < 0 THEN -t.fc_amount ELSE 0 END) END) AS %s",
			ch.channelID, pivotColumn(ch.channelID, "Credit")))
	}
	sb.WriteString("\n    FROM ledger_transactions t\n")
	sb.WriteString("    JOIN accounts a ON a.account_id = t.account_id\n")
	sb.WriteString(fmt.Sprintf("    WHERE t.cancelled = 0 AND t.currency_channel IN (%s)\n", channelList(channels)))
	sb.WriteString("    GROUP BY t.account_id, a.account_code, a.account_name\n")
	sb.WriteString(") p\n")

	// Accounts stay in the report when they have activity in any of
	// the selected channels, not all of them.
	sb.WriteString("WHERE ")
	for i, ch := range channels {
		if i > 0 {
			sb.WriteString("\n   OR ")
		}
		sb.WriteString(fmt.Sprintf("COALESCE(p.%s, 0) <> 0 OR COALESCE(p.%s, 0) <> 0",
			pivotColumn(ch.channelID, "Debit"), pivotColumn(ch.channelID, "Credit")))
	}
	sb.WriteString("\nORDER BY p.AccountName")

	return sb.String()
}

// pivotColumn synthesizes the inner-stage column name for one
// (channel, direction) pair.
func pivotColumn(channelID int, direction string) string {
	return fmt.Sprintf("CHANNEL_%d_%s", channelID, direction)
}

func channelList(channels []resolvedChannel) string {
	parts := make([]string, len(channels))
	for i, ch := range channels {
		parts[i] = fmt.Sprintf("%d", ch.channelID)
	}
	return strings.Join(parts, ", ")
}
