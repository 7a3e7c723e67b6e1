package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/iho/fxreport/internal/domain"
)

// DetailParams selects the transaction lines for a detail report.
// AccountIDs is required; Channels and the date bounds are optional
// (zero values mean unfiltered).
type DetailParams struct {
	AccountIDs []string
	Channels   []int
	From       time.Time
	To         time.Time
}

// DetailBuilder emits the row-level transaction query. It supports
// batching several accounts into one IN predicate so a whole visible
// page costs a single network round-trip; every row is tagged with its
// owning account for regrouping.
type DetailBuilder struct {
	catalog *domain.Catalog
}

// NewDetailBuilder creates a DetailBuilder over the given catalog.
func NewDetailBuilder(catalog *domain.Catalog) *DetailBuilder {
	return &DetailBuilder{catalog: catalog}
}

// Build emits the detail query for the given accounts and filters.
func (b *DetailBuilder) Build(p DetailParams) (string, error) {
	if len(p.AccountIDs) == 0 {
		return "", domain.ErrNoAccounts
	}
	for _, id := range p.AccountIDs {
		if strings.TrimSpace(id) == "" {
			return "", domain.ErrEmptyAccountID
		}
	}

	channels, err := b.resolveFilter(p.Channels)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("SELECT t.account_id AS AccountID,\n")
	sb.WriteString("       t.trx_date AS TrxDate,\n")
	sb.WriteString("       t.document_no AS DocumentNo,\n")
	sb.WriteString(documentTypeCase())
	sb.WriteString("       t.description AS Description,\n")

	// Local rows report the signed local amount split into debit and
	// credit; foreign rows report the native amount instead. The local
	// equivalent always travels separately in LocalAmount.
	sb.WriteString(fmt.Sprintf("       CASE WHEN t.currency_channel = %d THEN (CASE WHEN t.amount > 0 THEN t.amount ELSE 0 END)\n", domain.LocalChannelID))
	sb.WriteString("            ELSE (CASE WHEN t.fc_amount > 0 THEN t.fc_amount ELSE 0 END) END AS Debit,\n")
	sb.WriteString(fmt.Sprintf("       CASE WHEN t.currency_channel = %d THEN (CASE WHEN t.amount < 0 THEN -t.amount ELSE 0 END)\n", domain.LocalChannelID))
	sb.WriteString("            ELSE (CASE WHEN t.fc_amount < 0 THEN -t.fc_amount ELSE 0 END) END AS Credit,\n")

	sb.WriteString(b.currencyCodeCase())
	sb.WriteString("       t.rate AS Rate,\n")
	sb.WriteString("       t.amount AS LocalAmount,\n")
	sb.WriteString("       t.cancelled AS Cancelled\n")
	sb.WriteString("FROM ledger_transactions t\n")
	sb.WriteString(fmt.Sprintf("WHERE t.account_id IN (%s)\n", accountList(p.AccountIDs)))

	if len(channels) > 0 {
		sb.WriteString(fmt.Sprintf("  AND t.currency_channel IN (%s)\n", channelList(channels)))
	}
	if !p.From.IsZero() {
		sb.WriteString(fmt.Sprintf("  AND t.trx_date >= %s\n", formatDate(p.From)))
	}
	if !p.To.IsZero() {
		sb.WriteString(fmt.Sprintf("  AND t.trx_date <= %s\n", formatDate(p.To)))
	}

	sb.WriteString("ORDER BY t.trx_date ASC, t.document_no ASC")
	return sb.String(), nil
}

// resolveFilter validates an optional channel filter. Empty means no
// filtering at all.
func (b *DetailBuilder) resolveFilter(ids []int) ([]resolvedChannel, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var out []resolvedChannel
	seen := make(map[int]struct{}, len(ids))
	for _, id := range dedupChannels(ids) {
		ch, ok := b.catalog.ByIdentifier(id)
		if !ok {
			return nil, fmt.Errorf("%w: identifier %d", domain.ErrUnknownChannel, id)
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

// documentTypeCase generates the document classification expression
// from the fixed (module, code) table.
func documentTypeCase() string {
	var sb strings.Builder
	sb.WriteString("       CASE")
	for _, dc := range domain.DocumentClasses() {
		sb.WriteString(fmt.Sprintf("\n            WHEN t.module = %s AND t.trx_code = %d THEN %s",
			quoteLiteral(dc.Module), dc.Code, quoteLiteral(dc.Label)))
	}
	sb.WriteString(fmt.Sprintf("\n            ELSE %s END AS DocumentType,\n", quoteLiteral(domain.DefaultDocumentLabel)))
	return sb.String()
}

// currencyCodeCase maps the row's channel id back to its display code.
func (b *DetailBuilder) currencyCodeCase() string {
	var sb strings.Builder
	sb.WriteString("       CASE t.currency_channel")
	for _, ch := range b.catalog.Channels() {
		sb.WriteString(fmt.Sprintf("\n            WHEN %d THEN %s", domain.ToChannel(ch.Identifier), quoteLiteral(ch.Code)))
	}
	sb.WriteString("\n            ELSE '' END AS CurrencyCode,\n")
	return sb.String()
}

func accountList(ids []string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = quoteLiteral(id)
	}
	return strings.Join(parts, ", ")
}
