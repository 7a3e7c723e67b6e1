package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fxreport/internal/domain"
)

// ChannelAmountResponse is one currency column set of a balance row.
// Amounts are omitted entirely for channels without activity, matching
// the null-not-zero convention of the pivoted query.
type ChannelAmountResponse struct {
	Debit       *decimal.Decimal `json:"debit,omitempty"`
	Credit      *decimal.Decimal `json:"credit,omitempty"`
	Balance     *decimal.Decimal `json:"balance,omitempty"`
	Indicator   string           `json:"indicator,omitempty"`
	HasActivity bool             `json:"has_activity"`
}

// BalanceRowResponse is one account row of the balance report.
type BalanceRowResponse struct {
	AccountID   string                           `json:"account_id"`
	AccountCode string                           `json:"account_code"`
	AccountName string                           `json:"account_name"`
	Channels    map[string]ChannelAmountResponse `json:"channels"`
}

// BalanceRowFromDomain converts a domain balance row to a response.
func BalanceRowFromDomain(row domain.BalanceRow) BalanceRowResponse {
	channels := make(map[string]ChannelAmountResponse, len(row.Channels))
	for code, amt := range row.Channels {
		resp := ChannelAmountResponse{HasActivity: amt.HasActivity}
		if amt.HasActivity {
			debit, credit, balance := amt.Debit, amt.Credit, amt.Balance
			resp.Debit = &debit
			resp.Credit = &credit
			resp.Balance = &balance
			resp.Indicator = amt.Indicator
		}
		channels[code] = resp
	}
	return BalanceRowResponse{
		AccountID:   row.AccountID,
		AccountCode: row.AccountCode,
		AccountName: row.AccountName,
		Channels:    channels,
	}
}

// BalancesResponse is the balance report payload.
type BalancesResponse struct {
	Rows  []BalanceRowResponse `json:"rows"`
	Total int                  `json:"total"`
}

// BalanceRowsFromDomain converts domain balance rows to responses.
func BalanceRowsFromDomain(rows []domain.BalanceRow) []BalanceRowResponse {
	out := make([]BalanceRowResponse, len(rows))
	for i, row := range rows {
		out[i] = BalanceRowFromDomain(row)
	}
	return out
}

// DetailRowResponse is one transaction line of the detail report.
type DetailRowResponse struct {
	AccountID      string          `json:"account_id"`
	Date           time.Time       `json:"date"`
	DocumentNumber string          `json:"document_number"`
	DocumentType   string          `json:"document_type"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	CurrencyCode   string          `json:"currency_code"`
	Rate           decimal.Decimal `json:"rate"`
	LocalAmount    decimal.Decimal `json:"local_amount"`
	Cancelled      bool            `json:"cancelled"`
}

// DetailResponse is the detail payload for one account.
type DetailResponse struct {
	AccountID string              `json:"account_id"`
	Cached    bool                `json:"cached"`
	Rows      []DetailRowResponse `json:"rows"`
}

// DetailRowsFromDomain converts domain detail rows to responses.
func DetailRowsFromDomain(rows []domain.DetailRow) []DetailRowResponse {
	out := make([]DetailRowResponse, len(rows))
	for i, r := range rows {
		out[i] = DetailRowResponse{
			AccountID:      r.AccountID,
			Date:           r.Date,
			DocumentNumber: r.DocumentNumber,
			DocumentType:   r.DocumentType,
			Description:    r.Description,
			Debit:          r.Debit,
			Credit:         r.Credit,
			CurrencyCode:   r.CurrencyCode,
			Rate:           r.Rate,
			LocalAmount:    r.LocalAmount,
			Cancelled:      r.Cancelled,
		}
	}
	return out
}

// CurrencyResponse is one catalog entry.
type CurrencyResponse struct {
	Identifier  int    `json:"identifier"`
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
}

// CurrenciesFromDomain converts catalog entries to responses.
func CurrenciesFromDomain(channels []domain.CurrencyChannel) []CurrencyResponse {
	out := make([]CurrencyResponse, len(channels))
	for i, ch := range channels {
		out[i] = CurrencyResponse{
			Identifier:  ch.Identifier,
			Code:        ch.Code,
			DisplayName: ch.DisplayName,
		}
	}
	return out
}

// ErrorResponse is the error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
