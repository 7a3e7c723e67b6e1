package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DetailRow is one ledger transaction line for an account. Exactly one
// of Debit/Credit is non-zero per row. Foreign-currency rows carry the
// native amount in Debit/Credit and always the local equivalent in
// LocalAmount.
type DetailRow struct {
	AccountID      string
	Date           time.Time
	DocumentNumber string
	DocumentType   string
	Description    string
	Debit          decimal.Decimal
	Credit         decimal.Decimal
	CurrencyCode   string
	Rate           decimal.Decimal
	LocalAmount    decimal.Decimal
	Cancelled      bool
}
