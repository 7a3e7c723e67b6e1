package domain

import (
	"github.com/shopspring/decimal"
)

// Balance sign indicators. The ledger follows the credit/debit suffix
// convention: a debit-heavy balance carries (B), a credit-heavy one (A).
const (
	DebitIndicator  = "(B)"
	CreditIndicator = "(A)"
)

// ChannelAmount holds the debit/credit/balance triple for one currency
// channel on a balance row. Balance is always Debit − Credit; there is
// no independent source of truth for it.
type ChannelAmount struct {
	Debit     decimal.Decimal
	Credit    decimal.Decimal
	Balance   decimal.Decimal
	Indicator string

	// HasActivity distinguishes a channel with explicit zero activity
	// from one with no rows at all. A no-activity channel renders
	// empty, an explicit zero renders "0.00".
	HasActivity bool
}

// NewChannelAmount builds a ChannelAmount from its debit and credit
// sums, deriving the balance and sign indicator.
func NewChannelAmount(debit, credit decimal.Decimal) ChannelAmount {
	balance := debit.Sub(credit)
	return ChannelAmount{
		Debit:       debit,
		Credit:      credit,
		Balance:     balance,
		Indicator:   indicatorFor(balance),
		HasActivity: true,
	}
}

func indicatorFor(balance decimal.Decimal) string {
	switch balance.Sign() {
	case 1:
		return DebitIndicator
	case -1:
		return CreditIndicator
	default:
		return ""
	}
}

// BalanceRow is one row of the balance report: one account with a
// ChannelAmount per selected currency channel, keyed by currency code.
type BalanceRow struct {
	AccountID   string
	AccountCode string
	AccountName string
	Channels    map[string]ChannelAmount
}
