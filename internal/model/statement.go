package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementLine is a reconciliation input: a bank statement line or a
// ledger line for the reconciled account. Matched is only changed by the
// reconciliation matcher.
type StatementLine struct {
	ID          string
	Date        time.Time
	Description string
	Amount      decimal.Decimal // negative = outflow, positive = inflow
	Reference   string
	Type        string // bank transaction type (ACH_DEBIT, etc.), empty for ledger lines
	Matched     bool
}
