package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side is one side of a double entry.
type Side string

const (
	Debit  Side = "debit"
	Credit Side = "credit"
)

// JournalEntry is the atomic double-entry unit: Amount is debited to one
// account and credited to another.
type JournalEntry struct {
	ID              string          `validate:"required"` // "YYYY-MM-NNN"
	Date            time.Time       `validate:"required"`
	Description     string
	DebitAccountID  int             `validate:"required,nefield=CreditAccountID"`
	CreditAccountID int             `validate:"required"`
	Amount          decimal.Decimal // must be > 0
}

// DerivedLine is one side of a JournalEntry as shown in a general ledger.
// Every entry yields exactly two lines; they are never persisted.
type DerivedLine struct {
	LegID          string // entry id + "a" (debit) or "b" (credit)
	EntryID        string
	Date           time.Time
	AccountID      int
	Description    string
	Debit          decimal.Decimal // zero if credit side
	Credit         decimal.Decimal // zero if debit side
	RunningBalance decimal.Decimal // signed, natural side positive
}
