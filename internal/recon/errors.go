package recon

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrNothingToMatch is returned when either collection is empty.
	ErrNothingToMatch = errors.New("nothing to match: bank and ledger lines are both required")
	// ErrSelectionRequired is returned when a manual match is missing a line.
	ErrSelectionRequired = errors.New("select one bank line and one ledger line")
	// ErrLineNotFound is returned for a line id not in the session.
	ErrLineNotFound = errors.New("line not found")
	// ErrAlreadyMatched is returned when either line of a manual match is taken.
	ErrAlreadyMatched = errors.New("line already matched")
	// ErrFinalized is returned by every mutating call after Finalize.
	ErrFinalized = errors.New("reconciliation already finalized")
)

// AmountMismatchError is returned by a manual match whose amounts differ in
// magnitude and which was not confirmed. Nothing is marked.
type AmountMismatchError struct {
	BankID     string
	LedgerID   string
	BankAmount decimal.Decimal
	LedgerAmt  decimal.Decimal
}

func (e *AmountMismatchError) Error() string {
	return fmt.Sprintf("amounts differ: bank %s is %s, ledger %s is %s (confirm to match anyway)",
		e.BankID, e.BankAmount.StringFixed(2), e.LedgerID, e.LedgerAmt.StringFixed(2))
}

// RejectionError is returned by Finalize while the totals disagree.
type RejectionError struct {
	Variance decimal.Decimal
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("cannot finalize: variance is %s", e.Variance.StringFixed(2))
}
