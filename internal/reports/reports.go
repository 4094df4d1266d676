// Package reports builds financial statements from journal entries.
//
// Every generator is a pure function of its inputs: nothing is cached
// between calls, and trial balance figures (unsigned) are never reused for
// statements (signed).
package reports

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/reckon/internal/ledger"
	"github.com/cleared-dev/reckon/internal/model"
)

// DefaultTolerance is the imbalance below which a report counts as balanced.
var DefaultTolerance = decimal.New(1, -2)

// AccountLine is one account's amount in a report section.
type AccountLine struct {
	AccountID int
	Name      string
	Type      model.AccountType
	Amount    decimal.Decimal
}

// Section is a titled group of lines with their total.
type Section struct {
	Title string
	Lines []AccountLine
	Total decimal.Decimal
}

func newSection(title string, lines []AccountLine) Section {
	s := Section{Title: title, Lines: lines, Total: decimal.Zero}
	for _, l := range lines {
		s.Total = s.Total.Add(l.Amount)
	}
	return s
}

func tolerance(t decimal.Decimal) decimal.Decimal {
	if t.IsPositive() {
		return t
	}
	return DefaultTolerance
}

// within reports whether |diff| < tol.
func within(diff, tol decimal.Decimal) bool {
	return diff.Abs().LessThan(tolerance(tol))
}

func accountLine(chart ledger.Chart, accountID int, amount decimal.Decimal) AccountLine {
	acct, _ := chart.Resolve(accountID)
	return AccountLine{AccountID: accountID, Name: acct.Name, Type: acct.Type, Amount: amount}
}
