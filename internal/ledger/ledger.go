// Package ledger folds journal entries into account balances.
//
// Two views are kept apart on purpose: Activity holds unsigned debit and
// credit totals (what a trial balance prints), Balances holds signed balances
// where each account's natural side is positive (what statements print).
package ledger

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/reckon/internal/accounts"
	"github.com/cleared-dev/reckon/internal/id"
	"github.com/cleared-dev/reckon/internal/journal"
	"github.com/cleared-dev/reckon/internal/model"
	"github.com/cleared-dev/reckon/internal/period"
)

// Chart resolves account ids. *accounts.Registry satisfies it.
type Chart interface {
	Resolve(id int) (model.Account, error)
	Exists(id int) bool
}

// Balances maps account id to signed balance, natural side positive.
type Balances map[int]decimal.Decimal

// Get returns the balance for id, zero if the account had no activity.
func (b Balances) Get(id int) decimal.Decimal {
	return b[id]
}

// Totals holds unsigned debit and credit sums.
type Totals struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// Net returns Debit - Credit.
func (t Totals) Net() decimal.Decimal {
	return t.Debit.Sub(t.Credit)
}

// IsZero reports whether there was no activity.
func (t Totals) IsZero() bool {
	return t.Debit.IsZero() && t.Credit.IsZero()
}

// Check validates the posting invariants of every entry and returns them as
// a single journal.Errors value.
func Check(entries []model.JournalEntry, chart Chart) error {
	var verrs journal.Errors
	for _, e := range entries {
		verrs = append(verrs, journal.ValidatePosting(e, chart)...)
	}
	if len(verrs) > 0 {
		return fmt.Errorf("invalid journal entries: %w", verrs)
	}
	return nil
}

// SignedAmount returns amount as it affects the balance of an account of
// type t when posted on side.
func SignedAmount(t model.AccountType, side model.Side, amount decimal.Decimal) decimal.Decimal {
	if accounts.NaturalIncreaseSide(t) == side {
		return amount
	}
	return amount.Neg()
}

// Accumulate folds the entries dated within rng into signed balances.
// Every entry is validated first, in range or not.
func Accumulate(entries []model.JournalEntry, chart Chart, rng period.Range) (Balances, error) {
	if err := Check(entries, chart); err != nil {
		return nil, err
	}

	balances := make(Balances)
	for _, e := range entries {
		if !rng.Contains(e.Date) {
			continue
		}
		debit, _ := chart.Resolve(e.DebitAccountID)
		credit, _ := chart.Resolve(e.CreditAccountID)
		balances[debit.ID] = balances[debit.ID].Add(SignedAmount(debit.Type, model.Debit, e.Amount))
		balances[credit.ID] = balances[credit.ID].Add(SignedAmount(credit.Type, model.Credit, e.Amount))
	}
	return balances, nil
}

// Contributions returns the unsigned debit and credit sums of the entries
// dated within rng. Both always equal the sum of the amounts.
func Contributions(entries []model.JournalEntry, rng period.Range) Totals {
	var t Totals
	for _, e := range entries {
		if !rng.Contains(e.Date) {
			continue
		}
		t.Debit = t.Debit.Add(e.Amount)
		t.Credit = t.Credit.Add(e.Amount)
	}
	return t
}

// Activity returns unsigned debit and credit totals per account for the
// entries dated within rng.
func Activity(entries []model.JournalEntry, chart Chart, rng period.Range) (map[int]Totals, error) {
	if err := Check(entries, chart); err != nil {
		return nil, err
	}

	activity := make(map[int]Totals)
	for _, e := range entries {
		if !rng.Contains(e.Date) {
			continue
		}
		d := activity[e.DebitAccountID]
		d.Debit = d.Debit.Add(e.Amount)
		activity[e.DebitAccountID] = d

		c := activity[e.CreditAccountID]
		c.Credit = c.Credit.Add(e.Amount)
		activity[e.CreditAccountID] = c
	}
	return activity, nil
}

// NetIncome returns total revenue minus total expenses, both taken from
// balances where the natural side is positive.
func NetIncome(balances Balances, chart Chart) decimal.Decimal {
	revenue, expenses := decimal.Zero, decimal.Zero
	for accountID, bal := range balances {
		acct, err := chart.Resolve(accountID)
		if err != nil {
			continue
		}
		switch acct.Type {
		case model.AccountTypeRevenue:
			revenue = revenue.Add(bal)
		case model.AccountTypeExpense:
			expenses = expenses.Add(bal)
		}
	}
	return revenue.Sub(expenses)
}

// SortedIDs returns the account ids of m in ascending order.
func SortedIDs[V any](m map[int]V) []int {
	ids := make([]int, 0, len(m))
	for k := range m {
		ids = append(ids, k)
	}
	sort.Ints(ids)
	return ids
}

// Lines derives the general ledger: two lines per entry, in date order,
// each carrying its account's running balance. accountID 0 returns the lines
// of every account.
func Lines(entries []model.JournalEntry, chart Chart, accountID int) ([]model.DerivedLine, error) {
	if err := Check(entries, chart); err != nil {
		return nil, err
	}

	ordered := make([]model.JournalEntry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].Date.Before(ordered[j].Date)
		}
		return ordered[i].ID < ordered[j].ID
	})

	running := make(Balances)
	var lines []model.DerivedLine
	for _, e := range ordered {
		debit, _ := chart.Resolve(e.DebitAccountID)
		credit, _ := chart.Resolve(e.CreditAccountID)

		running[debit.ID] = running[debit.ID].Add(SignedAmount(debit.Type, model.Debit, e.Amount))
		running[credit.ID] = running[credit.ID].Add(SignedAmount(credit.Type, model.Credit, e.Amount))

		if accountID == 0 || accountID == debit.ID {
			lines = append(lines, model.DerivedLine{
				LegID:          id.FormatLegID(e.ID, id.DebitLeg),
				EntryID:        e.ID,
				Date:           e.Date,
				AccountID:      debit.ID,
				Description:    e.Description,
				Debit:          e.Amount,
				RunningBalance: running[debit.ID],
			})
		}
		if accountID == 0 || accountID == credit.ID {
			lines = append(lines, model.DerivedLine{
				LegID:          id.FormatLegID(e.ID, id.CreditLeg),
				EntryID:        e.ID,
				Date:           e.Date,
				AccountID:      credit.ID,
				Description:    e.Description,
				Credit:         e.Amount,
				RunningBalance: running[credit.ID],
			})
		}
	}
	return lines, nil
}
