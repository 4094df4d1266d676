// Package dashboard rolls the ledger and open documents up into headline
// figures.
package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/reckon/internal/accounts"
	"github.com/cleared-dev/reckon/internal/ledger"
	"github.com/cleared-dev/reckon/internal/model"
	"github.com/cleared-dev/reckon/internal/period"
	"github.com/cleared-dev/reckon/internal/reports"
)

// Summary holds the dashboard figures. Position figures (cash, assets,
// liabilities) are as of the end of Period; performance figures cover
// Period only.
type Summary struct {
	Period period.Range
	AsOf   time.Time

	CashOnHand       decimal.Decimal
	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal

	Revenue   decimal.Decimal
	Expenses  decimal.Decimal
	NetIncome decimal.Decimal

	OpenReceivables    decimal.Decimal
	OpenPayables       decimal.Decimal
	OverdueReceivables int
	OverduePayables    int
}

// Summarize computes the dashboard for rng. Open documents are aged
// against now.
func Summarize(entries []model.JournalEntry, chart ledger.Chart, bills, invoices []model.Document, rng period.Range, now time.Time) (*Summary, error) {
	position, err := ledger.Accumulate(entries, chart, period.Through(rng.To))
	if err != nil {
		return nil, err
	}
	performance, err := ledger.Accumulate(entries, chart, rng)
	if err != nil {
		return nil, err
	}

	s := &Summary{
		Period:           rng,
		AsOf:             now,
		CashOnHand:       decimal.Zero,
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		Revenue:          decimal.Zero,
		Expenses:         decimal.Zero,
	}

	for accountID, bal := range position {
		acct, _ := chart.Resolve(accountID)
		switch acct.Type {
		case model.AccountTypeAsset:
			s.TotalAssets = s.TotalAssets.Add(bal)
			if accounts.CashFlowCategory(acct) == model.CashFlowCash {
				s.CashOnHand = s.CashOnHand.Add(bal)
			}
		case model.AccountTypeLiability:
			s.TotalLiabilities = s.TotalLiabilities.Add(bal)
		}
	}

	for accountID, bal := range performance {
		acct, _ := chart.Resolve(accountID)
		switch acct.Type {
		case model.AccountTypeRevenue:
			s.Revenue = s.Revenue.Add(bal)
		case model.AccountTypeExpense:
			s.Expenses = s.Expenses.Add(bal)
		}
	}
	s.NetIncome = s.Revenue.Sub(s.Expenses)

	s.OpenPayables, s.OverduePayables = openTotals(bills, now)
	s.OpenReceivables, s.OverdueReceivables = openTotals(invoices, now)
	return s, nil
}

func openTotals(docs []model.Document, now time.Time) (decimal.Decimal, int) {
	total, overdue := decimal.Zero, 0
	for _, d := range docs {
		if !d.IsOpen() {
			continue
		}
		total = total.Add(d.Amount)
		if reports.DaysOverdue(d.DueDate, now) > 0 {
			overdue++
		}
	}
	return total, overdue
}
