package reports

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/reckon/internal/ledger"
	"github.com/cleared-dev/reckon/internal/model"
	"github.com/cleared-dev/reckon/internal/period"
)

// ProfitAndLossReport covers revenue and expense accounts over a period.
type ProfitAndLossReport struct {
	Period        period.Range
	Revenue       Section
	Expenses      Section
	TotalRevenue  decimal.Decimal
	TotalExpenses decimal.Decimal
	NetProfit     decimal.Decimal
}

// ProfitAndLoss nets revenue (credits less debits, so returns reduce it) and
// expenses (debits less credits, so refunds reduce them) over rng.
func ProfitAndLoss(entries []model.JournalEntry, chart ledger.Chart, rng period.Range) (*ProfitAndLossReport, error) {
	activity, err := ledger.Activity(entries, chart, rng)
	if err != nil {
		return nil, err
	}

	var revenue, expenses []AccountLine
	for _, accountID := range ledger.SortedIDs(activity) {
		a := activity[accountID]
		if a.IsZero() {
			continue
		}
		acct, _ := chart.Resolve(accountID)
		switch acct.Type {
		case model.AccountTypeRevenue:
			revenue = append(revenue, accountLine(chart, accountID, a.Credit.Sub(a.Debit)))
		case model.AccountTypeExpense:
			expenses = append(expenses, accountLine(chart, accountID, a.Debit.Sub(a.Credit)))
		}
	}

	report := &ProfitAndLossReport{
		Period:   rng,
		Revenue:  newSection("Revenue", revenue),
		Expenses: newSection("Expenses", expenses),
	}
	report.TotalRevenue = report.Revenue.Total
	report.TotalExpenses = report.Expenses.Total
	report.NetProfit = report.TotalRevenue.Sub(report.TotalExpenses)
	return report, nil
}
