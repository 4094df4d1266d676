package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/reckon/internal/ledger"
	"github.com/cleared-dev/reckon/internal/model"
	"github.com/cleared-dev/reckon/internal/period"
)

// TrialBalanceRow holds an account's unsigned totals for the period.
type TrialBalanceRow struct {
	AccountID int
	Name      string
	Type      model.AccountType
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

// TrialBalanceReport lists per-account debit and credit totals for a period.
type TrialBalanceReport struct {
	PeriodType  period.Type
	Period      period.Range
	Rows        []TrialBalanceRow
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Difference  decimal.Decimal // TotalDebit - TotalCredit
	Balanced    bool
}

// TrialBalance totals debits and credits per account over the calendar
// period of periodType containing referenceMonth. Accounts without activity
// in the period are omitted. A non-positive tol selects DefaultTolerance.
func TrialBalance(entries []model.JournalEntry, chart ledger.Chart, periodType period.Type, referenceMonth time.Time, tol decimal.Decimal) (*TrialBalanceReport, error) {
	return TrialBalanceFiscal(entries, chart, periodType, referenceMonth, time.January, tol)
}

// TrialBalanceFiscal is TrialBalance with quarters and years aligned to a
// fiscal year starting in yearStart.
func TrialBalanceFiscal(entries []model.JournalEntry, chart ledger.Chart, periodType period.Type, referenceMonth time.Time, yearStart time.Month, tol decimal.Decimal) (*TrialBalanceReport, error) {
	rng := period.ForFiscal(periodType, referenceMonth, yearStart)

	activity, err := ledger.Activity(entries, chart, rng)
	if err != nil {
		return nil, err
	}

	report := &TrialBalanceReport{
		PeriodType:  periodType,
		Period:      rng,
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, accountID := range ledger.SortedIDs(activity) {
		a := activity[accountID]
		if a.IsZero() {
			continue
		}
		acct, _ := chart.Resolve(accountID)
		report.Rows = append(report.Rows, TrialBalanceRow{
			AccountID: accountID,
			Name:      acct.Name,
			Type:      acct.Type,
			Debit:     a.Debit,
			Credit:    a.Credit,
		})
		report.TotalDebit = report.TotalDebit.Add(a.Debit)
		report.TotalCredit = report.TotalCredit.Add(a.Credit)
	}

	report.Difference = report.TotalDebit.Sub(report.TotalCredit)
	report.Balanced = within(report.Difference, tol)
	return report, nil
}
