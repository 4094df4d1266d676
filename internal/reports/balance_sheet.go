package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/reckon/internal/ledger"
	"github.com/cleared-dev/reckon/internal/model"
	"github.com/cleared-dev/reckon/internal/period"
)

// CurrentYearEarnings names the synthetic equity line carrying net income.
const CurrentYearEarnings = "Current Year Earnings"

// BalanceSheetReport is a point-in-time statement of assets, liabilities and
// equity. An imbalance is reported through Balanced and Difference.
type BalanceSheetReport struct {
	AsOf                 time.Time // zero = every entry
	Assets               Section
	Liabilities          Section
	Equity               Section // includes the Current Year Earnings line
	NetIncome            decimal.Decimal
	LiabilitiesAndEquity decimal.Decimal
	Difference           decimal.Decimal // Assets - (Liabilities + Equity)
	Balanced             bool
}

// BalanceSheet builds the statement from signed balances over every entry
// dated on or before asOf (all entries when asOf is zero). Revenue and
// expense accounts are not listed; their net feeds equity.
func BalanceSheet(entries []model.JournalEntry, chart ledger.Chart, asOf time.Time, tol decimal.Decimal) (*BalanceSheetReport, error) {
	rng := period.All
	if !asOf.IsZero() {
		rng = period.Through(asOf)
	}

	balances, err := ledger.Accumulate(entries, chart, rng)
	if err != nil {
		return nil, err
	}

	var assets, liabilities, equity []AccountLine
	for _, accountID := range ledger.SortedIDs(balances) {
		bal := balances[accountID]
		if bal.IsZero() {
			continue
		}
		line := accountLine(chart, accountID, bal)
		switch line.Type {
		case model.AccountTypeAsset:
			assets = append(assets, line)
		case model.AccountTypeLiability:
			liabilities = append(liabilities, line)
		case model.AccountTypeEquity:
			equity = append(equity, line)
		}
	}

	report := NewBalanceSheet(assets, liabilities, equity, ledger.NetIncome(balances, chart), tol)
	report.AsOf = asOf
	return report, nil
}

// NewBalanceSheet assembles a statement from bucketed lines. A non-zero
// netIncome is appended to equity as the Current Year Earnings line.
func NewBalanceSheet(assets, liabilities, equity []AccountLine, netIncome, tol decimal.Decimal) *BalanceSheetReport {
	if !netIncome.IsZero() {
		equity = append(equity, AccountLine{
			Name:   CurrentYearEarnings,
			Type:   model.AccountTypeEquity,
			Amount: netIncome,
		})
	}

	report := &BalanceSheetReport{
		Assets:      newSection("Assets", assets),
		Liabilities: newSection("Liabilities", liabilities),
		Equity:      newSection("Equity", equity),
		NetIncome:   netIncome,
	}
	report.LiabilitiesAndEquity = report.Liabilities.Total.Add(report.Equity.Total)
	report.Difference = report.Assets.Total.Sub(report.LiabilitiesAndEquity)
	report.Balanced = within(report.Difference, tol)
	return report
}
