package reports

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/reckon/internal/accounts"
	"github.com/cleared-dev/reckon/internal/ledger"
	"github.com/cleared-dev/reckon/internal/model"
	"github.com/cleared-dev/reckon/internal/period"
)

// CashFlowLine is one non-cash account's movement over the period.
type CashFlowLine struct {
	AccountID int
	Name      string
	Inflow    decimal.Decimal // credit-driven
	Outflow   decimal.Decimal // debit-driven
	Net       decimal.Decimal // Inflow - Outflow
}

// CashFlowSection groups lines of one activity category.
type CashFlowSection struct {
	Category model.CashFlowCategory
	Lines    []CashFlowLine
	Total    decimal.Decimal
}

// CashFlowReport is an indirect cash flow statement for a period.
type CashFlowReport struct {
	Period      period.Range
	Operating   CashFlowSection
	Investing   CashFlowSection
	Financing   CashFlowSection
	NetCashFlow decimal.Decimal
	// CashChange is the net debit movement of cash accounts in the period.
	// It always equals NetCashFlow.
	CashChange decimal.Decimal
}

// Sections returns the three activity sections in statement order.
func (r *CashFlowReport) Sections() []CashFlowSection {
	return []CashFlowSection{r.Operating, r.Investing, r.Financing}
}

// CashFlow classifies every non-cash account's net movement over rng using
// the account's cash flow category. A credit to a non-cash account is the
// counterpart of cash coming in, so it reads as an inflow.
func CashFlow(entries []model.JournalEntry, chart ledger.Chart, rng period.Range) (*CashFlowReport, error) {
	activity, err := ledger.Activity(entries, chart, rng)
	if err != nil {
		return nil, err
	}

	report := &CashFlowReport{
		Period:     rng,
		Operating:  CashFlowSection{Category: model.CashFlowOperating, Total: decimal.Zero},
		Investing:  CashFlowSection{Category: model.CashFlowInvesting, Total: decimal.Zero},
		Financing:  CashFlowSection{Category: model.CashFlowFinancing, Total: decimal.Zero},
		CashChange: decimal.Zero,
	}

	for _, accountID := range ledger.SortedIDs(activity) {
		a := activity[accountID]
		acct, _ := chart.Resolve(accountID)

		category := accounts.CashFlowCategory(acct)
		if category == model.CashFlowCash {
			report.CashChange = report.CashChange.Add(a.Debit.Sub(a.Credit))
			continue
		}

		net := a.Credit.Sub(a.Debit)
		if net.IsZero() {
			continue
		}
		line := CashFlowLine{
			AccountID: accountID,
			Name:      acct.Name,
			Inflow:    decimal.Zero,
			Outflow:   decimal.Zero,
			Net:       net,
		}
		if net.IsPositive() {
			line.Inflow = net
		} else {
			line.Outflow = net.Neg()
		}

		var section *CashFlowSection
		switch category {
		case model.CashFlowInvesting:
			section = &report.Investing
		case model.CashFlowFinancing:
			section = &report.Financing
		default:
			section = &report.Operating
		}
		section.Lines = append(section.Lines, line)
		section.Total = section.Total.Add(net)
	}

	report.NetCashFlow = report.Operating.Total.Add(report.Investing.Total).Add(report.Financing.Total)
	return report, nil
}
