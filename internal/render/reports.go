package render

import (
	"fmt"
	"strconv"

	"github.com/cleared-dev/reckon/internal/reports"
)

// TrialBalance prints a trial balance.
func (p *Printer) TrialBalance(r *reports.TrialBalanceReport) error {
	p.title("Trial Balance (%s, %s)", r.PeriodType, r.Period)
	tw := p.table()
	row(tw, "Account", "Name", "Debit", "Credit")
	for _, l := range r.Rows {
		row(tw, strconv.Itoa(l.AccountID), l.Name, p.blank(l.Debit), p.blank(l.Credit))
	}
	row(tw, "", "Total", p.Amount(r.TotalDebit), p.Amount(r.TotalCredit))
	if err := tw.Flush(); err != nil {
		return err
	}
	p.title("Difference %s: %s", p.Amount(r.Difference), check(r.Balanced))
	return nil
}

// BalanceSheet prints a balance sheet.
func (p *Printer) BalanceSheet(r *reports.BalanceSheetReport) error {
	asOf := "all entries"
	if !r.AsOf.IsZero() {
		asOf = r.AsOf.Format("2006-01-02")
	}
	p.title("Balance Sheet (as of %s)", asOf)
	tw := p.table()
	for _, s := range []reports.Section{r.Assets, r.Liabilities, r.Equity} {
		row(tw, s.Title, "", "")
		for _, l := range s.Lines {
			id := ""
			if l.AccountID != 0 {
				id = strconv.Itoa(l.AccountID)
			}
			row(tw, "", id+" "+l.Name, p.Amount(l.Amount))
		}
		row(tw, "", "Total "+s.Title, p.Amount(s.Total))
	}
	row(tw, "", "Total Liabilities & Equity", p.Amount(r.LiabilitiesAndEquity))
	if err := tw.Flush(); err != nil {
		return err
	}
	p.title("Difference %s: %s", p.Amount(r.Difference), check(r.Balanced))
	return nil
}

// ProfitAndLoss prints an income statement.
func (p *Printer) ProfitAndLoss(r *reports.ProfitAndLossReport) error {
	p.title("Profit & Loss (%s)", r.Period)
	tw := p.table()
	for _, s := range []reports.Section{r.Revenue, r.Expenses} {
		row(tw, s.Title, "", "")
		for _, l := range s.Lines {
			row(tw, "", fmt.Sprintf("%d %s", l.AccountID, l.Name), p.Amount(l.Amount))
		}
		row(tw, "", "Total "+s.Title, p.Amount(s.Total))
	}
	row(tw, "", "Net Profit", p.Amount(r.NetProfit))
	return tw.Flush()
}

// CashFlow prints a cash flow statement.
func (p *Printer) CashFlow(r *reports.CashFlowReport) error {
	p.title("Cash Flow (%s)", r.Period)
	tw := p.table()
	row(tw, "Activity", "Account", "Inflow", "Outflow", "Net")
	for _, s := range r.Sections() {
		row(tw, string(s.Category), "", "", "", "")
		for _, l := range s.Lines {
			row(tw, "", fmt.Sprintf("%d %s", l.AccountID, l.Name), p.blank(l.Inflow), p.blank(l.Outflow), p.Amount(l.Net))
		}
		row(tw, "", "Total "+string(s.Category), "", "", p.Amount(s.Total))
	}
	row(tw, "", "Net Cash Flow", "", "", p.Amount(r.NetCashFlow))
	row(tw, "", "Change in Cash", "", "", p.Amount(r.CashChange))
	return tw.Flush()
}

// Aging prints an aging schedule.
func (p *Printer) Aging(r *reports.AgingReport) error {
	p.title("Aging %ss (as of %s)", r.Kind, r.AsOf.Format("2006-01-02"))
	tw := p.table()
	row(tw, "Document", "Counterparty", "Due", "Days", "Bucket", "Priority", "Amount")
	for _, it := range r.Items {
		row(tw, it.Document.ID, it.Counterparty, it.Document.DueDate.Format("2006-01-02"),
			strconv.Itoa(it.DaysOverdue), string(it.Bucket), string(it.Priority), p.Amount(it.Document.Amount))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	tw = p.table()
	for _, b := range r.Buckets {
		row(tw, string(b.Bucket), strconv.Itoa(b.Count), p.Amount(b.Total))
	}
	row(tw, "Total", strconv.Itoa(len(r.Items)), p.Amount(r.Total))
	return tw.Flush()
}
