package render

import (
	"strconv"

	"github.com/cleared-dev/reckon/internal/dashboard"
	"github.com/cleared-dev/reckon/internal/model"
	"github.com/cleared-dev/reckon/internal/recon"
)

// Entries prints journal entries. name resolves account display names.
func (p *Printer) Entries(entries []model.JournalEntry, name func(int) string) error {
	tw := p.table()
	row(tw, "Entry", "Date", "Debit", "Credit", "Amount", "Description")
	for _, e := range entries {
		row(tw, e.ID, e.Date.Format("2006-01-02"),
			strconv.Itoa(e.DebitAccountID)+" "+name(e.DebitAccountID),
			strconv.Itoa(e.CreditAccountID)+" "+name(e.CreditAccountID),
			p.Amount(e.Amount), e.Description)
	}
	return tw.Flush()
}

// Ledger prints an account's derived lines with running balances.
func (p *Printer) Ledger(title string, lines []model.DerivedLine) error {
	p.title("%s", title)
	tw := p.table()
	row(tw, "Line", "Date", "Description", "Debit", "Credit", "Balance")
	for _, l := range lines {
		row(tw, l.LegID, l.Date.Format("2006-01-02"), l.Description,
			p.blank(l.Debit), p.blank(l.Credit), p.Amount(l.RunningBalance))
	}
	return tw.Flush()
}

// Dashboard prints the headline figures.
func (p *Printer) Dashboard(s *dashboard.Summary) error {
	p.title("Dashboard (%s)", s.Period)
	tw := p.table()
	row(tw, "Cash on hand", p.Amount(s.CashOnHand))
	row(tw, "Total assets", p.Amount(s.TotalAssets))
	row(tw, "Total liabilities", p.Amount(s.TotalLiabilities))
	row(tw, "Revenue", p.Amount(s.Revenue))
	row(tw, "Expenses", p.Amount(s.Expenses))
	row(tw, "Net income", p.Amount(s.NetIncome))
	row(tw, "Open receivables", p.Amount(s.OpenReceivables)+" ("+strconv.Itoa(s.OverdueReceivables)+" overdue)")
	row(tw, "Open payables", p.Amount(s.OpenPayables)+" ("+strconv.Itoa(s.OverduePayables)+" overdue)")
	return tw.Flush()
}

// Reconciliation prints a session summary with the unmatched lines.
func (p *Printer) Reconciliation(s recon.Summary) error {
	p.title("Reconciliation: %d matched, variance %s", s.Matches, p.Amount(s.Variance))
	tw := p.table()
	row(tw, "Bank total", p.Amount(s.BankTotal))
	row(tw, "Ledger total", p.Amount(s.LedgerTotal))
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, side := range []struct {
		name  string
		lines []model.StatementLine
	}{{"bank", s.UnmatchedBank}, {"ledger", s.UnmatchedLedger}} {
		if len(side.lines) == 0 {
			continue
		}
		p.title("Unmatched %s lines:", side.name)
		tw := p.table()
		for _, l := range side.lines {
			row(tw, l.ID, l.Date.Format("2006-01-02"), l.Description, p.Amount(l.Amount))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	if s.Finalized {
		p.title("Finalized.")
	}
	return nil
}
