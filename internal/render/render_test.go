package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/reckon/internal/accounts"
	"github.com/cleared-dev/reckon/internal/dashboard"
	"github.com/cleared-dev/reckon/internal/ledger"
	"github.com/cleared-dev/reckon/internal/model"
	"github.com/cleared-dev/reckon/internal/period"
	"github.com/cleared-dev/reckon/internal/recon"
	"github.com/cleared-dev/reckon/internal/reports"
)

var chart = accounts.NewRegistry(accounts.DefaultChart("llc_single_member"))

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sale() []model.JournalEntry {
	return []model.JournalEntry{{
		ID: "2025-01-001", Date: date(2025, 1, 5), Description: "Consulting",
		DebitAccountID: 1010, CreditAccountID: 4010, Amount: dec("1234.5"),
	}}
}

func ledgerLines() ([]model.DerivedLine, error) {
	return ledger.Lines(sale(), chart, 1010)
}

func TestAmount(t *testing.T) {
	p := New(&bytes.Buffer{}, "USD")

	tests := []struct {
		in   string
		want string
	}{
		{"1234.5", "$1,234.50"},
		{"-4", "-$4.00"},
		{"0", "$0.00"},
		{"0.005", "$0.01"},
		{"1000000", "$1,000,000.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.Amount(dec(tt.in)), tt.in)
	}
}

func TestTrialBalance(t *testing.T) {
	tb, err := reports.TrialBalance(sale(), chart, period.Monthly, date(2025, 1, 1), decimal.Zero)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, New(&buf, "USD").TrialBalance(tb))

	out := buf.String()
	assert.Contains(t, out, "Trial Balance (monthly, 2025-01-01 to 2025-01-31)")
	assert.Contains(t, out, "Business Checking")
	assert.Contains(t, out, "Service Revenue")
	assert.Contains(t, out, "$1,234.50")
	assert.Contains(t, out, "balanced")
	assert.NotContains(t, out, "OUT OF BALANCE")
}

func TestBalanceSheet_Imbalance(t *testing.T) {
	bs := reports.NewBalanceSheet(
		[]reports.AccountLine{{AccountID: 1010, Name: "Business Checking", Amount: dec("8000")}},
		[]reports.AccountLine{{AccountID: 2010, Name: "Credit Card", Amount: dec("3000")}},
		[]reports.AccountLine{{AccountID: 3010, Name: "Owner's Equity", Amount: dec("1900")}},
		dec("100"), decimal.Zero)

	var buf bytes.Buffer
	require.NoError(t, New(&buf, "USD").BalanceSheet(bs))

	out := buf.String()
	assert.Contains(t, out, "as of all entries")
	assert.Contains(t, out, reports.CurrentYearEarnings)
	assert.Contains(t, out, "Difference $3,000.00: OUT OF BALANCE")
}

func TestProfitAndLossAndCashFlow(t *testing.T) {
	pnl, err := reports.ProfitAndLoss(sale(), chart, period.All)
	require.NoError(t, err)
	cf, err := reports.CashFlow(sale(), chart, period.All)
	require.NoError(t, err)

	var buf bytes.Buffer
	p := New(&buf, "USD")
	require.NoError(t, p.ProfitAndLoss(pnl))
	require.NoError(t, p.CashFlow(cf))

	out := buf.String()
	assert.Contains(t, out, "Net Profit")
	assert.Contains(t, out, "4010 Service Revenue")
	assert.Contains(t, out, "operating")
	assert.Contains(t, out, "Change in Cash")
}

func TestAging(t *testing.T) {
	now := date(2025, 6, 30)
	docs := []model.Document{{ID: "BILL-0001", Kind: model.KindBill, CounterpartyID: "V1", DueDate: now.AddDate(0, 0, -45), Amount: dec("5000"), Status: model.StatusUnpaid}}

	var buf bytes.Buffer
	require.NoError(t, New(&buf, "USD").Aging(reports.Aging(docs, model.KindBill, nil, now)))

	out := buf.String()
	assert.Contains(t, out, "Aging bills (as of 2025-06-30)")
	assert.Contains(t, out, "31-60 Days")
	assert.Contains(t, out, "Medium")
	assert.Contains(t, out, "Unknown")
	assert.Contains(t, out, "$5,000.00")
}

func TestEntriesAndLedger(t *testing.T) {
	lines, err := ledgerLines()
	require.NoError(t, err)

	var buf bytes.Buffer
	p := New(&buf, "USD")
	require.NoError(t, p.Entries(sale(), chart.Name))
	require.NoError(t, p.Ledger("1010 Business Checking", lines))

	out := buf.String()
	assert.Contains(t, out, "2025-01-001")
	assert.Contains(t, out, "1010 Business Checking")
	assert.Contains(t, out, "2025-01-001a")
	assert.Contains(t, out, "Consulting")
}

func TestDashboardAndReconciliation(t *testing.T) {
	s, err := dashboard.Summarize(sale(), chart, nil, nil, period.All, date(2025, 2, 1))
	require.NoError(t, err)

	summary := recon.Summary{
		Matches:       1,
		UnmatchedBank: []model.StatementLine{{ID: "chase-0002", Date: date(2025, 1, 9), Description: "STAPLES", Amount: dec("-62.18")}},
		BankTotal:     dec("-66.18"),
		LedgerTotal:   dec("-4"),
		Variance:      dec("-62.18"),
	}

	var buf bytes.Buffer
	p := New(&buf, "USD")
	require.NoError(t, p.Dashboard(s))
	require.NoError(t, p.Reconciliation(summary))

	out := buf.String()
	assert.Contains(t, out, "Cash on hand")
	assert.Contains(t, out, "$1,234.50")
	assert.Contains(t, out, "variance -$62.18")
	assert.Contains(t, out, "Unmatched bank lines:")
	assert.Contains(t, out, "chase-0002")
	assert.NotContains(t, out, "Unmatched ledger lines:")
	assert.NotContains(t, out, "Finalized.")
}
