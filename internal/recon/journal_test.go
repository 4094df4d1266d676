package recon

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/reckon/internal/model"
)

func TestLedgerLinesFromJournal(t *testing.T) {
	d := func(day int) time.Time { return time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC) }
	entries := []model.JournalEntry{
		{ID: "2025-01-003", Date: d(9), DebitAccountID: 5020, CreditAccountID: 1010, Amount: decimal.RequireFromString("4.00"), Description: "GitHub"},
		{ID: "2025-01-001", Date: d(2), DebitAccountID: 1010, CreditAccountID: 4010, Amount: decimal.RequireFromString("3500.00"), Description: "ACME"},
		{ID: "2025-01-002", Date: d(5), DebitAccountID: 5030, CreditAccountID: 2010, Amount: decimal.RequireFromString("62.18")},
		{ID: "2025-01-004", Date: d(9), DebitAccountID: 1020, CreditAccountID: 1010, Amount: decimal.RequireFromString("100.00")},
	}

	lines := LedgerLinesFromJournal(entries, 1010)
	require.Len(t, lines, 3)

	assert.Equal(t, "2025-01-001a", lines[0].ID)
	assert.Equal(t, "3500.00", lines[0].Amount.StringFixed(2))
	assert.Equal(t, "ACME", lines[0].Description)
	assert.Equal(t, "2025-01-001", lines[0].Reference)

	assert.Equal(t, "2025-01-003b", lines[1].ID)
	assert.Equal(t, "-4.00", lines[1].Amount.StringFixed(2))
	assert.Equal(t, "2025-01-004b", lines[2].ID)
	assert.Equal(t, "-100.00", lines[2].Amount.StringFixed(2))

	for _, l := range lines {
		assert.False(t, l.Matched)
	}
}
