package reports

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/reckon/internal/accounts"
	"github.com/cleared-dev/reckon/internal/model"
)

const (
	checking   = 1010
	savings    = 1020
	receivable = 1200
	equipment  = 1500
	card       = 2010
	loan       = 2500
	equity     = 3010
	services   = 4010
	software   = 5020
)

var chart = accounts.NewRegistry(accounts.DefaultChart("llc_single_member"))

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func entry(id string, d time.Time, debit, credit int, amount string) model.JournalEntry {
	return model.JournalEntry{ID: id, Date: d, DebitAccountID: debit, CreditAccountID: credit, Amount: dec(amount)}
}

func randomEntries(r *rand.Rand, n int) []model.JournalEntry {
	ids := chart.IDs()
	entries := make([]model.JournalEntry, 0, n)
	for i := 0; i < n; i++ {
		debit := ids[r.Intn(len(ids))]
		credit := debit
		for credit == debit {
			credit = ids[r.Intn(len(ids))]
		}
		entries = append(entries, model.JournalEntry{
			ID:              fmt.Sprintf("2025-01-%03d", i+1),
			Date:            date(2025, 1, 1).AddDate(0, 0, r.Intn(365)),
			DebitAccountID:  debit,
			CreditAccountID: credit,
			Amount:          decimal.New(r.Int63n(500_000)+1, -2),
		})
	}
	return entries
}

type directory map[string]string

func (d directory) Lookup(id string) (model.Counterparty, bool) {
	name, ok := d[id]
	return model.Counterparty{ID: id, Name: name}, ok
}
