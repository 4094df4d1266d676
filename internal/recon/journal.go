package recon

import (
	"sort"

	"github.com/cleared-dev/reckon/internal/id"
	"github.com/cleared-dev/reckon/internal/model"
)

// LedgerLinesFromJournal derives the ledger side of a reconciliation from
// the journal: every entry touching cashAccountID becomes one line, positive
// when the account is debited (money in) and negative when credited. Line
// ids are the cash leg ids, e.g. "2025-01-004a".
func LedgerLinesFromJournal(entries []model.JournalEntry, cashAccountID int) []model.StatementLine {
	var lines []model.StatementLine
	for _, e := range entries {
		var line model.StatementLine
		switch cashAccountID {
		case e.DebitAccountID:
			line = model.StatementLine{ID: id.FormatLegID(e.ID, id.DebitLeg), Amount: e.Amount}
		case e.CreditAccountID:
			line = model.StatementLine{ID: id.FormatLegID(e.ID, id.CreditLeg), Amount: e.Amount.Neg()}
		default:
			continue
		}
		line.Date = e.Date
		line.Description = e.Description
		line.Reference = e.ID
		lines = append(lines, line)
	}

	sort.SliceStable(lines, func(i, j int) bool {
		if !lines[i].Date.Equal(lines[j].Date) {
			return lines[i].Date.Before(lines[j].Date)
		}
		return lines[i].ID < lines[j].ID
	})
	return lines
}
