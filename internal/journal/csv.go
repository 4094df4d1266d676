package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/reckon/internal/model"
)

// Header is the CSV header for journal.csv.
const Header = "entry_id,date,debit_account,credit_account,amount,description"

const (
	numFields     = 6
	dateFormat    = "2006-01-02"
	colEntryID    = 0
	colDate       = 1
	colDebitAcct  = 2
	colCreditAcct = 3
	colAmount     = 4
	colDesc       = 5
)

// ReadEntries reads all entries from a journal.csv reader.
func ReadEntries(r io.Reader) ([]model.JournalEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var entries []model.JournalEntry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// WriteEntries writes entries to a journal.csv writer (including header).
func WriteEntries(w io.Writer, entries []model.JournalEntry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// AppendEntries appends entries to an existing journal.csv writer (no header).
func AppendEntries(w io.Writer, entries []model.JournalEntry) error {
	cw := csv.NewWriter(w)

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalEntry converts a JournalEntry to a CSV row.
func MarshalEntry(e model.JournalEntry) []string {
	row := make([]string, numFields)
	row[colEntryID] = e.ID
	row[colDate] = e.Date.Format(dateFormat)
	row[colDebitAcct] = strconv.Itoa(e.DebitAccountID)
	row[colCreditAcct] = strconv.Itoa(e.CreditAccountID)
	row[colAmount] = e.Amount.StringFixed(2)
	row[colDesc] = e.Description
	return row
}

// UnmarshalEntry converts a CSV row to a JournalEntry.
func UnmarshalEntry(record []string) (model.JournalEntry, error) {
	if len(record) != numFields {
		return model.JournalEntry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	debitID, err := strconv.Atoi(record[colDebitAcct])
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("parsing debit_account %q: %w", record[colDebitAcct], err)
	}

	creditID, err := strconv.Atoi(record[colCreditAcct])
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("parsing credit_account %q: %w", record[colCreditAcct], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	return model.JournalEntry{
		ID:              record[colEntryID],
		Date:            date,
		DebitAccountID:  debitID,
		CreditAccountID: creditID,
		Amount:          amount,
		Description:     record[colDesc],
	}, nil
}
