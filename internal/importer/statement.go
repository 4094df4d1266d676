package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/reckon/internal/id"
	"github.com/cleared-dev/reckon/internal/model"
)

// StatementHeader is the header row of statements/<account>.csv.
var StatementHeader = []string{"line_id", "date", "description", "amount", "type", "reference"}

const (
	statementDir       = "statements"
	dateFormat         = "2006-01-02"
	numStatementFields = 6
	colLineID          = 0
	colDate            = 1
	colDescription     = 2
	colAmount          = 3
	colType            = 4
	colReference       = 5
)

// StatementPath returns the statement file for a bank account.
func StatementPath(repoRoot string, accountID int) string {
	return filepath.Join(repoRoot, statementDir, strconv.Itoa(accountID)+".csv")
}

// MarshalLine converts a statement line to a CSV row.
func MarshalLine(l model.StatementLine) []string {
	row := make([]string, numStatementFields)
	row[colLineID] = l.ID
	row[colDate] = l.Date.Format(dateFormat)
	row[colDescription] = l.Description
	row[colAmount] = l.Amount.StringFixed(2)
	row[colType] = l.Type
	row[colReference] = l.Reference
	return row
}

// UnmarshalLine converts a CSV row to a statement line.
func UnmarshalLine(record []string) (model.StatementLine, error) {
	if len(record) != numStatementFields {
		return model.StatementLine{}, fmt.Errorf("expected %d fields, got %d", numStatementFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.StatementLine{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.StatementLine{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	return model.StatementLine{
		ID:          record[colLineID],
		Date:        date,
		Description: record[colDescription],
		Amount:      amount,
		Type:        record[colType],
		Reference:   record[colReference],
	}, nil
}

// ReadStatement returns the stored bank lines for an account, or nil when
// nothing has been imported yet.
func ReadStatement(repoRoot string, accountID int) ([]model.StatementLine, error) {
	f, err := os.Open(StatementPath(repoRoot, accountID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	return readLines(f)
}

func readLines(r io.Reader) ([]model.StatementLine, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numStatementFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading statement CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	lines := make([]model.StatementLine, 0, len(records)-1)
	for i, rec := range records[1:] {
		l, err := UnmarshalLine(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		lines = append(lines, l)
	}
	return lines, nil
}

// AppendStatement stores parsed lines for an account, assigning ids like
// "chase-0007" that continue the existing numbering. Lines already stored
// (same date, amount, description and reference) are skipped, so an
// overlapping export can be imported twice. It returns the lines added.
func AppendStatement(repoRoot string, accountID int, source string, lines []model.StatementLine) ([]model.StatementLine, error) {
	existing, err := ReadStatement(repoRoot, accountID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(existing))
	for _, l := range existing {
		seen[lineKey(l)] = true
	}

	next := len(existing) + 1
	var added []model.StatementLine
	for _, l := range lines {
		key := lineKey(l)
		if seen[key] {
			continue
		}
		seen[key] = true
		l.ID = id.FormatStatementLineID(source, next)
		l.Matched = false
		next++
		added = append(added, l)
	}
	if len(added) == 0 {
		return nil, nil
	}

	path := StatementPath(repoRoot, accountID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating statements dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if len(existing) == 0 {
		if info, err := f.Stat(); err == nil && info.Size() == 0 {
			if err := cw.Write(StatementHeader); err != nil {
				return nil, fmt.Errorf("writing header: %w", err)
			}
		}
	}
	for _, l := range added {
		if err := cw.Write(MarshalLine(l)); err != nil {
			return nil, fmt.Errorf("writing line %s: %w", l.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("flushing statement: %w", err)
	}
	return added, nil
}

func lineKey(l model.StatementLine) string {
	return l.Date.Format(dateFormat) + "|" + l.Amount.StringFixed(2) + "|" + l.Description + "|" + l.Reference
}
