package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/reckon/internal/model"
)

// ChaseParser reads Chase checking account CSV exports:
//
//	Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #
type ChaseParser struct{}

const (
	chaseDateFormat = "01/02/2006"
	chaseNumFields  = 7
	chaseColDate    = 1
	chaseColDesc    = 2
	chaseColAmount  = 3
	chaseColType    = 4
	chaseColCheck   = 6
)

// Source returns the parser name, also used as the line id prefix.
func (p *ChaseParser) Source() string { return "chase" }

// Parse reads a Chase CSV. Amounts keep the bank's sign: debits negative.
// Returned lines have no ID; the statement store assigns them.
func (p *ChaseParser) Parse(r io.Reader) ([]model.StatementLine, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = chaseNumFields
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading chase CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	lines := make([]model.StatementLine, 0, len(records)-1)
	for i, rec := range records[1:] {
		line, err := parseChaseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func parseChaseRow(rec []string) (model.StatementLine, error) {
	date, err := time.Parse(chaseDateFormat, strings.TrimSpace(rec[chaseColDate]))
	if err != nil {
		return model.StatementLine{}, fmt.Errorf("parsing date %q: %w", rec[chaseColDate], err)
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(rec[chaseColAmount]))
	if err != nil {
		return model.StatementLine{}, fmt.Errorf("parsing amount %q: %w", rec[chaseColAmount], err)
	}

	desc := strings.TrimSpace(rec[chaseColDesc])
	ref := strings.TrimSpace(rec[chaseColCheck])
	if ref == "" {
		ref = chaseRef(date, desc)
	}

	return model.StatementLine{
		Date:        date,
		Description: desc,
		Amount:      amount,
		Reference:   ref,
		Type:        strings.TrimSpace(rec[chaseColType]),
	}, nil
}

// chaseRef builds a reference like chase_20250103_GITHUBPROS for rows
// without a check number.
func chaseRef(date time.Time, desc string) string {
	prefix := strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, desc)
	if len(prefix) > 10 {
		prefix = prefix[:10]
	}
	return fmt.Sprintf("chase_%s_%s", date.Format("20060102"), prefix)
}
