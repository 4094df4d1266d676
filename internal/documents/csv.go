package documents

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/reckon/internal/model"
)

// Header is the CSV header shared by bills.csv and invoices.csv.
var Header = []string{"doc_id", "counterparty_id", "date", "due_date", "amount", "status"}

// CounterpartyHeader is the CSV header for counterparties.csv.
var CounterpartyHeader = []string{"counterparty_id", "name"}

const (
	numFields      = 6
	dateFormat     = "2006-01-02"
	colDocID       = 0
	colCounterpart = 1
	colDate        = 2
	colDueDate     = 3
	colAmount      = 4
	colStatus      = 5
)

// MarshalDocument converts a Document to a CSV row.
func MarshalDocument(d model.Document) []string {
	row := make([]string, numFields)
	row[colDocID] = d.ID
	row[colCounterpart] = d.CounterpartyID
	row[colDate] = d.Date.Format(dateFormat)
	row[colDueDate] = d.DueDate.Format(dateFormat)
	row[colAmount] = d.Amount.StringFixed(2)
	row[colStatus] = string(d.Status)
	return row
}

// UnmarshalDocument converts a CSV row to a Document of the given kind.
func UnmarshalDocument(kind model.DocumentKind, record []string) (model.Document, error) {
	if len(record) != numFields {
		return model.Document{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Document{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}
	due, err := time.Parse(dateFormat, record[colDueDate])
	if err != nil {
		return model.Document{}, fmt.Errorf("parsing due date %q: %w", record[colDueDate], err)
	}
	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Document{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	status := model.DocumentStatus(record[colStatus])
	if status != model.StatusUnpaid && status != model.StatusPaid {
		return model.Document{}, fmt.Errorf("unknown status %q", record[colStatus])
	}

	return model.Document{
		ID:             record[colDocID],
		Kind:           kind,
		CounterpartyID: record[colCounterpart],
		Date:           date,
		DueDate:        due,
		Amount:         amount,
		Status:         status,
	}, nil
}

func readDocuments(kind model.DocumentKind, r io.Reader) ([]model.Document, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s CSV: %w", kind, err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	docs := make([]model.Document, 0, len(records)-1)
	for i, rec := range records[1:] {
		d, err := UnmarshalDocument(kind, rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		docs = append(docs, d)
	}
	return docs, nil
}

func writeDocuments(w io.Writer, docs []model.Document) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, d := range docs {
		if err := cw.Write(MarshalDocument(d)); err != nil {
			return fmt.Errorf("writing %s: %w", d.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func readCounterparties(r io.Reader) ([]model.Counterparty, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(CounterpartyHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading counterparties CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	cps := make([]model.Counterparty, 0, len(records)-1)
	for _, rec := range records[1:] {
		cps = append(cps, model.Counterparty{ID: rec[0], Name: rec[1]})
	}
	return cps, nil
}

func writeCounterparties(w io.Writer, cps []model.Counterparty) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CounterpartyHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, cp := range cps {
		if err := cw.Write([]string{cp.ID, cp.Name}); err != nil {
			return fmt.Errorf("writing %s: %w", cp.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
