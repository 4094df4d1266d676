// Package documents stores bills, invoices and the counterparties they
// reference as CSV files under <repo>/documents/.
package documents

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/reckon/internal/model"
)

var (
	// ErrNotFound is returned for a document id not in the store.
	ErrNotFound = errors.New("document not found")
	// ErrAlreadyPaid is returned when paying a document twice.
	ErrAlreadyPaid = errors.New("document already paid")
)

const dir = "documents"

var (
	validate = validator.New(validator.WithRequiredStructEnabled())

	idPrefix = map[model.DocumentKind]string{
		model.KindBill:    "BILL",
		model.KindInvoice: "INV",
	}
)

// AddParams describes a new bill or invoice.
type AddParams struct {
	CounterpartyID string          `validate:"required"`
	Date           time.Time       `validate:"required"`
	DueDate        time.Time       `validate:"required,gtefield=Date"`
	Amount         decimal.Decimal `validate:"-"`
}

// Store reads and writes documents under a repo root.
type Store struct {
	repoRoot string
}

// NewStore creates a document Store.
func NewStore(repoRoot string) *Store {
	return &Store{repoRoot: repoRoot}
}

func (s *Store) path(kind model.DocumentKind) string {
	return filepath.Join(s.repoRoot, dir, string(kind)+"s.csv")
}

// List returns every document of a kind in id order.
func (s *Store) List(kind model.DocumentKind) ([]model.Document, error) {
	if _, ok := idPrefix[kind]; !ok {
		return nil, fmt.Errorf("unknown document kind %q", kind)
	}
	f, err := os.Open(s.path(kind))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening %ss: %w", kind, err)
	}
	defer f.Close()

	docs, err := readDocuments(kind, f)
	if err != nil {
		return nil, err
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

// Add records a new unpaid document and returns it with its assigned id
// (BILL-0001, INV-0001, ...).
func (s *Store) Add(kind model.DocumentKind, params AddParams) (model.Document, error) {
	prefix, ok := idPrefix[kind]
	if !ok {
		return model.Document{}, fmt.Errorf("unknown document kind %q", kind)
	}
	if err := validate.Struct(params); err != nil {
		return model.Document{}, fmt.Errorf("invalid %s: %w", kind, err)
	}
	if !params.Amount.IsPositive() {
		return model.Document{}, fmt.Errorf("invalid %s: amount must be positive, got %s", kind, params.Amount)
	}

	docs, err := s.List(kind)
	if err != nil {
		return model.Document{}, err
	}

	doc := model.Document{
		ID:             fmt.Sprintf("%s-%04d", prefix, nextSeq(docs, prefix)),
		Kind:           kind,
		CounterpartyID: params.CounterpartyID,
		Date:           params.Date,
		DueDate:        params.DueDate,
		Amount:         params.Amount.Round(2),
		Status:         model.StatusUnpaid,
	}
	if err := s.write(kind, append(docs, doc)); err != nil {
		return model.Document{}, err
	}
	return doc, nil
}

// Get returns one document by id.
func (s *Store) Get(kind model.DocumentKind, docID string) (model.Document, error) {
	docs, err := s.List(kind)
	if err != nil {
		return model.Document{}, err
	}
	for _, d := range docs {
		if d.ID == docID {
			return d, nil
		}
	}
	return model.Document{}, fmt.Errorf("%s %s: %w", kind, docID, ErrNotFound)
}

// Pay moves an unpaid document to paid. Paid documents never go back.
func (s *Store) Pay(kind model.DocumentKind, docID string) (model.Document, error) {
	docs, err := s.List(kind)
	if err != nil {
		return model.Document{}, err
	}
	for i := range docs {
		if docs[i].ID != docID {
			continue
		}
		if !docs[i].IsOpen() {
			return docs[i], fmt.Errorf("%s %s: %w", kind, docID, ErrAlreadyPaid)
		}
		docs[i].Status = model.StatusPaid
		if err := s.write(kind, docs); err != nil {
			return model.Document{}, err
		}
		return docs[i], nil
	}
	return model.Document{}, fmt.Errorf("%s %s: %w", kind, docID, ErrNotFound)
}

func (s *Store) write(kind model.DocumentKind, docs []model.Document) error {
	path := s.path(kind)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating documents dir: %w", err)
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating %ss: %w", kind, err)
	}
	if err := writeDocuments(f, docs); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing %ss: %w", kind, err)
	}
	return os.Rename(tmp, path)
}

func nextSeq(docs []model.Document, prefix string) int {
	highest := 0
	for _, d := range docs {
		var n int
		if _, err := fmt.Sscanf(strings.TrimPrefix(d.ID, prefix+"-"), "%d", &n); err == nil && n > highest {
			highest = n
		}
	}
	return highest + 1
}
