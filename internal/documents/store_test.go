package documents

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/reckon/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func bill(vendor string, amount string) AddParams {
	return AddParams{
		CounterpartyID: vendor,
		Date:           date(2025, 1, 10),
		DueDate:        date(2025, 2, 9),
		Amount:         decimal.RequireFromString(amount),
	}
}

func TestAdd_AssignsIDs(t *testing.T) {
	s := NewStore(t.TempDir())

	b1, err := s.Add(model.KindBill, bill("V1", "120.50"))
	require.NoError(t, err)
	assert.Equal(t, "BILL-0001", b1.ID)
	assert.Equal(t, model.StatusUnpaid, b1.Status)

	b2, err := s.Add(model.KindBill, bill("V2", "80"))
	require.NoError(t, err)
	assert.Equal(t, "BILL-0002", b2.ID)

	inv, err := s.Add(model.KindInvoice, bill("C1", "3500"))
	require.NoError(t, err)
	assert.Equal(t, "INV-0001", inv.ID)

	bills, err := s.List(model.KindBill)
	require.NoError(t, err)
	require.Len(t, bills, 2)
	assert.Equal(t, "V1", bills[0].CounterpartyID)
	assert.Equal(t, "120.50", bills[0].Amount.StringFixed(2))
	assert.True(t, bills[0].DueDate.Equal(date(2025, 2, 9)))
	assert.Equal(t, model.KindBill, bills[0].Kind)
}

func TestAdd_Invalid(t *testing.T) {
	s := NewStore(t.TempDir())

	tests := []struct {
		name   string
		params AddParams
		want   string
	}{
		{"no counterparty", bill("", "10"), "CounterpartyID"},
		{"zero amount", bill("V1", "0"), "amount must be positive"},
		{"negative amount", bill("V1", "-5"), "amount must be positive"},
		{"due before date", AddParams{CounterpartyID: "V1", Date: date(2025, 2, 1), DueDate: date(2025, 1, 1), Amount: decimal.NewFromInt(1)}, "DueDate"},
		{"missing date", AddParams{CounterpartyID: "V1", DueDate: date(2025, 1, 1), Amount: decimal.NewFromInt(1)}, "Date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Add(model.KindBill, tt.params)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	bills, err := s.List(model.KindBill)
	require.NoError(t, err)
	assert.Empty(t, bills)
}

func TestPay(t *testing.T) {
	s := NewStore(t.TempDir())
	_, err := s.Add(model.KindBill, bill("V1", "10"))
	require.NoError(t, err)
	_, err = s.Add(model.KindBill, bill("V1", "20"))
	require.NoError(t, err)

	paid, err := s.Pay(model.KindBill, "BILL-0002")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPaid, paid.Status)

	_, err = s.Pay(model.KindBill, "BILL-0002")
	assert.ErrorIs(t, err, ErrAlreadyPaid)

	_, err = s.Pay(model.KindBill, "BILL-0099")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Pay(model.KindInvoice, "BILL-0001")
	assert.ErrorIs(t, err, ErrNotFound)

	bills, err := s.List(model.KindBill)
	require.NoError(t, err)
	assert.True(t, bills[0].IsOpen())
	assert.False(t, bills[1].IsOpen())
}

func TestGet(t *testing.T) {
	s := NewStore(t.TempDir())
	_, err := s.Add(model.KindInvoice, bill("C1", "75.50"))
	require.NoError(t, err)

	doc, err := s.Get(model.KindInvoice, "INV-0001")
	require.NoError(t, err)
	assert.Equal(t, "C1", doc.CounterpartyID)
	assert.True(t, doc.Amount.Equal(decimal.RequireFromString("75.50")))

	_, err = s.Get(model.KindBill, "INV-0001")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_Missing(t *testing.T) {
	docs, err := NewStore(t.TempDir()).List(model.KindInvoice)
	require.NoError(t, err)
	assert.Nil(t, docs)
}

func TestList_BadStatus(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "documents"), 0o755))
	data := "doc_id,counterparty_id,date,due_date,amount,status\nBILL-0001,V1,2025-01-01,2025-01-31,10.00,void\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "documents", "bills.csv"), []byte(data), 0o644))

	_, err := NewStore(root).List(model.KindBill)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
	assert.Contains(t, err.Error(), "unknown status")
}

func TestDirectory(t *testing.T) {
	s := NewStore(t.TempDir())

	d, err := s.Directory()
	require.NoError(t, err)
	_, ok := d.Lookup("V1")
	assert.False(t, ok)

	require.NoError(t, s.SaveCounterparty(model.Counterparty{ID: "V2", Name: "Paper Co"}))
	require.NoError(t, s.SaveCounterparty(model.Counterparty{ID: "V1", Name: "Acme"}))
	require.NoError(t, s.SaveCounterparty(model.Counterparty{ID: "V1", Name: "Acme Hosting"}))

	d, err = s.Directory()
	require.NoError(t, err)
	cp, ok := d.Lookup("V1")
	require.True(t, ok)
	assert.Equal(t, "Acme Hosting", cp.Name)

	all := d.All()
	require.Len(t, all, 2)
	assert.Equal(t, "V1", all[0].ID)

	assert.Error(t, s.SaveCounterparty(model.Counterparty{Name: "nameless"}))
}
