package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentKind distinguishes payables from receivables.
type DocumentKind string

const (
	KindBill    DocumentKind = "bill"    // payable
	KindInvoice DocumentKind = "invoice" // receivable
)

// DocumentStatus is the payment state of a bill or invoice.
// Transitions are Unpaid -> Paid only.
type DocumentStatus string

const (
	StatusUnpaid DocumentStatus = "unpaid"
	StatusPaid   DocumentStatus = "paid"
)

// Document is a bill or an invoice.
type Document struct {
	ID             string
	Kind           DocumentKind
	CounterpartyID string
	Date           time.Time
	DueDate        time.Time
	Amount         decimal.Decimal
	Status         DocumentStatus
}

// IsOpen reports whether the document is still awaiting payment.
func (d Document) IsOpen() bool {
	return d.Status == StatusUnpaid
}

// Counterparty is a vendor or customer referenced by documents.
type Counterparty struct {
	ID   string
	Name string
}
