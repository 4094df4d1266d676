// Package render prints reports as aligned plain-text tables.
package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Printer writes reports to w with amounts in one currency.
type Printer struct {
	w        io.Writer
	currency money.Currency
}

// New returns a Printer for an ISO 4217 currency code. Unknown codes still
// print, with the code as the symbol.
func New(w io.Writer, currencyCode string) *Printer {
	// money.New never returns a nil currency, unlike money.GetCurrency.
	return &Printer{w: w, currency: *money.New(0, currencyCode).Currency()}
}

// Amount formats d in the printer's currency, e.g. "$1,234.50".
func (p *Printer) Amount(d decimal.Decimal) string {
	fraction := int32(p.currency.Fraction)
	return p.currency.Formatter().Format(d.Round(fraction).Shift(fraction).IntPart())
}

// blank prints zero as an empty cell, as in debit/credit columns.
func (p *Printer) blank(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return p.Amount(d)
}

func (p *Printer) table() *tabwriter.Writer {
	return tabwriter.NewWriter(p.w, 0, 0, 2, ' ', tabwriter.AlignRight)
}

func (p *Printer) title(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

func row(w io.Writer, cells ...string) {
	for i, c := range cells {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, c)
	}
	fmt.Fprint(w, "\t\n")
}

func check(balanced bool) string {
	if balanced {
		return "balanced"
	}
	return "OUT OF BALANCE"
}
