// Package period computes reporting period boundaries.
package period

import (
	"fmt"
	"strings"
	"time"
)

// Type is the length of a reporting period.
type Type int

const (
	Monthly Type = iota
	Quarterly
	Yearly
)

func (t Type) String() string {
	switch t {
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case Yearly:
		return "yearly"
	default:
		panic(fmt.Sprintf("unknown period type %d", int(t)))
	}
}

// Parse reads a period type name.
func Parse(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monthly", "month":
		return Monthly, nil
	case "quarterly", "quarter":
		return Quarterly, nil
	case "yearly", "year", "annual":
		return Yearly, nil
	default:
		return Monthly, fmt.Errorf("unknown period %q", s)
	}
}

// Range is an inclusive date range. A zero From or To leaves that side open;
// the zero Range contains every date.
type Range struct {
	From time.Time
	To   time.Time
}

// All is the unbounded range.
var All = Range{}

// Contains reports whether d falls within the range. Only the calendar day
// of d is compared, so entries stamped at any time of day on To are included.
func (r Range) Contains(d time.Time) bool {
	day := truncate(d)
	if !r.From.IsZero() && day.Before(truncate(r.From)) {
		return false
	}
	if !r.To.IsZero() && day.After(truncate(r.To)) {
		return false
	}
	return true
}

// IsZero reports whether the range is unbounded on both sides.
func (r Range) IsZero() bool {
	return r.From.IsZero() && r.To.IsZero()
}

func (r Range) String() string {
	from, to := "…", "…"
	if !r.From.IsZero() {
		from = r.From.Format("2006-01-02")
	}
	if !r.To.IsZero() {
		to = r.To.Format("2006-01-02")
	}
	return from + " to " + to
}

// For returns the period of type t containing reference: the calendar month,
// the calendar quarter, or January 1 to December 31.
func For(t Type, reference time.Time) Range {
	return ForFiscal(t, reference, time.January)
}

// ForFiscal is For with quarters and years aligned to a fiscal year that
// begins on the first of yearStart. Monthly periods are unaffected.
func ForFiscal(t Type, reference time.Time, yearStart time.Month) Range {
	y, m, _ := reference.Date()
	loc := reference.Location()

	months := 1
	switch t {
	case Quarterly:
		months = 3
	case Yearly:
		months = 12
	}

	// months elapsed since the start of the fiscal year containing reference
	offset := (int(m) - int(yearStart) + 12) % 12
	from := time.Date(y, m, 1, 0, 0, 0, 0, loc).AddDate(0, -(offset % months), 0)
	to := from.AddDate(0, months, -1)
	return Range{From: from, To: to}
}

// Between returns the inclusive range [from, to].
func Between(from, to time.Time) Range {
	return Range{From: from, To: to}
}

// Through returns the range of every date up to and including to.
func Through(to time.Time) Range {
	return Range{To: to}
}

func truncate(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}
