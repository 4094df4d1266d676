package reports

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/reckon/internal/accounts"
	"github.com/cleared-dev/reckon/internal/model"
)

// Bucket is an aging band.
type Bucket string

const (
	BucketCurrent Bucket = "Current"
	Bucket1To30   Bucket = "1-30 Days"
	Bucket31To60  Bucket = "31-60 Days"
	Bucket61To90  Bucket = "61-90 Days"
	Bucket90Plus  Bucket = "90+ Days"
)

// Buckets lists the aging bands from youngest to oldest.
var Buckets = []Bucket{BucketCurrent, Bucket1To30, Bucket31To60, Bucket61To90, Bucket90Plus}

// Priority ranks how urgently a payable should be paid.
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

// Directory resolves counterparty ids to display names.
type Directory interface {
	Lookup(id string) (model.Counterparty, bool)
}

// DaysOverdue counts started days past due, zero when not yet due.
func DaysOverdue(due, now time.Time) int {
	late := now.Sub(due)
	if late <= 0 {
		return 0
	}
	return int(math.Ceil(late.Hours() / 24))
}

// BucketFor places a days-overdue count in its aging band.
func BucketFor(days int) Bucket {
	switch {
	case days <= 0:
		return BucketCurrent
	case days <= 30:
		return Bucket1To30
	case days <= 60:
		return Bucket31To60
	case days <= 90:
		return Bucket61To90
	default:
		return Bucket90Plus
	}
}

// PriorityFor ranks a payable by days overdue.
func PriorityFor(days int) Priority {
	switch {
	case days > 90:
		return PriorityCritical
	case days > 60:
		return PriorityHigh
	case days > 30:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// AgingItem is one open document in the schedule.
type AgingItem struct {
	Document     model.Document
	Counterparty string
	DaysOverdue  int
	Bucket       Bucket
	Priority     Priority // payables only
}

// BucketTotal sums the items in one band.
type BucketTotal struct {
	Bucket Bucket
	Count  int
	Total  decimal.Decimal
}

// AgingReport is an aging schedule for receivables or payables.
type AgingReport struct {
	Kind    model.DocumentKind
	AsOf    time.Time
	Items   []AgingItem
	Buckets []BucketTotal // one per band, in Buckets order
	Total   decimal.Decimal
}

// Aging builds the schedule of open documents of the given kind as of now.
// Items are ordered most overdue first. Counterparties missing from dir
// show as "Unknown"; dir may be nil.
func Aging(docs []model.Document, kind model.DocumentKind, dir Directory, now time.Time) *AgingReport {
	report := &AgingReport{Kind: kind, AsOf: now, Total: decimal.Zero}

	totals := make(map[Bucket]*BucketTotal, len(Buckets))
	for _, b := range Buckets {
		report.Buckets = append(report.Buckets, BucketTotal{Bucket: b, Total: decimal.Zero})
	}
	for i := range report.Buckets {
		totals[report.Buckets[i].Bucket] = &report.Buckets[i]
	}

	for _, doc := range docs {
		if doc.Kind != kind || !doc.IsOpen() {
			continue
		}
		days := DaysOverdue(doc.DueDate, now)
		item := AgingItem{
			Document:     doc,
			Counterparty: counterpartyName(dir, doc.CounterpartyID),
			DaysOverdue:  days,
			Bucket:       BucketFor(days),
		}
		if kind == model.KindBill {
			item.Priority = PriorityFor(days)
		}
		report.Items = append(report.Items, item)

		bt := totals[item.Bucket]
		bt.Count++
		bt.Total = bt.Total.Add(doc.Amount)
		report.Total = report.Total.Add(doc.Amount)
	}

	sort.SliceStable(report.Items, func(i, j int) bool {
		a, b := report.Items[i], report.Items[j]
		if a.DaysOverdue != b.DaysOverdue {
			return a.DaysOverdue > b.DaysOverdue
		}
		return a.Document.ID < b.Document.ID
	})
	return report
}

func counterpartyName(dir Directory, id string) string {
	if dir == nil {
		return accounts.UnknownName
	}
	cp, ok := dir.Lookup(id)
	if !ok || cp.Name == "" {
		return accounts.UnknownName
	}
	return cp.Name
}
