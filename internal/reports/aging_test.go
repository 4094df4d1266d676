package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/reckon/internal/model"
)

func TestDaysOverdue(t *testing.T) {
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		due  time.Time
		want int
	}{
		{"due in future", now.Add(72 * time.Hour), 0},
		{"due now", now, 0},
		{"one hour late", now.Add(-time.Hour), 1},
		{"exactly one day", now.Add(-24 * time.Hour), 1},
		{"one day and an hour", now.Add(-25 * time.Hour), 2},
		{"forty five days", now.AddDate(0, 0, -45), 45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysOverdue(tt.due, now))
		})
	}
}

func TestBucketAndPriority(t *testing.T) {
	tests := []struct {
		days     int
		bucket   Bucket
		priority Priority
	}{
		{-3, BucketCurrent, PriorityLow},
		{0, BucketCurrent, PriorityLow},
		{1, Bucket1To30, PriorityLow},
		{30, Bucket1To30, PriorityLow},
		{31, Bucket31To60, PriorityMedium},
		{45, Bucket31To60, PriorityMedium},
		{60, Bucket31To60, PriorityMedium},
		{61, Bucket61To90, PriorityHigh},
		{90, Bucket61To90, PriorityHigh},
		{91, Bucket90Plus, PriorityCritical},
		{400, Bucket90Plus, PriorityCritical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.bucket, BucketFor(tt.days), "bucket for %d", tt.days)
		assert.Equal(t, tt.priority, PriorityFor(tt.days), "priority for %d", tt.days)
	}
}

func TestBucketFor_Monotonic(t *testing.T) {
	index := make(map[Bucket]int, len(Buckets))
	for i, b := range Buckets {
		index[b] = i
	}
	prev := 0
	for days := -10; days <= 365; days++ {
		i := index[BucketFor(days)]
		assert.GreaterOrEqual(t, i, prev, "days %d", days)
		prev = i
	}
}

func TestAging_Payables(t *testing.T) {
	now := date(2025, 6, 30)
	docs := []model.Document{
		{ID: "BILL-001", Kind: model.KindBill, CounterpartyID: "V1", DueDate: now.AddDate(0, 0, -45), Amount: dec("500.00"), Status: model.StatusUnpaid},
		{ID: "BILL-002", Kind: model.KindBill, CounterpartyID: "V2", DueDate: now.AddDate(0, 0, 10), Amount: dec("120.00"), Status: model.StatusUnpaid},
		{ID: "BILL-003", Kind: model.KindBill, CounterpartyID: "V404", DueDate: now.AddDate(0, 0, -120), Amount: dec("75.50"), Status: model.StatusUnpaid},
		{ID: "BILL-004", Kind: model.KindBill, CounterpartyID: "V1", DueDate: now.AddDate(0, 0, -200), Amount: dec("999.00"), Status: model.StatusPaid},
		{ID: "INV-001", Kind: model.KindInvoice, CounterpartyID: "C1", DueDate: now.AddDate(0, 0, -5), Amount: dec("300.00"), Status: model.StatusUnpaid},
	}
	dir := directory{"V1": "Acme Hosting", "V2": "Paper Co"}

	report := Aging(docs, model.KindBill, dir, now)

	require.Len(t, report.Items, 3)
	assert.Equal(t, "BILL-003", report.Items[0].Document.ID)
	assert.Equal(t, "Unknown", report.Items[0].Counterparty)
	assert.Equal(t, Bucket90Plus, report.Items[0].Bucket)
	assert.Equal(t, PriorityCritical, report.Items[0].Priority)

	assert.Equal(t, "BILL-001", report.Items[1].Document.ID)
	assert.Equal(t, "Acme Hosting", report.Items[1].Counterparty)
	assert.Equal(t, 45, report.Items[1].DaysOverdue)
	assert.Equal(t, Bucket31To60, report.Items[1].Bucket)
	assert.Equal(t, PriorityMedium, report.Items[1].Priority)

	assert.Equal(t, BucketCurrent, report.Items[2].Bucket)
	assert.Equal(t, PriorityLow, report.Items[2].Priority)

	assert.True(t, report.Total.Equal(dec("695.50")))
	require.Len(t, report.Buckets, len(Buckets))
	sum := dec("0")
	count := 0
	for _, b := range report.Buckets {
		sum = sum.Add(b.Total)
		count += b.Count
	}
	assert.True(t, sum.Equal(report.Total))
	assert.Equal(t, len(report.Items), count)
	assert.Equal(t, 1, report.Buckets[2].Count)
	assert.True(t, report.Buckets[2].Total.Equal(dec("500.00")))
}

func TestAging_ReceivablesHaveNoPriority(t *testing.T) {
	now := date(2025, 6, 30)
	docs := []model.Document{
		{ID: "INV-001", Kind: model.KindInvoice, CounterpartyID: "C1", DueDate: now.AddDate(0, 0, -100), Amount: dec("300.00"), Status: model.StatusUnpaid},
	}

	report := Aging(docs, model.KindInvoice, nil, now)

	require.Len(t, report.Items, 1)
	assert.Equal(t, Bucket90Plus, report.Items[0].Bucket)
	assert.Empty(t, report.Items[0].Priority)
	assert.Equal(t, "Unknown", report.Items[0].Counterparty)
}

func TestAging_Empty(t *testing.T) {
	report := Aging(nil, model.KindBill, nil, date(2025, 1, 1))
	assert.Empty(t, report.Items)
	assert.True(t, report.Total.IsZero())
	assert.Len(t, report.Buckets, 5)
}
