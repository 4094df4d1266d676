package journal

import (
	"time"

	"github.com/shopspring/decimal"
)

// mockAccounts implements AccountChecker for testing.
type mockAccounts struct {
	ids map[int]bool
}

func (m *mockAccounts) Exists(id int) bool {
	return m.ids[id]
}

func newMockAccounts(ids ...int) *mockAccounts {
	m := &mockAccounts{ids: make(map[int]bool)}
	for _, id := range ids {
		m.ids[id] = true
	}
	return m
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
