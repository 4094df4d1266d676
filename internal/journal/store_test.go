package journal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/reckon/internal/period"
)

func TestAddEntry_NewMonth(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, newMockAccounts(1010, 5020))

	entryID, err := store.AddEntry(AddParams{
		Date:          date(2025, 1, 15),
		Description:   "GitHub subscription",
		DebitAccount:  5020,
		CreditAccount: 1010,
		Amount:        dec("4.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-01-001", entryID)

	_, err = os.Stat(filepath.Join(dir, "2025", "01", "journal.csv"))
	require.NoError(t, err)

	entries, err := store.ReadMonth(2025, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Amount.Equal(dec("4.00")))
	assert.Equal(t, 5020, entries[0].DebitAccountID)
}

func TestAddEntry_ExistingMonth(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, newMockAccounts(1010, 5020))

	_, err := store.AddEntry(AddParams{Date: date(2025, 1, 10), DebitAccount: 5020, CreditAccount: 1010, Amount: dec("10.00")})
	require.NoError(t, err)

	entryID, err := store.AddEntry(AddParams{Date: date(2025, 1, 20), DebitAccount: 5020, CreditAccount: 1010, Amount: dec("20.00")})
	require.NoError(t, err)
	assert.Equal(t, "2025-01-002", entryID)

	entries, err := store.ReadMonth(2025, 1)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestAddEntry_ValidationFailure(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, newMockAccounts(1010)) // 5020 does NOT exist

	_, err := store.AddEntry(AddParams{Date: date(2025, 1, 15), DebitAccount: 5020, CreditAccount: 1010, Amount: dec("50.00")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	var verrs Errors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, RuleKnownAccount, verrs[0].Rule)

	// Nothing was written.
	entries, err := store.ReadMonth(2025, 1)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAddEntry_RejectsNonPositive(t *testing.T) {
	store := NewStore(t.TempDir(), newMockAccounts(1010, 5020))
	_, err := store.AddEntry(AddParams{Date: date(2025, 1, 15), DebitAccount: 5020, CreditAccount: 1010, Amount: dec("0")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), string(RulePositiveAmount))
}

func seedStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(t.TempDir(), newMockAccounts(1010, 4010, 5020))
	for _, p := range []AddParams{
		{Date: date(2025, 3, 2), DebitAccount: 1010, CreditAccount: 4010, Amount: dec("300.00")},
		{Date: date(2025, 1, 20), DebitAccount: 5020, CreditAccount: 1010, Amount: dec("20.00")},
		{Date: date(2025, 1, 5), DebitAccount: 1010, CreditAccount: 4010, Amount: dec("100.00")},
		{Date: date(2024, 12, 31), DebitAccount: 5020, CreditAccount: 1010, Amount: dec("7.00")},
	} {
		_, err := store.AddEntry(p)
		require.NoError(t, err)
	}
	return store
}

func TestList_All(t *testing.T) {
	store := seedStore(t)

	entries, err := store.List(Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 4)

	// Ordered by date.
	assert.Equal(t, "2024-12-001", entries[0].ID)
	assert.Equal(t, "2025-01-002", entries[1].ID)
	assert.Equal(t, "2025-01-001", entries[2].ID)
	assert.Equal(t, "2025-03-001", entries[3].ID)
}

func TestList_Range(t *testing.T) {
	store := seedStore(t)

	entries, err := store.List(Filter{Range: period.For(period.Quarterly, date(2025, 2, 1))})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.Equal(t, 2025, e.Date.Year())
	}

	entries, err = store.List(Filter{Range: period.Between(date(2025, 1, 20), date(2025, 1, 20))})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2025-01-001", entries[0].ID)
}

func TestList_Account(t *testing.T) {
	store := seedStore(t)

	entries, err := store.List(Filter{AccountID: 5020})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestList_EmptyRepo(t *testing.T) {
	store := NewStore(t.TempDir(), newMockAccounts())
	entries, err := store.List(Filter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDelete(t *testing.T) {
	store := seedStore(t)

	require.NoError(t, store.Delete("2025-01-001"))

	entries, err := store.ReadMonth(2025, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2025-01-002", entries[0].ID)

	// Deleted sequence numbers are not reused.
	next, err := store.NextEntrySeq(2025, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, next)
}

func TestDelete_LastEntryKeepsSequence(t *testing.T) {
	store := seedStore(t)

	require.NoError(t, store.Delete("2025-01-002"))

	next, err := store.NextEntrySeq(2025, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, next)

	entryID, err := store.AddEntry(AddParams{Date: date(2025, 1, 28), DebitAccount: 1010, CreditAccount: 4010, Amount: dec("999.00")})
	require.NoError(t, err)
	assert.Equal(t, "2025-01-003", entryID)

	// Deleting every entry still leaves the month's ids retired.
	require.NoError(t, store.Delete("2025-01-001"))
	require.NoError(t, store.Delete("2025-01-003"))
	next, err = store.NextEntrySeq(2025, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, next)
}

func TestDelete_NotFound(t *testing.T) {
	store := seedStore(t)

	err := store.Delete("2025-01-009")
	require.ErrorIs(t, err, ErrEntryNotFound)

	err = store.Delete("garbage")
	require.Error(t, err)
}
