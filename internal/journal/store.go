package journal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/reckon/internal/id"
	"github.com/cleared-dev/reckon/internal/model"
	"github.com/cleared-dev/reckon/internal/period"
)

// ErrEntryNotFound is returned when deleting an entry id that is not in the journal.
var ErrEntryNotFound = errors.New("journal entry not found")

// Store reads and writes the monthly journal files under a repo root:
// <root>/YYYY/MM/journal.csv.
type Store struct {
	repoRoot string
	accounts AccountChecker
}

// NewStore creates a journal Store.
func NewStore(repoRoot string, accounts AccountChecker) *Store {
	return &Store{repoRoot: repoRoot, accounts: accounts}
}

// AddParams holds parameters for posting a journal entry.
type AddParams struct {
	Date          time.Time
	Description   string
	DebitAccount  int
	CreditAccount int
	Amount        decimal.Decimal
}

// Filter narrows List results. The zero Filter matches every entry.
type Filter struct {
	Range     period.Range
	AccountID int // 0 = any account
}

// Match reports whether e passes the filter.
func (f Filter) Match(e model.JournalEntry) bool {
	if !f.Range.Contains(e.Date) {
		return false
	}
	if f.AccountID != 0 && e.DebitAccountID != f.AccountID && e.CreditAccountID != f.AccountID {
		return false
	}
	return true
}

// AddEntry validates a new entry, assigns the month's next id, and appends it
// to the month's journal.csv. Returns the entry ID.
func (s *Store) AddEntry(params AddParams) (string, error) {
	year := params.Date.Year()
	month := int(params.Date.Month())

	seq, err := s.NextEntrySeq(year, month)
	if err != nil {
		return "", err
	}

	entry := model.JournalEntry{
		ID:              id.FormatEntryID(year, month, seq),
		Date:            params.Date,
		Description:     params.Description,
		DebitAccountID:  params.DebitAccount,
		CreditAccountID: params.CreditAccount,
		Amount:          params.Amount,
	}

	if verrs := ValidateEntry(entry, s.accounts); len(verrs) > 0 {
		return "", fmt.Errorf("validation failed: %w", Errors(verrs))
	}

	journalPath := s.monthPath(year, month)
	if err := os.MkdirAll(filepath.Dir(journalPath), 0o755); err != nil {
		return "", fmt.Errorf("creating journal dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(journalPath); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(journalPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return "", fmt.Errorf("opening journal: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return "", fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendEntries(f, []model.JournalEntry{entry}); err != nil {
		return "", fmt.Errorf("appending entry: %w", err)
	}

	return entry.ID, nil
}

// ReadMonth reads all entries for a given year/month.
func (s *Store) ReadMonth(year, month int) ([]model.JournalEntry, error) {
	path := s.monthPath(year, month)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", path, err)
	}
	defer f.Close()

	entries, err := ReadEntries(f)
	if err != nil {
		return nil, fmt.Errorf("reading journal %s: %w", path, err)
	}
	return entries, nil
}

// List returns every entry matching the filter, ordered by date then id.
// Month files entirely outside the filter range are not read.
func (s *Store) List(filter Filter) ([]model.JournalEntry, error) {
	months, err := s.months()
	if err != nil {
		return nil, err
	}

	var result []model.JournalEntry
	for _, ym := range months {
		if !filter.Range.IsZero() && !overlaps(filter.Range, ym[0], ym[1]) {
			continue
		}
		entries, err := s.ReadMonth(ym[0], ym[1])
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if filter.Match(e) {
				result = append(result, e)
			}
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// Delete removes an entry by id, rewriting its month file.
func (s *Store) Delete(entryID string) error {
	year, month, _, err := id.ParseEntryID(entryID)
	if err != nil {
		return err
	}

	entries, err := s.ReadMonth(year, month)
	if err != nil {
		return err
	}

	highest, err := s.highWater(year, month)
	if err != nil {
		return err
	}
	if m := maxSeq(entries); m > highest {
		highest = m
	}

	kept := entries[:0]
	found := false
	for _, e := range entries {
		if e.ID == entryID {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return fmt.Errorf("%s: %w", entryID, ErrEntryNotFound)
	}
	if err := s.setHighWater(year, month, highest); err != nil {
		return err
	}

	f, err := os.Create(s.monthPath(year, month))
	if err != nil {
		return fmt.Errorf("rewriting journal: %w", err)
	}
	defer f.Close()

	if err := WriteEntries(f, kept); err != nil {
		return fmt.Errorf("rewriting journal: %w", err)
	}
	return nil
}

// NextEntrySeq returns the next available sequence number for a month.
// Sequence numbers of deleted entries are not reused: Delete records the
// month's highest sequence in YYYY/MM/last_seq before removing anything.
func (s *Store) NextEntrySeq(year, month int) (int, error) {
	entries, err := s.ReadMonth(year, month)
	if err != nil {
		return 0, err
	}
	highest, err := s.highWater(year, month)
	if err != nil {
		return 0, err
	}
	if m := maxSeq(entries); m > highest {
		highest = m
	}
	return highest + 1, nil
}

func maxSeq(entries []model.JournalEntry) int {
	highest := 0
	for _, e := range entries {
		_, _, seq, err := id.ParseEntryID(e.ID)
		if err != nil {
			continue
		}
		if seq > highest {
			highest = seq
		}
	}
	return highest
}

func (s *Store) highWaterPath(year, month int) string {
	return filepath.Join(filepath.Dir(s.monthPath(year, month)), "last_seq")
}

// highWater returns the recorded highest sequence for a month, 0 if none.
func (s *Store) highWater(year, month int) (int, error) {
	data, err := os.ReadFile(s.highWaterPath(year, month))
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading last_seq: %w", err)
	}
	seq, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parsing last_seq: %w", err)
	}
	return seq, nil
}

func (s *Store) setHighWater(year, month, seq int) error {
	if err := os.WriteFile(s.highWaterPath(year, month), []byte(strconv.Itoa(seq)+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing last_seq: %w", err)
	}
	return nil
}

// months lists the [year, month] pairs that have a journal file, in order.
func (s *Store) months() ([][2]int, error) {
	matches, err := filepath.Glob(filepath.Join(s.repoRoot, "[0-9][0-9][0-9][0-9]", "[0-9][0-9]", "journal.csv"))
	if err != nil {
		return nil, fmt.Errorf("listing journal files: %w", err)
	}

	var months [][2]int
	for _, m := range matches {
		monthDir := filepath.Dir(m)
		var year, month int
		if _, err := fmt.Sscanf(filepath.Base(filepath.Dir(monthDir))+"-"+filepath.Base(monthDir), "%d-%d", &year, &month); err != nil {
			continue
		}
		months = append(months, [2]int{year, month})
	}
	sort.Slice(months, func(i, j int) bool {
		if months[i][0] != months[j][0] {
			return months[i][0] < months[j][0]
		}
		return months[i][1] < months[j][1]
	})
	return months, nil
}

func overlaps(r period.Range, year, month int) bool {
	monthRange := period.For(period.Monthly, time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC))
	return r.Contains(monthRange.From) || r.Contains(monthRange.To) ||
		(monthRange.Contains(r.From) && !r.From.IsZero()) || (monthRange.Contains(r.To) && !r.To.IsZero())
}

func (s *Store) monthPath(year, month int) string {
	return filepath.Join(s.repoRoot, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), "journal.csv")
}
