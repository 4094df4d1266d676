// Package recon pairs bank statement lines with ledger lines.
package recon

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cleared-dev/reckon/internal/id"
	"github.com/cleared-dev/reckon/internal/model"
)

// Method records how a pair was matched.
type Method string

const (
	MethodAuto   Method = "auto"
	MethodManual Method = "manual"
)

// Match is one bank line paired with one ledger line.
type Match struct {
	BankID   string
	LedgerID string
	Method   Method
	At       time.Time
}

// Summary is a snapshot of a session.
type Summary struct {
	SessionID       string
	Matches         int
	UnmatchedBank   []model.StatementLine
	UnmatchedLedger []model.StatementLine
	BankTotal       decimal.Decimal
	LedgerTotal     decimal.Decimal
	Variance        decimal.Decimal
	Finalized       bool
}

// Session holds the two collections being reconciled and their matched
// flags. A Session is not safe for concurrent use; callers serialize
// matching on one pair of collections.
type Session struct {
	id        string
	bank      []model.StatementLine
	ledger    []model.StatementLine
	bankIdx   map[string]int
	ledgerIdx map[string]int
	matches   []Match
	finalized bool
	logger    *zap.Logger
	now       func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithID overrides the generated session id.
func WithID(sessionID string) Option {
	return func(s *Session) { s.id = sessionID }
}

// WithClock sets the time source for match timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// NewSession starts a session over copies of bank and ledger. Line ids must
// be unique within each collection. Lines already flagged Matched stay
// matched.
func NewSession(bank, ledger []model.StatementLine, opts ...Option) (*Session, error) {
	s := &Session{
		id:     id.NewSessionID(),
		bank:   append([]model.StatementLine(nil), bank...),
		ledger: append([]model.StatementLine(nil), ledger...),
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	var err error
	if s.bankIdx, err = index(s.bank); err != nil {
		return nil, fmt.Errorf("bank lines: %w", err)
	}
	if s.ledgerIdx, err = index(s.ledger); err != nil {
		return nil, fmt.Errorf("ledger lines: %w", err)
	}
	return s, nil
}

func index(lines []model.StatementLine) (map[string]int, error) {
	idx := make(map[string]int, len(lines))
	for i, l := range lines {
		if l.ID == "" {
			return nil, fmt.Errorf("line %d has no id", i+1)
		}
		if _, dup := idx[l.ID]; dup {
			return nil, fmt.Errorf("duplicate line id %q", l.ID)
		}
		idx[l.ID] = i
	}
	return idx, nil
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Bank returns a copy of the bank lines with their current matched flags.
func (s *Session) Bank() []model.StatementLine {
	return append([]model.StatementLine(nil), s.bank...)
}

// Ledger returns a copy of the ledger lines with their current matched flags.
func (s *Session) Ledger() []model.StatementLine {
	return append([]model.StatementLine(nil), s.ledger...)
}

// Matches returns the pairs made in this session, oldest first.
func (s *Session) Matches() []Match {
	return append([]Match(nil), s.matches...)
}

// AutoMatch walks the unmatched bank lines in order and pairs each with the
// first unmatched ledger line of exactly equal amount. It is a single greedy
// pass; running it again finds nothing new.
func (s *Session) AutoMatch() (int, error) {
	if s.finalized {
		return 0, ErrFinalized
	}
	if len(s.bank) == 0 || len(s.ledger) == 0 {
		return 0, ErrNothingToMatch
	}

	found := 0
	for i := range s.bank {
		b := &s.bank[i]
		if b.Matched {
			continue
		}
		for j := range s.ledger {
			l := &s.ledger[j]
			if l.Matched || !l.Amount.Equal(b.Amount) {
				continue
			}
			s.pair(b, l, MethodAuto)
			found++
			break
		}
	}

	s.logger.Info("auto-match complete",
		zap.String("session", s.id),
		zap.Int("matched", found),
		zap.Int("unmatched_bank", countUnmatched(s.bank)),
		zap.Int("unmatched_ledger", countUnmatched(s.ledger)))
	return found, nil
}

// ManualMatch pairs one bank line with one ledger line chosen by the
// operator. When their magnitudes differ the pair is only made if confirmed;
// otherwise an *AmountMismatchError is returned and nothing changes.
// Matches cannot be undone.
func (s *Session) ManualMatch(bankID, ledgerID string, confirmed bool) error {
	if s.finalized {
		return ErrFinalized
	}
	if bankID == "" || ledgerID == "" {
		return ErrSelectionRequired
	}

	bi, ok := s.bankIdx[bankID]
	if !ok {
		return fmt.Errorf("bank line %q: %w", bankID, ErrLineNotFound)
	}
	li, ok := s.ledgerIdx[ledgerID]
	if !ok {
		return fmt.Errorf("ledger line %q: %w", ledgerID, ErrLineNotFound)
	}

	b, l := &s.bank[bi], &s.ledger[li]
	if b.Matched {
		return fmt.Errorf("bank line %q: %w", bankID, ErrAlreadyMatched)
	}
	if l.Matched {
		return fmt.Errorf("ledger line %q: %w", ledgerID, ErrAlreadyMatched)
	}

	if !b.Amount.Abs().Equal(l.Amount.Abs()) && !confirmed {
		return &AmountMismatchError{
			BankID:     bankID,
			LedgerID:   ledgerID,
			BankAmount: b.Amount,
			LedgerAmt:  l.Amount,
		}
	}

	s.pair(b, l, MethodManual)
	return nil
}

func (s *Session) pair(b, l *model.StatementLine, m Method) {
	b.Matched = true
	l.Matched = true
	s.matches = append(s.matches, Match{BankID: b.ID, LedgerID: l.ID, Method: m, At: s.now()})
	s.logger.Debug("matched",
		zap.String("session", s.id),
		zap.String("bank", b.ID),
		zap.String("ledger", l.ID),
		zap.String("method", string(m)),
		zap.String("amount", b.Amount.StringFixed(2)))
}

// Variance is the bank total minus the ledger total over every line,
// matched or not.
func (s *Session) Variance() decimal.Decimal {
	return total(s.bank).Sub(total(s.ledger))
}

// Status summarizes the session without changing it.
func (s *Session) Status() Summary {
	bankTotal, ledgerTotal := total(s.bank), total(s.ledger)
	return Summary{
		SessionID:       s.id,
		Matches:         countMatched(s.bank),
		UnmatchedBank:   unmatched(s.bank),
		UnmatchedLedger: unmatched(s.ledger),
		BankTotal:       bankTotal,
		LedgerTotal:     ledgerTotal,
		Variance:        bankTotal.Sub(ledgerTotal),
		Finalized:       s.finalized,
	}
}

// Finalize closes the session when the statement totals agree. Only totals
// are compared: unmatched lines do not block finalization and are listed in
// the returned Summary. While the variance is non-zero a *RejectionError is
// returned and the session stays open.
func (s *Session) Finalize() (Summary, error) {
	if s.finalized {
		return s.Status(), ErrFinalized
	}

	variance := s.Variance()
	if !variance.IsZero() {
		s.logger.Warn("finalize rejected",
			zap.String("session", s.id),
			zap.String("variance", variance.StringFixed(2)))
		return s.Status(), &RejectionError{Variance: variance}
	}

	s.finalized = true
	summary := s.Status()
	s.logger.Info("reconciliation finalized",
		zap.String("session", s.id),
		zap.Int("matches", summary.Matches),
		zap.Int("unmatched_bank", len(summary.UnmatchedBank)),
		zap.Int("unmatched_ledger", len(summary.UnmatchedLedger)))
	return summary, nil
}

func total(lines []model.StatementLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Amount)
	}
	return sum
}

func unmatched(lines []model.StatementLine) []model.StatementLine {
	var out []model.StatementLine
	for _, l := range lines {
		if !l.Matched {
			out = append(out, l)
		}
	}
	return out
}

func countUnmatched(lines []model.StatementLine) int {
	return len(lines) - countMatched(lines)
}

func countMatched(lines []model.StatementLine) int {
	n := 0
	for _, l := range lines {
		if l.Matched {
			n++
		}
	}
	return n
}
