package recon

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Action is the kind of a match log row.
type Action string

const (
	ActionAuto     Action = Action(MethodAuto)
	ActionManual   Action = Action(MethodManual)
	ActionFinalize Action = "finalize"
)

// LogEntry is one row of logs/reconciliation-<account>.csv.
type LogEntry struct {
	Timestamp  time.Time
	SessionID  string
	Action     Action
	BankLineID string
	LedgerID   string
	Details    string
}

// LogHeader is the header row of the match log.
var LogHeader = []string{"timestamp", "session_id", "action", "bank_line", "ledger_line", "details"}

const (
	logDir       = "logs"
	numLogFields = 6
	colTimestamp = 0
	colSession   = 1
	colAction    = 2
	colBankLine  = 3
	colLedger    = 4
	colDetails   = 5
)

// LogPath returns the match log for a bank account.
func LogPath(repoRoot string, accountID int) string {
	return filepath.Join(repoRoot, logDir, "reconciliation-"+strconv.Itoa(accountID)+".csv")
}

// MarshalLogEntry converts a LogEntry to a CSV row.
func MarshalLogEntry(e LogEntry) []string {
	row := make([]string, numLogFields)
	row[colTimestamp] = e.Timestamp.UTC().Format(time.RFC3339)
	row[colSession] = e.SessionID
	row[colAction] = string(e.Action)
	row[colBankLine] = e.BankLineID
	row[colLedger] = e.LedgerID
	row[colDetails] = e.Details
	return row
}

// UnmarshalLogEntry converts a CSV row to a LogEntry.
func UnmarshalLogEntry(record []string) (LogEntry, error) {
	if len(record) != numLogFields {
		return LogEntry{}, fmt.Errorf("expected %d fields, got %d", numLogFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return LogEntry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	action := Action(record[colAction])
	switch action {
	case ActionAuto, ActionManual, ActionFinalize:
	default:
		return LogEntry{}, fmt.Errorf("unknown action %q", record[colAction])
	}

	return LogEntry{
		Timestamp:  ts,
		SessionID:  record[colSession],
		Action:     action,
		BankLineID: record[colBankLine],
		LedgerID:   record[colLedger],
		Details:    record[colDetails],
	}, nil
}

// MatchLog turns session matches into log rows.
func MatchLog(sessionID string, matches []Match) []LogEntry {
	entries := make([]LogEntry, 0, len(matches))
	for _, m := range matches {
		entries = append(entries, LogEntry{
			Timestamp:  m.At,
			SessionID:  sessionID,
			Action:     Action(m.Method),
			BankLineID: m.BankID,
			LedgerID:   m.LedgerID,
		})
	}
	return entries
}

// AppendLog writes entries to the account's match log, creating the file
// and header if needed.
func AppendLog(repoRoot string, accountID int, entries []LogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Join(repoRoot, logDir), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := LogPath(repoRoot, accountID)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening match log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(LogHeader); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalLogEntry(e)); err != nil {
			return fmt.Errorf("writing log entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadLog returns the account's match log, or nil if it does not exist.
func ReadLog(repoRoot string, accountID int) ([]LogEntry, error) {
	f, err := os.Open(LogPath(repoRoot, accountID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening match log: %w", err)
	}
	defer f.Close()

	return readLog(f)
}

func readLog(r io.Reader) ([]LogEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numLogFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading match log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []LogEntry
	for i, rec := range records[1:] {
		e, err := UnmarshalLogEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// FinalizeLog returns the row recording that the session was finalized. The
// line counts let Replay tell whether the collections have changed since.
func (s *Session) FinalizeLog() LogEntry {
	return LogEntry{
		Timestamp: s.now(),
		SessionID: s.id,
		Action:    ActionFinalize,
		Details:   fmt.Sprintf(finalizeDetails, len(s.bank), len(s.ledger)),
	}
}

const finalizeDetails = "bank_lines=%d ledger_lines=%d"

// Replay re-applies logged matches to a fresh session. Rows whose lines no
// longer exist or are already matched are skipped and counted. A finalize
// row closes the session again when the bank and ledger line counts are
// still the ones it recorded; once lines are added or removed the
// reconciliation is open. Replayed pairs do not show up in Matches.
func (s *Session) Replay(entries []LogEntry) (applied, skipped int) {
	for _, e := range entries {
		if e.Action == ActionFinalize {
			var nBank, nLedger int
			_, err := fmt.Sscanf(e.Details, finalizeDetails, &nBank, &nLedger)
			s.finalized = err == nil && nBank == len(s.bank) && nLedger == len(s.ledger)
			continue
		}
		bi, okB := s.bankIdx[e.BankLineID]
		li, okL := s.ledgerIdx[e.LedgerID]
		if !okB || !okL || s.bank[bi].Matched || s.ledger[li].Matched {
			skipped++
			continue
		}
		s.bank[bi].Matched = true
		s.ledger[li].Matched = true
		applied++
	}
	if skipped > 0 {
		s.logger.Warn("stale match log rows skipped",
			zap.String("session", s.id),
			zap.Int("skipped", skipped))
	}
	if s.finalized {
		s.logger.Debug("reconciliation already finalized", zap.String("session", s.id))
	}
	return applied, skipped
}
