package documents

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cleared-dev/reckon/internal/model"
)

// Directory is the set of known vendors and customers.
type Directory struct {
	byID map[string]model.Counterparty
}

// NewDirectory builds a Directory from a list of counterparties.
func NewDirectory(cps []model.Counterparty) *Directory {
	d := &Directory{byID: make(map[string]model.Counterparty, len(cps))}
	for _, cp := range cps {
		d.byID[cp.ID] = cp
	}
	return d
}

func (s *Store) counterpartiesPath() string {
	return filepath.Join(s.repoRoot, dir, "counterparties.csv")
}

// Directory loads counterparties.csv. A missing file gives an empty Directory.
func (s *Store) Directory() (*Directory, error) {
	f, err := os.Open(s.counterpartiesPath())
	if err != nil {
		if os.IsNotExist(err) {
			return NewDirectory(nil), nil
		}
		return nil, fmt.Errorf("opening counterparties: %w", err)
	}
	defer f.Close()

	cps, err := readCounterparties(f)
	if err != nil {
		return nil, err
	}
	return NewDirectory(cps), nil
}

// SaveCounterparty adds or renames a counterparty.
func (s *Store) SaveCounterparty(cp model.Counterparty) error {
	cp.ID = strings.TrimSpace(cp.ID)
	if cp.ID == "" {
		return fmt.Errorf("counterparty id is required")
	}

	d, err := s.Directory()
	if err != nil {
		return err
	}
	d.byID[cp.ID] = cp

	path := s.counterpartiesPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating documents dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating counterparties: %w", err)
	}
	defer f.Close()

	return writeCounterparties(f, d.All())
}

// Lookup returns the counterparty with the given id.
func (d *Directory) Lookup(id string) (model.Counterparty, bool) {
	cp, ok := d.byID[id]
	return cp, ok
}

// All returns every counterparty sorted by id.
func (d *Directory) All() []model.Counterparty {
	out := make([]model.Counterparty, 0, len(d.byID))
	for _, cp := range d.byID {
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
