package accounts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/cleared-dev/reckon/internal/model"
)

// ErrNotFound is returned when an account id has no chart entry.
var ErrNotFound = errors.New("account not found")

// UnknownName is displayed in place of an account that cannot be resolved.
const UnknownName = "Unknown"

// chartPath is the chart location relative to the repo root.
const chartPath = "accounts/chart-of-accounts.csv"

// Registry provides in-memory lookup over the chart of accounts and owns
// the sign conventions every report relies on.
type Registry struct {
	accounts []model.Account
	byID     map[int]model.Account
}

// NewRegistry creates a Registry from a slice of accounts.
func NewRegistry(accounts []model.Account) *Registry {
	byID := make(map[int]model.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}
	return &Registry{accounts: accounts, byID: byID}
}

// Load reads chart-of-accounts.csv from a repo root and returns a Registry.
func Load(repoRoot string) (*Registry, error) {
	f, err := os.Open(filepath.Join(repoRoot, chartPath))
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return NewRegistry(accts), nil
}

// Save writes the chart of accounts to accounts/chart-of-accounts.csv.
func (r *Registry) Save(repoRoot string) error {
	path := filepath.Join(repoRoot, chartPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, r.accounts); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}

// All returns all accounts in chart order.
func (r *Registry) All() []model.Account {
	return r.accounts
}

// Get returns an account by ID.
func (r *Registry) Get(id int) (model.Account, bool) {
	a, ok := r.byID[id]
	return a, ok
}

// Exists reports whether an account ID exists.
func (r *Registry) Exists(id int) bool {
	_, ok := r.byID[id]
	return ok
}

// Resolve returns the account for id or an error wrapping ErrNotFound.
func (r *Registry) Resolve(id int) (model.Account, error) {
	a, ok := r.byID[id]
	if !ok {
		return model.Account{}, fmt.Errorf("account %d: %w", id, ErrNotFound)
	}
	return a, nil
}

// Name returns the account name, or UnknownName when id is not in the chart.
func (r *Registry) Name(id int) string {
	if a, ok := r.byID[id]; ok {
		return a.Name
	}
	return UnknownName
}

// ByType returns all accounts of the given type.
func (r *Registry) ByType(accountType model.AccountType) []model.Account {
	var result []model.Account
	for _, a := range r.accounts {
		if a.Type == accountType {
			result = append(result, a)
		}
	}
	return result
}

// IDs returns every account id in ascending order.
func (r *Registry) IDs() []int {
	ids := make([]int, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// NaturalIncreaseSide returns the side on which a balance of the given type
// grows: assets and expenses on the debit side, liabilities, equity and
// revenue on the credit side.
func NaturalIncreaseSide(t model.AccountType) model.Side {
	switch t {
	case model.AccountTypeAsset, model.AccountTypeExpense:
		return model.Debit
	default:
		return model.Credit
	}
}

// CashFlowCategory returns the cash flow section for an account. Accounts
// without an explicit category fall back on their type.
func CashFlowCategory(a model.Account) model.CashFlowCategory {
	if a.CashFlow != model.CashFlowDefault {
		return a.CashFlow
	}
	switch a.Type {
	case model.AccountTypeLiability, model.AccountTypeEquity:
		return model.CashFlowFinancing
	default:
		return model.CashFlowOperating
	}
}

// CashAccounts returns the accounts flagged as cash or bank accounts.
func (r *Registry) CashAccounts() []model.Account {
	var result []model.Account
	for _, a := range r.accounts {
		if a.CashFlow == model.CashFlowCash {
			result = append(result, a)
		}
	}
	return result
}
