package journal

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/reckon/internal/id"
	"github.com/cleared-dev/reckon/internal/model"
)

// Rule names a journal entry invariant.
type Rule string

const (
	RulePositiveAmount  Rule = "positive-amount"
	RulePrecision       Rule = "precision"
	RuleDistinctAccount Rule = "distinct-accounts"
	RuleKnownAccount    Rule = "known-account"
	RuleRequired        Rule = "required"
	RuleEntryID         Rule = "entry-id"
)

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Rule        Rule
	EntryID     string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s [%s]: %s", e.Rule, e.EntryID, e.Description)
}

// Errors is a list of violations returned as one error.
type Errors []ValidationError

func (es Errors) Error() string {
	if len(es) == 1 {
		return es[0].Error()
	}
	return fmt.Sprintf("%s (and %d more)", es[0].Error(), len(es)-1)
}

// AccountChecker tests whether an account ID exists in the chart of accounts.
type AccountChecker interface {
	Exists(id int) bool
}

var (
	validate  = validator.New(validator.WithRequiredStructEnabled())
	hundred   = decimal.NewFromInt(100)
	tagToRule = map[string]Rule{
		"required": RuleRequired,
		"nefield":  RuleDistinctAccount,
	}
)

// ValidateEntry checks one entry against the double-entry invariants.
func ValidateEntry(e model.JournalEntry, accounts AccountChecker) []ValidationError {
	var errs []ValidationError
	add := func(rule Rule, format string, args ...any) {
		errs = append(errs, ValidationError{Rule: rule, EntryID: e.ID, Description: fmt.Sprintf(format, args...)})
	}

	if err := validate.Struct(e); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			add(RuleRequired, "%v", err)
		}
		for _, fe := range fieldErrs {
			rule, ok := tagToRule[fe.Tag()]
			if !ok {
				rule = RuleRequired
			}
			switch fe.Tag() {
			case "nefield":
				add(rule, "debit and credit account are both %d", e.DebitAccountID)
			default:
				add(rule, "%s is required", fe.Field())
			}
		}
	}

	if e.ID != "" {
		if _, _, _, err := id.ParseEntryID(e.ID); err != nil {
			add(RuleEntryID, "%v", err)
		}
	}

	for _, ve := range ValidatePosting(e, accounts) {
		if ve.Rule == RuleDistinctAccount {
			continue // reported by the nefield tag
		}
		errs = append(errs, ve)
	}

	return errs
}

// ValidatePosting checks only what aggregation depends on: a positive
// amount with at most two decimals, distinct debit and credit accounts, and
// accounts the checker knows. A nil checker skips the account lookup.
func ValidatePosting(e model.JournalEntry, accounts AccountChecker) []ValidationError {
	var errs []ValidationError
	add := func(rule Rule, format string, args ...any) {
		errs = append(errs, ValidationError{Rule: rule, EntryID: e.ID, Description: fmt.Sprintf(format, args...)})
	}

	if !e.Amount.IsPositive() {
		add(RulePositiveAmount, "amount %s must be greater than zero", e.Amount.String())
	} else if !e.Amount.Mul(hundred).Equal(e.Amount.Mul(hundred).Floor()) {
		add(RulePrecision, "amount %s has more than 2 decimal places", e.Amount.String())
	}

	if e.DebitAccountID == e.CreditAccountID {
		add(RuleDistinctAccount, "debit and credit account are both %d", e.DebitAccountID)
	}

	if accounts != nil {
		if !accounts.Exists(e.DebitAccountID) {
			add(RuleKnownAccount, "unknown debit account %d", e.DebitAccountID)
		}
		if !accounts.Exists(e.CreditAccountID) {
			add(RuleKnownAccount, "unknown credit account %d", e.CreditAccountID)
		}
	}

	return errs
}

// ValidateEntries validates every entry and rejects duplicate ids.
func ValidateEntries(entries []model.JournalEntry, accounts AccountChecker) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		errs = append(errs, ValidateEntry(e, accounts)...)
		if e.ID == "" {
			continue
		}
		if seen[e.ID] {
			errs = append(errs, ValidationError{Rule: RuleEntryID, EntryID: e.ID, Description: "duplicate entry id"})
		}
		seen[e.ID] = true
	}
	return errs
}
