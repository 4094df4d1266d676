package model

import (
	"fmt"
	"strings"
)

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

// AccountTypes lists every account type in statement order.
var AccountTypes = []AccountType{
	AccountTypeAsset,
	AccountTypeLiability,
	AccountTypeEquity,
	AccountTypeRevenue,
	AccountTypeExpense,
}

// ParseAccountType normalizes a type name. "income" is accepted as an alias
// for revenue so charts exported by other tools load with one canonical name.
func ParseAccountType(s string) (AccountType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asset", "assets":
		return AccountTypeAsset, nil
	case "liability", "liabilities":
		return AccountTypeLiability, nil
	case "equity":
		return AccountTypeEquity, nil
	case "revenue", "income":
		return AccountTypeRevenue, nil
	case "expense", "expenses":
		return AccountTypeExpense, nil
	default:
		return "", fmt.Errorf("unknown account type %q", s)
	}
}

// CashFlowCategory places an account's movements in the cash flow statement.
// The empty value means "derive from the account type".
type CashFlowCategory string

const (
	CashFlowDefault   CashFlowCategory = ""
	CashFlowCash      CashFlowCategory = "cash"
	CashFlowOperating CashFlowCategory = "operating"
	CashFlowInvesting CashFlowCategory = "investing"
	CashFlowFinancing CashFlowCategory = "financing"
)

// ParseCashFlowCategory validates a cash_flow column value.
func ParseCashFlowCategory(s string) (CashFlowCategory, error) {
	c := CashFlowCategory(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case CashFlowDefault, CashFlowCash, CashFlowOperating, CashFlowInvesting, CashFlowFinancing:
		return c, nil
	default:
		return "", fmt.Errorf("unknown cash flow category %q", s)
	}
}

// Account represents a row in chart-of-accounts.csv.
type Account struct {
	ID          int
	Name        string
	Type        AccountType
	ParentID    int // 0 = top-level
	CashFlow    CashFlowCategory
	Description string
}
