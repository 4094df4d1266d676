package accounts

import "github.com/cleared-dev/reckon/internal/model"

// DefaultChart returns the default chart of accounts for an entity type.
func DefaultChart(entityType string) []model.Account {
	switch entityType {
	case "llc_single_member":
		return llcSingleMemberChart()
	default:
		return llcSingleMemberChart()
	}
}

func llcSingleMemberChart() []model.Account {
	return []model.Account{
		{ID: 1010, Name: "Business Checking", Type: model.AccountTypeAsset, CashFlow: model.CashFlowCash, Description: "Primary checking account"},
		{ID: 1020, Name: "Business Savings", Type: model.AccountTypeAsset, CashFlow: model.CashFlowCash, Description: "Savings account"},
		{ID: 1200, Name: "Accounts Receivable", Type: model.AccountTypeAsset, CashFlow: model.CashFlowOperating, Description: "Unpaid customer invoices"},
		{ID: 1500, Name: "Equipment", Type: model.AccountTypeAsset, CashFlow: model.CashFlowInvesting, Description: "Fixed assets"},
		{ID: 2010, Name: "Credit Card", Type: model.AccountTypeLiability, CashFlow: model.CashFlowOperating, Description: "Business credit card"},
		{ID: 2100, Name: "Accounts Payable", Type: model.AccountTypeLiability, CashFlow: model.CashFlowOperating, Description: "Unpaid vendor bills"},
		{ID: 2500, Name: "Business Loan", Type: model.AccountTypeLiability, CashFlow: model.CashFlowFinancing, Description: "Long-term loan"},
		{ID: 3010, Name: "Owner's Equity", Type: model.AccountTypeEquity, Description: "Owner's equity"},
		{ID: 4010, Name: "Service Revenue", Type: model.AccountTypeRevenue},
		{ID: 4020, Name: "Product Revenue", Type: model.AccountTypeRevenue},
		{ID: 5010, Name: "Advertising & Marketing", Type: model.AccountTypeExpense, Description: "Advertising costs"},
		{ID: 5020, Name: "Software & SaaS", Type: model.AccountTypeExpense, Description: "Software subscriptions"},
		{ID: 5030, Name: "Office Supplies", Type: model.AccountTypeExpense, Description: "Office supplies and expenses"},
		{ID: 5040, Name: "Professional Services", Type: model.AccountTypeExpense, Description: "Legal, accounting, consulting"},
	}
}
