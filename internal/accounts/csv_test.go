package accounts

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/reckon/internal/model"
)

func TestRoundTrip(t *testing.T) {
	accounts := []model.Account{
		{ID: 1010, Name: "Business Checking", Type: model.AccountTypeAsset, CashFlow: model.CashFlowCash, Description: "Primary checking account"},
		{ID: 5020, Name: "Software & SaaS", Type: model.AccountTypeExpense, Description: "Software subscriptions"},
	}

	var buf bytes.Buffer
	err := WriteAccounts(&buf, accounts)
	require.NoError(t, err)

	got, err := ReadAccounts(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, accounts, got)
}

func TestParentID(t *testing.T) {
	accounts := []model.Account{
		{ID: 1010, Name: "Checking", Type: model.AccountTypeAsset},
		{ID: 1011, Name: "Sub-checking", Type: model.AccountTypeAsset, ParentID: 1010},
	}

	var buf bytes.Buffer
	err := WriteAccounts(&buf, accounts)
	require.NoError(t, err)

	got, err := ReadAccounts(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 0, got[0].ParentID)
	assert.Equal(t, 1010, got[1].ParentID)
}

func TestIncomeAliasNormalized(t *testing.T) {
	data := "account_id,account_name,account_type,parent_id,cash_flow,description\n4010,Sales,Income,,,\n"
	got, err := ReadAccounts(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.AccountTypeRevenue, got[0].Type)
}

func TestUnmarshalAccount_Errors(t *testing.T) {
	tests := []struct {
		name   string
		record []string
		want   string
	}{
		{"short row", []string{"1010", "Checking"}, "expected 6 fields"},
		{"bad id", []string{"x", "Checking", "asset", "", "", ""}, "parsing account_id"},
		{"bad type", []string{"1010", "Checking", "goodwill", "", "", ""}, "unknown account type"},
		{"bad parent", []string{"1010", "Checking", "asset", "p", "", ""}, "parsing parent_id"},
		{"bad cash flow", []string{"1010", "Checking", "asset", "", "fixed asset", ""}, "unknown cash flow category"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalAccount(tt.record)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDefaultChart(t *testing.T) {
	chart := DefaultChart("llc_single_member")
	require.NotEmpty(t, chart)

	ids := make(map[int]bool)
	for _, acct := range chart {
		ids[acct.ID] = true
	}
	assert.True(t, ids[1010], "expected Business Checking (1010)")
	assert.True(t, ids[2100], "expected Accounts Payable (2100)")
	assert.True(t, ids[5020], "expected Software & SaaS (5020)")

	for _, acct := range chart {
		assert.NotEmpty(t, acct.Name, "account %d missing name", acct.ID)
		assert.NotEmpty(t, acct.Type, "account %d missing type", acct.ID)
	}
}

func TestDefaultChart_UnknownEntityType(t *testing.T) {
	// Unknown entity types fall back to LLC single member.
	chart := DefaultChart("unknown_type")
	assert.Equal(t, DefaultChart("llc_single_member"), chart)
}

func TestReadTestdata(t *testing.T) {
	f, err := os.Open("../../testdata/chart-of-accounts.csv")
	require.NoError(t, err)
	defer f.Close()

	accounts, err := ReadAccounts(f)
	require.NoError(t, err)
	require.Len(t, accounts, 11)

	types := make(map[model.AccountType]bool)
	for _, acct := range accounts {
		types[acct.Type] = true
	}
	for _, at := range model.AccountTypes {
		assert.True(t, types[at], "testdata should contain a %s account", at)
	}
}

func TestDefaultChartRoundTrip(t *testing.T) {
	chart := DefaultChart("llc_single_member")

	var buf bytes.Buffer
	err := WriteAccounts(&buf, chart)
	require.NoError(t, err)

	got, err := ReadAccounts(&buf)
	require.NoError(t, err)
	assert.Equal(t, chart, got)
}
