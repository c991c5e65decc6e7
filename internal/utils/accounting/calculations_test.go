package accounting_test

import (
	"testing"

	"github.com/corebooks/ledger_backend/internal/core/domain"
	"github.com/corebooks/ledger_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedAmount(t *testing.T) {
	tests := []struct {
		name        string
		line        domain.JournalLine
		accountType domain.AccountType
		want        decimal.Decimal
	}{
		{
			name:        "debit to asset increases balance",
			line:        domain.JournalLine{DebitAmount: decimal.NewFromInt(100)},
			accountType: domain.Asset,
			want:        decimal.NewFromInt(100),
		},
		{
			name:        "credit to asset decreases balance",
			line:        domain.JournalLine{CreditAmount: decimal.NewFromInt(100)},
			accountType: domain.Asset,
			want:        decimal.NewFromInt(-100),
		},
		{
			name:        "debit to expense increases balance",
			line:        domain.JournalLine{DebitAmount: decimal.NewFromInt(40)},
			accountType: domain.Expense,
			want:        decimal.NewFromInt(40),
		},
		{
			name:        "credit to revenue increases balance",
			line:        domain.JournalLine{CreditAmount: decimal.NewFromInt(100)},
			accountType: domain.Revenue,
			want:        decimal.NewFromInt(100),
		},
		{
			name:        "debit to revenue decreases balance",
			line:        domain.JournalLine{DebitAmount: decimal.NewFromInt(25)},
			accountType: domain.Revenue,
			want:        decimal.NewFromInt(-25),
		},
		{
			name:        "credit to liability increases balance",
			line:        domain.JournalLine{CreditAmount: decimal.NewFromInt(60)},
			accountType: domain.Liability,
			want:        decimal.NewFromInt(60),
		},
		{
			name:        "credit to equity increases balance",
			line:        domain.JournalLine{CreditAmount: decimal.NewFromInt(60)},
			accountType: domain.Equity,
			want:        decimal.NewFromInt(60),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := accounting.SignedAmount(tt.line, tt.accountType)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestSignedAmount_UnknownType(t *testing.T) {
	line := domain.JournalLine{DebitAmount: decimal.NewFromInt(10)}
	_, err := accounting.SignedAmount(line, domain.AccountType("MYSTERY"))
	assert.Error(t, err)
}

func TestValidateLine(t *testing.T) {
	tests := []struct {
		name    string
		line    domain.JournalLine
		wantErr bool
	}{
		{
			name: "debit only is valid",
			line: domain.JournalLine{DebitAmount: decimal.NewFromInt(10)},
		},
		{
			name: "credit only is valid",
			line: domain.JournalLine{CreditAmount: decimal.NewFromInt(10)},
		},
		{
			name:    "both sides populated",
			line:    domain.JournalLine{DebitAmount: decimal.NewFromInt(10), CreditAmount: decimal.NewFromInt(10)},
			wantErr: true,
		},
		{
			name:    "neither side populated",
			line:    domain.JournalLine{},
			wantErr: true,
		},
		{
			name:    "negative amount",
			line:    domain.JournalLine{DebitAmount: decimal.NewFromInt(-5)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := accounting.ValidateLine(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEntryBalance(t *testing.T) {
	balanced := []domain.JournalLine{
		{AccountID: "acc-1", DebitAmount: decimal.NewFromInt(100)},
		{AccountID: "acc-2", CreditAmount: decimal.NewFromInt(100)},
	}
	assert.NoError(t, accounting.ValidateEntryBalance(balanced))

	unbalanced := []domain.JournalLine{
		{AccountID: "acc-1", DebitAmount: decimal.NewFromInt(100)},
		{AccountID: "acc-2", CreditAmount: decimal.NewFromInt(90)},
	}
	err := accounting.ValidateEntryBalance(unbalanced)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not balance")

	singleLine := balanced[:1]
	assert.Error(t, accounting.ValidateEntryBalance(singleLine))

	singleAccount := []domain.JournalLine{
		{AccountID: "acc-1", DebitAmount: decimal.NewFromInt(100)},
		{AccountID: "acc-1", CreditAmount: decimal.NewFromInt(100)},
	}
	assert.Error(t, accounting.ValidateEntryBalance(singleAccount))
}

func TestBalanceChanges_AggregatesPerAccount(t *testing.T) {
	lines := []domain.JournalLine{
		{AccountID: "cash", DebitAmount: decimal.NewFromInt(100)},
		{AccountID: "cash", DebitAmount: decimal.NewFromInt(50)},
		{AccountID: "sales", CreditAmount: decimal.NewFromInt(150)},
	}
	types := map[string]domain.AccountType{
		"cash":  domain.Asset,
		"sales": domain.Revenue,
	}

	changes, err := accounting.BalanceChanges(lines, types)
	require.NoError(t, err)
	assert.True(t, changes["cash"].Equal(decimal.NewFromInt(150)))
	assert.True(t, changes["sales"].Equal(decimal.NewFromInt(150)))
}

func TestBalanceChanges_MissingType(t *testing.T) {
	lines := []domain.JournalLine{
		{AccountID: "ghost", DebitAmount: decimal.NewFromInt(10)},
	}
	_, err := accounting.BalanceChanges(lines, map[string]domain.AccountType{})
	assert.Error(t, err)
}
