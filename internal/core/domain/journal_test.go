package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestJournalEntryIsBalanced(t *testing.T) {
	tests := []struct {
		name  string
		entry JournalEntry
		want  bool
	}{
		{
			name: "equal totals are balanced",
			entry: JournalEntry{
				TotalDebit:  decimal.NewFromInt(100),
				TotalCredit: decimal.NewFromInt(100),
			},
			want: true,
		},
		{
			name: "unequal totals are not balanced",
			entry: JournalEntry{
				TotalDebit:  decimal.NewFromInt(100),
				TotalCredit: decimal.NewFromInt(99),
			},
			want: false,
		},
		{
			name:  "zero totals are balanced",
			entry: JournalEntry{},
			want:  true,
		},
		{
			name: "differing scales still compare equal",
			entry: JournalEntry{
				TotalDebit:  decimal.RequireFromString("100.00"),
				TotalCredit: decimal.NewFromInt(100),
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.IsBalanced())
		})
	}
}

func TestJournalLineIsDebit(t *testing.T) {
	debit := JournalLine{DebitAmount: decimal.NewFromInt(50)}
	assert.True(t, debit.IsDebit())

	credit := JournalLine{CreditAmount: decimal.NewFromInt(50)}
	assert.False(t, credit.IsDebit())
}

func TestAccountTypeIsDebitNormal(t *testing.T) {
	tests := []struct {
		accountType AccountType
		want        bool
	}{
		{Asset, true},
		{Expense, true},
		{Liability, false},
		{Equity, false},
		{Revenue, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.accountType), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.accountType.IsDebitNormal())
		})
	}
}
