package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsDebitNormal reports whether the account type carries a debit-normal
// balance (debits increase it).
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}

// Account represents one entry in the chart of accounts.
// Its balance is always the signed sum of all posted movements against it,
// following the account type's normal sign convention.
type Account struct {
	AccountID   string          `json:"accountID"` // Primary Key (UUID)
	Code        string          `json:"code"`      // Human-readable chart code, e.g. "1201"
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Description string          `json:"description"`
	IsActive    bool            `json:"isActive"` // Archived accounts reject new movements
	Balance     decimal.Decimal `json:"balance"`
	AuditFields
}
