package models

import (
	"github.com/shopspring/decimal"
)

// AccountType mirrors domain.AccountType at the persistence layer.
type AccountType string

// Account is the database representation of a chart-of-accounts entry.
type Account struct {
	AccountID   string
	Code        string
	Name        string
	AccountType AccountType
	Description string
	IsActive    bool
	Balance     decimal.Decimal
	AuditFields
}
