package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClosingRecord is the database representation of a period closing.
type ClosingRecord struct {
	ClosingID   string
	Code        string
	Description string
	EntryDate   time.Time
	PeriodID    string
	EntryID     string
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	NetResult   decimal.Decimal
	AuditFields
}
