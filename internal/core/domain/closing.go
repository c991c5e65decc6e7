package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClosingRecord is the persisted result of closing one fiscal period.
// Created exactly once per period and immutable afterwards.
type ClosingRecord struct {
	ClosingID   string          `json:"closingID"` // Primary Key (UUID)
	Code        string          `json:"code"`      // e.g. "PC-2024-01-31"
	Description string          `json:"description"`
	EntryDate   time.Time       `json:"entryDate"` // Period end date
	PeriodID    string          `json:"periodID"`  // FK -> FiscalPeriod.periodID
	EntryID     string          `json:"entryID"`   // FK -> generated closing JournalEntry
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	NetResult   decimal.Decimal `json:"netResult"` // Revenue minus expense moved to equity
	AuditFields
}
