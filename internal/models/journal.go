package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the database representation of a journal entry header.
type JournalEntry struct {
	EntryID     string
	EntryNumber string
	SourceType  string
	EntryDate   time.Time
	Description string
	Reference   string
	Status      string
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	PostedAt    *time.Time
	PostedBy    string
	AuditFields
}

// JournalLine is the database representation of one entry line.
type JournalLine struct {
	LineID       string
	EntryID      string
	AccountID    string
	LineNumber   int
	Description  string
	DebitAmount  decimal.Decimal
	CreditAmount decimal.Decimal
}
