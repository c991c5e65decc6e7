package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry.
type EntryStatus string

const (
	Draft  EntryStatus = "DRAFT"
	Posted EntryStatus = "POSTED"
	Void   EntryStatus = "VOID"
)

// SourceType tags a journal entry with its provenance so downstream code can
// branch on it without subclassing.
type SourceType string

const (
	SourceManual  SourceType = "MANUAL"
	SourceSystem  SourceType = "SYSTEM"
	SourceClosing SourceType = "CLOSING"
)

// JournalEntry represents a single, balanced financial event composed of
// multiple journal lines. Posted entries are immutable except for the
// explicit Void transition, which preserves history.
type JournalEntry struct {
	EntryID     string          `json:"entryID"`     // Primary Key (UUID)
	EntryNumber string          `json:"entryNumber"` // Sequential code, e.g. "JE-42"
	SourceType  SourceType      `json:"sourceType"`
	EntryDate   time.Time       `json:"entryDate"`
	Description string          `json:"description"`
	Reference   string          `json:"reference"` // External reference, free-form
	Status      EntryStatus     `json:"status"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	PostedAt    *time.Time      `json:"postedAt,omitempty"`
	PostedBy    string          `json:"postedBy,omitempty"`
	Lines       []JournalLine   `json:"lines,omitempty"`
	AuditFields
}

// IsBalanced reports whether total debits equal total credits. This is a
// precondition for leaving Draft.
func (e JournalEntry) IsBalanced() bool {
	return e.TotalDebit.Equal(e.TotalCredit)
}

// JournalLine is a single line item within a journal entry, affecting one
// account. Exactly one of DebitAmount and CreditAmount is nonzero.
type JournalLine struct {
	LineID       string          `json:"lineID"`  // Primary Key (UUID)
	EntryID      string          `json:"entryID"` // FK -> JournalEntry.entryID
	AccountID    string          `json:"accountID"`
	LineNumber   int             `json:"lineNumber"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
}

// IsDebit reports whether the line moves the debit side.
func (l JournalLine) IsDebit() bool {
	return l.DebitAmount.IsPositive()
}
