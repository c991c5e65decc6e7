package dto

import (
	"time"

	"github.com/corebooks/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryLineRequest is one line of a new journal entry. Exactly one of
// debit_amount and credit_amount must be nonzero; the service enforces the
// single-side rule beyond what binding can express.
type CreateEntryLineRequest struct {
	AccountID    string          `json:"account_id" binding:"required,uuid"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debit_amount" binding:"omitempty,gte=0"`
	CreditAmount decimal.Decimal `json:"credit_amount" binding:"omitempty,gte=0"`
}

// CreateEntryRequest is the payload for creating a journal entry draft.
type CreateEntryRequest struct {
	SourceType  domain.SourceType        `json:"source_type" binding:"omitempty,oneof=MANUAL SYSTEM"`
	EntryDate   time.Time                `json:"entry_date" binding:"required"`
	Description string                   `json:"description" binding:"required"`
	Reference   string                   `json:"reference"`
	Lines       []CreateEntryLineRequest `json:"lines" binding:"required,min=2,dive"`
	AutoPost    bool                     `json:"auto_post"`
}

// EntryLineResponse is the API representation of a journal line.
type EntryLineResponse struct {
	LineID       string          `json:"line_id"`
	AccountID    string          `json:"account_id"`
	LineNumber   int             `json:"line_number"`
	Description  string          `json:"description,omitempty"`
	DebitAmount  decimal.Decimal `json:"debit_amount"`
	CreditAmount decimal.Decimal `json:"credit_amount"`
}

// EntryResponse is the API representation of a journal entry.
type EntryResponse struct {
	EntryID     string              `json:"id"`
	EntryNumber string              `json:"entry_number"`
	SourceType  domain.SourceType   `json:"source_type"`
	EntryDate   time.Time           `json:"entry_date"`
	Description string              `json:"description"`
	Reference   string              `json:"reference,omitempty"`
	Status      domain.EntryStatus  `json:"status"`
	TotalDebit  decimal.Decimal     `json:"total_debit"`
	TotalCredit decimal.Decimal     `json:"total_credit"`
	PostedAt    *time.Time          `json:"posted_at,omitempty"`
	Lines       []EntryLineResponse `json:"lines,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	CreatedBy   string              `json:"created_by"`
}

// ListEntriesParams carries the query parameters of the entry listing.
type ListEntriesParams struct {
	DateFrom   *time.Time
	DateTo     *time.Time
	Status     string
	SourceType string
	Limit      int
	NextToken  *string
}

// ListEntriesResponse is a page of journal entries plus the cursor for the
// next page, nil when exhausted.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"next_token,omitempty"`
}

// ToEntryResponse converts a domain journal entry to its API representation.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:     e.EntryID,
		EntryNumber: e.EntryNumber,
		SourceType:  e.SourceType,
		EntryDate:   e.EntryDate,
		Description: e.Description,
		Reference:   e.Reference,
		Status:      e.Status,
		TotalDebit:  e.TotalDebit,
		TotalCredit: e.TotalCredit,
		PostedAt:    e.PostedAt,
		CreatedAt:   e.CreatedAt,
		CreatedBy:   e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]EntryLineResponse, len(e.Lines))
		for i, l := range e.Lines {
			resp.Lines[i] = EntryLineResponse{
				LineID:       l.LineID,
				AccountID:    l.AccountID,
				LineNumber:   l.LineNumber,
				Description:  l.Description,
				DebitAmount:  l.DebitAmount,
				CreditAmount: l.CreditAmount,
			}
		}
	}
	return resp
}
