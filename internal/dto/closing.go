package dto

import (
	"time"

	"github.com/corebooks/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePeriodRequest is the payload for setting up a fiscal period.
type CreatePeriodRequest struct {
	Name      string    `json:"name" binding:"required,max=20"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
}

// PeriodResponse is the API representation of a fiscal period.
type PeriodResponse struct {
	PeriodID  string              `json:"id"`
	Name      string              `json:"name"`
	StartDate time.Time           `json:"start_date"`
	EndDate   time.Time           `json:"end_date"`
	Status    domain.PeriodStatus `json:"status"`
	ClosedAt  *time.Time          `json:"closed_at,omitempty"`
	ClosedBy  string              `json:"closed_by,omitempty"`
}

// ClosingRecordResponse is the API representation of one period closing.
type ClosingRecordResponse struct {
	ClosingID   string          `json:"id"`
	Code        string          `json:"code"`
	Description string          `json:"description"`
	EntryDate   time.Time       `json:"entry_date"`
	EntryID     string          `json:"entry_id"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	NetResult   decimal.Decimal `json:"net_result"`
}

// ClosingPreviewResponse summarizes what a close would move, without closing.
type ClosingPreviewResponse struct {
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalExpense   decimal.Decimal `json:"total_expense"`
	NetResult      decimal.Decimal `json:"net_result"`
	ResultAccounts int             `json:"result_accounts"`
}

// ToPeriodResponse converts a domain fiscal period to its API representation.
func ToPeriodResponse(p *domain.FiscalPeriod) PeriodResponse {
	return PeriodResponse{
		PeriodID:  p.PeriodID,
		Name:      p.Name,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		Status:    p.Status,
		ClosedAt:  p.ClosedAt,
		ClosedBy:  p.ClosedBy,
	}
}

// ToClosingRecordResponse converts a domain closing record to its API shape.
func ToClosingRecordResponse(r *domain.ClosingRecord) ClosingRecordResponse {
	return ClosingRecordResponse{
		ClosingID:   r.ClosingID,
		Code:        r.Code,
		Description: r.Description,
		EntryDate:   r.EntryDate,
		EntryID:     r.EntryID,
		TotalDebit:  r.TotalDebit,
		TotalCredit: r.TotalCredit,
		NetResult:   r.NetResult,
	}
}

// ToClosingRecordResponses converts a slice of closing records.
func ToClosingRecordResponses(records []domain.ClosingRecord) []ClosingRecordResponse {
	out := make([]ClosingRecordResponse, len(records))
	for i := range records {
		out[i] = ToClosingRecordResponse(&records[i])
	}
	return out
}
