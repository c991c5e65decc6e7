package domain

import "time"

// PeriodStatus indicates where a fiscal period is in its lifecycle.
// CLOSING is a transient lock state: it rejects new postings dated inside the
// period while the closing entry is being computed.
type PeriodStatus string

const (
	PeriodOpen    PeriodStatus = "OPEN"
	PeriodClosing PeriodStatus = "CLOSING"
	PeriodClosed  PeriodStatus = "CLOSED"
)

// FiscalPeriod is a bounded date range after which entries are locked from
// further posting. At most one period covers any given date.
type FiscalPeriod struct {
	PeriodID  string       `json:"periodID"` // Primary Key (UUID)
	Name      string       `json:"name"`     // e.g. "2024-01"
	StartDate time.Time    `json:"startDate"`
	EndDate   time.Time    `json:"endDate"` // Inclusive
	Status    PeriodStatus `json:"status"`
	ClosedAt  *time.Time   `json:"closedAt,omitempty"`
	ClosedBy  string       `json:"closedBy,omitempty"`
	AuditFields
}

// Contains reports whether the given date falls inside the period's range.
func (p FiscalPeriod) Contains(date time.Time) bool {
	return !date.Before(p.StartDate) && !date.After(p.EndDate)
}

// AcceptsPostings reports whether entries dated inside the period may still
// transition to Posted.
func (p FiscalPeriod) AcceptsPostings() bool {
	return p.Status == PeriodOpen
}
