package models

import "time"

// FiscalPeriod is the database representation of a fiscal period.
type FiscalPeriod struct {
	PeriodID  string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Status    string
	ClosedAt  *time.Time
	ClosedBy  string
	AuditFields
}
