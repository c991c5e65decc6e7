package mapping

import (
	"github.com/corebooks/ledger_backend/internal/core/domain"
	"github.com/corebooks/ledger_backend/internal/models"
)

// ToModelFiscalPeriod converts a domain FiscalPeriod to a model FiscalPeriod
func ToModelFiscalPeriod(d domain.FiscalPeriod) models.FiscalPeriod {
	return models.FiscalPeriod{
		PeriodID:    d.PeriodID,
		Name:        d.Name,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Status:      string(d.Status),
		ClosedAt:    d.ClosedAt,
		ClosedBy:    d.ClosedBy,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFiscalPeriod converts a model FiscalPeriod to a domain FiscalPeriod
func ToDomainFiscalPeriod(m models.FiscalPeriod) domain.FiscalPeriod {
	return domain.FiscalPeriod{
		PeriodID:    m.PeriodID,
		Name:        m.Name,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		Status:      domain.PeriodStatus(m.Status),
		ClosedAt:    m.ClosedAt,
		ClosedBy:    m.ClosedBy,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainFiscalPeriodSlice converts a slice of model FiscalPeriods to a slice of domain FiscalPeriods
func ToDomainFiscalPeriodSlice(ms []models.FiscalPeriod) []domain.FiscalPeriod {
	ds := make([]domain.FiscalPeriod, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFiscalPeriod(m)
	}
	return ds
}

// ToModelClosingRecord converts a domain ClosingRecord to a model ClosingRecord
func ToModelClosingRecord(d domain.ClosingRecord) models.ClosingRecord {
	return models.ClosingRecord{
		ClosingID:   d.ClosingID,
		Code:        d.Code,
		Description: d.Description,
		EntryDate:   d.EntryDate,
		PeriodID:    d.PeriodID,
		EntryID:     d.EntryID,
		TotalDebit:  d.TotalDebit,
		TotalCredit: d.TotalCredit,
		NetResult:   d.NetResult,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainClosingRecord converts a model ClosingRecord to a domain ClosingRecord
func ToDomainClosingRecord(m models.ClosingRecord) domain.ClosingRecord {
	return domain.ClosingRecord{
		ClosingID:   m.ClosingID,
		Code:        m.Code,
		Description: m.Description,
		EntryDate:   m.EntryDate,
		PeriodID:    m.PeriodID,
		EntryID:     m.EntryID,
		TotalDebit:  m.TotalDebit,
		TotalCredit: m.TotalCredit,
		NetResult:   m.NetResult,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainClosingRecordSlice converts a slice of model ClosingRecords to a slice of domain ClosingRecords
func ToDomainClosingRecordSlice(ms []models.ClosingRecord) []domain.ClosingRecord {
	ds := make([]domain.ClosingRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainClosingRecord(m)
	}
	return ds
}
