package mapping

import (
	"github.com/corebooks/ledger_backend/internal/core/domain"
	"github.com/corebooks/ledger_backend/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:     d.EntryID,
		EntryNumber: d.EntryNumber,
		SourceType:  string(d.SourceType),
		EntryDate:   d.EntryDate,
		Description: d.Description,
		Reference:   d.Reference,
		Status:      string(d.Status),
		TotalDebit:  d.TotalDebit,
		TotalCredit: d.TotalCredit,
		PostedAt:    d.PostedAt,
		PostedBy:    d.PostedBy,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:     m.EntryID,
		EntryNumber: m.EntryNumber,
		SourceType:  domain.SourceType(m.SourceType),
		EntryDate:   m.EntryDate,
		Description: m.Description,
		Reference:   m.Reference,
		Status:      domain.EntryStatus(m.Status),
		TotalDebit:  m.TotalDebit,
		TotalCredit: m.TotalCredit,
		PostedAt:    m.PostedAt,
		PostedBy:    m.PostedBy,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalEntrySlice converts a slice of model JournalEntries to a slice of domain JournalEntries
func ToDomainJournalEntrySlice(ms []models.JournalEntry) []domain.JournalEntry {
	ds := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalEntry(m)
	}
	return ds
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:       d.LineID,
		EntryID:      d.EntryID,
		AccountID:    d.AccountID,
		LineNumber:   d.LineNumber,
		Description:  d.Description,
		DebitAmount:  d.DebitAmount,
		CreditAmount: d.CreditAmount,
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:       m.LineID,
		EntryID:      m.EntryID,
		AccountID:    m.AccountID,
		LineNumber:   m.LineNumber,
		Description:  m.Description,
		DebitAmount:  m.DebitAmount,
		CreditAmount: m.CreditAmount,
	}
}

// ToDomainJournalLineSlice converts a slice of model JournalLines to a slice of domain JournalLines
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
