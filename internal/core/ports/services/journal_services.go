package services

import (
	"context"

	"github.com/corebooks/ledger_backend/internal/core/domain"
	"github.com/corebooks/ledger_backend/internal/dto"
)

// JournalSvcFacade is the journal entry store surface.
type JournalSvcFacade interface {
	CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// PostingSvcFacade is the posting engine surface: the only way an entry
// leaves Draft, and the only legal mutation of account balances.
type PostingSvcFacade interface {
	PostEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error)
	VoidEntry(ctx context.Context, entryID string, userID string) error
}
