package repositories

import (
	"context"
	"time"

	"github.com/corebooks/ledger_backend/internal/core/domain"
)

// ListEntriesFilter narrows a journal entry listing. Nil fields are ignored.
// Results are ordered by entry date descending with creation time as the
// tie-breaker, paginated with an opaque cursor token.
type ListEntriesFilter struct {
	DateFrom   *time.Time
	DateTo     *time.Time
	Status     *domain.EntryStatus
	SourceType *domain.SourceType
	Limit      int
	NextToken  *string
}

// JournalRepository defines persistence operations for journal entries and
// their lines. Lines are owned by their parent entry and have no independent
// lifecycle.
type JournalRepository interface {
	// CreateEntry persists a draft entry with its lines and assigns the
	// sequential entry number. When autoPost is set the entry is taken
	// through the posting transition within the same transaction, so a
	// failed post leaves nothing behind.
	CreateEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine, autoPost bool) (*domain.JournalEntry, error)

	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)
	ListEntries(ctx context.Context, filter ListEntriesFilter) ([]domain.JournalEntry, *string, error)

	// PostEntry is the single authoritative Draft -> Posted transition.
	// Atomically, it re-checks the draft status under a row lock, verifies
	// balance, rejects entries dated inside a non-open fiscal period, locks
	// the referenced accounts, applies every line's movement, and stamps the
	// posting time. Either all lines mutate balances or none do. Re-invoking
	// on an already-posted entry fails with apperrors.ErrAlreadyPosted and
	// leaves balances untouched.
	PostEntry(ctx context.Context, entryID string, postedBy string, now time.Time) (*domain.JournalEntry, error)

	// VoidEntry transitions a posted entry to Void and reverses its balance
	// movements atomically. Closing-sourced entries are never voided.
	VoidEntry(ctx context.Context, entryID string, voidedBy string, now time.Time) error
}
