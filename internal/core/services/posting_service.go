package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/corebooks/ledger_backend/internal/apperrors"
	"github.com/corebooks/ledger_backend/internal/core/domain"
	portsrepo "github.com/corebooks/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/corebooks/ledger_backend/internal/core/ports/services"
	"github.com/corebooks/ledger_backend/internal/middleware"
)

// postingService owns the Draft -> Posted transition and the Void reversal.
// The atomic balance application itself happens in the repository under row
// locks; this service adds pre-checks for early, friendly errors and keeps
// the single entry point for posting.
type postingService struct {
	journalRepo portsrepo.JournalRepository
	periodRepo  portsrepo.PeriodRepository
}

// NewPostingService creates a new posting service.
func NewPostingService(journalRepo portsrepo.JournalRepository, periodRepo portsrepo.PeriodRepository) portssvc.PostingSvcFacade {
	return &postingService{
		journalRepo: journalRepo,
		periodRepo:  periodRepo,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// PostEntry transitions a draft entry to posted, applying every line's
// movement to account balances exactly once. Retrying a posted entry fails
// with apperrors.ErrAlreadyPosted and changes nothing; the repository
// re-checks everything under locks, so these pre-checks only shortcut the
// common failure cases.
func (s *postingService) PostEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find entry for posting", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}

	if entry.Status != domain.Draft {
		logger.Warn("Posting attempt on non-draft entry", slog.String("entry_id", entryID), slog.String("status", string(entry.Status)))
		return nil, fmt.Errorf("%w: entry %s has status %s", apperrors.ErrAlreadyPosted, entryID, entry.Status)
	}
	if !entry.IsBalanced() {
		return nil, fmt.Errorf("%w: entry %s: debit total %s, credit total %s",
			apperrors.ErrValidation, entryID, entry.TotalDebit.String(), entry.TotalCredit.String())
	}

	// Cheap period check before taking any locks. The repository repeats it
	// under a shared period row lock, which is what actually fences posting
	// against a concurrent close.
	period, err := s.periodRepo.FindPeriodForDate(ctx, entry.EntryDate)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to resolve fiscal period for entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to resolve fiscal period: %w", err)
	}
	if period != nil && !period.AcceptsPostings() {
		return nil, fmt.Errorf("%w: period %s is %s", apperrors.ErrPeriodClosed, period.Name, period.Status)
	}

	now := time.Now().UTC()
	posted, err := s.journalRepo.PostEntry(ctx, entryID, userID, now)
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyPosted) || errors.Is(err, apperrors.ErrPeriodClosed) {
			logger.Warn("Posting rejected", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		} else {
			logger.Error("Failed to post journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, err
	}

	logger.Info("Journal entry posted", slog.String("entry_id", entryID), slog.String("entry_number", posted.EntryNumber))
	return posted, nil
}

// VoidEntry reverses a posted entry's balance movements and marks it void.
// History is preserved; nothing is deleted. Closing entries are refused,
// since unwinding a close must go through the period machinery.
func (s *postingService) VoidEntry(ctx context.Context, entryID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}

	if entry.Status != domain.Posted {
		return fmt.Errorf("%w: only posted entries can be voided, entry %s is %s",
			apperrors.ErrInvalidState, entryID, entry.Status)
	}
	if entry.SourceType == domain.SourceClosing {
		return fmt.Errorf("%w: closing entries cannot be voided directly", apperrors.ErrInvalidState)
	}

	now := time.Now().UTC()
	if err := s.journalRepo.VoidEntry(ctx, entryID, userID, now); err != nil {
		logger.Error("Failed to void journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return err
	}

	logger.Info("Journal entry voided", slog.String("entry_id", entryID))
	return nil
}
