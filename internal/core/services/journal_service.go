package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/corebooks/ledger_backend/internal/apperrors"
	"github.com/corebooks/ledger_backend/internal/core/domain"
	portsrepo "github.com/corebooks/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/corebooks/ledger_backend/internal/core/ports/services"
	"github.com/corebooks/ledger_backend/internal/dto"
	"github.com/corebooks/ledger_backend/internal/middleware"
	"github.com/corebooks/ledger_backend/internal/utils/accounting"
)

var (
	ErrEntryUnbalanced    = errors.New("journal entry does not balance")
	ErrEntryMinLines      = errors.New("journal entry must have at least two lines")
	ErrEntryMinAccounts   = errors.New("journal entry must affect at least two different accounts")
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountInactive    = errors.New("account is archived")
	ErrDescriptionMissing = errors.New("journal entry description is required")
	ErrReservedSource     = errors.New("closing entries are generated by period closing only")
)

// journalService provides journal entry creation and retrieval. The posting
// transition itself lives in postingService.
type journalService struct {
	journalRepo portsrepo.JournalRepository
	accountSvc  portssvc.AccountSvcFacade
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalRepository, accountSvc portssvc.AccountSvcFacade) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountSvc:  accountSvc,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateEntry validates and persists a new journal entry draft. When the
// request asks for auto-post, creation and posting happen as one atomic unit
// in the repository.
func (s *journalService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Description == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrDescriptionMissing)
	}
	if len(req.Lines) < 2 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrEntryMinLines)
	}

	sourceType := req.SourceType
	if sourceType == "" {
		sourceType = domain.SourceManual
	}
	// Closing entries are synthesized by the closing engine, never accepted
	// from callers.
	if sourceType == domain.SourceClosing {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrReservedSource)
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()

	lines := make([]domain.JournalLine, len(req.Lines))
	accountIDs := make([]string, 0, len(req.Lines))
	for i, lineReq := range req.Lines {
		lines[i] = domain.JournalLine{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			AccountID:    lineReq.AccountID,
			LineNumber:   i + 1,
			Description:  lineReq.Description,
			DebitAmount:  lineReq.DebitAmount,
			CreditAmount: lineReq.CreditAmount,
		}
		accountIDs = append(accountIDs, lineReq.AccountID)
	}

	// Single-side rule, >=2 accounts, and debit/credit totals in one pass.
	if err := accounting.ValidateEntryBalance(lines); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}

	// Every referenced account must exist and accept movements.
	uniqueAccountIDs := uniqueStrings(accountIDs)
	accountsMap, err := s.accountSvc.GetAccountsByIDs(ctx, uniqueAccountIDs)
	if err != nil {
		logger.Error("Failed to fetch accounts for entry creation", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range uniqueAccountIDs {
		acc, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: %s: ID %s", apperrors.ErrValidation, ErrAccountNotFound, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: %s: ID %s", apperrors.ErrValidation, ErrAccountInactive, id)
		}
	}

	totalDebit, totalCredit := accounting.EntryTotals(lines)

	entry := domain.JournalEntry{
		EntryID:     entryID,
		SourceType:  sourceType,
		EntryDate:   req.EntryDate,
		Description: req.Description,
		Reference:   req.Reference,
		Status:      domain.Draft,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	saved, err := s.journalRepo.CreateEntry(ctx, entry, lines, req.AutoPost)
	if err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	logger.Info("Journal entry created",
		slog.String("entry_id", saved.EntryID),
		slog.String("entry_number", saved.EntryNumber),
		slog.String("status", string(saved.Status)),
		slog.Bool("auto_post", req.AutoPost),
	)
	return saved, nil
}

// GetEntryByID retrieves a journal entry with its lines populated.
func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		logger.Error("Failed to fetch lines for entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, apperrors.ErrInternal)
	}
	entry.Lines = lines

	logger.Debug("Journal entry retrieved", slog.String("entry_id", entryID), slog.Int("line_count", len(lines)))
	return entry, nil
}

// ListEntries retrieves a filtered, cursor-paginated page of journal entries,
// entry date descending.
func (s *journalService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	filter := portsrepo.ListEntriesFilter{
		DateFrom:  params.DateFrom,
		DateTo:    params.DateTo,
		Limit:     params.Limit,
		NextToken: params.NextToken,
	}
	if params.Status != "" {
		status := domain.EntryStatus(params.Status)
		switch status {
		case domain.Draft, domain.Posted, domain.Void:
			filter.Status = &status
		default:
			return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, params.Status)
		}
	}
	if params.SourceType != "" {
		source := domain.SourceType(params.SourceType)
		switch source {
		case domain.SourceManual, domain.SourceSystem, domain.SourceClosing:
			filter.SourceType = &source
		default:
			return nil, fmt.Errorf("%w: unknown source type %q", apperrors.ErrValidation, params.SourceType)
		}
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, filter)
	if err != nil {
		logger.Error("Failed to list journal entries", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve journal entries: %w", err)
	}

	entryResponses := make([]dto.EntryResponse, len(entries))
	for i := range entries {
		entryResponses[i] = dto.ToEntryResponse(&entries[i])
	}

	logger.Info("Journal entries listed", slog.Int("count", len(entries)))
	return &dto.ListEntriesResponse{
		Entries:   entryResponses,
		NextToken: nextToken,
	}, nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
