package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/corebooks/ledger_backend/internal/apperrors"
	"github.com/corebooks/ledger_backend/internal/core/domain"
	portsrepo "github.com/corebooks/ledger_backend/internal/core/ports/repositories"
	"github.com/corebooks/ledger_backend/internal/models"
	"github.com/corebooks/ledger_backend/internal/utils/accounting"
	"github.com/corebooks/ledger_backend/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const closingColumns = `closing_id, code, description, entry_date, period_id, entry_id, total_debit, total_credit, net_result, created_at, created_by, last_updated_at, last_updated_by`

type PgxClosingRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountTxRepository
	journalRepo *PgxJournalRepository
}

// newPgxClosingRepository creates a new repository for period closing data.
func newPgxClosingRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountTxRepository, journalRepo *PgxJournalRepository) portsrepo.ClosingRepository {
	return &PgxClosingRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
		journalRepo:    journalRepo,
	}
}

// Ensure PgxClosingRepository implements portsrepo.ClosingRepository
var _ portsrepo.ClosingRepository = (*PgxClosingRepository)(nil)

func scanClosingRow(row pgx.Row) (models.ClosingRecord, error) {
	var m models.ClosingRecord
	err := row.Scan(
		&m.ClosingID,
		&m.Code,
		&m.Description,
		&m.EntryDate,
		&m.PeriodID,
		&m.EntryID,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.NetResult,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// findAccountByCodeForUpdate locks a single account row by code.
func (r *PgxClosingRepository) findAccountByCodeForUpdate(ctx context.Context, tx pgx.Tx, code string) (*domain.Account, error) {
	modelAcc, err := scanAccountRow(tx.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE code = $1 FOR UPDATE;`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: retained earnings account with code %s not found", apperrors.ErrNotFound, code)
		}
		return nil, fmt.Errorf("failed to lock account by code %s: %w", code, err)
	}
	acc := mapping.ToDomainAccount(modelAcc)
	if !acc.IsActive {
		return nil, fmt.Errorf("%w: retained earnings account %s is archived", apperrors.ErrValidation, acc.Code)
	}
	return &acc, nil
}

// CloseFiscalPeriod performs the whole period-end orchestration as one
// transaction. Taking the period row for update is the barrier: in-flight
// postings hold the same row for share, so this statement waits until they
// finish and keeps new ones out until commit. A rollback leaves the period
// open with no other state change.
func (r *PgxClosingRepository) CloseFiscalPeriod(ctx context.Context, periodID string, retainedEarningsCode string, closedBy string, now time.Time) (*domain.ClosingRecord, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	record, err := r.closeFiscalPeriodTx(ctx, tx, periodID, retainedEarningsCode, closedBy, now)
	if err != nil {
		return nil, translateConflict(err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, translateConflict(err)
	}
	return record, nil
}

func (r *PgxClosingRepository) closeFiscalPeriodTx(ctx context.Context, tx pgx.Tx, periodID string, retainedEarningsCode string, closedBy string, now time.Time) (*domain.ClosingRecord, error) {
	periodModel, err := scanPeriodRow(tx.QueryRow(ctx,
		`SELECT `+periodColumns+` FROM fiscal_periods WHERE period_id = $1 FOR UPDATE;`, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock fiscal period %s for closing: %w", periodID, err)
	}
	period := mapping.ToDomainFiscalPeriod(periodModel)

	switch period.Status {
	case domain.PeriodOpen:
		// Proceed.
	case domain.PeriodClosed:
		return nil, fmt.Errorf("%w: period %s is already closed", apperrors.ErrAlreadyClosed, period.Name)
	default:
		return nil, fmt.Errorf("%w: period %s is already being closed", apperrors.ErrInvalidState, period.Name)
	}

	// Mark the period closing inside the transaction so the synthesized
	// closing entry is the only thing the posting path will accept.
	if _, err := tx.Exec(ctx, `
		UPDATE fiscal_periods SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE period_id = $1;
	`, periodID, string(domain.PeriodClosing), now, closedBy); err != nil {
		return nil, fmt.Errorf("failed to mark period %s closing: %w", periodID, err)
	}

	// Freeze the result account balances this closing is about to zero.
	resultAccounts, err := r.accountRepo.FindAccountsByTypesForUpdate(ctx, tx, []domain.AccountType{domain.Revenue, domain.Expense})
	if err != nil {
		return nil, err
	}

	retainedEarnings, err := r.findAccountByCodeForUpdate(ctx, tx, retainedEarningsCode)
	if err != nil {
		return nil, err
	}

	entryID := uuid.NewString()
	comp, err := accounting.ComputeClosing(entryID, resultAccounts, *retainedEarnings)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	entryNumber, err := r.journalRepo.nextEntryNumber(ctx, tx)
	if err != nil {
		return nil, err
	}

	entry := domain.JournalEntry{
		EntryID:     entryID,
		EntryNumber: entryNumber,
		SourceType:  domain.SourceClosing,
		EntryDate:   period.EndDate,
		Description: fmt.Sprintf("Period closing %s", period.Name),
		Status:      domain.Draft,
		TotalDebit:  comp.TotalDebit,
		TotalCredit: comp.TotalCredit,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     closedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: closedBy,
		},
	}

	if len(comp.Lines) == 0 {
		// No activity in the period. Persist a line-less, already-posted
		// entry so the closing history stays contiguous.
		entry.Status = domain.Posted
		entry.PostedAt = &now
		entry.PostedBy = closedBy
		if err := r.journalRepo.insertEntryTx(ctx, tx, mapping.ToModelJournalEntry(entry), nil); err != nil {
			return nil, err
		}
	} else {
		lineModels := make([]models.JournalLine, len(comp.Lines))
		for i, line := range comp.Lines {
			lineModels[i] = mapping.ToModelJournalLine(line)
		}
		if err := r.journalRepo.insertEntryTx(ctx, tx, mapping.ToModelJournalEntry(entry), lineModels); err != nil {
			return nil, err
		}
		if _, err := r.journalRepo.postEntryTx(ctx, tx, entryID, closedBy, now); err != nil {
			return nil, err
		}
	}

	record := domain.ClosingRecord{
		ClosingID:   uuid.NewString(),
		Code:        fmt.Sprintf("PC-%s", period.EndDate.Format("2006-01-02")),
		Description: fmt.Sprintf("Closing of fiscal period %s", period.Name),
		EntryDate:   period.EndDate,
		PeriodID:    period.PeriodID,
		EntryID:     entryID,
		TotalDebit:  comp.TotalDebit,
		TotalCredit: comp.TotalCredit,
		NetResult:   comp.NetResult,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     closedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: closedBy,
		},
	}
	recordModel := mapping.ToModelClosingRecord(record)

	if _, err := tx.Exec(ctx, `
		INSERT INTO closing_records (`+closingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`,
		recordModel.ClosingID,
		recordModel.Code,
		recordModel.Description,
		recordModel.EntryDate,
		recordModel.PeriodID,
		recordModel.EntryID,
		recordModel.TotalDebit,
		recordModel.TotalCredit,
		recordModel.NetResult,
		recordModel.CreatedAt,
		recordModel.CreatedBy,
		recordModel.LastUpdatedAt,
		recordModel.LastUpdatedBy,
	); err != nil {
		return nil, fmt.Errorf("failed to insert closing record for period %s: %w", periodID, err)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE fiscal_periods
		SET status = $2, closed_at = $3, closed_by = $4, last_updated_at = $3, last_updated_by = $4
		WHERE period_id = $1;
	`, periodID, string(domain.PeriodClosed), now, closedBy); err != nil {
		return nil, fmt.Errorf("failed to mark period %s closed: %w", periodID, err)
	}

	return &record, nil
}

// ListClosings returns all closing records ordered by entry date descending.
func (r *PgxClosingRepository) ListClosings(ctx context.Context) ([]domain.ClosingRecord, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+closingColumns+` FROM closing_records ORDER BY entry_date DESC, created_at DESC;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query closing records: %w", err)
	}
	defer rows.Close()

	recordModels := []models.ClosingRecord{}
	for rows.Next() {
		m, err := scanClosingRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan closing record row: %w", err)
		}
		recordModels = append(recordModels, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating closing record rows: %w", rows.Err())
	}

	return mapping.ToDomainClosingRecordSlice(recordModels), nil
}

// PreviewClosing summarizes the current revenue and expense balances without
// locking or mutating anything.
func (r *PgxClosingRepository) PreviewClosing(ctx context.Context) (*portsrepo.ClosingPreview, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT account_type, balance FROM accounts
		WHERE account_type = ANY($1) AND is_active = TRUE;
	`, []string{string(domain.Revenue), string(domain.Expense)})
	if err != nil {
		return nil, fmt.Errorf("failed to query result account balances: %w", err)
	}
	defer rows.Close()

	preview := &portsrepo.ClosingPreview{
		TotalRevenue: decimal.Zero,
		TotalExpense: decimal.Zero,
		NetResult:    decimal.Zero,
	}
	for rows.Next() {
		var accountType string
		var balance decimal.Decimal
		if err := rows.Scan(&accountType, &balance); err != nil {
			return nil, fmt.Errorf("failed to scan result account row: %w", err)
		}
		if domain.AccountType(accountType) == domain.Revenue {
			preview.TotalRevenue = preview.TotalRevenue.Add(balance)
		} else {
			preview.TotalExpense = preview.TotalExpense.Add(balance)
		}
		if !balance.IsZero() {
			preview.ResultAccounts++
		}
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating result account rows: %w", rows.Err())
	}

	preview.NetResult = preview.TotalRevenue.Sub(preview.TotalExpense)
	return preview, nil
}
