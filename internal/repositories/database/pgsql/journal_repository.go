package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/corebooks/ledger_backend/internal/apperrors"
	"github.com/corebooks/ledger_backend/internal/core/domain"
	portsrepo "github.com/corebooks/ledger_backend/internal/core/ports/repositories"
	"github.com/corebooks/ledger_backend/internal/models"
	"github.com/corebooks/ledger_backend/internal/utils/accounting"
	"github.com/corebooks/ledger_backend/internal/utils/mapping"
	"github.com/corebooks/ledger_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const entryColumns = `entry_id, entry_number, source_type, entry_date, description, reference, status, total_debit, total_credit, posted_at, posted_by, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, account_id, line_number, description, debit_amount, credit_amount`

type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountTxRepository
}

// newPgxJournalRepository creates a new repository for journal entry and line data.
func newPgxJournalRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountTxRepository) *PgxJournalRepository {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepository
var _ portsrepo.JournalRepository = (*PgxJournalRepository)(nil)

func scanEntryRow(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryNumber,
		&m.SourceType,
		&m.EntryDate,
		&m.Description,
		&m.Reference,
		&m.Status,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.PostedAt,
		&m.PostedBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanLineRow(row pgx.Row) (models.JournalLine, error) {
	var m models.JournalLine
	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.AccountID,
		&m.LineNumber,
		&m.Description,
		&m.DebitAmount,
		&m.CreditAmount,
	)
	return m, err
}

// nextEntryNumber claims the next value of the entry number sequence within
// the given transaction, so a rolled back creation never reuses a number
// but the sequence gap is harmless.
func (r *PgxJournalRepository) nextEntryNumber(ctx context.Context, tx pgx.Tx) (string, error) {
	var n int64
	if err := tx.QueryRow(ctx, `SELECT nextval('journal_entry_number_seq');`).Scan(&n); err != nil {
		return "", fmt.Errorf("failed to claim next entry number: %w", err)
	}
	return fmt.Sprintf("JE-%06d", n), nil
}

// insertEntryTx inserts an entry header and its lines within an existing
// transaction. The entry number must already be assigned.
func (r *PgxJournalRepository) insertEntryTx(ctx context.Context, tx pgx.Tx, entry models.JournalEntry, lines []models.JournalLine) error {
	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := tx.Exec(ctx, entryQuery,
		entry.EntryID,
		entry.EntryNumber,
		entry.SourceType,
		entry.EntryDate,
		entry.Description,
		entry.Reference,
		entry.Status,
		entry.TotalDebit,
		entry.TotalCredit,
		entry.PostedAt,
		entry.PostedBy,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry %s: %w", entry.EntryID, err)
	}

	if len(lines) == 0 {
		return nil
	}

	lineQuery := `
		INSERT INTO journal_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(lineQuery,
			line.LineID,
			line.EntryID,
			line.AccountID,
			line.LineNumber,
			line.Description,
			line.DebitAmount,
			line.CreditAmount,
		)
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to insert journal line %s: %w", lines[i].LineID, err)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close journal line insert batch: %w", err)
	}
	return batchErr
}

// lockPeriodForPosting takes a shared lock on the fiscal period covering the
// given date, if one exists, and verifies the entry may be posted into it.
// The shared lock lets concurrent postings proceed against the same period
// while making them mutually exclusive with a closing in progress, which
// takes the same row for update.
func (r *PgxJournalRepository) lockPeriodForPosting(ctx context.Context, tx pgx.Tx, entryDate time.Time, sourceType string) error {
	var status string
	err := tx.QueryRow(ctx, `
		SELECT status FROM fiscal_periods
		WHERE start_date <= $1 AND end_date >= $1
		FOR SHARE;
	`, entryDate).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// No period covers the date; posting is unrestricted.
			return nil
		}
		return fmt.Errorf("failed to lock fiscal period for posting: %w", err)
	}

	switch domain.PeriodStatus(status) {
	case domain.PeriodOpen:
		return nil
	case domain.PeriodClosing:
		// Only the closing entry itself may post while the period is closing.
		if domain.SourceType(sourceType) == domain.SourceClosing {
			return nil
		}
		return fmt.Errorf("%w: fiscal period is being closed", apperrors.ErrPeriodClosed)
	default:
		return fmt.Errorf("%w: fiscal period is closed", apperrors.ErrPeriodClosed)
	}
}

// postEntryTx performs the Draft -> Posted transition within an existing
// transaction: re-checks the status under a row lock, validates balance,
// checks the fiscal period, locks the referenced accounts, applies every
// line's balance movement, and stamps the posting time. Callers own commit
// and rollback.
func (r *PgxJournalRepository) postEntryTx(ctx context.Context, tx pgx.Tx, entryID string, postedBy string, now time.Time) (*domain.JournalEntry, error) {
	entryModel, err := scanEntryRow(tx.QueryRow(ctx,
		`SELECT `+entryColumns+` FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock journal entry %s for posting: %w", entryID, err)
	}

	switch domain.EntryStatus(entryModel.Status) {
	case domain.Draft:
		// Proceed.
	case domain.Posted:
		return nil, fmt.Errorf("%w: entry %s is already posted", apperrors.ErrAlreadyPosted, entryID)
	default:
		return nil, fmt.Errorf("%w: entry %s is %s and cannot be posted", apperrors.ErrInvalidState, entryID, entryModel.Status)
	}

	lineModels, err := r.findLinesByEntryIDTx(ctx, tx, entryID)
	if err != nil {
		return nil, err
	}
	lines := mapping.ToDomainJournalLineSlice(lineModels)

	if err := accounting.ValidateEntryBalance(lines); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	if err := r.lockPeriodForPosting(ctx, tx, entryModel.EntryDate, entryModel.SourceType); err != nil {
		return nil, err
	}

	accountIDs := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		if !seen[line.AccountID] {
			seen[line.AccountID] = true
			accountIDs = append(accountIDs, line.AccountID)
		}
	}
	// Lock in a stable order so two posts over the same accounts cannot
	// deadlock each other.
	sort.Strings(accountIDs)

	lockedAccounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return nil, err
	}
	if err := ensureAccountsActive(lockedAccounts); err != nil {
		return nil, err
	}

	accountTypes := make(map[string]domain.AccountType, len(lockedAccounts))
	for id, acc := range lockedAccounts {
		accountTypes[id] = acc.AccountType
	}

	balanceChanges, err := accounting.BalanceChanges(lines, accountTypes)
	if err != nil {
		return nil, fmt.Errorf("failed to compute balance changes for entry %s: %w", entryID, err)
	}

	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, postedBy, now); err != nil {
		return nil, err
	}

	updateQuery := `
		UPDATE journal_entries
		SET status = $2, posted_at = $3, posted_by = $4, last_updated_at = $3, last_updated_by = $4
		WHERE entry_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, entryID, string(domain.Posted), now, postedBy); err != nil {
		return nil, fmt.Errorf("failed to mark entry %s posted: %w", entryID, err)
	}

	entryModel.Status = string(domain.Posted)
	entryModel.PostedAt = &now
	entryModel.PostedBy = postedBy
	entryModel.LastUpdatedAt = now
	entryModel.LastUpdatedBy = postedBy

	posted := mapping.ToDomainJournalEntry(entryModel)
	posted.Lines = lines
	return &posted, nil
}

// CreateEntry persists a draft entry with its lines, assigning the next
// sequential entry number. When autoPost is set the entry is posted within
// the same transaction, so a failed post leaves nothing behind.
func (r *PgxJournalRepository) CreateEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine, autoPost bool) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	entry.EntryNumber, err = r.nextEntryNumber(ctx, tx)
	if err != nil {
		return nil, err
	}

	lineModels := make([]models.JournalLine, len(lines))
	for i, line := range lines {
		lineModels[i] = mapping.ToModelJournalLine(line)
	}

	if err := r.insertEntryTx(ctx, tx, mapping.ToModelJournalEntry(entry), lineModels); err != nil {
		return nil, err
	}

	result := entry
	result.Lines = lines

	if autoPost {
		posted, err := r.postEntryTx(ctx, tx, entry.EntryID, entry.CreatedBy, entry.CreatedAt)
		if err != nil {
			return nil, translateConflict(err)
		}
		result = *posted
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, translateConflict(err)
	}
	return &result, nil
}

// FindEntryByID retrieves an entry header by its ID. Lines are fetched
// separately via FindLinesByEntryID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entryModel, err := scanEntryRow(r.Pool.QueryRow(ctx,
		`SELECT `+entryColumns+` FROM journal_entries WHERE entry_id = $1;`, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry by ID %s: %w", entryID, err)
	}

	entry := mapping.ToDomainJournalEntry(entryModel)
	return &entry, nil
}

func (r *PgxJournalRepository) findLinesByEntryIDTx(ctx context.Context, tx pgx.Tx, entryID string) ([]models.JournalLine, error) {
	rows, err := tx.Query(ctx,
		`SELECT `+lineColumns+` FROM journal_lines WHERE entry_id = $1 ORDER BY line_number;`, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	lines := []models.JournalLine{}
	for rows.Next() {
		m, err := scanLineRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal line row: %w", err)
		}
		lines = append(lines, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating journal line rows: %w", rows.Err())
	}
	return lines, nil
}

// FindLinesByEntryID retrieves all lines of an entry ordered by line number.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+lineColumns+` FROM journal_lines WHERE entry_id = $1 ORDER BY line_number;`, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	lineModels := []models.JournalLine{}
	for rows.Next() {
		m, err := scanLineRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal line row: %w", err)
		}
		lineModels = append(lineModels, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating journal line rows: %w", rows.Err())
	}

	return mapping.ToDomainJournalLineSlice(lineModels), nil
}

// ListEntries retrieves a filtered, paginated list of entries using
// token-based pagination. It returns the entries, a token for the next page
// (if any), and an error.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, filter portsrepo.ListEntriesFilter) ([]domain.JournalEntry, *string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + entryColumns + ` FROM journal_entries`

	clauses := []string{}
	args := []interface{}{}
	addClause := func(clause string, value interface{}) {
		args = append(args, value)
		clauses = append(clauses, clause+" $"+strconv.Itoa(len(args)))
	}

	if filter.DateFrom != nil {
		addClause("entry_date >=", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		addClause("entry_date <=", *filter.DateTo)
	}
	if filter.Status != nil {
		addClause("status =", string(*filter.Status))
	}
	if filter.SourceType != nil {
		addClause("source_type =", string(*filter.SourceType))
	}

	if filter.NextToken != nil && *filter.NextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*filter.NextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		// Tuple comparison matches the (entry_date DESC, created_at DESC)
		// ordering below.
		args = append(args, lastDate, lastCreatedAt)
		clauses = append(clauses, "(entry_date, created_at) < ($"+strconv.Itoa(len(args)-1)+", $"+strconv.Itoa(len(args))+")")
	}

	query := baseQuery
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	args = append(args, fetchLimit)
	query += " ORDER BY entry_date DESC, created_at DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	entryModels := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanEntryRow(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", scanErr)
		}
		entryModels = append(entryModels, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	// Determine the next token
	var nextTokenVal *string
	results := entryModels
	if len(entryModels) > limit {
		lastEntry := entryModels[limit-1] // The actual last item of the current page
		newToken := pagination.EncodeToken(lastEntry.EntryDate, lastEntry.CreatedAt)
		nextTokenVal = &newToken
		results = entryModels[:limit]
	}

	return mapping.ToDomainJournalEntrySlice(results), nextTokenVal, nil
}

// PostEntry runs the Draft -> Posted transition in its own transaction.
func (r *PgxJournalRepository) PostEntry(ctx context.Context, entryID string, postedBy string, now time.Time) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	posted, err := r.postEntryTx(ctx, tx, entryID, postedBy, now)
	if err != nil {
		return nil, translateConflict(err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, translateConflict(err)
	}
	return posted, nil
}

// VoidEntry transitions a posted entry to Void and reverses its balance
// movements atomically. Entries dated inside a non-open period stay as they
// are; voiding them would silently change closed results.
func (r *PgxJournalRepository) VoidEntry(ctx context.Context, entryID string, voidedBy string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.voidEntryTx(ctx, tx, entryID, voidedBy, now); err != nil {
		return translateConflict(err)
	}

	return translateConflict(r.Commit(ctx, tx))
}

func (r *PgxJournalRepository) voidEntryTx(ctx context.Context, tx pgx.Tx, entryID string, voidedBy string, now time.Time) error {
	entryModel, err := scanEntryRow(tx.QueryRow(ctx,
		`SELECT `+entryColumns+` FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock journal entry %s for voiding: %w", entryID, err)
	}

	if domain.EntryStatus(entryModel.Status) != domain.Posted {
		return fmt.Errorf("%w: entry %s is %s, only posted entries can be voided", apperrors.ErrInvalidState, entryID, entryModel.Status)
	}
	if domain.SourceType(entryModel.SourceType) == domain.SourceClosing {
		return fmt.Errorf("%w: closing entries cannot be voided", apperrors.ErrInvalidState)
	}

	if err := r.lockPeriodForPosting(ctx, tx, entryModel.EntryDate, entryModel.SourceType); err != nil {
		return err
	}

	lineModels, err := r.findLinesByEntryIDTx(ctx, tx, entryID)
	if err != nil {
		return err
	}
	lines := mapping.ToDomainJournalLineSlice(lineModels)

	accountIDs := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		if !seen[line.AccountID] {
			seen[line.AccountID] = true
			accountIDs = append(accountIDs, line.AccountID)
		}
	}
	sort.Strings(accountIDs)

	lockedAccounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return err
	}

	accountTypes := make(map[string]domain.AccountType, len(lockedAccounts))
	for id, acc := range lockedAccounts {
		accountTypes[id] = acc.AccountType
	}

	balanceChanges, err := accounting.BalanceChanges(lines, accountTypes)
	if err != nil {
		return fmt.Errorf("failed to compute balance changes for entry %s: %w", entryID, err)
	}

	// Negate every movement the original posting applied.
	reversals := make(map[string]decimal.Decimal, len(balanceChanges))
	for accID, delta := range balanceChanges {
		reversals[accID] = delta.Neg()
	}

	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, reversals, voidedBy, now); err != nil {
		return err
	}

	updateQuery := `
		UPDATE journal_entries
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE entry_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, entryID, string(domain.Void), now, voidedBy); err != nil {
		return fmt.Errorf("failed to mark entry %s void: %w", entryID, err)
	}

	return nil
}
