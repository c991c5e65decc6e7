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
	"github.com/corebooks/ledger_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const periodColumns = `period_id, name, start_date, end_date, status, closed_at, closed_by, created_at, created_by, last_updated_at, last_updated_by`

type PgxPeriodRepository struct {
	BaseRepository
}

// newPgxPeriodRepository creates a new repository for fiscal period data.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepository {
	return &PgxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxPeriodRepository implements portsrepo.PeriodRepository
var _ portsrepo.PeriodRepository = (*PgxPeriodRepository)(nil)

func scanPeriodRow(row pgx.Row) (models.FiscalPeriod, error) {
	var m models.FiscalPeriod
	err := row.Scan(
		&m.PeriodID,
		&m.Name,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
		&m.ClosedAt,
		&m.ClosedBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SavePeriod inserts a new fiscal period. The overlap count gives a clean
// error message for the common case; concurrent creations are caught by the
// range exclusion constraint on the table, which both racers cannot pass.
func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	modelPeriod := mapping.ToModelFiscalPeriod(period)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var overlapping int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM fiscal_periods
		WHERE start_date <= $2 AND end_date >= $1;
	`, modelPeriod.StartDate, modelPeriod.EndDate).Scan(&overlapping)
	if err != nil {
		return fmt.Errorf("failed to check period overlap: %w", err)
	}
	if overlapping > 0 {
		return fmt.Errorf("%w: period %s overlaps an existing fiscal period", apperrors.ErrDuplicate, modelPeriod.Name)
	}

	query := `
		INSERT INTO fiscal_periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, query,
		modelPeriod.PeriodID,
		modelPeriod.Name,
		modelPeriod.StartDate,
		modelPeriod.EndDate,
		modelPeriod.Status,
		modelPeriod.ClosedAt,
		modelPeriod.ClosedBy,
		modelPeriod.CreatedAt,
		modelPeriod.CreatedBy,
		modelPeriod.LastUpdatedAt,
		modelPeriod.LastUpdatedBy,
	)
	if err != nil {
		return translatePeriodInsertError(err, modelPeriod.PeriodID, modelPeriod.Name)
	}

	return r.Commit(ctx, tx)
}

// translatePeriodInsertError maps constraint violations on the period insert
// to ErrDuplicate: unique violations on name, and exclusion violations when a
// concurrent insert won the same date range.
func translatePeriodInsertError(err error, periodID, name string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // Unique violation
			return fmt.Errorf("%w: period %s already exists", apperrors.ErrDuplicate, name)
		case "23P01": // Exclusion violation
			return fmt.Errorf("%w: period %s overlaps an existing fiscal period", apperrors.ErrDuplicate, name)
		}
	}
	return fmt.Errorf("failed to save fiscal period %s: %w", periodID, err)
}

// FindPeriodByID retrieves a fiscal period by its ID.
func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error) {
	modelPeriod, err := scanPeriodRow(r.Pool.QueryRow(ctx,
		`SELECT `+periodColumns+` FROM fiscal_periods WHERE period_id = $1;`, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fiscal period by ID %s: %w", periodID, err)
	}

	period := mapping.ToDomainFiscalPeriod(modelPeriod)
	return &period, nil
}

// FindPeriodForDate returns the period whose range covers the given date.
// Ranges never overlap, so at most one row matches.
func (r *PgxPeriodRepository) FindPeriodForDate(ctx context.Context, date time.Time) (*domain.FiscalPeriod, error) {
	modelPeriod, err := scanPeriodRow(r.Pool.QueryRow(ctx,
		`SELECT `+periodColumns+` FROM fiscal_periods WHERE start_date <= $1 AND end_date >= $1;`, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fiscal period for date %s: %w", date.Format("2006-01-02"), err)
	}

	period := mapping.ToDomainFiscalPeriod(modelPeriod)
	return &period, nil
}

// ListPeriods retrieves all fiscal periods ordered by start date descending.
func (r *PgxPeriodRepository) ListPeriods(ctx context.Context) ([]domain.FiscalPeriod, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+periodColumns+` FROM fiscal_periods ORDER BY start_date DESC;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query fiscal periods: %w", err)
	}
	defer rows.Close()

	periodModels := []models.FiscalPeriod{}
	for rows.Next() {
		m, err := scanPeriodRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fiscal period row: %w", err)
		}
		periodModels = append(periodModels, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating fiscal period rows: %w", rows.Err())
	}

	return mapping.ToDomainFiscalPeriodSlice(periodModels), nil
}
