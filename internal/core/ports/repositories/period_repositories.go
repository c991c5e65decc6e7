package repositories

import (
	"context"
	"time"

	"github.com/corebooks/ledger_backend/internal/core/domain"
)

// PeriodRepository defines persistence operations for fiscal periods.
type PeriodRepository interface {
	// SavePeriod inserts a new period after verifying its date range overlaps
	// no existing period (at most one period covers any given date).
	SavePeriod(ctx context.Context, period domain.FiscalPeriod) error

	FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error)

	// FindPeriodForDate returns the period whose range covers the given date,
	// or apperrors.ErrNotFound when no period covers it.
	FindPeriodForDate(ctx context.Context, date time.Time) (*domain.FiscalPeriod, error)

	ListPeriods(ctx context.Context) ([]domain.FiscalPeriod, error)
}
