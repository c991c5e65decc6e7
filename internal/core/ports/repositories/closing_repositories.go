package repositories

import (
	"context"
	"time"

	"github.com/corebooks/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ClosingPreview is a read-only summary of what closing would move, computed
// from the current result-account balances without mutating anything.
type ClosingPreview struct {
	TotalRevenue   decimal.Decimal
	TotalExpense   decimal.Decimal
	NetResult      decimal.Decimal
	ResultAccounts int
}

// ClosingRepository defines persistence operations for period closing and its
// history.
type ClosingRepository interface {
	// CloseFiscalPeriod performs the whole period-end orchestration as one
	// atomic unit: lock the period row (the barrier that waits out in-flight
	// postings and blocks new ones), verify it is open, freeze and zero the
	// revenue/expense balances through a synthesized closing entry posted via
	// the regular posting transition, move the net result into the retained
	// earnings account, persist the closing record, and mark the period
	// closed. Any failure rolls the period back to open with no other state
	// change. A period with no activity still yields a zero-valued record so
	// the closing history stays contiguous.
	CloseFiscalPeriod(ctx context.Context, periodID string, retainedEarningsCode string, closedBy string, now time.Time) (*domain.ClosingRecord, error)

	// ListClosings returns all closing records ordered by entry date
	// descending. Safe to call repeatedly; each call re-reads current state.
	ListClosings(ctx context.Context) ([]domain.ClosingRecord, error)

	// PreviewClosing summarizes current revenue/expense balances.
	PreviewClosing(ctx context.Context) (*ClosingPreview, error)
}
