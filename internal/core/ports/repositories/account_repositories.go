package repositories

import (
	"context"
	"time"

	"github.com/corebooks/ledger_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountRepository defines persistence operations for the account registry.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// RecomputeBalances rebuilds every account balance from the full set of
	// posted journal lines, replacing stored balances wholesale. It takes an
	// exclusive lock over the accounts table for its duration so it never
	// races a concurrent posting. Returns the number of accounts touched.
	RecomputeBalances(ctx context.Context) (int64, error)
}

// AccountTxRepository exposes tx-scoped operations used by other repositories
// while composing larger atomic units (posting, closing).
type AccountTxRepository interface {
	// FindAccountsByIDsForUpdate retrieves accounts by ID and locks their rows
	// for update. Per-account movements serialize on these locks. Must be
	// called within a transaction.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// FindAccountsByTypesForUpdate locks and returns all active accounts of
	// the given types, ordered by code. Used by period closing to freeze the
	// revenue/expense balances it is about to zero.
	FindAccountsByTypesForUpdate(ctx context.Context, tx pgx.Tx, types []domain.AccountType) ([]domain.Account, error)

	// UpdateAccountBalancesInTx applies signed balance deltas to the given
	// accounts within an existing transaction.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryWithTx combines plain and tx-scoped account operations.
type AccountRepositoryWithTx interface {
	AccountRepository
	AccountTxRepository
}
