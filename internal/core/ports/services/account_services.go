package services

import (
	"context"

	"github.com/corebooks/ledger_backend/internal/core/domain"
	"github.com/corebooks/ledger_backend/internal/dto"
)

// AccountSvcFacade is the account registry surface consumed by handlers and
// other services.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// RefreshBalances recomputes every balance from posted entries,
	// correcting drift. Returns the number of accounts recomputed.
	RefreshBalances(ctx context.Context) (int64, error)
}
