package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/corebooks/ledger_backend/internal/apperrors"
	"github.com/corebooks/ledger_backend/internal/core/domain"
	portsrepo "github.com/corebooks/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/corebooks/ledger_backend/internal/core/ports/services"
	"github.com/corebooks/ledger_backend/internal/dto"
	"github.com/corebooks/ledger_backend/internal/middleware"
)

// accountService is the account registry: chart-of-accounts setup and reads.
// Balances are mutated exclusively through the posting path; this service
// never touches them except for the wholesale recompute.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryWithTx
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryWithTx) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount adds a new account to the chart of accounts with a zero
// starting balance.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.accountRepo.FindAccountByCode(ctx, req.Code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check account code %s: %w", req.Code, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, req.Code)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		Code:        req.Code,
		Name:        req.Name,
		AccountType: req.AccountType,
		Description: req.Description,
		IsActive:    true,
		Balance:     decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByID retrieves a single account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// GetAccountsByIDs retrieves multiple accounts keyed by ID. Missing IDs are
// simply absent from the map; callers decide whether that is an error.
func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find accounts: %w", err)
	}
	return accounts, nil
}

// ListAccounts returns the whole chart of accounts with current balances,
// ordered by code.
func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// RefreshBalances rebuilds every account balance from the full set of posted
// journal lines, replacing stored state. Drift correction only; the normal
// posting path maintains balances incrementally.
func (s *accountService) RefreshBalances(ctx context.Context) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	count, err := s.accountRepo.RecomputeBalances(ctx)
	if err != nil {
		logger.Error("Balance recompute failed", slog.String("error", err.Error()))
		return 0, fmt.Errorf("failed to recompute balances: %w", err)
	}

	logger.Info("Account balances recomputed", slog.Int64("accounts", count))
	return count, nil
}
