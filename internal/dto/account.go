package dto

import (
	"time"

	"github.com/corebooks/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest is the payload for adding an account to the chart of
// accounts.
type CreateAccountRequest struct {
	Code        string             `json:"code" binding:"required,max=20"`
	Name        string             `json:"name" binding:"required,max=200"`
	AccountType domain.AccountType `json:"account_type" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	Description string             `json:"description"`
}

// AccountResponse is the API representation of an account.
type AccountResponse struct {
	AccountID   string             `json:"account_id"`
	Code        string             `json:"code"`
	Name        string             `json:"name"`
	AccountType domain.AccountType `json:"account_type"`
	Description string             `json:"description,omitempty"`
	IsActive    bool               `json:"is_active"`
	Balance     decimal.Decimal    `json:"balance"`
	CreatedAt   time.Time          `json:"created_at"`
}

// AccountBalanceResponse is the slim shape served by the balance listing.
type AccountBalanceResponse struct {
	AccountID   string             `json:"account_id"`
	Code        string             `json:"code"`
	Name        string             `json:"name"`
	AccountType domain.AccountType `json:"account_type"`
	Balance     decimal.Decimal    `json:"balance"`
}

// ToAccountResponse converts a domain account to its API representation.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   a.AccountID,
		Code:        a.Code,
		Name:        a.Name,
		AccountType: a.AccountType,
		Description: a.Description,
		IsActive:    a.IsActive,
		Balance:     a.Balance,
		CreatedAt:   a.CreatedAt,
	}
}

// ToAccountBalanceResponses converts accounts to the balance listing shape.
func ToAccountBalanceResponses(accounts []domain.Account) []AccountBalanceResponse {
	out := make([]AccountBalanceResponse, len(accounts))
	for i, a := range accounts {
		out[i] = AccountBalanceResponse{
			AccountID:   a.AccountID,
			Code:        a.Code,
			Name:        a.Name,
			AccountType: a.AccountType,
			Balance:     a.Balance,
		}
	}
	return out
}
