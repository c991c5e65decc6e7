package pgsql

import (
	"fmt"
	"testing"

	"github.com/corebooks/ledger_backend/internal/apperrors"
	"github.com/corebooks/ledger_backend/internal/core/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTranslateConflict(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantConflict bool
	}{
		{
			name:         "deadlock detected maps to conflict",
			err:          &pgconn.PgError{Code: "40P01", Message: "deadlock detected"},
			wantConflict: true,
		},
		{
			name:         "serialization failure maps to conflict",
			err:          &pgconn.PgError{Code: "40001", Message: "could not serialize access"},
			wantConflict: true,
		},
		{
			name:         "wrapped deadlock is still detected",
			err:          fmt.Errorf("failed to lock accounts: %w", &pgconn.PgError{Code: "40P01", Message: "deadlock detected"}),
			wantConflict: true,
		},
		{
			name:         "app error wrapping a deadlock is still detected",
			err:          apperrors.NewAppError(500, "failed to commit transaction", &pgconn.PgError{Code: "40001", Message: "could not serialize access"}),
			wantConflict: true,
		},
		{
			name:         "unique violation passes through unchanged",
			err:          &pgconn.PgError{Code: "23505", Message: "duplicate key value"},
			wantConflict: false,
		},
		{
			name:         "plain error passes through unchanged",
			err:          fmt.Errorf("connection reset"),
			wantConflict: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateConflict(tt.err)
			if tt.wantConflict {
				assert.ErrorIs(t, got, apperrors.ErrConflict)
			} else {
				assert.NotErrorIs(t, got, apperrors.ErrConflict)
				assert.Equal(t, tt.err, got)
			}
		})
	}
}

func TestTranslateConflict_NilPassesThrough(t *testing.T) {
	assert.NoError(t, translateConflict(nil))
}

func TestEnsureAccountsActive(t *testing.T) {
	active := domain.Account{
		AccountID:   "acc-1",
		Code:        "1001",
		AccountType: domain.Asset,
		IsActive:    true,
		Balance:     decimal.Zero,
	}
	archived := domain.Account{
		AccountID:   "acc-2",
		Code:        "1002",
		AccountType: domain.Asset,
		IsActive:    false,
		Balance:     decimal.Zero,
	}

	assert.NoError(t, ensureAccountsActive(map[string]domain.Account{"acc-1": active}))

	err := ensureAccountsActive(map[string]domain.Account{"acc-1": active, "acc-2": archived})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "1002")
	assert.Contains(t, err.Error(), "archived")

	assert.NoError(t, ensureAccountsActive(map[string]domain.Account{}))
}
