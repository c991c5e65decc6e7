package accounting

import (
	"fmt"

	"github.com/corebooks/ledger_backend/internal/core/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClosingComputation is the result of synthesizing a period-closing entry
// from the current revenue and expense balances.
type ClosingComputation struct {
	Lines        []domain.JournalLine
	TotalRevenue decimal.Decimal
	TotalExpense decimal.Decimal
	NetResult    decimal.Decimal
	TotalDebit   decimal.Decimal
	TotalCredit  decimal.Decimal
}

// ComputeClosing builds the lines of a closing journal entry: one line per
// nonzero revenue/expense account that zeroes it out, plus a single line
// moving the net result into the retained earnings account. Balances are
// signed per each type's normal convention, so a revenue account with a
// negative balance (net debits) is closed with a credit line.
//
// Returns a computation with no lines when every result account already sits
// at zero; the caller decides what a zero-activity close means.
func ComputeClosing(entryID string, resultAccounts []domain.Account, retainedEarnings domain.Account) (*ClosingComputation, error) {
	if retainedEarnings.AccountType != domain.Equity {
		return nil, fmt.Errorf("retained earnings account %s must be of type EQUITY, got %s",
			retainedEarnings.Code, retainedEarnings.AccountType)
	}

	comp := &ClosingComputation{
		TotalRevenue: decimal.Zero,
		TotalExpense: decimal.Zero,
		TotalDebit:   decimal.Zero,
		TotalCredit:  decimal.Zero,
	}

	lineNum := 1
	for _, acc := range resultAccounts {
		if acc.Balance.IsZero() {
			continue
		}

		line := domain.JournalLine{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			AccountID:    acc.AccountID,
			LineNumber:   lineNum,
			DebitAmount:  decimal.Zero,
			CreditAmount: decimal.Zero,
		}

		switch acc.AccountType {
		case domain.Revenue:
			comp.TotalRevenue = comp.TotalRevenue.Add(acc.Balance)
			line.Description = fmt.Sprintf("Close revenue account %s", acc.Code)
			// Credit-normal: a positive balance is zeroed with a debit.
			if acc.Balance.IsPositive() {
				line.DebitAmount = acc.Balance
			} else {
				line.CreditAmount = acc.Balance.Neg()
			}
		case domain.Expense:
			comp.TotalExpense = comp.TotalExpense.Add(acc.Balance)
			line.Description = fmt.Sprintf("Close expense account %s", acc.Code)
			// Debit-normal: a positive balance is zeroed with a credit.
			if acc.Balance.IsPositive() {
				line.CreditAmount = acc.Balance
			} else {
				line.DebitAmount = acc.Balance.Neg()
			}
		default:
			return nil, fmt.Errorf("account %s is not a result account (type %s)", acc.Code, acc.AccountType)
		}

		comp.Lines = append(comp.Lines, line)
		lineNum++
	}

	comp.NetResult = comp.TotalRevenue.Sub(comp.TotalExpense)

	if len(comp.Lines) == 0 {
		return comp, nil
	}

	// Single counter-line moving the net result into equity.
	reLine := domain.JournalLine{
		LineID:       uuid.NewString(),
		EntryID:      entryID,
		AccountID:    retainedEarnings.AccountID,
		LineNumber:   lineNum,
		Description:  "Transfer net result to retained earnings",
		DebitAmount:  decimal.Zero,
		CreditAmount: decimal.Zero,
	}
	if comp.NetResult.IsNegative() {
		reLine.DebitAmount = comp.NetResult.Neg()
	} else if comp.NetResult.IsPositive() {
		reLine.CreditAmount = comp.NetResult
	}
	// An exactly-zero net result needs no equity line; the closing lines
	// already balance among themselves.
	if !reLine.DebitAmount.IsZero() || !reLine.CreditAmount.IsZero() {
		comp.Lines = append(comp.Lines, reLine)
	}

	comp.TotalDebit, comp.TotalCredit = EntryTotals(comp.Lines)
	if !comp.TotalDebit.Equal(comp.TotalCredit) {
		return nil, fmt.Errorf("closing entry does not balance: debit %s, credit %s",
			comp.TotalDebit.String(), comp.TotalCredit.String())
	}

	return comp, nil
}
