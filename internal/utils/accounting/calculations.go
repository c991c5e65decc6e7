package accounting

import (
	"fmt"

	"github.com/corebooks/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmount applies the correct sign to a journal line based on the
// affected account's type. This is used in both services and repositories to
// ensure consistent accounting logic.
//
// DEBIT to ASSET/EXPENSE -> Positive (+)
// CREDIT to ASSET/EXPENSE -> Negative (-)
// DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
func SignedAmount(line domain.JournalLine, accountType domain.AccountType) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return line.DebitAmount.Sub(line.CreditAmount), nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return line.CreditAmount.Sub(line.DebitAmount), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, line.AccountID)
	}
}

// ValidateLine checks the single-side rule: a line is either a debit or a
// credit, never both and never neither, and amounts are never negative.
func ValidateLine(line domain.JournalLine) error {
	if line.DebitAmount.IsNegative() || line.CreditAmount.IsNegative() {
		return fmt.Errorf("line amounts must be non-negative for account %s", line.AccountID)
	}
	debit := line.DebitAmount.IsPositive()
	credit := line.CreditAmount.IsPositive()
	if debit == credit {
		return fmt.Errorf("line must have exactly one of debit or credit populated for account %s", line.AccountID)
	}
	return nil
}

// ValidateEntryBalance checks that the lines of an entry form a valid
// double-entry event: at least two lines touching at least two accounts, each
// line single-sided, and the debit total equal to the credit total.
func ValidateEntryBalance(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("journal entry must have at least two lines")
	}

	accounts := make(map[string]struct{}, len(lines))
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, line := range lines {
		if err := ValidateLine(line); err != nil {
			return err
		}
		accounts[line.AccountID] = struct{}{}
		totalDebit = totalDebit.Add(line.DebitAmount)
		totalCredit = totalCredit.Add(line.CreditAmount)
	}

	if len(accounts) < 2 {
		return fmt.Errorf("journal entry must affect at least two different accounts")
	}
	if !totalDebit.Equal(totalCredit) {
		return fmt.Errorf("journal entry does not balance: debit total is %s, credit total is %s",
			totalDebit.String(), totalCredit.String())
	}
	return nil
}

// EntryTotals sums the debit and credit sides of a set of lines.
func EntryTotals(lines []domain.JournalLine) (totalDebit, totalCredit decimal.Decimal) {
	totalDebit = decimal.Zero
	totalCredit = decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.DebitAmount)
		totalCredit = totalCredit.Add(line.CreditAmount)
	}
	return totalDebit, totalCredit
}

// BalanceChanges aggregates the signed movement per account for a set of
// lines, given each account's type.
func BalanceChanges(lines []domain.JournalLine, accountTypes map[string]domain.AccountType) (map[string]decimal.Decimal, error) {
	changes := make(map[string]decimal.Decimal, len(lines))
	for _, line := range lines {
		accountType, ok := accountTypes[line.AccountID]
		if !ok {
			return nil, fmt.Errorf("account type not found for account ID %s", line.AccountID)
		}
		signed, err := SignedAmount(line, accountType)
		if err != nil {
			return nil, err
		}
		changes[line.AccountID] = changes[line.AccountID].Add(signed)
	}
	return changes, nil
}
