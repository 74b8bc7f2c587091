package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tirtatour/travel_billing_app/internal/core/domain"
)

// SumLines totals the debit and credit sides of a set of journal lines.
func SumLines(lines []domain.JournalLine) (decimal.Decimal, decimal.Decimal) {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.DebitAmount)
		totalCredit = totalCredit.Add(line.CreditAmount)
	}
	return totalDebit, totalCredit
}

// ValidateEntryLines checks that a set of journal lines forms a postable entry.
// Every line must carry a positive amount on exactly one side, and the debit and
// credit totals must be equal.
func ValidateEntryLines(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("journal entry must have at least two lines")
	}

	zero := decimal.Zero
	for _, line := range lines {
		debitSet := line.DebitAmount.GreaterThan(zero)
		creditSet := line.CreditAmount.GreaterThan(zero)
		if line.DebitAmount.LessThan(zero) || line.CreditAmount.LessThan(zero) {
			return fmt.Errorf("journal line for account %s has a negative amount", line.AccountID)
		}
		if debitSet == creditSet {
			return fmt.Errorf("journal line for account %s must have a positive amount on exactly one side", line.AccountID)
		}
	}

	totalDebit, totalCredit := SumLines(lines)
	if !totalDebit.Equal(totalCredit) {
		return fmt.Errorf("journal entry does not balance: debits %s, credits %s", totalDebit.String(), totalCredit.String())
	}

	return nil
}

// ValidateLineAccounts checks that every line references a postable account:
// the account must exist, be active, and not be a header account.
func ValidateLineAccounts(lines []domain.JournalLine, accounts map[string]domain.ChartOfAccount) error {
	for _, line := range lines {
		account, ok := accounts[line.AccountID]
		if !ok {
			return fmt.Errorf("account %s not found", line.AccountID)
		}
		if !account.Postable() {
			return fmt.Errorf("account %s (%s) does not accept postings", account.Code, account.Name)
		}
	}
	return nil
}
