package accounting

import (
	"fmt"
	"strings"

	"github.com/SscSPs/splitbalance/internal/apperrors"
	"github.com/SscSPs/splitbalance/internal/core/domain"
)

// Aggregate folds expenses into a net balance per participant per currency.
// The payer of each expense is credited with its total and every split line's
// participant is debited with the line amount, so a payer who is also in the split
// nets the two. Every participant (the given ones plus anyone named by an expense)
// gets an entry of zero in every currency observed.
//
// The result does not depend on the order of expenses.
func Aggregate(participants []string, expenses []domain.Expense) (domain.Balance, error) {
	balance := make(domain.Balance, len(participants))
	for _, id := range participants {
		balance[id] = map[string]int64{}
	}

	currencies := map[string]struct{}{}
	for _, exp := range expenses {
		if err := validateExpenseLines(exp); err != nil {
			return nil, err
		}
		code := strings.ToUpper(exp.Total.Currency)
		currencies[code] = struct{}{}

		credit(balance, exp.PayerID, code, exp.Total.Amount)
		for _, line := range exp.Lines {
			credit(balance, line.ParticipantID, code, -line.Amount)
		}
	}

	for _, byCurrency := range balance {
		for code := range currencies {
			if _, ok := byCurrency[code]; !ok {
				byCurrency[code] = 0
			}
		}
	}
	return balance, nil
}

func credit(balance domain.Balance, participantID, currency string, amount int64) {
	byCurrency, ok := balance[participantID]
	if !ok {
		byCurrency = map[string]int64{}
		balance[participantID] = byCurrency
	}
	byCurrency[currency] += amount
}

func validateExpenseLines(exp domain.Expense) error {
	if exp.PayerID == "" {
		return fmt.Errorf("%w: expense %s has no payer", apperrors.ErrInvalidSplit, exp.ExpenseID)
	}
	if exp.Total.Currency == "" {
		return fmt.Errorf("%w: expense %s has no currency", apperrors.ErrUnknownCurrency, exp.ExpenseID)
	}
	if exp.Total.Amount <= 0 {
		return fmt.Errorf("%w: expense %s total must be positive", apperrors.ErrInvalidAmount, exp.ExpenseID)
	}
	if len(exp.Lines) == 0 {
		return fmt.Errorf("%w: expense %s has no split lines", apperrors.ErrInvalidSplit, exp.ExpenseID)
	}
	if sum := exp.LinesTotal(); sum != exp.Total.Amount {
		return fmt.Errorf("%w: expense %s lines sum to %d, total is %d",
			apperrors.ErrSplitMismatch, exp.ExpenseID, sum, exp.Total.Amount)
	}
	return nil
}

// ValidateBalanceClosed checks that, for every currency, the participants'
// balances sum to exactly zero.
func ValidateBalanceClosed(balance domain.Balance) error {
	for _, code := range balance.Currencies() {
		if sum := balance.CurrencyTotal(code); sum != 0 {
			return fmt.Errorf("balances in %s do not sum to zero: sum is %d", code, sum)
		}
	}
	return nil
}
