package repositories

import (
	"context"

	"github.com/SscSPs/splitbalance/internal/core/domain"
)

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	// FindExpenseByID retrieves an expense and its split lines.
	FindExpenseByID(ctx context.Context, groupID, expenseID string) (*domain.Expense, error)

	// ListExpensesByGroup retrieves a page of a group's expenses, newest first, using
	// token-based pagination. It returns the expenses, a token for the next page, and an error.
	ListExpensesByGroup(ctx context.Context, groupID string, limit int, nextToken *string, includeSettlements bool) ([]domain.Expense, *string, error)

	// ListAllExpensesByGroup retrieves every expense and settlement in a group with its lines.
	ListAllExpensesByGroup(ctx context.Context, groupID string) ([]domain.Expense, error)
}

// ExpenseWriter defines write operations for expense data
type ExpenseWriter interface {
	// SaveExpense persists an expense and its split lines atomically.
	SaveExpense(ctx context.Context, expense domain.Expense) error
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
