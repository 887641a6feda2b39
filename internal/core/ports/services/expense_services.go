package services

import (
	"context"
	"io"

	"github.com/SscSPs/splitbalance/internal/core/domain"
	"github.com/SscSPs/splitbalance/internal/dto"
)

// ExpenseReaderSvc defines read operations for expense data
type ExpenseReaderSvc interface {
	// GetExpense retrieves one expense in a group.
	GetExpense(ctx context.Context, groupID, expenseID, requestingUserID string) (*domain.Expense, error)

	// ListExpenses retrieves a page of a group's expenses.
	ListExpenses(ctx context.Context, groupID, requestingUserID string, params dto.ListExpensesParams) (*dto.ListExpensesResponse, error)
}

// ExpenseWriterSvc defines write operations for expense data
type ExpenseWriterSvc interface {
	// CreateExpense allocates and records a new expense.
	CreateExpense(ctx context.Context, groupID string, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, error)
}

// SplitCalculatorSvc defines split computations that do not touch storage
type SplitCalculatorSvc interface {
	// PreviewSplit returns the lines an expense would produce.
	PreviewSplit(ctx context.Context, req dto.PreviewSplitRequest) (*dto.SplitPreviewResponse, error)

	// ValidateSplit reports the running percentage total and whether it is acceptable.
	ValidateSplit(ctx context.Context, req dto.ValidateSplitRequest) domain.SplitValidation
}

// ExpenseSvcFacade combines all expense-related service interfaces
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
	SplitCalculatorSvc
}

// SettlementSvc records transfers between members
type SettlementSvc interface {
	// RecordSettlement records a transfer from one member to another.
	RecordSettlement(ctx context.Context, groupID string, req dto.RecordSettlementRequest, creatorUserID string) (*domain.Settlement, error)
}

// BalanceSvc derives balances from a group's expenses
type BalanceSvc interface {
	// GetBalanceData aggregates the group's expenses and projects them into
	// displayCurrency, or a per-currency breakdown when it is nil.
	GetBalanceData(ctx context.Context, groupID string, displayCurrency *string, requestingUserID string) (*domain.GroupBalance, error)

	// ExportGroupCSV writes the group's expenses and balances as CSV.
	ExportGroupCSV(ctx context.Context, groupID, requestingUserID string, w io.Writer) error
}
