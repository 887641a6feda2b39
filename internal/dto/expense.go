package dto

import (
	"time"

	"github.com/SscSPs/splitbalance/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest defines the data needed to record an expense in a group.
type CreateExpenseRequest struct {
	Description  string           `json:"description" binding:"required,max=200"`
	Amount       decimal.Decimal  `json:"amount" binding:"required"`
	CurrencyCode string           `json:"currencyCode" binding:"required,currency"`
	PayerID      string           `json:"payerID"` // defaults to the caller
	SplitType    domain.SplitType `json:"splitType" binding:"required,oneof=EQUAL PERCENTAGE EXACT SHARES"`
	Splits       []SplitEntry     `json:"splits" binding:"required,min=1,dive"`
	ExpenseDate  *time.Time       `json:"expenseDate"` // defaults to now
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID    string              `json:"expenseID"`
	GroupID      string              `json:"groupID"`
	Description  string              `json:"description"`
	PayerID      string              `json:"payerID"`
	Amount       decimal.Decimal     `json:"amount"`
	CurrencyCode string              `json:"currencyCode"`
	SplitType    domain.SplitType    `json:"splitType"`
	IsSettlement bool                `json:"isSettlement"`
	ExpenseDate  time.Time           `json:"expenseDate"`
	Lines        []SplitLineResponse `json:"lines"`
	CreatedAt    time.Time           `json:"createdAt"`
	CreatedBy    string              `json:"createdBy"`
}

// ToExpenseResponse converts a domain.Expense to DTO using the currency precision.
func ToExpenseResponse(e *domain.Expense, precision int32) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:    e.ExpenseID,
		GroupID:      e.GroupID,
		Description:  e.Description,
		PayerID:      e.PayerID,
		Amount:       e.Total.Decimal(precision),
		CurrencyCode: e.Total.Currency,
		SplitType:    e.SplitType,
		IsSettlement: e.IsSettlement,
		ExpenseDate:  e.ExpenseDate,
		Lines:        ToSplitLineResponses(e.Lines, e.SplitType, precision),
		CreatedAt:    e.CreatedAt,
		CreatedBy:    e.CreatedBy,
	}
}

// ListExpensesParams defines query parameters for listing expenses.
type ListExpensesParams struct {
	Limit              int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken          *string `form:"nextToken"`
	IncludeSettlements bool    `form:"includeSettlements,default=true"`
}

// ListExpensesResponse wraps a page of expenses.
type ListExpensesResponse struct {
	Expenses  []ExpenseResponse `json:"expenses"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToListExpensesResponse converts a page of expenses to DTO.
func ToListExpensesResponse(expenses []domain.Expense, nextToken *string, precision domain.PrecisionFunc) ListExpensesResponse {
	list := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		list[i] = ToExpenseResponse(&e, precision(e.Total.Currency))
	}
	return ListExpensesResponse{Expenses: list, NextToken: nextToken}
}

// RecordSettlementRequest defines a transfer that pays down a balance.
type RecordSettlementRequest struct {
	FromID       string          `json:"fromID"` // defaults to the caller
	ToID         string          `json:"toID" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required,currency"`
	Note         string          `json:"note" binding:"max=200"`
	SettledAt    *time.Time      `json:"settledAt"`
}

// SettlementResponse defines the data returned for a recorded settlement.
type SettlementResponse struct {
	SettlementID string          `json:"settlementID"`
	GroupID      string          `json:"groupID"`
	FromID       string          `json:"fromID"`
	ToID         string          `json:"toID"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	Note         string          `json:"note"`
	SettledAt    time.Time       `json:"settledAt"`
	CreatedAt    time.Time       `json:"createdAt"`
	CreatedBy    string          `json:"createdBy"`
}

// ToSettlementResponse converts a domain.Settlement to DTO using the currency precision.
func ToSettlementResponse(s *domain.Settlement, precision int32) SettlementResponse {
	return SettlementResponse{
		SettlementID: s.SettlementID,
		GroupID:      s.GroupID,
		FromID:       s.FromID,
		ToID:         s.ToID,
		Amount:       s.Amount.Decimal(precision),
		CurrencyCode: s.Amount.Currency,
		Note:         s.Note,
		SettledAt:    s.SettledAt,
		CreatedAt:    s.CreatedAt,
		CreatedBy:    s.CreatedBy,
	}
}
