package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a row of the expenses table. Settlements share the table and are
// flagged with IsSettlement.
type Expense struct {
	ExpenseID    string    `db:"expense_id"`
	GroupID      string    `db:"group_id"`
	Description  string    `db:"description"`
	PayerID      string    `db:"payer_id"`
	Amount       int64     `db:"amount"` // minor units of CurrencyCode
	CurrencyCode string    `db:"currency_code"`
	SplitType    string    `db:"split_type"`
	ExpenseDate  time.Time `db:"expense_date"`
	IsSettlement bool      `db:"is_settlement"`
	AuditFields
}

// ExpenseLine is a row of the expense_lines table.
type ExpenseLine struct {
	ExpenseID     string          `db:"expense_id"`
	LineNo        int             `db:"line_no"` // preserves participant order
	ParticipantID string          `db:"participant_id"`
	Amount        int64           `db:"amount"`
	Spec          decimal.Decimal `db:"spec"`
}
