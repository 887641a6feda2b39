package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MaxDescriptionLength is the longest expense description that can be stored.
const MaxDescriptionLength = 200

// Settlement is a transfer from one participant to another that reduces their
// net balances. It is folded into balances as a single-payer, single-payee expense.
type Settlement struct {
	SettlementID string    `json:"settlementID"`
	GroupID      string    `json:"groupID"`
	FromID       string    `json:"fromID"` // who paid
	ToID         string    `json:"toID"`   // who received
	Amount       Money     `json:"amount"`
	Note         string    `json:"note"`
	SettledAt    time.Time `json:"settledAt"`
	AuditFields
}

// AsExpense expresses the settlement as an expense paid by From whose only split
// line debits To for the full amount.
func (s Settlement) AsExpense() Expense {
	description := s.Note
	if description == "" {
		description = fmt.Sprintf("Settlement from %s to %s", s.FromID, s.ToID)
	}
	if runes := []rune(description); len(runes) > MaxDescriptionLength {
		description = string(runes[:MaxDescriptionLength-1]) + "…"
	}
	return Expense{
		ExpenseID:   s.SettlementID,
		GroupID:     s.GroupID,
		Description: description,
		PayerID:     s.FromID,
		Total:       s.Amount,
		Rule:        ExactSplit{Amounts: []int64{s.Amount.Amount}},
		SplitType:   SplitExact,
		Lines: []SplitLine{{
			ParticipantID: s.ToID,
			Amount:        s.Amount.Amount,
			Spec:          decimal.NewFromInt(s.Amount.Amount),
		}},
		ExpenseDate:  s.SettledAt,
		IsSettlement: true,
		AuditFields:  s.AuditFields,
	}
}
