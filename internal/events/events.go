// Package events publishes domain events about recorded expenses to a message broker.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/SscSPs/splitbalance/internal/core/domain"
)

// EventExpenseRecorded is the type of event emitted after an expense or settlement is saved.
const EventExpenseRecorded = "expense.recorded"

// ExpenseRecorded announces a newly saved expense. Amounts are in minor units of
// Currency so consumers never parse decimals.
type ExpenseRecorded struct {
	Event        string           `json:"event"`
	ExpenseID    string           `json:"expenseID"`
	GroupID      string           `json:"groupID"`
	PayerID      string           `json:"payerID"`
	Currency     string           `json:"currency"`
	TotalMinor   int64            `json:"totalMinor"`
	SplitType    domain.SplitType `json:"splitType"`
	Lines        []LineRecorded   `json:"lines"`
	IsSettlement bool             `json:"isSettlement"`
	OccurredAt   time.Time        `json:"occurredAt"`
}

// LineRecorded is one participant's share of an ExpenseRecorded event.
type LineRecorded struct {
	ParticipantID string `json:"participantID"`
	AmountMinor   int64  `json:"amountMinor"`
}

// NewExpenseRecorded builds the event for a saved expense.
func NewExpenseRecorded(e domain.Expense) ExpenseRecorded {
	lines := make([]LineRecorded, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = LineRecorded{ParticipantID: l.ParticipantID, AmountMinor: l.Amount}
	}
	return ExpenseRecorded{
		Event:        EventExpenseRecorded,
		ExpenseID:    e.ExpenseID,
		GroupID:      e.GroupID,
		PayerID:      e.PayerID,
		Currency:     e.Total.Currency,
		TotalMinor:   e.Total.Amount,
		SplitType:    e.SplitType,
		Lines:        lines,
		IsSettlement: e.IsSettlement,
		OccurredAt:   time.Now().UTC(),
	}
}

// ToJSON converts the event to JSON bytes.
func (e ExpenseRecorded) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher delivers domain events. Implementations must be safe for concurrent use.
type Publisher interface {
	PublishExpenseRecorded(ctx context.Context, event ExpenseRecorded) error
	Close() error
}

// NoopPublisher drops every event. It is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishExpenseRecorded(context.Context, ExpenseRecorded) error { return nil }

func (NoopPublisher) Close() error { return nil }
