package events_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/SscSPs/splitbalance/internal/core/domain"
	"github.com/SscSPs/splitbalance/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExpenseRecorded(t *testing.T) {
	expense := domain.Expense{
		ExpenseID: "e1",
		GroupID:   "g1",
		PayerID:   "alice",
		Total:     domain.NewMoney(10000, "USD"),
		SplitType: domain.SplitEqual,
		Lines: []domain.SplitLine{
			{ParticipantID: "alice", Amount: 5000},
			{ParticipantID: "bob", Amount: 5000},
		},
	}

	event := events.NewExpenseRecorded(expense)
	assert.Equal(t, events.EventExpenseRecorded, event.Event)
	assert.Equal(t, int64(10000), event.TotalMinor)
	assert.Equal(t, "USD", event.Currency)
	assert.Len(t, event.Lines, 2)
	assert.WithinDuration(t, time.Now(), event.OccurredAt, time.Minute)

	body, err := event.ToJSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "expense.recorded", decoded["event"])
	assert.Equal(t, "EQUAL", decoded["splitType"])
	assert.EqualValues(t, 10000, decoded["totalMinor"])
}

func TestNoopPublisher(t *testing.T) {
	var p events.Publisher = events.NoopPublisher{}
	assert.NoError(t, p.PublishExpenseRecorded(context.Background(), events.ExpenseRecorded{}))
	assert.NoError(t, p.Close())
}
