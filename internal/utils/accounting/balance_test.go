package accounting_test

import (
	"testing"
	"time"

	"github.com/SscSPs/splitbalance/internal/apperrors"
	"github.com/SscSPs/splitbalance/internal/core/domain"
	"github.com/SscSPs/splitbalance/internal/utils/accounting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExpense(t *testing.T, id, payer string, total domain.Money, participants []string, rule domain.SplitRule) domain.Expense {
	t.Helper()
	lines, err := accounting.Allocate(total, domain.DefaultPrecision(total.Currency), participants, rule)
	require.NoError(t, err)
	return domain.Expense{
		ExpenseID:   id,
		GroupID:     "group-1",
		PayerID:     payer,
		Total:       total,
		Rule:        rule,
		SplitType:   rule.Type(),
		Lines:       lines,
		ExpenseDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestAggregate_PayerNetsOwnShare(t *testing.T) {
	members := []string{"alice", "bob", "carol"}
	exp := newExpense(t, "e1", "alice", domain.NewMoney(9000, "USD"), members, domain.EqualSplit{})

	balance, err := accounting.Aggregate(members, []domain.Expense{exp})
	require.NoError(t, err)

	assert.Equal(t, domain.Balance{
		"alice": {"USD": 6000},
		"bob":   {"USD": -3000},
		"carol": {"USD": -3000},
	}, balance)
	assert.NoError(t, accounting.ValidateBalanceClosed(balance))
}

func TestAggregate_MultiCurrencyIsClosedAndOrderIndependent(t *testing.T) {
	members := []string{"alice", "bob", "carol", "dave"}
	expenses := []domain.Expense{
		newExpense(t, "e1", "alice", domain.NewMoney(10000, "USD"), members[:3], domain.EqualSplit{}),
		newExpense(t, "e2", "bob", domain.NewMoney(5000, "EUR"), members[:3],
			domain.PercentageSplit{Percentages: decimals("33.33", "33.33", "33.34")}),
		newExpense(t, "e3", "carol", domain.NewMoney(4321, "JPY"), []string{"alice", "bob"},
			domain.SharesSplit{Weights: decimals("1", "2")}),
		newExpense(t, "e4", "alice", domain.NewMoney(777, "EUR"), []string{"bob", "carol"},
			domain.ExactSplit{Amounts: []int64{700, 77}}),
	}

	balance, err := accounting.Aggregate(members, expenses)
	require.NoError(t, err)
	require.NoError(t, accounting.ValidateBalanceClosed(balance))
	assert.Equal(t, []string{"EUR", "JPY", "USD"}, balance.Currencies())

	// dave took part in nothing but still gets a zero in every observed currency
	assert.Equal(t, map[string]int64{"EUR": 0, "JPY": 0, "USD": 0}, balance["dave"])

	reversed := make([]domain.Expense, len(expenses))
	for i, e := range expenses {
		reversed[len(expenses)-1-i] = e
	}
	again, err := accounting.Aggregate(members, reversed)
	require.NoError(t, err)
	assert.Equal(t, balance, again)

	// pure function: a second call on the same input is identical
	third, err := accounting.Aggregate(members, expenses)
	require.NoError(t, err)
	assert.Equal(t, balance, third)
}

func TestAggregate_SettlementFoldsAsExpense(t *testing.T) {
	members := []string{"alice", "bob", "carol"}
	exp := newExpense(t, "e1", "alice", domain.NewMoney(9000, "USD"), members, domain.EqualSplit{})
	settlement := domain.Settlement{
		SettlementID: "s1",
		GroupID:      "group-1",
		FromID:       "bob",
		ToID:         "alice",
		Amount:       domain.NewMoney(3000, "USD"),
		SettledAt:    time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
	}

	balance, err := accounting.Aggregate(members, []domain.Expense{exp, settlement.AsExpense()})
	require.NoError(t, err)

	assert.Equal(t, int64(3000), balance["alice"]["USD"])
	assert.Equal(t, int64(0), balance["bob"]["USD"])
	assert.Equal(t, int64(-3000), balance["carol"]["USD"])
	assert.NoError(t, accounting.ValidateBalanceClosed(balance))
}

func TestAggregate_Empty(t *testing.T) {
	balance, err := accounting.Aggregate([]string{"alice"}, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.Balance{"alice": {}}, balance)
	assert.Empty(t, balance.Currencies())
}

func TestAggregate_RejectsUnreconciledExpense(t *testing.T) {
	bad := domain.Expense{
		ExpenseID: "broken",
		PayerID:   "alice",
		Total:     domain.NewMoney(1000, "USD"),
		Lines: []domain.SplitLine{
			{ParticipantID: "alice", Amount: 500},
			{ParticipantID: "bob", Amount: 499},
		},
	}
	_, err := accounting.Aggregate([]string{"alice", "bob"}, []domain.Expense{bad})
	assert.ErrorIs(t, err, apperrors.ErrSplitMismatch)

	bad.Lines = nil
	_, err = accounting.Aggregate([]string{"alice", "bob"}, []domain.Expense{bad})
	assert.ErrorIs(t, err, apperrors.ErrInvalidSplit)

	bad.PayerID = ""
	_, err = accounting.Aggregate([]string{"alice", "bob"}, []domain.Expense{bad})
	assert.ErrorIs(t, err, apperrors.ErrInvalidSplit)
}

func TestValidateBalanceClosed(t *testing.T) {
	open := domain.Balance{
		"alice": {"USD": 100, "EUR": 50},
		"bob":   {"USD": -100, "EUR": -49},
	}
	err := accounting.ValidateBalanceClosed(open)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EUR")
}
