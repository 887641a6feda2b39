package accounting_test

import (
	"errors"
	"testing"

	"github.com/SscSPs/splitbalance/internal/apperrors"
	"github.com/SscSPs/splitbalance/internal/core/domain"
	"github.com/SscSPs/splitbalance/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimals(values ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.RequireFromString(v)
	}
	return out
}

func amountsOf(lines []domain.SplitLine) []int64 {
	out := make([]int64, len(lines))
	for i, l := range lines {
		out[i] = l.Amount
	}
	return out
}

func sumOf(amounts []int64) int64 {
	var s int64
	for _, a := range amounts {
		s += a
	}
	return s
}

func TestAllocate(t *testing.T) {
	abc := []string{"alice", "bob", "carol"}

	tests := []struct {
		name         string
		total        domain.Money
		participants []string
		rule         domain.SplitRule
		want         []int64
	}{
		{
			name:         "equal split remainder goes to first",
			total:        domain.NewMoney(10000, "USD"),
			participants: abc,
			rule:         domain.EqualSplit{},
			want:         []int64{3334, 3333, 3333},
		},
		{
			name:         "equal split with two remainder units",
			total:        domain.NewMoney(1001, "USD"),
			participants: []string{"a", "b", "c", "d", "e", "f"},
			rule:         domain.EqualSplit{},
			want:         []int64{167, 167, 167, 167, 167, 166},
		},
		{
			name:         "equal split single participant",
			total:        domain.NewMoney(999, "USD"),
			participants: []string{"alice"},
			rule:         domain.EqualSplit{},
			want:         []int64{999},
		},
		{
			name:         "percentage split excess taken from last",
			total:        domain.NewMoney(5000, "USD"),
			participants: abc,
			rule:         domain.PercentageSplit{Percentages: decimals("33.33", "33.33", "33.34")},
			want:         []int64{1667, 1667, 1666},
		},
		{
			name:         "percentage split without residue",
			total:        domain.NewMoney(20000, "EUR"),
			participants: abc,
			rule:         domain.PercentageSplit{Percentages: decimals("10", "20", "70")},
			want:         []int64{2000, 4000, 14000},
		},
		{
			name:         "percentage split shortfall skips zero percentage",
			total:        domain.NewMoney(100, "USD"),
			participants: []string{"a", "b", "c", "d"},
			rule:         domain.PercentageSplit{Percentages: decimals("0", "33.33", "33.33", "33.34")},
			want:         []int64{0, 34, 33, 33},
		},
		{
			name:         "percentage split of one minor unit",
			total:        domain.NewMoney(1, "USD"),
			participants: []string{"a", "b"},
			rule:         domain.PercentageSplit{Percentages: decimals("50", "50")},
			want:         []int64{1, 0},
		},
		{
			name:         "percentage sum at lower tolerance edge",
			total:        domain.NewMoney(10000, "USD"),
			participants: []string{"a", "b"},
			rule:         domain.PercentageSplit{Percentages: decimals("49.99", "50")},
			want:         []int64{5000, 5000},
		},
		{
			name:         "exact split",
			total:        domain.NewMoney(10000, "USD"),
			participants: abc,
			rule:         domain.ExactSplit{Amounts: []int64{5000, 2500, 2500}},
			want:         []int64{5000, 2500, 2500},
		},
		{
			name:         "shares split shortfall goes to first",
			total:        domain.NewMoney(1000, "USD"),
			participants: abc,
			rule:         domain.SharesSplit{Weights: decimals("1", "2", "3")},
			want:         []int64{167, 333, 500},
		},
		{
			name:         "zero decimal currency",
			total:        domain.NewMoney(1000, "JPY"),
			participants: abc,
			rule:         domain.EqualSplit{},
			want:         []int64{334, 333, 333},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := accounting.Allocate(tt.total, domain.DefaultPrecision(tt.total.Currency), tt.participants, tt.rule)
			require.NoError(t, err)
			require.Len(t, lines, len(tt.participants))
			assert.Equal(t, tt.want, amountsOf(lines))
			assert.Equal(t, tt.total.Amount, sumOf(amountsOf(lines)))
			for i, l := range lines {
				assert.Equal(t, tt.participants[i], l.ParticipantID)
				assert.True(t, tt.rule.SpecFor(i).Equal(l.Spec))
			}
		})
	}
}

func TestAllocate_EqualSplitReconciles(t *testing.T) {
	participants := []string{"a", "b", "c", "d", "e", "f", "g"}
	for n := 1; n <= len(participants); n++ {
		for total := int64(1); total <= 500; total++ {
			lines, err := accounting.Allocate(domain.NewMoney(total, "USD"), 2, participants[:n], domain.EqualSplit{})
			require.NoError(t, err)

			amounts := amountsOf(lines)
			minA, maxA := amounts[0], amounts[0]
			for _, a := range amounts {
				minA = min(minA, a)
				maxA = max(maxA, a)
			}
			assert.Equal(t, total, sumOf(amounts), "total %d among %d", total, n)
			assert.LessOrEqual(t, maxA-minA, int64(1), "total %d among %d", total, n)
		}
	}
}

func TestAllocate_PercentageSplitReconciles(t *testing.T) {
	splits := [][]decimal.Decimal{
		decimals("33.33", "33.33", "33.34"),
		decimals("33.33", "33.33", "33.33"),
		decimals("12.5", "12.5", "25", "50"),
		decimals("99.99", "0.02"),
		decimals("14.29", "14.29", "14.29", "14.29", "14.28", "14.28", "14.28"),
	}
	participants := []string{"a", "b", "c", "d", "e", "f", "g"}
	for _, pcts := range splits {
		for _, total := range []int64{1, 7, 99, 100, 101, 5000, 123457, 99999999} {
			lines, err := accounting.Allocate(domain.NewMoney(total, "USD"), 2, participants[:len(pcts)],
				domain.PercentageSplit{Percentages: pcts})
			require.NoError(t, err)
			amounts := amountsOf(lines)
			assert.Equal(t, total, sumOf(amounts), "total %d split %v", total, pcts)
			for _, a := range amounts {
				assert.GreaterOrEqual(t, a, int64(0))
			}
		}
	}
}

func TestAllocate_Errors(t *testing.T) {
	usd := domain.NewMoney(10000, "USD")

	tests := []struct {
		name         string
		total        domain.Money
		participants []string
		rule         domain.SplitRule
		wantErr      error
	}{
		{"no participants", usd, nil, domain.EqualSplit{}, apperrors.ErrInvalidSplit},
		{"duplicate participant", usd, []string{"a", "a"}, domain.EqualSplit{}, apperrors.ErrInvalidSplit},
		{"blank participant", usd, []string{"a", ""}, domain.EqualSplit{}, apperrors.ErrInvalidSplit},
		{"nil rule", usd, []string{"a"}, nil, apperrors.ErrInvalidSplit},
		{"zero total", domain.NewMoney(0, "USD"), []string{"a"}, domain.EqualSplit{}, apperrors.ErrInvalidAmount},
		{"negative total", domain.NewMoney(-100, "USD"), []string{"a"}, domain.EqualSplit{}, apperrors.ErrInvalidAmount},
		{"percentage count mismatch", usd, []string{"a", "b"},
			domain.PercentageSplit{Percentages: decimals("100")}, apperrors.ErrInvalidSplit},
		{"negative percentage", usd, []string{"a", "b"},
			domain.PercentageSplit{Percentages: decimals("110", "-10")}, apperrors.ErrInvalidAmount},
		{"percentages below tolerance", usd, []string{"a", "b"},
			domain.PercentageSplit{Percentages: decimals("49.98", "50")}, apperrors.ErrSplitMismatch},
		{"percentages above tolerance", usd, []string{"a", "b"},
			domain.PercentageSplit{Percentages: decimals("50.02", "50")}, apperrors.ErrSplitMismatch},
		{"exact amounts do not add up", usd, []string{"a", "b"},
			domain.ExactSplit{Amounts: []int64{5000, 4999}}, apperrors.ErrSplitMismatch},
		{"negative exact amount", usd, []string{"a", "b"},
			domain.ExactSplit{Amounts: []int64{10100, -100}}, apperrors.ErrInvalidAmount},
		{"zero exact amount", usd, []string{"a", "b"},
			domain.ExactSplit{Amounts: []int64{10000, 0}}, apperrors.ErrInvalidAmount},
		{"zero weight", usd, []string{"a", "b"},
			domain.SharesSplit{Weights: decimals("1", "0")}, apperrors.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := accounting.Allocate(tt.total, 2, tt.participants, tt.rule)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, lines)
		})
	}
}

func TestAllocate_SplitMismatchCarriesTotal(t *testing.T) {
	_, err := accounting.Allocate(domain.NewMoney(5000, "USD"), 2, []string{"a", "b", "c"},
		domain.PercentageSplit{Percentages: decimals("33", "33", "33")})

	var mismatch *apperrors.SplitMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.True(t, decimal.NewFromInt(99).Equal(mismatch.Total))
	assert.True(t, decimal.NewFromInt(100).Equal(mismatch.Expected))
	assert.Equal(t, "%", mismatch.Unit)

	_, err = accounting.Allocate(domain.NewMoney(10000, "USD"), 2, []string{"a", "b"},
		domain.ExactSplit{Amounts: []int64{5000, 4999}})
	require.True(t, errors.As(err, &mismatch))
	assert.True(t, decimal.RequireFromString("99.99").Equal(mismatch.Total))
	assert.True(t, decimal.NewFromInt(100).Equal(mismatch.Expected))
}

func TestValidatePercentages(t *testing.T) {
	tests := []struct {
		name  string
		input []decimal.Decimal
		total string
		want  bool
	}{
		{"exactly one hundred", decimals("50", "50"), "100", true},
		{"within tolerance below", decimals("33.33", "33.33", "33.33"), "99.99", true},
		{"within tolerance above", decimals("50.01", "50"), "100.01", true},
		{"too low", decimals("33", "33", "33"), "99", false},
		{"too high", decimals("60", "50"), "110", false},
		{"empty", nil, "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := accounting.ValidatePercentages(tt.input)
			assert.True(t, decimal.RequireFromString(tt.total).Equal(got.Total), "total %s", got.Total)
			assert.Equal(t, tt.want, got.Matches)
		})
	}
}
