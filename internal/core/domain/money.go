package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/splitbalance/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Money is an amount in integer minor units tagged with its currency.
// 12.34 USD is Money{Amount: 1234, Currency: "USD"}.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// NewMoney builds a Money value with a normalized currency code.
func NewMoney(minor int64, currency string) Money {
	return Money{Amount: minor, Currency: strings.ToUpper(currency)}
}

// MoneyFromDecimal converts a major-unit decimal (e.g. 12.34) into minor units.
// Amounts carrying more digits than the currency allows are rejected rather than
// rounded, so no value is silently created or destroyed at the boundary.
func MoneyFromDecimal(amount decimal.Decimal, currency string, precision int32) (Money, error) {
	if amount.IsNegative() {
		return Money{}, fmt.Errorf("%w: amount %s is negative", apperrors.ErrInvalidAmount, amount.String())
	}
	scaled := amount.Shift(precision)
	if !scaled.Equal(scaled.Truncate(0)) {
		return Money{}, fmt.Errorf("%w: amount %s has more than %d decimal places for %s",
			apperrors.ErrInvalidAmount, amount.String(), precision, currency)
	}
	if scaled.GreaterThan(decimal.NewFromInt(maxMinorUnits)) {
		return Money{}, fmt.Errorf("%w: amount %s is out of range", apperrors.ErrInvalidAmount, amount.String())
	}
	return NewMoney(scaled.IntPart(), currency), nil
}

const maxMinorUnits = int64(1) << 53

// Decimal returns the amount in major units.
func (m Money) Decimal(precision int32) decimal.Decimal {
	return decimal.New(m.Amount, -precision)
}

// Format renders the amount with the given precision, e.g. "12.34 USD".
func (m Money) Format(precision int32) string {
	return m.Decimal(precision).StringFixed(precision) + " " + m.Currency
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.Amount > 0
}
