package utils

import (
	"testing"

	"github.com/SscSPs/splitbalance/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatWithPrecision(t *testing.T) {
	amount := decimal.RequireFromString("12.3456")
	assert.Equal(t, "12.35", FormatWithPrecision(amount, 2))
	assert.Equal(t, "12", FormatWithPrecision(amount, 0))
	assert.Equal(t, "5.000", FormatWithPrecision(decimal.NewFromInt(5), 3))
}

func TestFormatMinorUnits(t *testing.T) {
	assert.Equal(t, "12.34", FormatMinorUnits(1234, 2))
	assert.Equal(t, "-0.05", FormatMinorUnits(-5, 2))
	assert.Equal(t, "1234", FormatMinorUnits(1234, 0))
	assert.Equal(t, "1.234", FormatMinorUnits(1234, 3))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "90.00 USD", FormatMoney(domain.NewMoney(9000, "usd"), domain.DefaultPrecision))
	assert.Equal(t, "4321 JPY", FormatMoney(domain.NewMoney(4321, "JPY"), domain.DefaultPrecision))
}
