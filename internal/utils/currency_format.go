package utils

import (
	"github.com/SscSPs/splitbalance/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatWithPrecision renders amount with exactly precision fractional digits.
// Example: 12.3456 at precision 2 returns "12.35", at precision 0 returns "12".
func FormatWithPrecision(amount decimal.Decimal, precision int32) string {
	return amount.StringFixed(precision)
}

// FormatMinorUnits renders an amount stored in minor units in major units.
// Example: 1234 at precision 2 returns "12.34".
func FormatMinorUnits(minor int64, precision int32) string {
	return FormatWithPrecision(decimal.New(minor, -precision), precision)
}

// FormatMoney renders m using the precision of its currency, e.g. "12.34 USD".
func FormatMoney(m domain.Money, precision domain.PrecisionFunc) string {
	return FormatMinorUnits(m.Amount, precision(m.Currency)) + " " + m.Currency
}
