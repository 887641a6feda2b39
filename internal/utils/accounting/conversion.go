package accounting

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/splitbalance/internal/apperrors"
	"github.com/SscSPs/splitbalance/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencyConverter converts amounts between currencies using a RateTable snapshot.
// It never mutates or caches the table.
type CurrencyConverter struct {
	strict bool
}

// NewCurrencyConverter returns a converter. In strict mode a currency missing from
// the rate table is an ErrUnknownCurrency; otherwise it is treated as already being
// in the base currency (rate 1) and a warning is logged.
func NewCurrencyConverter(strict bool) *CurrencyConverter {
	return &CurrencyConverter{strict: strict}
}

// Strict reports whether missing rates are errors.
func (c *CurrencyConverter) Strict() bool {
	return c.strict
}

// Convert converts amount (major units) from one currency to another. Rates are
// units of a currency per one base unit, so from -> base divides and base -> to
// multiplies. The result is not rounded.
func (c *CurrencyConverter) Convert(amount decimal.Decimal, from, to string, table domain.RateTable) (decimal.Decimal, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	if from == to {
		return amount, nil
	}
	fromRate, err := c.rate(from, table)
	if err != nil {
		return decimal.Zero, err
	}
	toRate, err := c.rate(to, table)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Div(fromRate).Mul(toRate), nil
}

func (c *CurrencyConverter) rate(code string, table domain.RateTable) (decimal.Decimal, error) {
	r, ok := table.Rate(code)
	if ok && r.IsPositive() {
		return r, nil
	}
	if c.strict {
		return decimal.Zero, fmt.Errorf("%w: no usable rate for %s against %s", apperrors.ErrUnknownCurrency, code, table.Base)
	}
	slog.Warn("No exchange rate found, treating currency as base", "currency", code, "base", table.Base)
	return decimal.NewFromInt(1), nil
}
