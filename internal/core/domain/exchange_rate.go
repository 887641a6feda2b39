package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate stores the conversion rate between two currencies for a specific date.
// Rate is the number of ToCurrency units per one FromCurrency unit.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	DateEffective    time.Time       `json:"dateEffective"`
	AuditFields
}

// RateTable is a read-only snapshot of rates quoted as units of each currency per
// one unit of Base. It is valid for a single computation.
type RateTable struct {
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
	AsOf  time.Time                  `json:"asOf"`
}

// NewRateTable builds a snapshot from base-quoted exchange rates. Rates quoted
// from another currency are ignored and the latest effective rate per currency wins.
func NewRateTable(base string, rates []ExchangeRate, asOf time.Time) RateTable {
	base = strings.ToUpper(base)
	table := RateTable{Base: base, Rates: map[string]decimal.Decimal{base: decimal.NewFromInt(1)}, AsOf: asOf}
	effective := make(map[string]time.Time, len(rates))
	for _, r := range rates {
		if !strings.EqualFold(r.FromCurrencyCode, base) {
			continue
		}
		to := strings.ToUpper(r.ToCurrencyCode)
		if to == base {
			continue
		}
		if seen, ok := effective[to]; ok && seen.After(r.DateEffective) {
			continue
		}
		effective[to] = r.DateEffective
		table.Rates[to] = r.Rate
	}
	return table
}

// Rate returns the quoted rate for code. The base currency is always 1.
func (t RateTable) Rate(code string) (decimal.Decimal, bool) {
	code = strings.ToUpper(code)
	if code == t.Base {
		return decimal.NewFromInt(1), true
	}
	r, ok := t.Rates[code]
	return r, ok
}
