package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate stores the conversion rate between two currencies for a specific date.
type ExchangeRate struct {
	ExchangeRateID   string          `db:"exchange_rate_id"`   // Primary Key (UUID)
	FromCurrencyCode string          `db:"from_currency_code"` // FK -> currencies
	ToCurrencyCode   string          `db:"to_currency_code"`   // FK -> currencies
	Rate             decimal.Decimal `db:"rate"`
	DateEffective    time.Time       `db:"date_effective"`
	AuditFields
}
