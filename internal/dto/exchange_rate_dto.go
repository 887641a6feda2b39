package dto

import (
	"encoding/json"
	"time"

	"github.com/SscSPs/splitbalance/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExchangeRateRequest defines the structure for quoting a currency against the
// configured base currency. Rate is units of ToCurrencyCode per one base unit.
type CreateExchangeRateRequest struct {
	ToCurrencyCode string          `json:"toCurrencyCode" binding:"required,len=3,uppercase"`
	Rate           decimal.Decimal `json:"rate" binding:"required"`
	DateEffective  *time.Time      `json:"dateEffective"` // defaults to now
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	DateEffective    time.Time       `json:"dateEffective"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID:   rate.ExchangeRateID,
		FromCurrencyCode: rate.FromCurrencyCode,
		ToCurrencyCode:   rate.ToCurrencyCode,
		Rate:             rate.Rate,
		DateEffective:    rate.DateEffective,
		CreatedAt:        rate.CreatedAt,
		CreatedBy:        rate.CreatedBy,
	}
}

// RateTableResponse is the rate table consumed by clients: currency code to units of
// that currency per one base unit. Rates are emitted as JSON numbers.
type RateTableResponse map[string]json.Number

// ToRateTableResponse flattens a domain.RateTable. The base currency is always present with rate 1.
func ToRateTableResponse(table domain.RateTable) RateTableResponse {
	res := make(RateTableResponse, len(table.Rates)+1)
	for code, rate := range table.Rates {
		res[code] = json.Number(rate.String())
	}
	res[table.Base] = json.Number("1")
	return res
}
