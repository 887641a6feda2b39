package domain

import "strings"

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "USD")
	Symbol       string `json:"symbol"`       // e.g., "$"
	Name         string `json:"name"`         // e.g., "US Dollar"
	Precision    int32  `json:"precision"`    // Number of minor-unit digits (2 for USD, 0 for JPY)
	AuditFields
}

// zeroDecimalCurrencies and threeDecimalCurrencies cover the ISO 4217 exceptions
// to the usual two-digit minor unit.
var zeroDecimalCurrencies = map[string]bool{
	"BIF": true, "CLP": true, "DJF": true, "GNF": true, "ISK": true, "JPY": true,
	"KMF": true, "KRW": true, "PYG": true, "RWF": true, "UGX": true, "UYI": true,
	"VND": true, "VUV": true, "XAF": true, "XOF": true, "XPF": true,
}

var threeDecimalCurrencies = map[string]bool{
	"BHD": true, "IQD": true, "JOD": true, "KWD": true, "LYD": true, "OMR": true, "TND": true,
}

// DefaultPrecision returns the ISO 4217 minor-unit exponent for code.
// Unknown codes use two digits.
func DefaultPrecision(code string) int32 {
	code = strings.ToUpper(code)
	switch {
	case zeroDecimalCurrencies[code]:
		return 0
	case threeDecimalCurrencies[code]:
		return 3
	default:
		return 2
	}
}

// PrecisionFunc resolves the minor-unit exponent for a currency code.
type PrecisionFunc func(code string) int32

// PrecisionLookup builds a PrecisionFunc from a list of configured currencies,
// falling back to DefaultPrecision for anything not listed.
func PrecisionLookup(currencies []Currency) PrecisionFunc {
	byCode := make(map[string]int32, len(currencies))
	for _, c := range currencies {
		byCode[strings.ToUpper(c.CurrencyCode)] = c.Precision
	}
	return func(code string) int32 {
		if p, ok := byCode[strings.ToUpper(code)]; ok {
			return p
		}
		return DefaultPrecision(code)
	}
}
