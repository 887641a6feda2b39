package domain

import "sort"

// Balance maps participant ID to currency code to a signed net amount in that
// currency's minor units. Positive means the participant is owed money.
// It is derived from the expense set on every request and never persisted.
type Balance map[string]map[string]int64

// Currencies returns every currency code present, sorted.
func (b Balance) Currencies() []string {
	seen := make(map[string]struct{})
	for _, byCurrency := range b {
		for code := range byCurrency {
			seen[code] = struct{}{}
		}
	}
	codes := make([]string, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Participants returns every participant ID present, sorted.
func (b Balance) Participants() []string {
	ids := make([]string, 0, len(b))
	for id := range b {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CurrencyTotal sums all participants' balances in one currency.
func (b Balance) CurrencyTotal(code string) int64 {
	var sum int64
	for _, byCurrency := range b {
		sum += byCurrency[code]
	}
	return sum
}
