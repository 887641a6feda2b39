package domain

import "github.com/shopspring/decimal"

// BalanceStatus classifies a participant's net position.
type BalanceStatus string

const (
	StatusIsOwed  BalanceStatus = "IS_OWED"
	StatusOwes    BalanceStatus = "OWES"
	StatusSettled BalanceStatus = "SETTLED"
	// StatusMixed is used in per-currency breakdowns where a participant is owed in
	// one currency and owes in another.
	StatusMixed BalanceStatus = "MIXED"
)

// CurrencyAmount is a signed amount in one currency, in major units.
type CurrencyAmount struct {
	Currency  string          `json:"currency"`
	Amount    decimal.Decimal `json:"amount"`
	Precision int32           `json:"precision"`
	Status    BalanceStatus   `json:"status"`
}

// PresentationRow is one participant's projected balance. Total is set only when a
// display currency was requested; Breakdown only when it was not.
type PresentationRow struct {
	ParticipantID string           `json:"participantID"`
	Total         *CurrencyAmount  `json:"total,omitempty"`
	Breakdown     []CurrencyAmount `json:"breakdown,omitempty"`
	Status        BalanceStatus    `json:"status"`
}

// Presentation is the renderer-facing projection of a Balance.
type Presentation struct {
	DisplayCurrency *string           `json:"displayCurrency"`
	Rows            []PresentationRow `json:"rows"`
}

// SplitValidation is the live feedback for a percentage split.
type SplitValidation struct {
	Total   decimal.Decimal `json:"total"`
	Matches bool            `json:"matches"`
}

// GroupBalance bundles a group's derived balance with its projection and the rate
// snapshot used to build it.
type GroupBalance struct {
	Group        Group
	Balance      Balance
	Presentation Presentation
	Rates        RateTable
}
