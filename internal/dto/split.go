package dto

import (
	"github.com/SscSPs/splitbalance/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SplitEntry is one participant's share specification. Value is a percentage for
// PERCENTAGE splits, an amount in major units for EXACT splits and a weight for
// SHARES splits. It is ignored for EQUAL splits.
type SplitEntry struct {
	ParticipantID string           `json:"participantID" binding:"required"`
	Value         *decimal.Decimal `json:"value"`
}

// PreviewSplitRequest asks for the split lines an expense would produce without saving it.
type PreviewSplitRequest struct {
	Amount       decimal.Decimal  `json:"amount" binding:"required"`
	CurrencyCode string           `json:"currencyCode" binding:"required,currency"`
	SplitType    domain.SplitType `json:"splitType" binding:"required,oneof=EQUAL PERCENTAGE EXACT SHARES"`
	Splits       []SplitEntry     `json:"splits" binding:"required,min=1,dive"`
}

// ValidateSplitRequest carries the percentages currently entered on an expense form.
type ValidateSplitRequest struct {
	Percentages []decimal.Decimal `json:"percentages" binding:"required"`
}

// SplitValidationResponse is the live percentage feedback.
type SplitValidationResponse struct {
	Total   decimal.Decimal `json:"total"`
	Matches bool            `json:"matches"`
}

// ToSplitValidationResponse converts domain.SplitValidation to DTO.
func ToSplitValidationResponse(v domain.SplitValidation) SplitValidationResponse {
	return SplitValidationResponse{Total: v.Total, Matches: v.Matches}
}

// SplitLineResponse is one participant's owed amount in major units.
type SplitLineResponse struct {
	ParticipantID string          `json:"participantID"`
	Amount        decimal.Decimal `json:"amount"`
	Spec          decimal.Decimal `json:"spec"`
}

// SplitPreviewResponse lists the lines an expense would produce.
type SplitPreviewResponse struct {
	CurrencyCode string              `json:"currencyCode"`
	Total        decimal.Decimal     `json:"total"`
	Lines        []SplitLineResponse `json:"lines"`
}

// ToSplitLineResponses converts split lines to DTOs. Exact-split specs are stored in
// minor units and are rendered in major units like the amounts.
func ToSplitLineResponses(lines []domain.SplitLine, splitType domain.SplitType, precision int32) []SplitLineResponse {
	res := make([]SplitLineResponse, len(lines))
	for i, l := range lines {
		spec := l.Spec
		if splitType == domain.SplitExact {
			spec = decimal.New(l.Spec.IntPart(), -precision)
		}
		res[i] = SplitLineResponse{
			ParticipantID: l.ParticipantID,
			Amount:        decimal.New(l.Amount, -precision),
			Spec:          spec,
		}
	}
	return res
}

// ToSplitPreviewResponse converts an allocation result to DTO.
func ToSplitPreviewResponse(total domain.Money, splitType domain.SplitType, lines []domain.SplitLine, precision int32) SplitPreviewResponse {
	return SplitPreviewResponse{
		CurrencyCode: total.Currency,
		Total:        total.Decimal(precision),
		Lines:        ToSplitLineResponses(lines, splitType, precision),
	}
}
