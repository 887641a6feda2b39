package dto

import (
	"encoding/json"

	"github.com/SscSPs/splitbalance/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Chart colors for positive, negative and zero balances.
const (
	colorIsOwed  = "rgba(40, 167, 69, 0.7)"
	colorOwes    = "rgba(220, 53, 69, 0.7)"
	colorSettled = "rgba(108, 117, 125, 0.7)"
)

// ChartDataset is one chart series. Data holds absolute amounts; the sign is carried by the color.
type ChartDataset struct {
	Label           string        `json:"label"`
	Data            []json.Number `json:"data"`
	BackgroundColor []string      `json:"backgroundColor"`
	BorderWidth     int           `json:"borderWidth"`
}

// BalanceRowResponse is one participant's balance with an unambiguous identifier.
type BalanceRowResponse struct {
	ParticipantID string                 `json:"participantID"`
	DisplayName   string                 `json:"displayName"`
	Status        domain.BalanceStatus   `json:"status"`
	Total         *json.Number           `json:"total,omitempty"`
	Breakdown     map[string]json.Number `json:"breakdown,omitempty"`
}

// BalanceDataResponse is the balance query payload. With a display currency each
// entry in Balances is a single signed number, otherwise a currency to number map.
type BalanceDataResponse struct {
	Labels          []string             `json:"labels"`
	Datasets        []ChartDataset       `json:"datasets"`
	Balances        map[string]any       `json:"balances"`
	DisplayCurrency *string              `json:"display_currency"`
	Rows            []BalanceRowResponse `json:"rows"`
}

func number(d decimal.Decimal, precision int32) json.Number {
	return json.Number(d.StringFixed(precision))
}

func statusColor(s domain.BalanceStatus) string {
	switch s {
	case domain.StatusIsOwed:
		return colorIsOwed
	case domain.StatusOwes:
		return colorOwes
	default:
		return colorSettled
	}
}

// ToBalanceDataResponse renders a presentation for charting. Labels are member display
// names; a name shared by several members is suffixed with the participant ID.
func ToBalanceDataResponse(gb domain.GroupBalance) BalanceDataResponse {
	names := gb.Group.DisplayNames()
	rows := gb.Presentation.Rows

	res := BalanceDataResponse{
		Labels:          make([]string, len(rows)),
		Datasets:        []ChartDataset{},
		Balances:        make(map[string]any, len(rows)),
		DisplayCurrency: gb.Presentation.DisplayCurrency,
		Rows:            make([]BalanceRowResponse, len(rows)),
	}

	seen := make(map[string]int, len(rows))
	for _, r := range rows {
		seen[labelFor(names, r.ParticipantID)]++
	}
	for i, r := range rows {
		label := labelFor(names, r.ParticipantID)
		if seen[label] > 1 {
			label = label + " (" + r.ParticipantID + ")"
		}
		res.Labels[i] = label
		res.Rows[i] = BalanceRowResponse{ParticipantID: r.ParticipantID, DisplayName: names[r.ParticipantID], Status: r.Status}

		if r.Total != nil {
			n := number(r.Total.Amount, r.Total.Precision)
			res.Balances[label] = n
			res.Rows[i].Total = &n
			continue
		}
		breakdown := make(map[string]json.Number, len(r.Breakdown))
		for _, ca := range r.Breakdown {
			breakdown[ca.Currency] = number(ca.Amount, ca.Precision)
		}
		res.Balances[label] = breakdown
		res.Rows[i].Breakdown = breakdown
	}

	if gb.Presentation.DisplayCurrency != nil {
		res.Datasets = append(res.Datasets, totalDataset(*gb.Presentation.DisplayCurrency, rows))
	} else {
		res.Datasets = append(res.Datasets, breakdownDatasets(gb.Balance.Currencies(), rows)...)
	}
	return res
}

func labelFor(names map[string]string, id string) string {
	if name := names[id]; name != "" {
		return name
	}
	return id
}

func totalDataset(currency string, rows []domain.PresentationRow) ChartDataset {
	ds := ChartDataset{
		Label:           currency,
		Data:            make([]json.Number, len(rows)),
		BackgroundColor: make([]string, len(rows)),
		BorderWidth:     1,
	}
	for i, r := range rows {
		ds.Data[i] = number(r.Total.Amount.Abs(), r.Total.Precision)
		ds.BackgroundColor[i] = statusColor(r.Status)
	}
	return ds
}

// breakdownDatasets emits one series per currency so amounts in different
// currencies are never added together.
func breakdownDatasets(currencies []string, rows []domain.PresentationRow) []ChartDataset {
	sets := make([]ChartDataset, 0, len(currencies))
	for _, code := range currencies {
		ds := ChartDataset{
			Label:           code,
			Data:            make([]json.Number, len(rows)),
			BackgroundColor: make([]string, len(rows)),
			BorderWidth:     1,
		}
		precision := domain.DefaultPrecision(code)
		for _, r := range rows {
			for _, ca := range r.Breakdown {
				if ca.Currency == code {
					precision = ca.Precision
				}
			}
		}
		for i, r := range rows {
			amount, status := decimal.Zero, domain.StatusSettled
			for _, ca := range r.Breakdown {
				if ca.Currency == code {
					amount, status = ca.Amount, ca.Status
				}
			}
			ds.Data[i] = number(amount.Abs(), precision)
			ds.BackgroundColor[i] = statusColor(status)
		}
		sets = append(sets, ds)
	}
	return sets
}
