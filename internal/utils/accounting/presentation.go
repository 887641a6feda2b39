package accounting

import (
	"sort"
	"strings"

	"github.com/SscSPs/splitbalance/internal/core/domain"
	"github.com/shopspring/decimal"
)

// settledTolerance absorbs conversion rounding when deciding if a converted total is zero.
var settledTolerance = decimal.RequireFromString("0.005")

// BalancePresenter projects a Balance into a display currency or a per-currency
// breakdown.
type BalancePresenter struct {
	converter *CurrencyConverter
	precision domain.PrecisionFunc
}

// NewBalancePresenter creates a presenter. A nil precision func uses ISO defaults.
func NewBalancePresenter(converter *CurrencyConverter, precision domain.PrecisionFunc) *BalancePresenter {
	if precision == nil {
		precision = domain.DefaultPrecision
	}
	return &BalancePresenter{converter: converter, precision: precision}
}

// Present builds one row per participant. Rows follow order; participants in the
// balance but not in order are appended sorted by ID. When displayCurrency is set
// each row carries a single converted total, otherwise a breakdown of its non-zero
// currencies sorted by code.
func (p *BalancePresenter) Present(balance domain.Balance, order []string, displayCurrency *string, table domain.RateTable) (domain.Presentation, error) {
	out := domain.Presentation{Rows: []domain.PresentationRow{}}
	if displayCurrency != nil && *displayCurrency != "" {
		code := strings.ToUpper(*displayCurrency)
		out.DisplayCurrency = &code
	}

	for _, id := range rowOrder(balance, order) {
		var (
			row domain.PresentationRow
			err error
		)
		if out.DisplayCurrency != nil {
			row, err = p.convertedRow(id, balance[id], *out.DisplayCurrency, table)
			if err != nil {
				return domain.Presentation{}, err
			}
		} else {
			row = p.breakdownRow(id, balance[id])
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

func (p *BalancePresenter) convertedRow(id string, byCurrency map[string]int64, display string, table domain.RateTable) (domain.PresentationRow, error) {
	codes := make([]string, 0, len(byCurrency))
	for code := range byCurrency {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	total := decimal.Zero
	for _, code := range codes {
		minor := byCurrency[code]
		if minor == 0 {
			continue
		}
		converted, err := p.converter.Convert(decimal.New(minor, -p.precision(code)), code, display, table)
		if err != nil {
			return domain.PresentationRow{}, err
		}
		total = total.Add(converted)
	}

	precision := p.precision(display)
	amount := domain.CurrencyAmount{Currency: display, Precision: precision, Status: statusOf(total)}
	if amount.Status == domain.StatusSettled {
		amount.Amount = decimal.Zero
	} else {
		amount.Amount = total.Round(precision)
	}
	return domain.PresentationRow{ParticipantID: id, Total: &amount, Status: amount.Status}, nil
}

func (p *BalancePresenter) breakdownRow(id string, byCurrency map[string]int64) domain.PresentationRow {
	codes := make([]string, 0, len(byCurrency))
	for code, minor := range byCurrency {
		if minor != 0 {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)

	row := domain.PresentationRow{ParticipantID: id, Breakdown: []domain.CurrencyAmount{}}
	var owed, owes bool
	for _, code := range codes {
		minor := byCurrency[code]
		precision := p.precision(code)
		status := domain.StatusIsOwed
		if minor < 0 {
			status = domain.StatusOwes
			owes = true
		} else {
			owed = true
		}
		row.Breakdown = append(row.Breakdown, domain.CurrencyAmount{
			Currency:  code,
			Amount:    decimal.New(minor, -precision),
			Precision: precision,
			Status:    status,
		})
	}

	switch {
	case owed && owes:
		row.Status = domain.StatusMixed
	case owed:
		row.Status = domain.StatusIsOwed
	case owes:
		row.Status = domain.StatusOwes
	default:
		row.Status = domain.StatusSettled
	}
	return row
}

func statusOf(total decimal.Decimal) domain.BalanceStatus {
	switch {
	case total.Abs().LessThan(settledTolerance):
		return domain.StatusSettled
	case total.IsPositive():
		return domain.StatusIsOwed
	default:
		return domain.StatusOwes
	}
}

func rowOrder(balance domain.Balance, order []string) []string {
	ids := make([]string, 0, len(balance))
	seen := make(map[string]struct{}, len(balance))
	for _, id := range order {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, id := range balance.Participants() {
		if _, ok := seen[id]; !ok {
			ids = append(ids, id)
		}
	}
	return ids
}
