package accounting

import (
	"fmt"

	"github.com/SscSPs/splitbalance/internal/apperrors"
	"github.com/SscSPs/splitbalance/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	hundred             = decimal.NewFromInt(100)
	percentageTolerance = decimal.RequireFromString("0.01")
)

// Allocate divides total among participants according to rule and returns one
// SplitLine per participant, in participant order. The amounts always sum to
// total.Amount exactly. precision is the currency's minor-unit exponent and is only
// used to report exact-split mismatches in major units.
//
// Rounding residue is handed out one minor unit at a time: a shortfall goes to
// participants starting from the first, an excess is taken back starting from the
// last. Validation failures return before any line is built.
func Allocate(total domain.Money, precision int32, participants []string, rule domain.SplitRule) ([]domain.SplitLine, error) {
	if err := validateParticipants(participants); err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, fmt.Errorf("%w: split rule is required", apperrors.ErrInvalidSplit)
	}
	if total.Amount <= 0 {
		return nil, fmt.Errorf("%w: total must be positive, got %d", apperrors.ErrInvalidAmount, total.Amount)
	}

	var (
		amounts []int64
		err     error
	)
	switch r := rule.(type) {
	case domain.EqualSplit:
		amounts = allocateEqual(total.Amount, len(participants))
	case domain.PercentageSplit:
		amounts, err = allocatePercentage(total.Amount, participants, r.Percentages)
	case domain.ExactSplit:
		amounts, err = allocateExact(total, precision, participants, r.Amounts)
	case domain.SharesSplit:
		amounts, err = allocateShares(total.Amount, participants, r.Weights)
	default:
		return nil, fmt.Errorf("%w: unsupported split type %T", apperrors.ErrInvalidSplit, rule)
	}
	if err != nil {
		return nil, err
	}

	lines := make([]domain.SplitLine, len(participants))
	for i, id := range participants {
		lines[i] = domain.SplitLine{
			ParticipantID: id,
			Amount:        amounts[i],
			Spec:          rule.SpecFor(i),
		}
	}
	return lines, nil
}

// ValidatePercentages reports the running percentage total and whether it is
// within tolerance of 100.
func ValidatePercentages(percentages []decimal.Decimal) domain.SplitValidation {
	sum := decimal.Sum(decimal.Zero, percentages...)
	return domain.SplitValidation{
		Total:   sum,
		Matches: sum.Sub(hundred).Abs().LessThanOrEqual(percentageTolerance),
	}
}

func validateParticipants(participants []string) error {
	if len(participants) == 0 {
		return fmt.Errorf("%w: at least one participant is required", apperrors.ErrInvalidSplit)
	}
	seen := make(map[string]struct{}, len(participants))
	for i, id := range participants {
		if id == "" {
			return fmt.Errorf("%w: participant at position %d has no identifier", apperrors.ErrInvalidSplit, i)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: participant %s appears more than once", apperrors.ErrInvalidSplit, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func checkSpecCount(kind string, got, want int) error {
	if got != want {
		return fmt.Errorf("%w: %d %s given for %d participants", apperrors.ErrInvalidSplit, got, kind, want)
	}
	return nil
}

func allocateEqual(total int64, n int) []int64 {
	base := total / int64(n)
	remainder := total % int64(n)
	amounts := make([]int64, n)
	for i := range amounts {
		amounts[i] = base
		if int64(i) < remainder {
			amounts[i]++
		}
	}
	return amounts
}

func allocatePercentage(total int64, participants []string, percentages []decimal.Decimal) ([]int64, error) {
	if err := checkSpecCount("percentages", len(percentages), len(participants)); err != nil {
		return nil, err
	}
	for i, p := range percentages {
		if p.IsNegative() {
			return nil, fmt.Errorf("%w: percentage for %s is negative (%s)", apperrors.ErrInvalidAmount, participants[i], p.String())
		}
	}
	if v := ValidatePercentages(percentages); !v.Matches {
		return nil, &apperrors.SplitMismatchError{Total: v.Total, Expected: hundred, Unit: "%"}
	}

	totalDec := decimal.NewFromInt(total)
	amounts := make([]int64, len(percentages))
	for i, p := range percentages {
		amounts[i] = totalDec.Mul(p).Div(hundred).Round(0).IntPart()
	}
	reconcile(amounts, total, func(i int) bool { return percentages[i].IsPositive() })
	return amounts, nil
}

func allocateExact(total domain.Money, precision int32, participants []string, exact []int64) ([]int64, error) {
	if err := checkSpecCount("amounts", len(exact), len(participants)); err != nil {
		return nil, err
	}
	var sum int64
	for i, a := range exact {
		if a <= 0 {
			return nil, fmt.Errorf("%w: amount for %s must be positive", apperrors.ErrInvalidAmount, participants[i])
		}
		sum += a
	}
	if sum != total.Amount {
		return nil, &apperrors.SplitMismatchError{
			Total:    decimal.New(sum, -precision),
			Expected: total.Decimal(precision),
			Unit:     " " + total.Currency,
		}
	}
	amounts := make([]int64, len(exact))
	copy(amounts, exact)
	return amounts, nil
}

func allocateShares(total int64, participants []string, weights []decimal.Decimal) ([]int64, error) {
	if err := checkSpecCount("weights", len(weights), len(participants)); err != nil {
		return nil, err
	}
	for i, w := range weights {
		if !w.IsPositive() {
			return nil, fmt.Errorf("%w: weight for %s must be positive (%s)", apperrors.ErrInvalidAmount, participants[i], w.String())
		}
	}

	weightSum := decimal.Sum(decimal.Zero, weights...)
	totalDec := decimal.NewFromInt(total)
	amounts := make([]int64, len(weights))
	for i, w := range weights {
		// Truncated so the residue is a shortfall handed out from the first participant.
		amounts[i] = totalDec.Mul(w).Div(weightSum).Truncate(0).IntPart()
	}
	reconcile(amounts, total, func(int) bool { return true })
	return amounts, nil
}

// reconcile nudges amounts one minor unit at a time until they sum to total.
// Only participants for which eligible returns true are adjusted, and no amount is
// pushed below zero.
func reconcile(amounts []int64, total int64, eligible func(i int) bool) {
	var sum int64
	for _, a := range amounts {
		sum += a
	}
	n := len(amounts)
	for i := 0; sum < total; i = (i + 1) % n {
		if eligible(i) {
			amounts[i]++
			sum++
		}
	}
	for i := n - 1; sum > total; i = (i - 1 + n) % n {
		if eligible(i) && amounts[i] > 0 {
			amounts[i]--
			sum--
		}
	}
}
