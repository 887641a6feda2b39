package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SplitType names the rule used to divide an expense.
type SplitType string

const (
	SplitEqual      SplitType = "EQUAL"
	SplitPercentage SplitType = "PERCENTAGE"
	SplitExact      SplitType = "EXACT"
	SplitShares     SplitType = "SHARES"
)

// IsValid reports whether t is one of the known split types.
func (t SplitType) IsValid() bool {
	switch t {
	case SplitEqual, SplitPercentage, SplitExact, SplitShares:
		return true
	}
	return false
}

// SplitRule is the closed set of split variants. Values line up positionally with
// the participant list handed to the allocator.
type SplitRule interface {
	Type() SplitType
	// SpecFor returns the per-participant input at index i (percentage, amount in
	// minor units, or weight). Equal splits return zero.
	SpecFor(i int) decimal.Decimal
	isSplitRule()
}

// EqualSplit divides the total evenly.
type EqualSplit struct{}

// PercentageSplit assigns each participant a percentage of the total.
type PercentageSplit struct {
	Percentages []decimal.Decimal
}

// ExactSplit assigns each participant a fixed amount in minor units.
type ExactSplit struct {
	Amounts []int64
}

// SharesSplit divides the total proportionally to positive weights.
type SharesSplit struct {
	Weights []decimal.Decimal
}

func (EqualSplit) Type() SplitType      { return SplitEqual }
func (PercentageSplit) Type() SplitType { return SplitPercentage }
func (ExactSplit) Type() SplitType      { return SplitExact }
func (SharesSplit) Type() SplitType     { return SplitShares }

func (EqualSplit) SpecFor(int) decimal.Decimal { return decimal.Zero }

func (s PercentageSplit) SpecFor(i int) decimal.Decimal {
	if i < 0 || i >= len(s.Percentages) {
		return decimal.Zero
	}
	return s.Percentages[i]
}

func (s ExactSplit) SpecFor(i int) decimal.Decimal {
	if i < 0 || i >= len(s.Amounts) {
		return decimal.Zero
	}
	return decimal.NewFromInt(s.Amounts[i])
}

func (s SharesSplit) SpecFor(i int) decimal.Decimal {
	if i < 0 || i >= len(s.Weights) {
		return decimal.Zero
	}
	return s.Weights[i]
}

func (EqualSplit) isSplitRule()      {}
func (PercentageSplit) isSplitRule() {}
func (ExactSplit) isSplitRule()      {}
func (SharesSplit) isSplitRule()     {}

// RuleFromSpecs rebuilds a SplitRule from its persisted type and per-line specs.
func RuleFromSpecs(t SplitType, specs []decimal.Decimal) SplitRule {
	switch t {
	case SplitPercentage:
		return PercentageSplit{Percentages: specs}
	case SplitExact:
		amounts := make([]int64, len(specs))
		for i, s := range specs {
			amounts[i] = s.IntPart()
		}
		return ExactSplit{Amounts: amounts}
	case SplitShares:
		return SharesSplit{Weights: specs}
	default:
		return EqualSplit{}
	}
}

// SplitLine is one participant's owed amount, in the expense currency's minor units.
type SplitLine struct {
	ParticipantID string          `json:"participantID"`
	Amount        int64           `json:"amount"`
	Spec          decimal.Decimal `json:"spec"` // the input the amount was derived from
}

// Expense is a payment made by one participant on behalf of a set of participants.
// It owns its split lines; both are created once and never patched.
type Expense struct {
	ExpenseID    string      `json:"expenseID"`
	GroupID      string      `json:"groupID"`
	Description  string      `json:"description"`
	PayerID      string      `json:"payerID"`
	Total        Money       `json:"total"`
	Rule         SplitRule   `json:"-"`
	SplitType    SplitType   `json:"splitType"`
	Lines        []SplitLine `json:"lines"`
	ExpenseDate  time.Time   `json:"expenseDate"`
	IsSettlement bool        `json:"isSettlement"`
	AuditFields
}

// ParticipantIDs returns the split participants in line order.
func (e Expense) ParticipantIDs() []string {
	ids := make([]string, len(e.Lines))
	for i, l := range e.Lines {
		ids[i] = l.ParticipantID
	}
	return ids
}

// LinesTotal sums the split lines.
func (e Expense) LinesTotal() int64 {
	var sum int64
	for _, l := range e.Lines {
		sum += l.Amount
	}
	return sum
}
