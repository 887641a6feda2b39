package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/splitbalance/internal/apperrors"
	"github.com/SscSPs/splitbalance/internal/core/domain"
	portsrepo "github.com/SscSPs/splitbalance/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/splitbalance/internal/core/ports/services"
	"github.com/SscSPs/splitbalance/internal/dto"
	"github.com/SscSPs/splitbalance/internal/events"
	"github.com/SscSPs/splitbalance/internal/platform/metrics"
	"github.com/SscSPs/splitbalance/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseService records expenses and computes splits.
type ExpenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepositoryFacade
	currencySvc portssvc.CurrencyReaderSvc
	publisher   events.Publisher
	metrics     *metrics.Metrics
	now         func() time.Time
}

// NewExpenseService creates an ExpenseService. A nil publisher drops events and nil
// metrics record nothing.
func NewExpenseService(
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	groupAuthorizer portssvc.GroupAuthorizerSvc,
	currencySvc portssvc.CurrencyReaderSvc,
	publisher events.Publisher,
	m *metrics.Metrics,
) *ExpenseService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &ExpenseService{
		BaseService: BaseService{GroupAuthorizer: groupAuthorizer},
		expenseRepo: expenseRepo,
		currencySvc: currencySvc,
		publisher:   publisher,
		metrics:     m,
		now:         time.Now,
	}
}

// CreateExpense allocates the expense among the listed participants and saves it
// together with its split lines.
func (s *ExpenseService) CreateExpense(ctx context.Context, groupID string, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, error) {
	group, err := s.AuthorizeMember(ctx, groupID, creatorUserID)
	if err != nil {
		return nil, err
	}

	payerID := strings.TrimSpace(req.PayerID)
	if payerID == "" {
		payerID = creatorUserID
	}
	if !group.HasMember(payerID) {
		return nil, fmt.Errorf("%w: payer %s is not a member of the group", apperrors.ErrValidation, payerID)
	}

	participants := participantIDs(req.Splits)
	for _, id := range participants {
		if !group.HasMember(id) {
			return nil, fmt.Errorf("%w: participant %s is not a member of the group", apperrors.ErrInvalidSplit, id)
		}
	}

	total, _, lines, err := s.allocate(ctx, req.Amount, req.CurrencyCode, req.SplitType, req.Splits)
	if err != nil {
		return nil, err
	}

	now := s.now()
	expenseDate := now
	if req.ExpenseDate != nil {
		expenseDate = *req.ExpenseDate
	}

	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		GroupID:     groupID,
		Description: strings.TrimSpace(req.Description),
		PayerID:     payerID,
		Total:       total,
		SplitType:   req.SplitType,
		Lines:       lines,
		ExpenseDate: expenseDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	expense.Rule = domain.RuleFromSpecs(expense.SplitType, specsOf(lines))

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense", slog.String("group_id", groupID))
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	s.LogInfo(ctx, "Expense created",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("group_id", groupID),
		slog.String("split_type", string(expense.SplitType)),
		slog.Int64("total_minor", expense.Total.Amount),
		slog.String("currency", expense.Total.Currency))

	publishRecorded(ctx, &s.BaseService, s.publisher, s.metrics, expense)
	return &expense, nil
}

// GetExpense retrieves one expense of a group the user belongs to.
func (s *ExpenseService) GetExpense(ctx context.Context, groupID, expenseID, requestingUserID string) (*domain.Expense, error) {
	if _, err := s.AuthorizeMember(ctx, groupID, requestingUserID); err != nil {
		return nil, err
	}

	expense, err := s.expenseRepo.FindExpenseByID(ctx, groupID, expenseID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get expense", slog.String("expense_id", expenseID))
		}
		return nil, err
	}
	return expense, nil
}

// ListExpenses retrieves a page of the group's expenses, newest first.
func (s *ExpenseService) ListExpenses(ctx context.Context, groupID, requestingUserID string, params dto.ListExpensesParams) (*dto.ListExpensesResponse, error) {
	if _, err := s.AuthorizeMember(ctx, groupID, requestingUserID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	expenses, nextToken, err := s.expenseRepo.ListExpensesByGroup(ctx, groupID, limit, params.NextToken, params.IncludeSettlements)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list expenses", slog.String("group_id", groupID))
		}
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	precision, err := s.currencySvc.PrecisionLookup(ctx)
	if err != nil {
		return nil, err
	}

	res := dto.ToListExpensesResponse(expenses, nextToken, precision)
	return &res, nil
}

// PreviewSplit computes the lines an expense would produce without saving anything.
func (s *ExpenseService) PreviewSplit(ctx context.Context, req dto.PreviewSplitRequest) (*dto.SplitPreviewResponse, error) {
	total, precision, lines, err := s.allocate(ctx, req.Amount, req.CurrencyCode, req.SplitType, req.Splits)
	if err != nil {
		return nil, err
	}

	res := dto.ToSplitPreviewResponse(total, req.SplitType, lines, precision)
	return &res, nil
}

// ValidateSplit reports the running percentage total and whether it is within tolerance of 100.
func (s *ExpenseService) ValidateSplit(ctx context.Context, req dto.ValidateSplitRequest) domain.SplitValidation {
	return accounting.ValidatePercentages(req.Percentages)
}

// allocate converts request values to minor units and runs the split.
func (s *ExpenseService) allocate(ctx context.Context, amount decimal.Decimal, currencyCode string, splitType domain.SplitType, splits []dto.SplitEntry) (domain.Money, int32, []domain.SplitLine, error) {
	currencyCode = strings.ToUpper(currencyCode)

	lookup, err := s.currencySvc.PrecisionLookup(ctx)
	if err != nil {
		return domain.Money{}, 0, nil, err
	}
	precision := lookup(currencyCode)

	total, err := domain.MoneyFromDecimal(amount, currencyCode, precision)
	if err != nil {
		return domain.Money{}, 0, nil, err
	}

	rule, err := buildRule(splitType, splits, currencyCode, precision)
	if err != nil {
		s.metrics.ObserveAllocation(string(splitType), err)
		return domain.Money{}, 0, nil, err
	}

	lines, err := accounting.Allocate(total, precision, participantIDs(splits), rule)
	s.metrics.ObserveAllocation(string(splitType), err)
	if err != nil {
		s.LogDebug(ctx, "Split rejected", slog.String("split_type", string(splitType)), slog.String("error", err.Error()))
		return domain.Money{}, 0, nil, err
	}
	return total, precision, lines, nil
}

// buildRule turns request split entries into a SplitRule. Exact amounts arrive in
// major units and are converted to minor units of the expense currency.
func buildRule(splitType domain.SplitType, splits []dto.SplitEntry, currencyCode string, precision int32) (domain.SplitRule, error) {
	if splitType == domain.SplitEqual {
		return domain.EqualSplit{}, nil
	}
	if !splitType.IsValid() {
		return nil, fmt.Errorf("%w: unknown split type %q", apperrors.ErrValidation, splitType)
	}

	values := make([]decimal.Decimal, len(splits))
	for i, entry := range splits {
		if entry.Value == nil {
			return nil, fmt.Errorf("%w: %s split requires a value for participant %s", apperrors.ErrInvalidSplit, splitType, entry.ParticipantID)
		}
		values[i] = *entry.Value
	}

	switch splitType {
	case domain.SplitPercentage, domain.SplitShares:
		for i, v := range values {
			if err := checkSpecValue(v); err != nil {
				return nil, fmt.Errorf("%w for participant %s", err, splits[i].ParticipantID)
			}
		}
		if splitType == domain.SplitPercentage {
			return domain.PercentageSplit{Percentages: values}, nil
		}
		return domain.SharesSplit{Weights: values}, nil
	default:
		amounts := make([]int64, len(values))
		for i, v := range values {
			m, err := domain.MoneyFromDecimal(v, currencyCode, precision)
			if err != nil {
				return nil, err
			}
			amounts[i] = m.Amount
		}
		return domain.ExactSplit{Amounts: amounts}, nil
	}
}

// Bounds of expense_lines.spec, so a stored rule rebuilds exactly.
const maxSpecScale = 10

var maxSpecValue = decimal.New(1, 15)

func checkSpecValue(v decimal.Decimal) error {
	if !v.Equal(v.Truncate(maxSpecScale)) {
		return fmt.Errorf("%w: split value %s has more than %d decimal places", apperrors.ErrInvalidAmount, v.String(), maxSpecScale)
	}
	if v.Abs().GreaterThanOrEqual(maxSpecValue) {
		return fmt.Errorf("%w: split value %s is out of range", apperrors.ErrInvalidAmount, v.String())
	}
	return nil
}

func participantIDs(splits []dto.SplitEntry) []string {
	ids := make([]string, len(splits))
	for i, entry := range splits {
		ids[i] = strings.TrimSpace(entry.ParticipantID)
	}
	return ids
}

func specsOf(lines []domain.SplitLine) []decimal.Decimal {
	specs := make([]decimal.Decimal, len(lines))
	for i, l := range lines {
		specs[i] = l.Spec
	}
	return specs
}

// publishRecorded emits ExpenseRecorded. Failures are logged and never surface to the caller.
func publishRecorded(ctx context.Context, base *BaseService, publisher events.Publisher, m *metrics.Metrics, expense domain.Expense) {
	err := publisher.PublishExpenseRecorded(ctx, events.NewExpenseRecorded(expense))
	m.ObservePublish(events.EventExpenseRecorded, err)
	if err != nil {
		base.LogError(ctx, err, "Failed to publish expense recorded event",
			slog.String("expense_id", expense.ExpenseID),
			slog.String("group_id", expense.GroupID))
	}
}
