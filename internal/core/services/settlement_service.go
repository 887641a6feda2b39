package services

import (
	"context"
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
	"github.com/google/uuid"
)

// SettlementService records transfers that pay down balances. Settlements are stored
// as expenses flagged IsSettlement so aggregation treats both uniformly.
type SettlementService struct {
	BaseService
	expenseRepo portsrepo.ExpenseWriter
	currencySvc portssvc.CurrencyReaderSvc
	publisher   events.Publisher
	metrics     *metrics.Metrics
	now         func() time.Time
}

// NewSettlementService creates a SettlementService.
func NewSettlementService(
	expenseRepo portsrepo.ExpenseWriter,
	groupAuthorizer portssvc.GroupAuthorizerSvc,
	currencySvc portssvc.CurrencyReaderSvc,
	publisher events.Publisher,
	m *metrics.Metrics,
) *SettlementService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &SettlementService{
		BaseService: BaseService{GroupAuthorizer: groupAuthorizer},
		expenseRepo: expenseRepo,
		currencySvc: currencySvc,
		publisher:   publisher,
		metrics:     m,
		now:         time.Now,
	}
}

// RecordSettlement records a transfer from one member to another.
func (s *SettlementService) RecordSettlement(ctx context.Context, groupID string, req dto.RecordSettlementRequest, creatorUserID string) (*domain.Settlement, error) {
	group, err := s.AuthorizeMember(ctx, groupID, creatorUserID)
	if err != nil {
		return nil, err
	}

	fromID := strings.TrimSpace(req.FromID)
	if fromID == "" {
		fromID = creatorUserID
	}
	toID := strings.TrimSpace(req.ToID)
	if fromID == toID {
		return nil, fmt.Errorf("%w: a settlement needs two different participants", apperrors.ErrValidation)
	}
	for _, id := range []string{fromID, toID} {
		if !group.HasMember(id) {
			return nil, fmt.Errorf("%w: participant %s is not a member of the group", apperrors.ErrValidation, id)
		}
	}

	currencyCode := strings.ToUpper(req.CurrencyCode)
	lookup, err := s.currencySvc.PrecisionLookup(ctx)
	if err != nil {
		return nil, err
	}
	amount, err := domain.MoneyFromDecimal(req.Amount, currencyCode, lookup(currencyCode))
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: settlement amount must be positive", apperrors.ErrInvalidAmount)
	}

	now := s.now()
	settledAt := now
	if req.SettledAt != nil {
		settledAt = *req.SettledAt
	}

	settlement := domain.Settlement{
		SettlementID: uuid.NewString(),
		GroupID:      groupID,
		FromID:       fromID,
		ToID:         toID,
		Amount:       amount,
		Note:         strings.TrimSpace(req.Note),
		SettledAt:    settledAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	expense := settlement.AsExpense()
	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save settlement", slog.String("group_id", groupID))
		return nil, fmt.Errorf("failed to record settlement: %w", err)
	}

	s.LogInfo(ctx, "Settlement recorded",
		slog.String("settlement_id", settlement.SettlementID),
		slog.String("group_id", groupID),
		slog.String("from_id", fromID),
		slog.String("to_id", toID),
		slog.Int64("amount_minor", amount.Amount),
		slog.String("currency", amount.Currency))

	publishRecorded(ctx, &s.BaseService, s.publisher, s.metrics, expense)
	return &settlement, nil
}
