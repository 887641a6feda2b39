package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/splitbalance/internal/core/domain"
	portsrepo "github.com/SscSPs/splitbalance/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/splitbalance/internal/core/ports/services"
	"github.com/SscSPs/splitbalance/internal/platform/metrics"
	"github.com/SscSPs/splitbalance/internal/utils"
	"github.com/SscSPs/splitbalance/internal/utils/accounting"
	"golang.org/x/sync/errgroup"
)

// BalanceService derives balances from a group's full expense history on every call.
type BalanceService struct {
	BaseService
	expenseRepo portsrepo.ExpenseReader
	currencySvc portssvc.CurrencyReaderSvc
	rateSvc     portssvc.ExchangeRateReaderSvc
	converter   *accounting.CurrencyConverter
	metrics     *metrics.Metrics
}

// NewBalanceService creates a BalanceService.
func NewBalanceService(
	expenseRepo portsrepo.ExpenseReader,
	groupAuthorizer portssvc.GroupAuthorizerSvc,
	currencySvc portssvc.CurrencyReaderSvc,
	rateSvc portssvc.ExchangeRateReaderSvc,
	converter *accounting.CurrencyConverter,
	m *metrics.Metrics,
) *BalanceService {
	if converter == nil {
		converter = accounting.NewCurrencyConverter(true)
	}
	return &BalanceService{
		BaseService: BaseService{GroupAuthorizer: groupAuthorizer},
		expenseRepo: expenseRepo,
		currencySvc: currencySvc,
		rateSvc:     rateSvc,
		converter:   converter,
		metrics:     m,
	}
}

type balanceInputs struct {
	group     *domain.Group
	expenses  []domain.Expense
	precision domain.PrecisionFunc
	rates     domain.RateTable
}

// load checks membership, then fetches expenses, precisions and rates concurrently.
func (s *BalanceService) load(ctx context.Context, groupID, userID string, withRates bool) (*balanceInputs, error) {
	group, err := s.AuthorizeMember(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}

	in := &balanceInputs{group: group}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		expenses, err := s.expenseRepo.ListAllExpensesByGroup(gctx, groupID)
		if err != nil {
			return fmt.Errorf("failed to load expenses: %w", err)
		}
		in.expenses = expenses
		return nil
	})
	g.Go(func() error {
		precision, err := s.currencySvc.PrecisionLookup(gctx)
		if err != nil {
			return err
		}
		in.precision = precision
		return nil
	})
	if withRates {
		g.Go(func() error {
			rates, err := s.rateSvc.GetRateTable(gctx)
			if err != nil {
				return err
			}
			in.rates = rates
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to load balance inputs", slog.String("group_id", groupID))
		return nil, err
	}
	return in, nil
}

// GetBalanceData aggregates the group's expenses and projects the result into
// displayCurrency, or into a per-currency breakdown when displayCurrency is nil or empty.
func (s *BalanceService) GetBalanceData(ctx context.Context, groupID string, displayCurrency *string, requestingUserID string) (*domain.GroupBalance, error) {
	start := time.Now()
	mode := metrics.ModeBreakdown
	if displayCurrency != nil && *displayCurrency != "" {
		mode = metrics.ModeDisplay
	}

	in, err := s.load(ctx, groupID, requestingUserID, mode == metrics.ModeDisplay)
	if err != nil {
		return nil, err
	}

	members := in.group.MemberIDs()
	balance, err := accounting.Aggregate(members, in.expenses)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate balances", slog.String("group_id", groupID))
		return nil, err
	}
	if err := accounting.ValidateBalanceClosed(balance); err != nil {
		s.LogError(ctx, err, "Group balance does not net to zero", slog.String("group_id", groupID))
		return nil, err
	}

	presentation, err := accounting.NewBalancePresenter(s.converter, in.precision).
		Present(balance, members, displayCurrency, in.rates)
	if err != nil {
		s.LogDebug(ctx, "Balance presentation failed", slog.String("group_id", groupID), slog.String("error", err.Error()))
		return nil, err
	}

	s.metrics.ObserveBalance(mode, time.Since(start))
	s.LogDebug(ctx, "Balance computed",
		slog.String("group_id", groupID),
		slog.String("mode", mode),
		slog.Int("expenses", len(in.expenses)))

	return &domain.GroupBalance{
		Group:        *in.group,
		Balance:      balance,
		Presentation: presentation,
		Rates:        in.rates,
	}, nil
}

// ExportGroupCSV writes every expense followed by each member's net balance per currency.
func (s *BalanceService) ExportGroupCSV(ctx context.Context, groupID, requestingUserID string, w io.Writer) error {
	in, err := s.load(ctx, groupID, requestingUserID, false)
	if err != nil {
		return err
	}

	balance, err := accounting.Aggregate(in.group.MemberIDs(), in.expenses)
	if err != nil {
		return err
	}

	names := in.group.DisplayNames()
	nameOf := func(id string) string {
		if n := names[id]; n != "" {
			return n
		}
		return id
	}

	cw := csv.NewWriter(w)
	rows := [][]string{{"Date", "Description", "Amount", "Currency", "Paid By", "Participants", "Split Type"}}
	for _, e := range in.expenses {
		participants := make([]string, len(e.Lines))
		for i, l := range e.Lines {
			participants[i] = nameOf(l.ParticipantID)
		}
		splitType := string(e.SplitType)
		if e.IsSettlement {
			splitType = "SETTLEMENT"
		}
		rows = append(rows, []string{
			e.ExpenseDate.Format("2006-01-02"),
			e.Description,
			utils.FormatMinorUnits(e.Total.Amount, in.precision(e.Total.Currency)),
			e.Total.Currency,
			nameOf(e.PayerID),
			strings.Join(participants, ", "),
			splitType,
		})
	}

	rows = append(rows, []string{}, []string{"Balances"}, []string{"User", "Currency", "Net Balance"})
	for _, id := range in.group.MemberIDs() {
		for _, code := range balance.Currencies() {
			minor, ok := balance[id][code]
			if !ok {
				continue
			}
			rows = append(rows, []string{nameOf(id), code, utils.FormatMinorUnits(minor, in.precision(code))})
		}
	}

	if err := cw.WriteAll(rows); err != nil {
		s.LogError(ctx, err, "Failed to write CSV export", slog.String("group_id", groupID))
		return fmt.Errorf("failed to write export: %w", err)
	}

	s.LogInfo(ctx, "Group exported", slog.String("group_id", groupID), slog.Int("expenses", len(in.expenses)))
	return nil
}
