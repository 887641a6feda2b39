package handlers_test

import (
	"context"
	"io"

	"github.com/SscSPs/splitbalance/internal/core/domain"
	portssvc "github.com/SscSPs/splitbalance/internal/core/ports/services"
	"github.com/SscSPs/splitbalance/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock GroupService ---
type MockGroupService struct {
	mock.Mock
}

var _ portssvc.GroupSvcFacade = (*MockGroupService)(nil)

func (m *MockGroupService) GetGroup(ctx context.Context, groupID, requestingUserID string) (*domain.Group, error) {
	args := m.Called(ctx, groupID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

func (m *MockGroupService) ListUserGroups(ctx context.Context, userID string) ([]domain.Group, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Group), args.Error(1)
}

func (m *MockGroupService) CreateGroup(ctx context.Context, req dto.CreateGroupRequest, creatorUserID string) (*domain.Group, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

func (m *MockGroupService) AddMember(ctx context.Context, groupID string, req dto.AddMemberRequest, requestingUserID string) (*domain.Group, error) {
	args := m.Called(ctx, groupID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

func (m *MockGroupService) JoinByInviteCode(ctx context.Context, req dto.JoinGroupRequest, userID string) (*domain.Group, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

func (m *MockGroupService) AuthorizeMember(ctx context.Context, groupID, userID string) (*domain.Group, error) {
	args := m.Called(ctx, groupID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

// --- Mock ExpenseService ---
type MockExpenseService struct {
	mock.Mock
}

var _ portssvc.ExpenseSvcFacade = (*MockExpenseService)(nil)

func (m *MockExpenseService) GetExpense(ctx context.Context, groupID, expenseID, requestingUserID string) (*domain.Expense, error) {
	args := m.Called(ctx, groupID, expenseID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseService) ListExpenses(ctx context.Context, groupID, requestingUserID string, params dto.ListExpensesParams) (*dto.ListExpensesResponse, error) {
	args := m.Called(ctx, groupID, requestingUserID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListExpensesResponse), args.Error(1)
}

func (m *MockExpenseService) CreateExpense(ctx context.Context, groupID string, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, error) {
	args := m.Called(ctx, groupID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseService) PreviewSplit(ctx context.Context, req dto.PreviewSplitRequest) (*dto.SplitPreviewResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SplitPreviewResponse), args.Error(1)
}

func (m *MockExpenseService) ValidateSplit(ctx context.Context, req dto.ValidateSplitRequest) domain.SplitValidation {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.SplitValidation)
}

// --- Mock SettlementService ---
type MockSettlementService struct {
	mock.Mock
}

var _ portssvc.SettlementSvc = (*MockSettlementService)(nil)

func (m *MockSettlementService) RecordSettlement(ctx context.Context, groupID string, req dto.RecordSettlementRequest, creatorUserID string) (*domain.Settlement, error) {
	args := m.Called(ctx, groupID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settlement), args.Error(1)
}

// --- Mock BalanceService ---
type MockBalanceService struct {
	mock.Mock
}

var _ portssvc.BalanceSvc = (*MockBalanceService)(nil)

func (m *MockBalanceService) GetBalanceData(ctx context.Context, groupID string, displayCurrency *string, requestingUserID string) (*domain.GroupBalance, error) {
	args := m.Called(ctx, groupID, displayCurrency, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GroupBalance), args.Error(1)
}

func (m *MockBalanceService) ExportGroupCSV(ctx context.Context, groupID, requestingUserID string, w io.Writer) error {
	args := m.Called(ctx, groupID, requestingUserID, w)
	if s, ok := args.Get(0).(string); ok {
		_, _ = io.WriteString(w, s)
		return args.Error(1)
	}
	return args.Error(1)
}

// --- Mock CurrencyService ---
type MockCurrencyService struct {
	mock.Mock
}

var _ portssvc.CurrencySvcFacade = (*MockCurrencyService)(nil)

func (m *MockCurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) PrecisionLookup(ctx context.Context) (domain.PrecisionFunc, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.PrecisionFunc), args.Error(1)
}

func (m *MockCurrencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

// --- Mock ExchangeRateService ---
type MockExchangeRateService struct {
	mock.Mock
}

var _ portssvc.ExchangeRateSvcFacade = (*MockExchangeRateService)(nil)

func (m *MockExchangeRateService) GetExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCode, toCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateService) GetRateTable(ctx context.Context) (domain.RateTable, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.RateTable), args.Error(1)
}

func (m *MockExchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}
