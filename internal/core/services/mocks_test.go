package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/splitbalance/internal/core/domain"
	portsrepo "github.com/SscSPs/splitbalance/internal/core/ports/repositories"
	"github.com/SscSPs/splitbalance/internal/events"
	"github.com/stretchr/testify/mock"
)

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

var _ portsrepo.CurrencyRepositoryFacade = (*MockCurrencyRepository)(nil)

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) IsCurrencyInUse(ctx context.Context, currencyCode string) (bool, error) {
	args := m.Called(ctx, currencyCode)
	return args.Bool(0), args.Error(1)
}

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*MockExchangeRateRepository)(nil)

func (m *MockExchangeRateRepository) FindExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCurrencyCode, toCurrencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListRatesFromBase(ctx context.Context, baseCurrencyCode string, asOf time.Time) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, baseCurrencyCode, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

// --- Mock GroupRepository ---
type MockGroupRepository struct {
	mock.Mock
}

var _ portsrepo.GroupRepositoryFacade = (*MockGroupRepository)(nil)

func (m *MockGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

func (m *MockGroupRepository) FindGroupByInviteCode(ctx context.Context, inviteCode string) (*domain.Group, error) {
	args := m.Called(ctx, inviteCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

func (m *MockGroupRepository) ListGroupsByParticipant(ctx context.Context, participantID string) ([]domain.Group, error) {
	args := m.Called(ctx, participantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Group), args.Error(1)
}

func (m *MockGroupRepository) SaveGroup(ctx context.Context, group domain.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockGroupRepository) AddMember(ctx context.Context, groupID string, member domain.Participant) error {
	args := m.Called(ctx, groupID, member)
	return args.Error(0)
}

func (m *MockGroupRepository) IsMember(ctx context.Context, groupID, participantID string) (bool, error) {
	args := m.Called(ctx, groupID, participantID)
	return args.Bool(0), args.Error(1)
}

// --- Mock ExpenseRepository ---
type MockExpenseRepository struct {
	mock.Mock
}

var _ portsrepo.ExpenseRepositoryFacade = (*MockExpenseRepository)(nil)

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, groupID, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, groupID, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListExpensesByGroup(ctx context.Context, groupID string, limit int, nextToken *string, includeSettlements bool) ([]domain.Expense, *string, error) {
	args := m.Called(ctx, groupID, limit, nextToken, includeSettlements)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Expense), next, args.Error(2)
}

func (m *MockExpenseRepository) ListAllExpensesByGroup(ctx context.Context, groupID string) ([]domain.Expense, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

// recordingPublisher keeps every published event and can be told to fail.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.ExpenseRecorded
	err    error
}

func (p *recordingPublisher) PublishExpenseRecorded(_ context.Context, event events.ExpenseRecorded) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) published() []events.ExpenseRecorded {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.ExpenseRecorded(nil), p.events...)
}

func testGroup(members ...string) *domain.Group {
	g := &domain.Group{GroupID: "group-1", Name: "Trip", InviteCode: "ABCD2345"}
	for _, id := range members {
		g.Members = append(g.Members, domain.Participant{ParticipantID: id, DisplayName: "name-" + id})
	}
	return g
}

func seededCurrencies() []domain.Currency {
	return []domain.Currency{
		{CurrencyCode: "USD", Symbol: "$", Name: "US Dollar", Precision: 2},
		{CurrencyCode: "EUR", Symbol: "€", Name: "Euro", Precision: 2},
		{CurrencyCode: "JPY", Symbol: "¥", Name: "Japanese Yen", Precision: 0},
	}
}
