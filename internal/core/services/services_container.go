package services

import (
	portsrepo "github.com/SscSPs/splitbalance/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/splitbalance/internal/core/ports/services"
	"github.com/SscSPs/splitbalance/internal/events"
	"github.com/SscSPs/splitbalance/internal/platform/config"
	"github.com/SscSPs/splitbalance/internal/platform/metrics"
	"github.com/SscSPs/splitbalance/internal/utils/accounting"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, publisher events.Publisher, m *metrics.Metrics) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Groups first since every other group-scoped service authorizes through them
	groups := NewGroupService(repos.GroupRepo)
	container.Group = groups

	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, container.Currency, cfg.BaseCurrency)

	container.Expense = NewExpenseService(repos.ExpenseRepo, groups, container.Currency, publisher, m)
	container.Settlement = NewSettlementService(repos.ExpenseRepo, groups, container.Currency, publisher, m)
	container.Balance = NewBalanceService(
		repos.ExpenseRepo,
		groups,
		container.Currency,
		container.ExchangeRate,
		accounting.NewCurrencyConverter(cfg.StrictExchangeRates),
		m,
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.GroupSvcFacade   = (*GroupService)(nil)
	_ portssvc.ExpenseSvcFacade = (*ExpenseService)(nil)
	_ portssvc.SettlementSvc    = (*SettlementService)(nil)
	_ portssvc.BalanceSvc       = (*BalanceService)(nil)
)
