package pgsql

import (
	portsrepo "github.com/SscSPs/splitbalance/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CurrencyRepo:     newPgxCurrencyRepository(dbPool),
		ExchangeRateRepo: newPgxExchangeRateRepository(dbPool),
		GroupRepo:        newPgxGroupRepository(dbPool),
		ExpenseRepo:      newPgxExpenseRepository(dbPool),
	}
}
