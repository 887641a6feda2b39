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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// exchangeRateService stores rates quoted against a single base currency and
// serves them as RateTable snapshots.
type exchangeRateService struct {
	BaseService
	rateRepo     portsrepo.ExchangeRateRepositoryFacade
	currencySvc  portssvc.CurrencyReaderSvc
	baseCurrency string
	now          func() time.Time
}

// NewExchangeRateService creates an exchange rate service for baseCurrency.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencySvc portssvc.CurrencyReaderSvc, baseCurrency string) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{
		rateRepo:     rateRepo,
		currencySvc:  currencySvc,
		baseCurrency: strings.ToUpper(baseCurrency),
		now:          time.Now,
	}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// CreateExchangeRate records how many units of req.ToCurrencyCode one base unit buys.
func (s *exchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	to := strings.ToUpper(req.ToCurrencyCode)
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	if to == s.baseCurrency {
		return nil, fmt.Errorf("%w: the base currency %s always has rate 1", apperrors.ErrValidation, s.baseCurrency)
	}

	if _, err := s.currencySvc.GetCurrencyByCode(ctx, to); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: currency code '%s' not found", apperrors.ErrValidation, to)
		}
		s.LogError(ctx, err, "Failed to validate currency for exchange rate", slog.String("currency_code", to))
		return nil, fmt.Errorf("failed to validate currency '%s': %w", to, err)
	}

	now := s.now()
	effective := now
	if req.DateEffective != nil {
		effective = *req.DateEffective
	}

	rate := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: s.baseCurrency,
		ToCurrencyCode:   to,
		Rate:             req.Rate,
		DateEffective:    effective,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		s.LogError(ctx, err, "Failed to save exchange rate", slog.String("to_currency", to))
		return nil, fmt.Errorf("failed to create exchange rate: %w", err)
	}

	s.LogInfo(ctx, "Exchange rate created",
		slog.String("rate_id", rate.ExchangeRateID),
		slog.String("from_currency", rate.FromCurrencyCode),
		slog.String("to_currency", rate.ToCurrencyCode),
		slog.String("rate", rate.Rate.String()))
	return &rate, nil
}

// GetExchangeRate retrieves the latest rate for a currency pair.
func (s *exchangeRateService) GetExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	fromCode = strings.ToUpper(fromCode)
	toCode = strings.ToUpper(toCode)
	if len(fromCode) != 3 || len(toCode) != 3 {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}

	rate, err := s.rateRepo.FindExchangeRate(ctx, fromCode, toCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rate: %w", err)
	}
	return rate, nil
}

// GetRateTable returns the rates in effect now, quoted against the base currency.
func (s *exchangeRateService) GetRateTable(ctx context.Context) (domain.RateTable, error) {
	asOf := s.now()
	rates, err := s.rateRepo.ListRatesFromBase(ctx, s.baseCurrency, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to list exchange rates", slog.String("base_currency", s.baseCurrency))
		return domain.RateTable{}, fmt.Errorf("failed to load rate table: %w", err)
	}

	table := domain.NewRateTable(s.baseCurrency, rates, asOf)
	s.LogDebug(ctx, "Rate table loaded", slog.String("base_currency", table.Base), slog.Int("rates", len(table.Rates)))
	return table, nil
}
