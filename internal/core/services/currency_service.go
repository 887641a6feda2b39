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
)

type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a currency service.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	code := strings.ToUpper(req.CurrencyCode)
	precision := domain.DefaultPrecision(code)
	if req.Precision != nil {
		precision = *req.Precision
	}
	if precision < 0 || precision > 4 {
		return nil, fmt.Errorf("%w: precision must be between 0 and 4", apperrors.ErrValidation)
	}

	// Amounts recorded before the currency was registered were scaled by the ISO default.
	if precision != domain.DefaultPrecision(code) {
		inUse, err := s.currencyRepo.IsCurrencyInUse(ctx, code)
		if err != nil {
			s.LogError(ctx, err, "Failed to check currency usage", slog.String("currency_code", code))
			return nil, fmt.Errorf("failed to create currency: %w", err)
		}
		if inUse {
			return nil, fmt.Errorf("%w: %s already has recorded amounts at precision %d",
				apperrors.ErrValidation, code, domain.DefaultPrecision(code))
		}
	}

	now := time.Now()
	currency := domain.Currency{
		CurrencyCode: code,
		Symbol:       req.Symbol,
		Name:         req.Name,
		Precision:    precision,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save currency", slog.String("currency_code", code))
		}
		return nil, fmt.Errorf("failed to create currency: %w", err)
	}

	s.LogInfo(ctx, "Currency created", slog.String("currency_code", code), slog.Int("precision", int(precision)))
	return &currency, nil
}

func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(currencyCode))
	if err != nil {
		return nil, fmt.Errorf("failed to get currency by code: %w", err)
	}
	return currency, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currencies")
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}

func (s *currencyService) PrecisionLookup(ctx context.Context) (domain.PrecisionFunc, error) {
	currencies, err := s.ListCurrencies(ctx)
	if err != nil {
		return nil, err
	}
	return domain.PrecisionLookup(currencies), nil
}
