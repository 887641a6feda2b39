package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/splitbalance/internal/apperrors"
	"github.com/SscSPs/splitbalance/internal/core/domain"
	portssvc "github.com/SscSPs/splitbalance/internal/core/ports/services"
	"github.com/SscSPs/splitbalance/internal/core/services"
	"github.com/SscSPs/splitbalance/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CurrencyServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCurrencyRepository
	service  portssvc.CurrencySvcFacade
}

func (suite *CurrencyServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCurrencyRepository)
	suite.service = services.NewCurrencyService(suite.mockRepo)
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateCurrencyRequest{CurrencyCode: "KWD", Symbol: "KD", Name: "Kuwaiti Dinar"}

	suite.mockRepo.On("SaveCurrency", ctx, mock.MatchedBy(func(c domain.Currency) bool {
		return c.CurrencyCode == "KWD" && c.Precision == 3 && c.CreatedBy == creatorUserID && c.LastUpdatedBy == creatorUserID
	})).Return(nil).Once()

	currency, err := suite.service.CreateCurrency(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(currency)
	suite.Equal("KWD", currency.CurrencyCode)
	suite.Equal(int32(3), currency.Precision)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_ExplicitPrecision() {
	ctx := context.Background()
	zero := int32(0)
	req := dto.CreateCurrencyRequest{CurrencyCode: "PTS", Symbol: "P", Name: "Points", Precision: &zero}

	suite.mockRepo.On("IsCurrencyInUse", ctx, "PTS").Return(false, nil).Once()
	suite.mockRepo.On("SaveCurrency", ctx, mock.MatchedBy(func(c domain.Currency) bool {
		return c.Precision == 0
	})).Return(nil).Once()

	currency, err := suite.service.CreateCurrency(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Equal(int32(0), currency.Precision)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_PrecisionOutOfRange() {
	five := int32(5)
	req := dto.CreateCurrencyRequest{CurrencyCode: "BAD", Symbol: "B", Name: "Bad", Precision: &five}

	currency, err := suite.service.CreateCurrency(context.Background(), req, "user-1")

	suite.Nil(currency)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCurrency", mock.Anything, mock.Anything)
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_Duplicate() {
	ctx := context.Background()
	req := dto.CreateCurrencyRequest{CurrencyCode: "USD", Symbol: "$", Name: "US Dollar"}
	suite.mockRepo.On("SaveCurrency", ctx, mock.AnythingOfType("domain.Currency")).Return(apperrors.ErrDuplicate).Once()

	currency, err := suite.service.CreateCurrency(ctx, req, "user-1")

	suite.Nil(currency)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_DefaultPrecisionSkipsUsageCheck() {
	ctx := context.Background()
	two := int32(2)
	req := dto.CreateCurrencyRequest{CurrencyCode: "chf", Symbol: "Fr", Name: "Swiss Franc", Precision: &two}
	suite.mockRepo.On("SaveCurrency", ctx, mock.AnythingOfType("domain.Currency")).Return(nil).Once()

	currency, err := suite.service.CreateCurrency(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Equal("CHF", currency.CurrencyCode)
	suite.mockRepo.AssertNotCalled(suite.T(), "IsCurrencyInUse", mock.Anything, mock.Anything)
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_RecreatedWithOtherPrecisionIsDuplicate() {
	ctx := context.Background()
	zero := int32(0)
	req := dto.CreateCurrencyRequest{CurrencyCode: "USD", Symbol: "$", Name: "US Dollar", Precision: &zero}
	suite.mockRepo.On("IsCurrencyInUse", ctx, "USD").Return(false, nil).Once()
	suite.mockRepo.On("SaveCurrency", ctx, mock.AnythingOfType("domain.Currency")).
		Return(fmt.Errorf("currency USD already exists: %w", apperrors.ErrDuplicate)).Once()

	currency, err := suite.service.CreateCurrency(ctx, req, "user-1")

	suite.Nil(currency)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_PrecisionFixedByRecordedAmounts() {
	ctx := context.Background()
	zero := int32(0)
	// CHF expenses were stored in cents before the currency was registered
	req := dto.CreateCurrencyRequest{CurrencyCode: "CHF", Symbol: "Fr", Name: "Swiss Franc", Precision: &zero}
	suite.mockRepo.On("IsCurrencyInUse", ctx, "CHF").Return(true, nil).Once()

	currency, err := suite.service.CreateCurrency(ctx, req, "user-1")

	suite.Nil(currency)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCurrency", mock.Anything, mock.Anything)
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_UsageCheckFailure() {
	ctx := context.Background()
	four := int32(4)
	req := dto.CreateCurrencyRequest{CurrencyCode: "PTS", Symbol: "P", Name: "Points", Precision: &four}
	suite.mockRepo.On("IsCurrencyInUse", ctx, "PTS").Return(false, errors.New("db down")).Once()

	currency, err := suite.service.CreateCurrency(ctx, req, "user-1")

	suite.Nil(currency)
	suite.Error(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCurrency", mock.Anything, mock.Anything)
}

func (suite *CurrencyServiceTestSuite) TestGetCurrencyByCode_Normalizes() {
	ctx := context.Background()
	expected := &domain.Currency{CurrencyCode: "EUR", Symbol: "€", Name: "Euro", Precision: 2}
	suite.mockRepo.On("FindCurrencyByCode", ctx, "EUR").Return(expected, nil).Once()

	currency, err := suite.service.GetCurrencyByCode(ctx, "eur")

	suite.Require().NoError(err)
	suite.Equal(expected, currency)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestGetCurrencyByCode_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindCurrencyByCode", ctx, "XYZ").Return(nil, apperrors.ErrNotFound).Once()

	currency, err := suite.service.GetCurrencyByCode(ctx, "XYZ")

	suite.Nil(currency)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CurrencyServiceTestSuite) TestListCurrencies_EmptyIsNotNil() {
	ctx := context.Background()
	suite.mockRepo.On("ListCurrencies", ctx).Return(nil, nil).Once()

	currencies, err := suite.service.ListCurrencies(ctx)

	suite.Require().NoError(err)
	suite.NotNil(currencies)
	suite.Empty(currencies)
}

func (suite *CurrencyServiceTestSuite) TestPrecisionLookup() {
	ctx := context.Background()
	custom := append(seededCurrencies(), domain.Currency{CurrencyCode: "PTS", Precision: 4})
	suite.mockRepo.On("ListCurrencies", ctx).Return(custom, nil).Once()

	precision, err := suite.service.PrecisionLookup(ctx)

	suite.Require().NoError(err)
	suite.Equal(int32(4), precision("pts"))
	suite.Equal(int32(0), precision("JPY"))
	suite.Equal(int32(3), precision("BHD"))
	suite.Equal(int32(2), precision("ZZZ"))
}

func (suite *CurrencyServiceTestSuite) TestPrecisionLookup_RepoError() {
	ctx := context.Background()
	suite.mockRepo.On("ListCurrencies", ctx).Return(nil, errors.New("db down")).Once()

	precision, err := suite.service.PrecisionLookup(ctx)

	suite.Nil(precision)
	suite.Error(err)
}

func TestCurrencyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CurrencyServiceTestSuite))
}
