package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/splitbalance/internal/apperrors"
	"github.com/SscSPs/splitbalance/internal/core/domain"
	"github.com/SscSPs/splitbalance/internal/core/services"
	"github.com/SscSPs/splitbalance/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SettlementServiceTestSuite struct {
	suite.Suite
	mockGroupRepo   *MockGroupRepository
	mockExpenseRepo *MockExpenseRepository
	publisher       *recordingPublisher
	service         *services.SettlementService
	ctx             context.Context
}

func (suite *SettlementServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.mockGroupRepo = new(MockGroupRepository)
	suite.mockExpenseRepo = new(MockExpenseRepository)
	currencyRepo := new(MockCurrencyRepository)
	suite.publisher = &recordingPublisher{}
	suite.service = services.NewSettlementService(
		suite.mockExpenseRepo,
		services.NewGroupService(suite.mockGroupRepo),
		services.NewCurrencyService(currencyRepo),
		suite.publisher,
		nil,
	)

	suite.mockGroupRepo.On("FindGroupByID", suite.ctx, "group-1").Return(testGroup("alice", "bob"), nil).Maybe()
	currencyRepo.On("ListCurrencies", suite.ctx).Return(seededCurrencies(), nil).Maybe()
}

func (suite *SettlementServiceTestSuite) TestRecordSettlement_StoredAsExpense() {
	req := dto.RecordSettlementRequest{ToID: "alice", Amount: decimal.RequireFromString("30"), CurrencyCode: "usd"}

	suite.mockExpenseRepo.On("SaveExpense", suite.ctx, mock.MatchedBy(func(e domain.Expense) bool {
		return e.IsSettlement && e.PayerID == "bob" && e.Total == domain.NewMoney(3000, "USD") &&
			len(e.Lines) == 1 && e.Lines[0].ParticipantID == "alice" && e.Lines[0].Amount == 3000
	})).Return(nil).Once()

	settlement, err := suite.service.RecordSettlement(suite.ctx, "group-1", req, "bob")

	suite.Require().NoError(err)
	suite.Equal("bob", settlement.FromID)
	suite.Equal("alice", settlement.ToID)
	suite.False(settlement.SettledAt.IsZero())
	suite.mockExpenseRepo.AssertExpectations(suite.T())

	published := suite.publisher.published()
	suite.Require().Len(published, 1)
	suite.True(published[0].IsSettlement)
	suite.Equal(settlement.SettlementID, published[0].ExpenseID)
}

func (suite *SettlementServiceTestSuite) TestRecordSettlement_Rejections() {
	tests := []struct {
		name    string
		req     dto.RecordSettlementRequest
		wantErr error
	}{
		{"to self", dto.RecordSettlementRequest{ToID: "bob", Amount: decimal.NewFromInt(5), CurrencyCode: "USD"}, apperrors.ErrValidation},
		{"payee outside group", dto.RecordSettlementRequest{ToID: "mallory", Amount: decimal.NewFromInt(5), CurrencyCode: "USD"}, apperrors.ErrValidation},
		{"payer outside group", dto.RecordSettlementRequest{FromID: "mallory", ToID: "alice", Amount: decimal.NewFromInt(5), CurrencyCode: "USD"}, apperrors.ErrValidation},
		{"zero amount", dto.RecordSettlementRequest{ToID: "alice", Amount: decimal.Zero, CurrencyCode: "USD"}, apperrors.ErrInvalidAmount},
		{"negative amount", dto.RecordSettlementRequest{ToID: "alice", Amount: decimal.NewFromInt(-5), CurrencyCode: "USD"}, apperrors.ErrInvalidAmount},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			settlement, err := suite.service.RecordSettlement(suite.ctx, "group-1", tt.req, "bob")
			suite.Nil(settlement)
			suite.ErrorIs(err, tt.wantErr)
		})
	}
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SaveExpense", mock.Anything, mock.Anything)
}

func TestSettlementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SettlementServiceTestSuite))
}
