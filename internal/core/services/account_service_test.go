package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/apperrors"
	"github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/core/domain"
	portssvc "github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/core/ports/services"
	"github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/core/services"
	"github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/dto"
)

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		AccountID: "reseller-7",
		Name:      "North Region Reseller",
		Role:      domain.RoleReseller,
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	created, err := suite.service.CreateAccount(ctx, req, "admin-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal(req.AccountID, created.AccountID)
	suite.Equal(req.Name, created.Name)
	suite.Equal(domain.RoleReseller, created.Role)
	suite.True(created.Balance.IsZero(), "new accounts start with a zero balance")
	suite.Equal("admin-1", created.CreatedBy)
	suite.Equal("admin-1", created.LastUpdatedBy)
	suite.WithinDuration(time.Now(), created.CreatedAt, time.Second)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidRole() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		AccountID: "acc-1",
		Name:      "Bad Role",
		Role:      domain.Role("AUDITOR"),
	}

	created, err := suite.service.CreateAccount(ctx, req, "admin-1")

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(created)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount")
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Duplicate() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		AccountID: "acc-1",
		Name:      "Existing",
		Role:      domain.RoleUser,
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(fmt.Errorf("%w: account acc-1", apperrors.ErrDuplicate)).Once()

	created, err := suite.service.CreateAccount(ctx, req, "admin-1")

	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(created)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_Success() {
	ctx := context.Background()
	expected := &domain.Account{
		AccountID: "user-1",
		Name:      "Some User",
		Role:      domain.RoleUser,
		Balance:   decimal.NewFromInt(42),
	}

	suite.mockRepo.On("FindAccountByID", ctx, "user-1").Return(expected, nil).Once()

	account, err := suite.service.GetAccountByID(ctx, "user-1")

	suite.Require().NoError(err)
	suite.Equal(expected, account)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindAccountByID", ctx, "ghost").
		Return(nil, fmt.Errorf("%w: account ghost", apperrors.ErrNotFound)).Once()

	account, err := suite.service.GetAccountByID(ctx, "ghost")

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(account)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_EmptyID() {
	account, err := suite.service.GetAccountByID(context.Background(), "")

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(account)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindAccountByID")
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
