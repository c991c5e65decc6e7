package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/corebooks/ledger_backend/internal/apperrors"
	"github.com/corebooks/ledger_backend/internal/core/domain"
	portsrepo "github.com/corebooks/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/corebooks/ledger_backend/internal/core/ports/services"
	"github.com/corebooks/ledger_backend/internal/core/services"
	"github.com/corebooks/ledger_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepository = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) CreateEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine, autoPost bool) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entry, lines, autoPost)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, filter portsrepo.ListEntriesFilter) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var nextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		nextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), nextToken, args.Error(2)
}

func (m *MockJournalRepository) PostEntry(ctx context.Context, entryID string, postedBy string, now time.Time) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, postedBy, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) VoidEntry(ctx context.Context, entryID string, voidedBy string, now time.Time) error {
	args := m.Called(ctx, entryID, voidedBy, now)
	return args.Error(0)
}

// --- Mock AccountSvcFacade (as used by JournalService) ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) RefreshBalances(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// --- Test Suite Setup ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo  *MockJournalRepository
	mockAccountSvc   *MockAccountService
	service          portssvc.JournalSvcFacade
	cashAccount      domain.Account
	revenueAccount   domain.Account
	expenseAccount   domain.Account
	inactiveAccount  domain.Account
	userID           string
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountSvc)

	suite.userID = uuid.NewString()

	suite.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "1101",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.revenueAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "4101",
		AccountType: domain.Revenue,
		IsActive:    true,
	}
	suite.expenseAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "5101",
		AccountType: domain.Expense,
		IsActive:    true,
	}
	suite.inactiveAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "1199",
		AccountType: domain.Asset,
		IsActive:    false,
	}
}

func (suite *JournalServiceTestSuite) balancedRequest() dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		EntryDate:   time.Now(),
		Description: "Cash sale",
		Lines: []dto.CreateEntryLineRequest{
			{AccountID: suite.cashAccount.AccountID, DebitAmount: decimal.NewFromInt(100)},
			{AccountID: suite.revenueAccount.AccountID, CreditAmount: decimal.NewFromInt(100)},
		},
	}
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	req := suite.balancedRequest()

	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID:    suite.cashAccount,
		suite.revenueAccount.AccountID: suite.revenueAccount,
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, []string{suite.cashAccount.AccountID, suite.revenueAccount.AccountID}).Return(accountsMap, nil).Once()

	suite.mockJournalRepo.On("CreateEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine"), false).
		Run(func(args mock.Arguments) {
			entry := args.Get(1).(domain.JournalEntry)
			suite.Equal(domain.Draft, entry.Status)
			suite.Equal(domain.SourceManual, entry.SourceType)
			suite.True(entry.TotalDebit.Equal(decimal.NewFromInt(100)))
			suite.True(entry.TotalCredit.Equal(decimal.NewFromInt(100)))
			suite.Equal(suite.userID, entry.CreatedBy)
		}).
		Return(&domain.JournalEntry{EntryID: uuid.NewString(), EntryNumber: "JE-000001", Status: domain.Draft}, nil).Once()

	created, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal("JE-000001", created.EntryNumber)

	suite.mockAccountSvc.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_AutoPostPassedThrough() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.AutoPost = true

	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID:    suite.cashAccount,
		suite.revenueAccount.AccountID: suite.revenueAccount,
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, mock.Anything).Return(accountsMap, nil).Once()
	suite.mockJournalRepo.On("CreateEntry", ctx, mock.Anything, mock.Anything, true).
		Return(&domain.JournalEntry{EntryID: uuid.NewString(), Status: domain.Posted}, nil).Once()

	created, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, created.Status)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Unbalanced() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[1].CreditAmount = decimal.NewFromInt(90)

	created, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "does not balance")
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "CreateEntry")
}

func (suite *JournalServiceTestSuite) TestCreateEntry_BothSidesOnOneLine() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[0].CreditAmount = decimal.NewFromInt(100)

	created, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_SingleLine() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines = req.Lines[:1]

	created, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_SingleAccount() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		EntryDate:   time.Now(),
		Description: "Self transfer",
		Lines: []dto.CreateEntryLineRequest{
			{AccountID: suite.cashAccount.AccountID, DebitAmount: decimal.NewFromInt(50)},
			{AccountID: suite.cashAccount.AccountID, CreditAmount: decimal.NewFromInt(50)},
		},
	}

	created, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "at least two different accounts")
}

func (suite *JournalServiceTestSuite) TestCreateEntry_MissingDescription() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Description = ""

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_ClosingSourceRejected() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.SourceType = domain.SourceClosing

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "CreateEntry")
}

func (suite *JournalServiceTestSuite) TestCreateEntry_UnknownAccount() {
	ctx := context.Background()
	req := suite.balancedRequest()

	// Only one of the two referenced accounts exists.
	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID: suite.cashAccount,
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, mock.Anything).Return(accountsMap, nil).Once()

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "account not found")
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "CreateEntry")
}

func (suite *JournalServiceTestSuite) TestCreateEntry_InactiveAccount() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[0].AccountID = suite.inactiveAccount.AccountID

	accountsMap := map[string]domain.Account{
		suite.inactiveAccount.AccountID: suite.inactiveAccount,
		suite.revenueAccount.AccountID:  suite.revenueAccount,
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, mock.Anything).Return(accountsMap, nil).Once()

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "archived")
}

func (suite *JournalServiceTestSuite) TestGetEntryByID_PopulatesLines() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := &domain.JournalEntry{EntryID: entryID, Status: domain.Posted}
	lines := []domain.JournalLine{
		{LineID: uuid.NewString(), EntryID: entryID, LineNumber: 1, DebitAmount: decimal.NewFromInt(10)},
		{LineID: uuid.NewString(), EntryID: entryID, LineNumber: 2, CreditAmount: decimal.NewFromInt(10)},
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(lines, nil).Once()

	got, err := suite.service.GetEntryByID(ctx, entryID)

	suite.Require().NoError(err)
	suite.Len(got.Lines, 2)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestGetEntryByID_NotFound() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.GetEntryByID(ctx, entryID)

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestListEntries_FilterMapping() {
	ctx := context.Background()
	dateFrom := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	params := dto.ListEntriesParams{
		DateFrom: &dateFrom,
		Status:   "POSTED",
		Limit:    10,
	}

	expectedStatus := domain.Posted
	expectedFilter := portsrepo.ListEntriesFilter{
		DateFrom: &dateFrom,
		Status:   &expectedStatus,
		Limit:    10,
	}

	entries := []domain.JournalEntry{{EntryID: uuid.NewString(), Status: domain.Posted}}
	suite.mockJournalRepo.On("ListEntries", ctx, expectedFilter).Return(entries, "token-abc", nil).Once()

	page, err := suite.service.ListEntries(ctx, params)

	suite.Require().NoError(err)
	suite.Len(page.Entries, 1)
	suite.Require().NotNil(page.NextToken)
	suite.Equal("token-abc", *page.NextToken)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestListEntries_UnknownStatus() {
	ctx := context.Background()
	params := dto.ListEntriesParams{Status: "PENDING"}

	page, err := suite.service.ListEntries(ctx, params)

	suite.Require().Error(err)
	suite.Nil(page)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "ListEntries")
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
