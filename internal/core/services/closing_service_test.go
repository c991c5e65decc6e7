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

// --- Mock ClosingRepository ---
type MockClosingRepository struct {
	mock.Mock
}

var _ portsrepo.ClosingRepository = (*MockClosingRepository)(nil)

func (m *MockClosingRepository) CloseFiscalPeriod(ctx context.Context, periodID string, retainedEarningsCode string, closedBy string, now time.Time) (*domain.ClosingRecord, error) {
	args := m.Called(ctx, periodID, retainedEarningsCode, closedBy, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClosingRecord), args.Error(1)
}

func (m *MockClosingRepository) ListClosings(ctx context.Context) ([]domain.ClosingRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClosingRecord), args.Error(1)
}

func (m *MockClosingRepository) PreviewClosing(ctx context.Context) (*portsrepo.ClosingPreview, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portsrepo.ClosingPreview), args.Error(1)
}

// --- Test Suite Setup ---
type ClosingServiceTestSuite struct {
	suite.Suite
	mockPeriodRepo  *MockPeriodRepository
	mockClosingRepo *MockClosingRepository
	service         portssvc.ClosingSvcFacade
	userID          string
	openPeriod      domain.FiscalPeriod
}

const testRetainedEarningsCode = "3201"

func (suite *ClosingServiceTestSuite) SetupTest() {
	suite.mockPeriodRepo = new(MockPeriodRepository)
	suite.mockClosingRepo = new(MockClosingRepository)
	suite.service = services.NewClosingService(suite.mockPeriodRepo, suite.mockClosingRepo, testRetainedEarningsCode)

	suite.userID = uuid.NewString()
	suite.openPeriod = domain.FiscalPeriod{
		PeriodID:  uuid.NewString(),
		Name:      "FY2025-Q1",
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		Status:    domain.PeriodOpen,
	}
}

// --- Test Cases ---

func (suite *ClosingServiceTestSuite) TestCreatePeriod_Success() {
	ctx := context.Background()
	req := dto.CreatePeriodRequest{
		Name:      "FY2025-Q2",
		StartDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	}

	suite.mockPeriodRepo.On("SavePeriod", ctx, mock.AnythingOfType("domain.FiscalPeriod")).
		Run(func(args mock.Arguments) {
			period := args.Get(1).(domain.FiscalPeriod)
			suite.Equal(domain.PeriodOpen, period.Status)
			suite.Equal(req.Name, period.Name)
			suite.Equal(suite.userID, period.CreatedBy)
		}).
		Return(nil).Once()

	period, err := suite.service.CreatePeriod(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(period)
	suite.Equal(domain.PeriodOpen, period.Status)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *ClosingServiceTestSuite) TestCreatePeriod_EndBeforeStart() {
	ctx := context.Background()
	req := dto.CreatePeriodRequest{
		Name:      "Backwards",
		StartDate: time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	}

	period, err := suite.service.CreatePeriod(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(period)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "SavePeriod")
}

func (suite *ClosingServiceTestSuite) TestCreatePeriod_Overlap() {
	ctx := context.Background()
	req := dto.CreatePeriodRequest{
		Name:      "FY2025-Q1-dup",
		StartDate: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
	}

	suite.mockPeriodRepo.On("SavePeriod", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	period, err := suite.service.CreatePeriod(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(period)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *ClosingServiceTestSuite) TestClosePeriod_Success() {
	ctx := context.Background()

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.openPeriod.PeriodID).Return(&suite.openPeriod, nil).Once()

	record := &domain.ClosingRecord{
		ClosingID:   uuid.NewString(),
		Code:        "PC-2025-03-31",
		PeriodID:    suite.openPeriod.PeriodID,
		EntryID:     uuid.NewString(),
		TotalDebit:  decimal.NewFromInt(500),
		TotalCredit: decimal.NewFromInt(500),
		NetResult:   decimal.NewFromInt(120),
	}
	suite.mockClosingRepo.On("CloseFiscalPeriod", ctx, suite.openPeriod.PeriodID, testRetainedEarningsCode, suite.userID, mock.AnythingOfType("time.Time")).
		Return(record, nil).Once()

	got, err := suite.service.ClosePeriod(ctx, suite.openPeriod.PeriodID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("PC-2025-03-31", got.Code)
	suite.True(got.NetResult.Equal(decimal.NewFromInt(120)))
	suite.mockPeriodRepo.AssertExpectations(suite.T())
	suite.mockClosingRepo.AssertExpectations(suite.T())
}

func (suite *ClosingServiceTestSuite) TestClosePeriod_AlreadyClosed() {
	ctx := context.Background()
	closed := suite.openPeriod
	closed.Status = domain.PeriodClosed

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, closed.PeriodID).Return(&closed, nil).Once()

	got, err := suite.service.ClosePeriod(ctx, closed.PeriodID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrAlreadyClosed)
	suite.mockClosingRepo.AssertNotCalled(suite.T(), "CloseFiscalPeriod")
}

func (suite *ClosingServiceTestSuite) TestClosePeriod_NotFound() {
	ctx := context.Background()
	periodID := uuid.NewString()

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, periodID).Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.ClosePeriod(ctx, periodID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ClosingServiceTestSuite) TestClosePeriod_RepoRejectsSecondClose() {
	// The repository re-checks under its own lock; a concurrent close that
	// got there first surfaces as ErrAlreadyClosed even when the service's
	// read saw the period open.
	ctx := context.Background()

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.openPeriod.PeriodID).Return(&suite.openPeriod, nil).Once()
	suite.mockClosingRepo.On("CloseFiscalPeriod", ctx, suite.openPeriod.PeriodID, testRetainedEarningsCode, suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrAlreadyClosed).Once()

	got, err := suite.service.ClosePeriod(ctx, suite.openPeriod.PeriodID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrAlreadyClosed)
}

func (suite *ClosingServiceTestSuite) TestPreviewClosing() {
	ctx := context.Background()

	preview := &portsrepo.ClosingPreview{
		TotalRevenue:   decimal.NewFromInt(800),
		TotalExpense:   decimal.NewFromInt(650),
		NetResult:      decimal.NewFromInt(150),
		ResultAccounts: 4,
	}
	suite.mockClosingRepo.On("PreviewClosing", ctx).Return(preview, nil).Once()

	got, err := suite.service.PreviewClosing(ctx)

	suite.Require().NoError(err)
	suite.True(got.NetResult.Equal(decimal.NewFromInt(150)))
	suite.Equal(4, got.ResultAccounts)
}

func (suite *ClosingServiceTestSuite) TestListClosings_Empty() {
	ctx := context.Background()

	suite.mockClosingRepo.On("ListClosings", ctx).Return([]domain.ClosingRecord{}, nil).Once()

	records, err := suite.service.ListClosings(ctx)

	suite.Require().NoError(err)
	suite.Empty(records)
}

func TestClosingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ClosingServiceTestSuite))
}
