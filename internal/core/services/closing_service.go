package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/corebooks/ledger_backend/internal/apperrors"
	"github.com/corebooks/ledger_backend/internal/core/domain"
	portsrepo "github.com/corebooks/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/corebooks/ledger_backend/internal/core/ports/services"
	"github.com/corebooks/ledger_backend/internal/dto"
	"github.com/corebooks/ledger_backend/internal/middleware"
)

var (
	ErrPeriodRange   = errors.New("period end date must not be before its start date")
	ErrPeriodOverlap = errors.New("period overlaps an existing fiscal period")
)

// closingService orchestrates fiscal period setup and period-end closing,
// and serves the closing history.
type closingService struct {
	periodRepo           portsrepo.PeriodRepository
	closingRepo          portsrepo.ClosingRepository
	retainedEarningsCode string
}

// NewClosingService creates a new closing service. retainedEarningsCode names
// the equity account receiving each period's net result.
func NewClosingService(periodRepo portsrepo.PeriodRepository, closingRepo portsrepo.ClosingRepository, retainedEarningsCode string) portssvc.ClosingSvcFacade {
	return &closingService{
		periodRepo:           periodRepo,
		closingRepo:          closingRepo,
		retainedEarningsCode: retainedEarningsCode,
	}
}

var _ portssvc.ClosingSvcFacade = (*closingService)(nil)

// CreatePeriod sets up a new open fiscal period. The repository enforces that
// no two periods cover the same date.
func (s *closingService) CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, creatorUserID string) (*domain.FiscalPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrPeriodRange)
	}

	now := time.Now().UTC()
	period := domain.FiscalPeriod{
		PeriodID:  uuid.NewString(),
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    domain.PeriodOpen,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", err, ErrPeriodOverlap)
		}
		logger.Error("Failed to save fiscal period", slog.String("error", err.Error()), slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save fiscal period: %w", err)
	}

	logger.Info("Fiscal period created", slog.String("period_id", period.PeriodID), slog.String("name", period.Name))
	return &period, nil
}

// ListPeriods returns all fiscal periods, newest range first.
func (s *closingService) ListPeriods(ctx context.Context) ([]domain.FiscalPeriod, error) {
	periods, err := s.periodRepo.ListPeriods(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list fiscal periods: %w", err)
	}
	return periods, nil
}

// ClosePeriod runs the period-end orchestration: the repository locks the
// period (waiting out in-flight postings), zeroes result accounts through a
// synthesized closing entry, moves the net result into retained earnings,
// records the closing, and marks the period closed, all in one transaction.
// Closing the same period twice fails with apperrors.ErrAlreadyClosed on the
// second call and produces exactly one record.
func (s *closingService) ClosePeriod(ctx context.Context, periodID string, closedBy string) (*domain.ClosingRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Resolve first for a clean NotFound before taking any locks.
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to find fiscal period %s: %w", periodID, err)
	}
	if period.Status != domain.PeriodOpen {
		return nil, fmt.Errorf("%w: period %s is %s", apperrors.ErrAlreadyClosed, period.Name, period.Status)
	}

	now := time.Now().UTC()
	record, err := s.closingRepo.CloseFiscalPeriod(ctx, periodID, s.retainedEarningsCode, closedBy, now)
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyClosed) {
			logger.Warn("Close rejected, period not open", slog.String("period_id", periodID))
		} else {
			logger.Error("Period closing failed", slog.String("error", err.Error()), slog.String("period_id", periodID))
		}
		return nil, err
	}

	logger.Info("Fiscal period closed",
		slog.String("period_id", periodID),
		slog.String("closing_id", record.ClosingID),
		slog.String("net_result", record.NetResult.String()),
	)
	return record, nil
}

// PreviewClosing summarizes current revenue/expense balances without closing
// anything.
func (s *closingService) PreviewClosing(ctx context.Context) (*dto.ClosingPreviewResponse, error) {
	preview, err := s.closingRepo.PreviewClosing(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to preview closing: %w", err)
	}
	return &dto.ClosingPreviewResponse{
		TotalRevenue:   preview.TotalRevenue,
		TotalExpense:   preview.TotalExpense,
		NetResult:      preview.NetResult,
		ResultAccounts: preview.ResultAccounts,
	}, nil
}

// ListClosings serves closing history, newest first. Empty, not an error,
// when nothing has ever been closed.
func (s *closingService) ListClosings(ctx context.Context) ([]domain.ClosingRecord, error) {
	records, err := s.closingRepo.ListClosings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list closings: %w", err)
	}
	return records, nil
}
