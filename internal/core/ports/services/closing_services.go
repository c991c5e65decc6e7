package services

import (
	"context"

	"github.com/corebooks/ledger_backend/internal/core/domain"
	"github.com/corebooks/ledger_backend/internal/dto"
)

// ClosingSvcFacade is the fiscal closing engine surface plus the read side of
// closing history.
type ClosingSvcFacade interface {
	CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, creatorUserID string) (*domain.FiscalPeriod, error)
	ListPeriods(ctx context.Context) ([]domain.FiscalPeriod, error)

	// ClosePeriod runs the period-end orchestration; exactly-once per period.
	ClosePeriod(ctx context.Context, periodID string, closedBy string) (*domain.ClosingRecord, error)

	PreviewClosing(ctx context.Context) (*dto.ClosingPreviewResponse, error)

	// ListClosings serves the closing history, newest first. An empty slice,
	// not an error, when no period has ever been closed.
	ListClosings(ctx context.Context) ([]domain.ClosingRecord, error)
}
