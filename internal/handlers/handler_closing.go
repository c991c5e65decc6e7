package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/corebooks/ledger_backend/internal/apperrors"
	portssvc "github.com/corebooks/ledger_backend/internal/core/ports/services"
	"github.com/corebooks/ledger_backend/internal/dto"
	"github.com/corebooks/ledger_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// closingHandler handles HTTP requests for fiscal periods and closings.
type closingHandler struct {
	closingService portssvc.ClosingSvcFacade
}

// newClosingHandler creates a new closingHandler.
func newClosingHandler(cs portssvc.ClosingSvcFacade) *closingHandler {
	return &closingHandler{
		closingService: cs,
	}
}

// registerClosingRoutes registers routes related to fiscal periods and the
// closing history.
func registerClosingRoutes(rg *gin.RouterGroup, closingService portssvc.ClosingSvcFacade) {
	h := newClosingHandler(closingService)

	periods := rg.Group("/periods")
	{
		periods.POST("", h.createPeriod)
		periods.GET("", h.listPeriods)
		periods.POST("/:id/close", h.closePeriod)
	}

	closings := rg.Group("/closings")
	{
		closings.GET("", h.listClosings)
		closings.GET("/preview", h.previewClosing)
	}
}

func (h *closingHandler) createPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))
	logger.Info("Received request to create fiscal period", slog.String("period_name", req.Name))

	period, err := h.closingService.CreatePeriod(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating period", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Overlapping fiscal period", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create period in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create fiscal period"})
		}
		return
	}

	logger.Info("Fiscal period created", slog.String("period_id", period.PeriodID))
	c.JSON(http.StatusCreated, dto.ToPeriodResponse(period))
}

func (h *closingHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	periods, err := h.closingService.ListPeriods(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list periods from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list fiscal periods"})
		return
	}

	responses := make([]dto.PeriodResponse, len(periods))
	for i := range periods {
		responses[i] = dto.ToPeriodResponse(&periods[i])
	}
	c.JSON(http.StatusOK, gin.H{"periods": responses})
}

// closePeriod runs the period-end orchestration. The operation is atomic and
// exactly-once; a second attempt on the same period returns 409.
func (h *closingHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("period_id", periodID), slog.String("user_id", userID))
	logger.Info("Received request to close fiscal period")

	record, err := h.closingService.ClosePeriod(c.Request.Context(), periodID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrAlreadyClosed) {
			logger.Warn("Period already closed")
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrInvalidState) {
			logger.Warn("Period not closable", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Closing failed validation", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Closing lost a concurrent race, client may retry", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to close period in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close fiscal period"})
		}
		return
	}

	logger.Info("Fiscal period closed", slog.String("closing_code", record.Code), slog.String("net_result", record.NetResult.String()))
	c.JSON(http.StatusOK, dto.ToClosingRecordResponse(record))
}

func (h *closingHandler) listClosings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	records, err := h.closingService.ListClosings(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list closings from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list closings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"closings": dto.ToClosingRecordResponses(records)})
}

func (h *closingHandler) previewClosing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	preview, err := h.closingService.PreviewClosing(c.Request.Context())
	if err != nil {
		logger.Error("Failed to preview closing", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to preview closing"})
		return
	}

	c.JSON(http.StatusOK, preview)
}
