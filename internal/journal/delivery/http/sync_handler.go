package http

import (
	"errors"
	"net/http"
	"time"

	"trading-journal/internal/journal/dto"
	"trading-journal/internal/journal/service"
	"trading-journal/pkg/apperror"
	"trading-journal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SyncHandler exposes the sync engine state and manual drains.
type SyncHandler struct {
	syncService      service.SyncService
	portfolioService service.PortfolioService
	logger           *logger.Logger
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(syncService service.SyncService, portfolioService service.PortfolioService, logger *logger.Logger) *SyncHandler {
	return &SyncHandler{syncService: syncService, portfolioService: portfolioService, logger: logger}
}

// RegisterRoutes registers the sync routes to the Echo group.
func (h *SyncHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/status", h.GetStatus)
	g.POST("", h.Sync)
}

// GetStatus godoc
// @Summary Sync status
// @Description Connectivity, sync state and pending queue sizes
// @Tags sync
// @Produce  json
// @Success 200 {object} dto.SyncStatusResponse
// @Router /sync/status [get]
func (h *SyncHandler) GetStatus(c echo.Context) error {
	ctx := c.Request().Context()
	status := h.syncService.Status(ctx)

	resp := dto.SyncStatusResponse{
		State:                 string(status.State),
		Online:                status.Online,
		PendingTrades:         status.PendingCount,
		PendingPortfolio:      h.portfolioService.PendingCount(ctx),
		LastError:             status.LastError,
		TransactionLogRecords: status.LogSize,
	}
	if status.LastSyncAttempt != nil {
		resp.LastSyncAttempt = status.LastSyncAttempt.Format(time.RFC3339)
	}
	return c.JSON(http.StatusOK, resp)
}

// Sync godoc
// @Summary Drain pending queues
// @Description Push queued trades and the latest queued portfolio summary
// @Tags sync
// @Produce  json
// @Success 200 {object} dto.SyncResponse
// @Failure 502 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /sync [post]
func (h *SyncHandler) Sync(c echo.Context) error {
	ctx := c.Request().Context()

	synced, err := h.syncService.ProcessPendingSync(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Manual sync failed", logger.ErrorField(err))
		return writeError(c, err)
	}

	portfolioSynced, err := h.portfolioService.ProcessPendingPortfolioSync(ctx)
	if err != nil && !errors.Is(err, apperror.ErrOffline) {
		h.logger.ErrorContext(ctx, "Manual portfolio sync failed", logger.ErrorField(err))
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, dto.SyncResponse{TradesSynced: synced, PortfolioSynced: portfolioSynced})
}
