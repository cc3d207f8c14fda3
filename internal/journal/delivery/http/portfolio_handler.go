package http

import (
	"net/http"

	"trading-journal/internal/journal/dto"
	"trading-journal/internal/journal/service"
	"trading-journal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PortfolioHandler handles HTTP requests for the portfolio summary and cash flows.
type PortfolioHandler struct {
	portfolioService service.PortfolioService
	syncService      service.SyncService
	logger           *logger.Logger
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioService service.PortfolioService, syncService service.SyncService, logger *logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService, syncService: syncService, logger: logger}
}

// RegisterRoutes registers the portfolio routes to the Echo group.
func (h *PortfolioHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/summary", h.GetSummary)
	g.GET("/transactions", h.ListTransactions)
	g.POST("/transactions", h.CreateTransaction)
	g.DELETE("/transactions/:id", h.DeleteTransaction)
	g.POST("/sync", h.Sync)
}

// GetSummary godoc
// @Summary Portfolio summary
// @Tags portfolio
// @Produce  json
// @Success 200 {object} dto.PortfolioResponse
// @Router /portfolio/summary [get]
func (h *PortfolioHandler) GetSummary(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.PortfolioResponse{
		Summary:      h.portfolioService.Summary(),
		Transactions: h.portfolioService.Transactions(),
	})
}

// ListTransactions godoc
// @Summary List cash flows
// @Tags portfolio
// @Produce  json
// @Success 200 {array} entity.PortfolioTransaction
// @Router /portfolio/transactions [get]
func (h *PortfolioHandler) ListTransactions(c echo.Context) error {
	return c.JSON(http.StatusOK, h.portfolioService.Transactions())
}

// CreateTransaction godoc
// @Summary Record a top-up or withdrawal
// @Tags portfolio
// @Accept  json
// @Produce  json
// @Param   transaction  body    dto.PortfolioTransactionRequest   true    "Cash flow"
// @Success 201 {object} entity.PortfolioTransaction
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /portfolio/transactions [post]
func (h *PortfolioHandler) CreateTransaction(c echo.Context) error {
	var req dto.PortfolioTransactionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	tx, err := h.portfolioService.AddTransaction(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, tx)
}

// DeleteTransaction godoc
// @Summary Delete a cash flow
// @Tags portfolio
// @Param   id  path    string true    "Transaction ID"
// @Success 204 {object} nil
// @Failure 404 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /portfolio/transactions/{id} [delete]
func (h *PortfolioHandler) DeleteTransaction(c echo.Context) error {
	if err := h.portfolioService.DeleteTransaction(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Sync godoc
// @Summary Push the portfolio summary
// @Description Recompute the summary from the transaction log and push it regardless of the change threshold
// @Tags portfolio
// @Produce  json
// @Success 200 {object} dto.PortfolioResponse
// @Success 202 {object} dto.PortfolioResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /portfolio/sync [post]
func (h *PortfolioHandler) Sync(c echo.Context) error {
	ctx := c.Request().Context()
	summary := h.portfolioService.Recompute(ctx, h.syncService.Records())

	queued, err := h.portfolioService.SaveSummary(ctx, summary)
	if err != nil {
		return writeError(c, err)
	}
	resp := dto.PortfolioResponse{Summary: summary, Transactions: h.portfolioService.Transactions()}
	if queued {
		return c.JSON(http.StatusAccepted, resp)
	}
	return c.JSON(http.StatusOK, resp)
}
