package http

import (
	"net/http"

	"trading-journal/internal/journal/dto"
	"trading-journal/internal/journal/service"
	"trading-journal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// TradeHandler handles HTTP requests for trade records.
type TradeHandler struct {
	journalService service.JournalService
	logger         *logger.Logger
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(journalService service.JournalService, logger *logger.Logger) *TradeHandler {
	return &TradeHandler{journalService: journalService, logger: logger}
}

// RegisterRoutes registers the trade routes to the Echo group.
func (h *TradeHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateTrade)
	g.GET("", h.ListTrades)
	g.GET("/:id", h.GetTrade)
	g.PUT("/:id", h.UpdateTrade)
	g.DELETE("/:id", h.DeleteTrade)
}

// CreateTrade godoc
// @Summary Record a trade
// @Description Record a trade. Empty fee legs are computed from the fee schedule.
// @Tags trades
// @Accept  json
// @Produce  json
// @Param   trade  body    dto.TradeRequest   true    "Trade to record"
// @Success 201 {object} dto.SaveResult
// @Success 202 {object} dto.SaveResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /trades [post]
func (h *TradeHandler) CreateTrade(c echo.Context) error {
	var req dto.TradeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	out, err := h.journalService.AddTrade(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return writeSaveResult(c, out)
}

// ListTrades godoc
// @Summary List trades
// @Description List trades, optionally filtered by entry date range and symbol
// @Tags trades
// @Produce  json
// @Param   from    query   string  false   "Entry date from (YYYY-MM-DD)"
// @Param   to      query   string  false   "Entry date to (YYYY-MM-DD)"
// @Param   symbol  query   string  false   "Stock symbol"
// @Success 200 {array} entity.TradeRecord
// @Failure 400 {object} dto.ErrorResponse
// @Router /trades [get]
func (h *TradeHandler) ListTrades(c echo.Context) error {
	var filter dto.TradeFilter
	if err := c.Bind(&filter); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid query parameters"})
	}
	return c.JSON(http.StatusOK, h.journalService.ListTrades(c.Request().Context(), filter))
}

// GetTrade godoc
// @Summary Get a trade by ID
// @Tags trades
// @Produce  json
// @Param   id  path    string true    "Trade ID"
// @Success 200 {object} entity.TradeRecord
// @Failure 404 {object} dto.ErrorResponse
// @Router /trades/{id} [get]
func (h *TradeHandler) GetTrade(c echo.Context) error {
	record, err := h.journalService.GetTrade(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, record)
}

// UpdateTrade godoc
// @Summary Edit a trade
// @Description Edit a trade and overwrite the remote log. Requires connectivity.
// @Tags trades
// @Accept  json
// @Produce  json
// @Param   id  path    string true    "Trade ID"
// @Param   trade  body    dto.TradeRequest   true    "Trade fields"
// @Success 200 {object} entity.TradeRecord
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /trades/{id} [put]
func (h *TradeHandler) UpdateTrade(c echo.Context) error {
	var req dto.TradeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	record, err := h.journalService.EditTrade(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, record)
}

// DeleteTrade godoc
// @Summary Delete a trade
// @Description Delete a trade and overwrite the remote log. Requires connectivity.
// @Tags trades
// @Param   id  path    string true    "Trade ID"
// @Success 204 {object} nil
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /trades/{id} [delete]
func (h *TradeHandler) DeleteTrade(c echo.Context) error {
	if err := h.journalService.DeleteTrade(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
