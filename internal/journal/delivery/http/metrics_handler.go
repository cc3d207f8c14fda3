package http

import (
	"net/http"

	"trading-journal/internal/journal/dto"
	"trading-journal/internal/journal/service"
	"trading-journal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// MetricsHandler serves trading statistics.
type MetricsHandler struct {
	metricsService service.MetricsService
	journalService service.JournalService
	logger         *logger.Logger
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(metricsService service.MetricsService, journalService service.JournalService, logger *logger.Logger) *MetricsHandler {
	return &MetricsHandler{metricsService: metricsService, journalService: journalService, logger: logger}
}

// RegisterRoutes registers the metrics routes to the Echo group.
func (h *MetricsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetMetrics)
}

// GetMetrics godoc
// @Summary Trading metrics
// @Description Headline metrics plus per-symbol and per-method performance. from/to take precedence over range.
// @Tags metrics
// @Produce  json
// @Param   range   query   string  false   "7days, 30days, thismonth, lastmonth, thisyear or all"
// @Param   from    query   string  false   "Entry date from (YYYY-MM-DD)"
// @Param   to      query   string  false   "Entry date to (YYYY-MM-DD)"
// @Success 200 {object} dto.MetricsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /metrics [get]
func (h *MetricsHandler) GetMetrics(c echo.Context) error {
	var query dto.MetricsQuery
	if err := c.Bind(&query); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid query parameters"})
	}

	ctx := c.Request().Context()
	records := h.journalService.ListTrades(ctx, dto.TradeFilter{})
	resp, err := h.metricsService.Compute(ctx, records, query)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}
