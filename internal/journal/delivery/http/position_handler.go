package http

import (
	"net/http"
	"strings"

	"trading-journal/internal/entity"
	"trading-journal/internal/journal/dto"
	"trading-journal/internal/journal/service"
	"trading-journal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PositionHandler handles HTTP requests for multi-leg positions.
type PositionHandler struct {
	journalService service.JournalService
	logger         *logger.Logger
}

// NewPositionHandler creates a new PositionHandler.
func NewPositionHandler(journalService service.JournalService, logger *logger.Logger) *PositionHandler {
	return &PositionHandler{journalService: journalService, logger: logger}
}

// RegisterRoutes registers the position routes to the Echo group.
func (h *PositionHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListPositions)
	g.POST("", h.OpenPosition)
	g.GET("/:id", h.GetPosition)
	g.POST("/:id/entries", h.AddEntry)
	g.POST("/:id/exits", h.AddExit)
	g.POST("/:id/preview-exit", h.PreviewExit)
}

// ListPositions godoc
// @Summary List positions
// @Tags positions
// @Produce  json
// @Param   status  query   string  false   "open or closed"
// @Success 200 {array} entity.Position
// @Failure 400 {object} dto.ErrorResponse
// @Router /positions [get]
func (h *PositionHandler) ListPositions(c echo.Context) error {
	status := entity.PositionStatus(strings.ToLower(c.QueryParam("status")))
	switch status {
	case "", entity.PositionStatusOpen, entity.PositionStatusClosed:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be open or closed"})
	}
	return c.JSON(http.StatusOK, h.journalService.Positions(c.Request().Context(), status))
}

// GetPosition godoc
// @Summary Get a position by ID
// @Tags positions
// @Produce  json
// @Param   id  path    string true    "Position ID"
// @Success 200 {object} entity.Position
// @Failure 404 {object} dto.ErrorResponse
// @Router /positions/{id} [get]
func (h *PositionHandler) GetPosition(c echo.Context) error {
	p, err := h.journalService.GetPosition(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// OpenPosition godoc
// @Summary Open a position
// @Tags positions
// @Accept  json
// @Produce  json
// @Param   position  body    dto.OpenPositionRequest   true    "Initial entry"
// @Success 201 {object} dto.SaveResult
// @Success 202 {object} dto.SaveResult
// @Failure 400 {object} dto.ErrorResponse
// @Router /positions [post]
func (h *PositionHandler) OpenPosition(c echo.Context) error {
	var req dto.OpenPositionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	out, err := h.journalService.OpenPosition(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return writeSaveResult(c, out)
}

// AddEntry godoc
// @Summary Add to a position
// @Description Buy more lots into an open position and recompute its average price
// @Tags positions
// @Accept  json
// @Produce  json
// @Param   id  path    string true    "Position ID"
// @Param   entry  body    dto.AddToPositionRequest   true    "Additional entry"
// @Success 201 {object} dto.SaveResult
// @Success 202 {object} dto.SaveResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /positions/{id}/entries [post]
func (h *PositionHandler) AddEntry(c echo.Context) error {
	var req dto.AddToPositionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	out, err := h.journalService.AddToPosition(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return writeError(c, err)
	}
	return writeSaveResult(c, out)
}

// AddExit godoc
// @Summary Exit a position
// @Description exit_type "full" sells every remaining lot, "partial" sells lot lots
// @Tags positions
// @Accept  json
// @Produce  json
// @Param   id  path    string true    "Position ID"
// @Param   exit  body    dto.ExitPositionRequest   true    "Exit"
// @Success 201 {object} dto.SaveResult
// @Success 202 {object} dto.SaveResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /positions/{id}/exits [post]
func (h *PositionHandler) AddExit(c echo.Context) error {
	var req dto.ExitPositionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	ctx := c.Request().Context()
	var (
		out service.SaveOutcome
		err error
	)
	switch entity.ExitType(strings.ToLower(req.ExitType)) {
	case entity.ExitTypeFull, "":
		out, err = h.journalService.ClosePosition(ctx, c.Param("id"), req)
	case entity.ExitTypePartial:
		out, err = h.journalService.PartialExit(ctx, c.Param("id"), req)
	default:
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "exit_type must be full or partial", Field: "exit_type"})
	}
	if err != nil {
		return writeError(c, err)
	}
	return writeSaveResult(c, out)
}

// PreviewExit godoc
// @Summary Preview an exit
// @Description Estimate the P/L of selling lots at a price without saving anything
// @Tags positions
// @Accept  json
// @Produce  json
// @Param   id  path    string true    "Position ID"
// @Param   preview  body    dto.ExitPreviewRequest   true    "Exit price and lots (0 for all remaining)"
// @Success 200 {object} dto.ExitPreviewResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /positions/{id}/preview-exit [post]
func (h *PositionHandler) PreviewExit(c echo.Context) error {
	var req dto.ExitPreviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	resp, err := h.journalService.PreviewExit(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}
