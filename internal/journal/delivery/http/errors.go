package http

import (
	"errors"
	"net/http"

	"trading-journal/internal/journal/dto"
	"trading-journal/internal/journal/service"
	"trading-journal/pkg/apperror"

	"github.com/labstack/echo/v4"
)

// errorStatus maps a service error onto an HTTP status code.
func errorStatus(err error) int {
	var (
		ve *apperror.ValidationError
		ne *apperror.NetworkError
		re *apperror.RemoteError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case apperror.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrOffline):
		return http.StatusServiceUnavailable
	case errors.Is(err, apperror.ErrStorageQuotaExceeded):
		return http.StatusInsufficientStorage
	case errors.As(err, &ne), errors.As(err, &re):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c echo.Context, err error) error {
	resp := dto.ErrorResponse{Error: err.Error()}
	var ve *apperror.ValidationError
	if errors.As(err, &ve) {
		resp.Field = ve.Field
	}
	return c.JSON(errorStatus(err), resp)
}

// writeSaveResult answers 201 for saves that reached the remote store and
// 202 for saves waiting in the pending queue.
func writeSaveResult(c echo.Context, out service.SaveOutcome) error {
	resp := dto.SaveResult{
		Record:    out.Record,
		Queued:    out.Queued,
		PendingID: out.PendingID,
		State:     string(out.State),
		Message:   "Saved to remote store",
	}
	if out.Queued {
		resp.Message = "Saved locally, will sync when online"
		return c.JSON(http.StatusAccepted, resp)
	}
	return c.JSON(http.StatusCreated, resp)
}
