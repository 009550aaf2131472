package controller

import (
	"errors"
	"net/http"

	"github.com/hr-intervals/hr-assistant/models"
)

// statusFor maps pipeline error kinds onto HTTP statuses. Everything else is
// a plain 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, models.ErrAlreadyIngested):
		return http.StatusConflict
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrScrapeFailed):
		return http.StatusBadGateway
	case errors.Is(err, models.ErrUpstreamTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, models.ErrStorageFailed),
		errors.Is(err, models.ErrGenerationFailed):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
