package handler

import (
	"errors"
	"net/http"

	"github.com/campusops/events-core/internal/service"
	"github.com/labstack/echo/v4"
)

// httpError maps service sentinel errors onto transport codes. Precondition
// failures stay distinguishable so the UI collaborator can show the right
// message ("full" vs "not whitelisted" vs "deadline passed").
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrRegistrationNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrForbiddenTransition),
		errors.Is(err, service.ErrNotWhitelisted):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())

	case errors.Is(err, service.ErrAlreadyRegistered),
		errors.Is(err, service.ErrEventFull),
		errors.Is(err, service.ErrAlreadyCancelled),
		errors.Is(err, service.ErrTransitionConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())

	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrAlreadyTerminal):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())

	case errors.Is(err, service.ErrReasonRequired),
		errors.Is(err, service.ErrDeadlinePassed),
		errors.Is(err, service.ErrEventNotPublished):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
