package handler

import (
	"net/http"
	"time"

	"github.com/campusops/events-core/internal/dto"
	"github.com/campusops/events-core/internal/middleware"
	"github.com/campusops/events-core/internal/models"
	"github.com/campusops/events-core/internal/service"
	"github.com/labstack/echo/v4"
)

// FulfillmentHandler exposes the worker-facing surface over HTTP for
// out-of-process workers. The in-process workers call the service directly.
type FulfillmentHandler struct {
	svc service.FulfillmentService
}

func NewFulfillmentHandler(svc service.FulfillmentService) *FulfillmentHandler {
	return &FulfillmentHandler{svc: svc}
}

func (h *FulfillmentHandler) RegisterRoutes(api *echo.Group) {
	// Worker surface: service token or Event Office only. A student token
	// must not mark a reminder or certificate as delivered.
	gate := middleware.RequireRole(models.RoleSystem, models.RoleEventOffice, models.RoleAdmin)
	api.GET("/fulfillment/reminders", h.DueReminders, gate)
	api.GET("/events/:id/fulfillment/certificates", h.CertificateEligible, gate)
	api.POST("/registrations/:id/reminder-sent", h.MarkReminderSent, gate)
	api.POST("/registrations/:id/certificate-sent", h.MarkCertificateSent, gate)
}

func (h *FulfillmentHandler) DueReminders(c echo.Context) error {
	window := 24 * time.Hour
	if w := c.QueryParam("window"); w != "" {
		parsed, err := time.ParseDuration(w)
		if err != nil || parsed <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid window duration")
		}
		window = parsed
	}

	regs, err := h.svc.DueReminders(c.Request().Context(), window)
	if err != nil {
		return httpError(err)
	}

	resp := make([]dto.RegistrationResponse, len(regs))
	for i, r := range regs {
		resp[i] = dto.ToRegistrationResponse(&r)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *FulfillmentHandler) CertificateEligible(c echo.Context) error {
	evID, err := eventID(c)
	if err != nil {
		return err
	}

	regs, err := h.svc.CertificateEligible(c.Request().Context(), evID)
	if err != nil {
		return httpError(err)
	}

	resp := make([]dto.RegistrationResponse, len(regs))
	for i, r := range regs {
		resp[i] = dto.ToRegistrationResponse(&r)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *FulfillmentHandler) MarkReminderSent(c echo.Context) error {
	id, err := registrationID(c)
	if err != nil {
		return err
	}

	if err := h.svc.MarkReminderSent(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *FulfillmentHandler) MarkCertificateSent(c echo.Context) error {
	id, err := registrationID(c)
	if err != nil {
		return err
	}

	if err := h.svc.MarkCertificateSent(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
