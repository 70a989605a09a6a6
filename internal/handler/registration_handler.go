package handler

import (
	"net/http"

	"github.com/campusops/events-core/internal/dto"
	"github.com/campusops/events-core/internal/middleware"
	"github.com/campusops/events-core/internal/models"
	"github.com/campusops/events-core/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type RegistrationHandler struct {
	svc service.RegistrationService
}

func NewRegistrationHandler(svc service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{svc: svc}
}

func (h *RegistrationHandler) RegisterRoutes(api *echo.Group) {
	events := api.Group("/events")
	events.POST("/:id/registrations", h.Register)
	events.GET("/:id/registrations", h.ListByEvent)

	regs := api.Group("/registrations")
	regs.GET("/:id", h.GetRegistration)
	regs.DELETE("/:id", h.Cancel)
	regs.POST("/:id/attended", h.MarkAttended)

	// The payment collaborator calls back with the shared service token;
	// user tokens never confirm or fail a payment.
	payments := api.Group("/payments", middleware.RequireRole(models.RoleSystem))
	payments.POST("/:id/completed", h.PaymentCompleted)
	payments.POST("/:id/failed", h.PaymentFailed)
}

func registrationID(c echo.Context) (string, error) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid registration id")
	}
	return id, nil
}

func (h *RegistrationHandler) Register(c echo.Context) error {
	evID, err := eventID(c)
	if err != nil {
		return err
	}

	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	actor := middleware.ActorFrom(c)
	if actor.UserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	reg, err := h.svc.Register(c.Request().Context(), evID, actor.UserID, req.PaymentMethod)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToRegistrationResponse(reg))
}

func (h *RegistrationHandler) Cancel(c echo.Context) error {
	id, err := registrationID(c)
	if err != nil {
		return err
	}

	reg, err := h.svc.Cancel(c.Request().Context(), id, middleware.ActorFrom(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToRegistrationResponse(reg))
}

func (h *RegistrationHandler) GetRegistration(c echo.Context) error {
	id, err := registrationID(c)
	if err != nil {
		return err
	}

	reg, err := h.svc.GetRegistration(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToRegistrationResponse(reg))
}

func (h *RegistrationHandler) ListByEvent(c echo.Context) error {
	evID, err := eventID(c)
	if err != nil {
		return err
	}

	var status *models.RegistrationStatus
	if s := c.QueryParam("status"); s != "" {
		rs := models.RegistrationStatus(s)
		status = &rs
	}

	regs, err := h.svc.ListByEvent(c.Request().Context(), evID, status)
	if err != nil {
		return httpError(err)
	}

	resp := make([]dto.RegistrationResponse, len(regs))
	for i, r := range regs {
		resp[i] = dto.ToRegistrationResponse(&r)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *RegistrationHandler) MarkAttended(c echo.Context) error {
	id, err := registrationID(c)
	if err != nil {
		return err
	}

	if err := h.svc.MarkAttended(c.Request().Context(), id, middleware.ActorFrom(c)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *RegistrationHandler) PaymentCompleted(c echo.Context) error {
	id, err := registrationID(c)
	if err != nil {
		return err
	}

	if err := h.svc.OnPaymentCompleted(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *RegistrationHandler) PaymentFailed(c echo.Context) error {
	id, err := registrationID(c)
	if err != nil {
		return err
	}

	if err := h.svc.OnPaymentFailed(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
