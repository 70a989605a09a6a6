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

type EventHandler struct {
	svc service.EventService
}

func NewEventHandler(svc service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

func (h *EventHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateEvent)
	g.GET("", h.ListEvents)
	g.GET("/:id", h.GetEvent)
	g.PUT("/:id", h.UpdateEvent)
	g.POST("/:id/submit", h.SubmitEvent)
	g.POST("/:id/transition", h.TransitionEvent)
	g.POST("/:id/archive", h.ArchiveEvent)
	g.DELETE("/:id/archive", h.UnarchiveEvent)
}

func eventID(c echo.Context) (string, error) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}
	return id, nil
}

func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req dto.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	event := req.ToModel()
	actor := middleware.ActorFrom(c)

	if err := h.svc.CreateEvent(c.Request().Context(), event, actor); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToEventResponse(event))
}

func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	event, err := h.svc.GetEvent(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) ListEvents(c echo.Context) error {
	var status *models.EventStatus
	if s := c.QueryParam("status"); s != "" {
		es := models.EventStatus(s)
		status = &es
	}

	events, err := h.svc.ListEvents(c.Request().Context(), status)
	if err != nil {
		return httpError(err)
	}

	resp := make([]dto.EventResponse, len(events))
	for i, e := range events {
		resp[i] = dto.ToEventResponse(&e)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *EventHandler) UpdateEvent(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	event := req.ToModel()
	event.ID = id

	if err := h.svc.UpdateEvent(c.Request().Context(), event, middleware.ActorFrom(c)); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) SubmitEvent(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	event, err := h.svc.Submit(c.Request().Context(), id, middleware.ActorFrom(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) TransitionEvent(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	var req dto.TransitionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	event, err := h.svc.Transition(
		c.Request().Context(),
		id,
		models.EventStatus(req.TargetStatus),
		middleware.ActorFrom(c),
		req.Reason,
	)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) ArchiveEvent(c echo.Context) error {
	return h.setArchived(c, true)
}

func (h *EventHandler) UnarchiveEvent(c echo.Context) error {
	return h.setArchived(c, false)
}

func (h *EventHandler) setArchived(c echo.Context, archived bool) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	if err := h.svc.SetArchived(c.Request().Context(), id, archived, middleware.ActorFrom(c)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
