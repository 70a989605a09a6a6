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

type WhitelistHandler struct {
	svc service.WhitelistService
}

func NewWhitelistHandler(svc service.WhitelistService) *WhitelistHandler {
	return &WhitelistHandler{svc: svc}
}

func (h *WhitelistHandler) RegisterRoutes(events *echo.Group) {
	events.GET("/:id/whitelist", h.List)
	events.POST("/:id/whitelist/users/:userID", h.AddUser)
	events.DELETE("/:id/whitelist/users/:userID", h.RemoveUser)
	events.POST("/:id/whitelist/roles/:role", h.AddRole)
	events.DELETE("/:id/whitelist/roles/:role", h.RemoveRole)
}

func whitelistRole(c echo.Context) (models.Role, error) {
	role := models.Role(c.Param("role"))
	switch role {
	case models.RoleStudent, models.RoleProfessor, models.RoleTA,
		models.RoleStaff, models.RoleEventOffice, models.RoleAdmin:
		return role, nil
	}
	return "", echo.NewHTTPError(http.StatusBadRequest, "invalid role")
}

func (h *WhitelistHandler) List(c echo.Context) error {
	evID, err := eventID(c)
	if err != nil {
		return err
	}

	entries, err := h.svc.List(c.Request().Context(), evID)
	if err != nil {
		return httpError(err)
	}

	resp := make([]dto.WhitelistEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = dto.ToWhitelistEntryResponse(&e)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *WhitelistHandler) AddUser(c echo.Context) error {
	evID, err := eventID(c)
	if err != nil {
		return err
	}
	userID := c.Param("userID")
	if _, err := uuid.Parse(userID); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	if err := h.svc.AddUser(c.Request().Context(), evID, userID, middleware.ActorFrom(c)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *WhitelistHandler) RemoveUser(c echo.Context) error {
	evID, err := eventID(c)
	if err != nil {
		return err
	}
	userID := c.Param("userID")
	if _, err := uuid.Parse(userID); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	if err := h.svc.RemoveUser(c.Request().Context(), evID, userID, middleware.ActorFrom(c)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *WhitelistHandler) AddRole(c echo.Context) error {
	evID, err := eventID(c)
	if err != nil {
		return err
	}
	role, err := whitelistRole(c)
	if err != nil {
		return err
	}

	if err := h.svc.AddRole(c.Request().Context(), evID, role, middleware.ActorFrom(c)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *WhitelistHandler) RemoveRole(c echo.Context) error {
	evID, err := eventID(c)
	if err != nil {
		return err
	}
	role, err := whitelistRole(c)
	if err != nil {
		return err
	}

	if err := h.svc.RemoveRole(c.Request().Context(), evID, role, middleware.ActorFrom(c)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
