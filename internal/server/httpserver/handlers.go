package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/kbadmin/internal/server/models"
)

type handlers struct {
	svc EntryService
}

func (h *handlers) list(c echo.Context) error {
	entries, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *handlers) get(c echo.Context) error {
	e, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, e)
}

func (h *handlers) create(c echo.Context) error {
	var in models.Entry
	if err := (&echo.DefaultBinder{}).BindBody(c, &in); err != nil {
		return badRequest(err)
	}
	e, err := h.svc.Create(c.Request().Context(), &in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, e)
}

func (h *handlers) update(c echo.Context) error {
	var p models.EntryPatch
	if err := (&echo.DefaultBinder{}).BindBody(c, &p); err != nil {
		return badRequest(err)
	}
	e, err := h.svc.Update(c.Request().Context(), c.Param("id"), &p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, e)
}

func (h *handlers) delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
