package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (a *App) HealthCheck(c echo.Context) error {
	if err := a.store.Ping(c.Request().Context()); err != nil {
		return a.er(c, err)
	}
	return c.NoContent(http.StatusOK)
}
