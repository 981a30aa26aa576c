package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/davitkhm/docvault/internal/logging"
	"github.com/davitkhm/docvault/internal/service"
)

type HelloHTTP struct {
	Svc *service.HelloService
}

func (h *HelloHTTP) Hello(c echo.Context) error {
	ctx := c.Request().Context()

	msgs, err := h.Svc.Messages(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("hello_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, echo.Map{"messages": msgs})
}
