package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/davitkhm/docvault/internal/middleware"
)

type Deps struct {
	Auth      *AuthHTTP
	Documents *DocumentHTTP
	Hello     *HelloHTTP
	Gate      *middleware.AuthGate
}

// Register wires the routes. Only register and login are reachable without a
// token; everything else sits behind the auth gate.
func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.POST("/auth/register", d.Auth.Register)
	e.POST("/auth/login", d.Auth.Login)

	private := e.Group("")
	private.Use(d.Gate.RequireAuth)

	private.POST("/logout", d.Auth.Logout)
	private.GET("/hello", d.Hello.Hello)
	private.POST("/documents/upload", d.Documents.Upload)
	private.GET("/documents/search", d.Documents.Search)
}
