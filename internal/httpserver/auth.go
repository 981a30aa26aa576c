package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/davitkhm/docvault/internal/logging"
	"github.com/davitkhm/docvault/internal/middleware"
	"github.com/davitkhm/docvault/internal/repo"
	"github.com/davitkhm/docvault/internal/service"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, req.Email, req.Password)
	if err != nil {
		var weak *service.WeakPasswordError
		switch {
		case errors.As(err, &weak):
			return echo.NewHTTPError(http.StatusBadRequest, map[string]any{
				"message":    "password is too weak",
				"violations": weak.Violations,
			})
		case errors.Is(err, repo.ErrEmailTaken):
			return echo.NewHTTPError(http.StatusForbidden, "Email has already been registered")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}
	}

	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusForbidden, "Username or password is incorrect")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	l.Info("login_successful")
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": res.AccessToken,
		"user":         res.User,
	})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	userID, _ := c.Get(middleware.CtxUserID).(string)

	res, err := h.Svc.Logout(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrMissingUserID) {
			return echo.NewHTTPError(http.StatusBadRequest, "user id is required")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, res)
}
