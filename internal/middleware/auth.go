package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/davitkhm/docvault/internal/logging"
	"github.com/davitkhm/docvault/internal/service"
	"github.com/davitkhm/docvault/internal/tokens"
)

// Context keys set on admitted requests.
const (
	CtxUserID   = "user_id"
	CtxIssuedAt = "issued_at"
)

// AuthGate admits a request only when it carries a bearer token that parses,
// has not expired, and survives the revocation check against the subject's
// current watermark.
type AuthGate struct {
	Codec *tokens.Codec
	Guard *service.RevocationGuard
}

func NewAuthGate(codec *tokens.Codec, guard *service.RevocationGuard) *AuthGate {
	return &AuthGate{Codec: codec, Guard: guard}
}

func (m *AuthGate) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		l := logging.FromContext(ctx).With("mw", "auth_gate")

		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
		}

		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		claims, err := m.Codec.Parse(raw)
		if err != nil {
			l.Warn("token_rejected", "reason", "parse failed")
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		var issuedAt *time.Time
		if claims.IssuedAt != nil {
			t := claims.IssuedAt.Time
			issuedAt = &t
		}

		decision := m.Guard.Check(ctx, claims.Subject, issuedAt)
		if !decision.Admitted {
			l.Warn("token_rejected", "subject", claims.Subject, "reason", decision.Reason)
			if decision.Reason == service.ReasonStale {
				// The one rejection the caller may distinguish: the
				// token was valid once and died by logout.
				return echo.NewHTTPError(http.StatusUnauthorized, "token is no longer valid (logged out)")
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		c.Set(CtxUserID, claims.Subject)
		if issuedAt != nil {
			c.Set(CtxIssuedAt, issuedAt.Unix())
		}

		return next(c)
	}
}
