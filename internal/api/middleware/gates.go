package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cineticket/portal/internal/metrics"
	"github.com/cineticket/portal/internal/session"
)

// RequireAuthenticated lets the request through only for an authenticated
// session and otherwise redirects to loginPath.
func RequireAuthenticated(loginPath string) echo.MiddlewareFunc {
	return gate(session.GateAuthenticated, func(st session.GateState) session.Decision {
		return session.AuthenticatedGate(st, loginPath)
	})
}

// RequireAdmin lets the request through only for an admin session and
// otherwise redirects to fallbackPath.
func RequireAdmin(fallbackPath string) echo.MiddlewareFunc {
	return gate(session.GateAdmin, func(st session.GateState) session.Decision {
		return session.AdminGate(st, fallbackPath)
	})
}

func gate(name string, decide func(session.GateState) session.Decision) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var state session.GateState
			if st := CurrentSession(c); st != nil {
				state = st
			}

			d := decide(state)
			if !d.Allowed {
				metrics.RouteGateDecisionsTotal.WithLabelValues(name, "redirected").Inc()
				return c.Redirect(http.StatusFound, d.Redirect)
			}
			metrics.RouteGateDecisionsTotal.WithLabelValues(name, "allowed").Inc()
			return next(c)
		}
	}
}
