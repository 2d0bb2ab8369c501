package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cineticket/portal/internal/api/middleware"
	"github.com/cineticket/portal/internal/session"
)

// ctxSession returns the Store loaded for this request. A missing Store means
// the route was registered outside the session group.
func ctxSession(c echo.Context) (*session.Store, error) {
	st := middleware.CurrentSession(c)
	if st == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
	}
	return st, nil
}
