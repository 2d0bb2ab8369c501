package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cineticket/portal/internal/core/domain"
	"github.com/cineticket/portal/internal/infrastructure/backend"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps domain and
// backend errors to status codes and renders {"error": "<message>"}.
// Unexpected errors are logged and never shown to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var se *backend.StatusError
	hasStatus := errors.As(err, &se)
	backendMsg := func(fallback string) string {
		if hasStatus && se.Message != "" {
			return se.Message
		}
		return fallback
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, backendMsg("invalid credentials")
	case errors.Is(err, domain.ErrInvalidLoginResponse):
		log.Warn().Err(err).Msg("auth backend answered with an unusable login response")
		return http.StatusBadGateway, "invalid credentials response"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, backendMsg("user already exists")
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, backendMsg("resource not found")
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized, "not authenticated"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrBackendRejected):
		code := http.StatusBadRequest
		if hasStatus && se.Status >= 400 && se.Status < 500 {
			code = se.Status
		}
		return code, backendMsg("request rejected")
	case errors.Is(err, domain.ErrBackendUnavailable):
		log.Error().Err(err).Str("path", c.Path()).Msg("backend unavailable")
		return http.StatusServiceUnavailable, "service temporarily unavailable"
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
