package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cineticket/portal/internal/core/domain"
	"github.com/cineticket/portal/internal/infrastructure/backend"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "email is required"), http.StatusBadRequest, `{"error":"email is required"}`},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, `{"error":"invalid credentials"}`},
		{"invalid credentials with backend message",
			backend.NewStatusError("auth", http.StatusUnauthorized, "Senha incorreta", domain.ErrInvalidCredentials),
			http.StatusUnauthorized, `{"error":"Senha incorreta"}`},
		{"rejected keeps backend status",
			backend.NewStatusError("api", http.StatusUnprocessableEntity, "assento ocupado", domain.ErrBackendRejected),
			http.StatusUnprocessableEntity, `{"error":"assento ocupado"}`},
		{"bad login response", fmt.Errorf("%w: %w", domain.ErrInvalidLoginResponse, domain.ErrMalformedToken), http.StatusBadGateway, `{"error":"invalid credentials response"}`},
		{"user exists", domain.ErrUserExists, http.StatusConflict, `{"error":"user already exists"}`},
		{"not found", domain.ErrNotFound, http.StatusNotFound, `{"error":"resource not found"}`},
		{"not authenticated", domain.ErrNotAuthenticated, http.StatusUnauthorized, `{"error":"not authenticated"}`},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, `{"error":"access forbidden"}`},
		{"unavailable", fmt.Errorf("%w: dial tcp", domain.ErrBackendUnavailable), http.StatusServiceUnavailable, `{"error":"service temporarily unavailable"}`},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, `{"error":"internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			NewHTTPErrorHandler(zerolog.Nop())(tt.err, c)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			if got := rec.Body.String(); got != tt.wantBody+"\n" {
				t.Fatalf("unexpected body: %s", got)
			}
		})
	}
}
