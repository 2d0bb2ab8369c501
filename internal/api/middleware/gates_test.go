package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cineticket/portal/internal/core/domain"
	"github.com/cineticket/portal/internal/infrastructure/storage/memory"
	"github.com/cineticket/portal/internal/session"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "carla@example.com",
		"exp": exp.Unix(),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func storeWithRole(t *testing.T, role string) *session.Store {
	t.Helper()
	st := session.NewStore(memory.New(), nil, zerolog.Nop())
	if role == "" {
		st.Restore(context.Background())
		return st
	}
	identity := domain.Identity{Name: "Carla", Email: "carla@example.com", Role: role}
	if err := st.Login(context.Background(), identity, signedToken(t, time.Now().Add(time.Hour))); err != nil {
		t.Fatalf("login: %v", err)
	}
	return st
}

func runGate(t *testing.T, mw echo.MiddlewareFunc, st *session.Store) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if st != nil {
		WithSession(c, st)
	}

	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec, called
}

func TestRequireAuthenticated(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		allowed bool
	}{
		{"anonymous", "", false},
		{"user", domain.RoleUser, true},
		{"admin", domain.RoleAdmin, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, called := runGate(t, RequireAuthenticated("/login"), storeWithRole(t, tt.role))
			if called != tt.allowed {
				t.Fatalf("expected next called=%v", tt.allowed)
			}
			if !tt.allowed {
				if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/login" {
					t.Fatalf("expected redirect to /login, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
				}
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		allowed bool
	}{
		{"anonymous", "", false},
		{"role user", domain.RoleUser, false},
		{"lowercase admin", "admin", false},
		{"admin", domain.RoleAdmin, true},
		{"role admin", domain.RoleAdminPrefix, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, called := runGate(t, RequireAdmin("/home"), storeWithRole(t, tt.role))
			if called != tt.allowed {
				t.Fatalf("expected next called=%v", tt.allowed)
			}
			if !tt.allowed && rec.Header().Get(echo.HeaderLocation) != "/home" {
				t.Fatalf("expected redirect to /home, got %q", rec.Header().Get(echo.HeaderLocation))
			}
		})
	}
}

func TestGates_WithoutSession(t *testing.T) {
	rec, called := runGate(t, RequireAuthenticated("/login"), nil)
	if called || rec.Code != http.StatusFound {
		t.Fatalf("missing session must redirect, got %d", rec.Code)
	}
}
