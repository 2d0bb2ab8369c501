package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cineticket/portal/internal/session"
)

const (
	sessionKey = "session"
	renewerKey = "session_renewer"
)

// CookieConfig describes the browser session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// LoadSession identifies the browser by its session cookie, issuing a new id
// when the cookie is missing or malformed, and stores the restored
// *session.Store in the context.
func LoadSession(mgr *session.Manager, cfg CookieConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := ""
			if ck, err := c.Cookie(cfg.Name); err == nil && session.ValidID(ck.Value) {
				sid = ck.Value
			} else {
				sid = mgr.NewID()
				setSessionCookie(c, cfg, sid)
			}

			c.Set(renewerKey, &renewer{mgr: mgr, cfg: cfg})
			c.Set(sessionKey, mgr.Open(c.Request().Context(), sid))
			return next(c)
		}
	}
}

func setSessionCookie(c echo.Context, cfg CookieConfig, sid string) {
	c.SetCookie(&http.Cookie{
		Name:     cfg.Name,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(cfg.MaxAge.Seconds()),
	})
}

type renewer struct {
	mgr *session.Manager
	cfg CookieConfig
}

// RenewSession opens an empty Store under a new session id. Calling commit
// makes it the browser's session: the cookie is reissued, the context Store
// is replaced and the previous session is logged out. Without commit nothing
// changes for the browser.
//
// Contexts not prepared by LoadSession have no id to rotate; the current Store
// is returned with a no-op commit.
func RenewSession(c echo.Context) (fresh *session.Store, commit func(), err error) {
	current := CurrentSession(c)
	if current == nil {
		return nil, nil, echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
	}
	r, _ := c.Get(renewerKey).(*renewer)
	if r == nil {
		return current, func() {}, nil
	}

	ctx := c.Request().Context()
	sid := r.mgr.NewID()
	fresh = r.mgr.Open(ctx, sid)
	return fresh, func() {
		current.Logout(ctx)
		setSessionCookie(c, r.cfg, sid)
		c.Set(sessionKey, fresh)
	}, nil
}

// CurrentSession returns the Store loaded by LoadSession, or nil.
func CurrentSession(c echo.Context) *session.Store {
	st, _ := c.Get(sessionKey).(*session.Store)
	return st
}

// WithSession puts st into the context. Used by tests and by LoadSession.
func WithSession(c echo.Context, st *session.Store) {
	c.Set(sessionKey, st)
}
