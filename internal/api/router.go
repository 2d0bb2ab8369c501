package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/cineticket/portal/docs"
	"github.com/cineticket/portal/internal/api/handler"
	"github.com/cineticket/portal/internal/api/middleware"
	"github.com/cineticket/portal/internal/core/domain"
	"github.com/cineticket/portal/internal/core/ports"
	"github.com/cineticket/portal/internal/core/service"
	"github.com/cineticket/portal/internal/infrastructure/probe"
	"github.com/cineticket/portal/internal/session"
)

const maxBodySize = "1M"

// Deps carries everything the router wires into handlers.
type Deps struct {
	Log      zerolog.Logger
	Sessions *session.Manager
	Auth     ports.AuthBackend
	Catalog  ports.CatalogBackend
	Cookie   middleware.CookieConfig

	LoginPath string
	HomePath  string

	// ProbeTargets are checked by /health/ready. ProbeClient may be nil.
	ProbeTargets []probe.Target
	ProbeClient  *http.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// HTTP metrics go to a per-router registry so several routers can coexist
	// in one process; /metrics gathers it together with the default registry.
	reg := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echomiddleware.BodyLimit(maxBodySize))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "cinema_portal",
		Subsystem:  "http",
		Registerer: reg,
	}))

	// --- Operational endpoints (no session) ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{reg, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	health := handler.NewHealthHandler()
	ready := handler.NewReadinessHandler(d.Sessions, d.ProbeClient, d.ProbeTargets)
	e.GET("/health", health.Liveness)       // liveness: is the process alive?
	e.GET("/health/ready", ready.Readiness) // readiness: storage and backends up?

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(service.NewAuthService(d.Auth, d.Log), d.HomePath, d.LoginPath)
	catalog := handler.NewCatalogHandler(d.Catalog)
	views := handler.NewViewHandler()

	e.GET("/", views.Redirect(d.HomePath))

	// Everything below runs with the browser session restored.
	s := e.Group("", middleware.LoadSession(d.Sessions, d.Cookie))

	// --- Public pages ---
	s.GET("/home", views.Render("home"))
	s.GET("/login", views.Render("login"))
	s.GET("/registro", views.Render("registro"))
	s.GET("/filme/:id", views.Render("filme-detalhes"))

	// --- Auth routes ---
	s.POST("/auth/login", authHandler.Login)
	s.POST("/auth/register", authHandler.Register)
	s.POST("/auth/logout", authHandler.Logout)
	s.GET("/auth/me", authHandler.Me)

	// --- Public catalog ---
	s.GET("/api/filmes/em-cartaz", catalog.NowShowing)
	s.GET("/api/filmes/:id", catalog.Get(domain.ResourceMovies))
	for _, r := range domain.PublicResources {
		s.GET("/api/"+string(r), catalog.List(r))
	}

	// --- Checkout (Authenticated Gate) ---
	pay := s.Group("/pagamento", middleware.RequireAuthenticated(d.LoginPath))
	pay.GET("", views.Render("pagamento"))
	pay.POST("/processar", catalog.ProcessPayment)

	// --- Back office (Admin Gate) ---
	adm := s.Group("/admin", middleware.RequireAdmin(d.HomePath))
	adm.GET("", views.Redirect("/admin/dashboard"))
	adm.GET("/dashboard", views.Render("admin-dashboard"))
	for _, r := range domain.AdminResources {
		name := string(r)
		adm.GET("/"+name, views.Render("admin-"+name))
		adm.GET("/api/"+name, catalog.List(r))
		adm.GET("/api/"+name+"/:id", catalog.Get(r))
		adm.POST("/api/"+name, catalog.Create(r))
		adm.PUT("/api/"+name+"/:id", catalog.Update(r))
		adm.DELETE("/api/"+name+"/:id", catalog.Delete(r))
	}

	return e
}

// requestLogger emits one zerolog event per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency.Round(time.Microsecond)).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
