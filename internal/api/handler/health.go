package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cineticket/portal/internal/infrastructure/probe"
)

// HealthHandler serves GET /health, the liveness probe.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Liveness
//
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Pinger is satisfied by the session storage backends.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ReadinessHandler serves GET /health/ready. The portal is ready when session
// storage answers and every backend target is reachable.
type ReadinessHandler struct {
	storage Pinger
	client  *http.Client
	targets []probe.Target
	timeout time.Duration
}

func NewReadinessHandler(storage Pinger, client *http.Client, targets []probe.Target) *ReadinessHandler {
	return &ReadinessHandler{
		storage: storage,
		client:  client,
		targets: targets,
		timeout: 3 * time.Second,
	}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Readiness
//
// @Summary      Readiness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  readinessResponse
// @Failure      503  {object}  readinessResponse
// @Router       /health/ready [get]
func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	deps := make(map[string]dependencyStatus, len(h.targets)+1)
	healthy := true

	if err := h.storage.Ping(ctx); err != nil {
		deps["session_storage"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
		healthy = false
	} else {
		deps["session_storage"] = dependencyStatus{Status: "ok"}
	}

	for _, r := range probe.Run(ctx, h.client, h.targets) {
		if !r.Reachable() {
			deps[r.Target.Name] = dependencyStatus{Status: "unreachable", Error: r.Err.Error()}
			healthy = false
			continue
		}
		deps[r.Target.Name] = dependencyStatus{Status: "ok"}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
