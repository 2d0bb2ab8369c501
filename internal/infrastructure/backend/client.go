// Package backend talks to the cinema platform's REST services: the auth
// backend that issues tokens and the cinema API that owns the catalog.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cineticket/portal/internal/core/domain"
	"github.com/cineticket/portal/internal/metrics"
)

const (
	defaultTimeout  = 10 * time.Second
	maxResponseSize = 8 << 20
)

// StatusError describes a non-2xx answer from a backend. It unwraps to the
// domain error matching the status code.
type StatusError struct {
	Backend string
	Status  int
	Message string
	kind    error
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s backend: %d: %s", e.Backend, e.Status, e.Message)
	}
	return fmt.Sprintf("%s backend: %d", e.Backend, e.Status)
}

func (e *StatusError) Unwrap() error { return e.kind }

// NewStatusError returns a StatusError that unwraps to kind.
func NewStatusError(backend string, status int, message string, kind error) *StatusError {
	return &StatusError{Backend: backend, Status: status, Message: message, kind: kind}
}

// client is the JSON-over-HTTP plumbing shared by the auth and catalog clients.
type client struct {
	name    string
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func newClient(name, baseURL string, timeout time.Duration, rt http.RoundTripper, log zerolog.Logger) *client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &client{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout, Transport: rt},
		log:     log.With().Str("component", "backend").Str("backend", name).Logger(),
	}
}

// do sends one request and returns the status and the (size-limited) body.
// Transport failures wrap domain.ErrBackendUnavailable.
func (c *client) do(ctx context.Context, method, path string, body []byte) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(c.name, "error").Inc()
		c.log.Error().Err(err).Str("method", method).Str("path", path).Msg("backend request failed")
		return 0, nil, fmt.Errorf("%w: %s %s: %v", domain.ErrBackendUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: read response: %v", domain.ErrBackendUnavailable, err)
	}

	metrics.BackendRequestsTotal.WithLabelValues(c.name, strconv.Itoa(resp.StatusCode)).Inc()
	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("backend request")

	return resp.StatusCode, data, nil
}

func (c *client) url(path string) string {
	if path == "" {
		return c.baseURL
	}
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

// statusError builds a StatusError, extracting the backend's message field
// when the body carries one.
func (c *client) statusError(status int, body []byte, kind error) error {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := ""
	if json.Unmarshal(body, &payload) == nil {
		msg = payload.Message
		if msg == "" {
			msg = payload.Error
		}
	}
	return NewStatusError(c.name, status, msg, kind)
}

// classify maps a non-2xx status to the domain error it stands for.
func classify(status int) error {
	switch {
	case status == http.StatusUnauthorized:
		return domain.ErrNotAuthenticated
	case status == http.StatusForbidden:
		return domain.ErrForbidden
	case status == http.StatusNotFound:
		return domain.ErrNotFound
	case status == http.StatusConflict:
		return domain.ErrUserExists
	case status >= 500:
		return domain.ErrBackendUnavailable
	default:
		return domain.ErrBackendRejected
	}
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
