package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/cineticket/portal/internal/core/ports"
	"github.com/cineticket/portal/internal/session/authn"
)

// Catalog builds cinema API clients bound to a session's bearer token.
type Catalog struct {
	baseURL string
	timeout time.Duration
	base    http.RoundTripper
	log     zerolog.Logger
}

// NewCatalog targets the cinema API at baseURL (e.g. http://host:8081/api).
func NewCatalog(baseURL string, timeout time.Duration, log zerolog.Logger) *Catalog {
	return &Catalog{baseURL: baseURL, timeout: timeout, log: log}
}

// WithSession returns a client whose requests carry src's token, if any.
func (c *Catalog) WithSession(src ports.TokenSource) ports.CatalogClient {
	rt := &authn.Transport{Base: c.base, Source: src}
	return &catalogClient{c: newClient("api", c.baseURL, c.timeout, rt, c.log)}
}

type catalogClient struct {
	c *client
}

func (cc *catalogClient) List(ctx context.Context, path string) (json.RawMessage, error) {
	return cc.exchange(ctx, http.MethodGet, path, nil)
}

func (cc *catalogClient) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return cc.exchange(ctx, http.MethodGet, path, nil)
}

func (cc *catalogClient) Create(ctx context.Context, path string, body json.RawMessage) (json.RawMessage, error) {
	return cc.exchange(ctx, http.MethodPost, path, body)
}

func (cc *catalogClient) Update(ctx context.Context, path string, body json.RawMessage) (json.RawMessage, error) {
	return cc.exchange(ctx, http.MethodPut, path, body)
}

func (cc *catalogClient) Delete(ctx context.Context, path string) error {
	_, err := cc.exchange(ctx, http.MethodDelete, path, nil)
	return err
}

func (cc *catalogClient) exchange(ctx context.Context, method, path string, body []byte) (json.RawMessage, error) {
	status, data, err := cc.c.do(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, cc.c.statusError(status, data, classify(status))
	}
	if len(data) == 0 || !json.Valid(data) {
		return nil, nil
	}
	return json.RawMessage(data), nil
}
