package ports

import (
	"context"
	"encoding/json"
)

// TokenSource supplies the bearer token for outbound calls.
type TokenSource interface {
	CurrentToken() string
}

// CatalogBackend hands out cinema API clients bound to a session's token.
type CatalogBackend interface {
	WithSession(src TokenSource) CatalogClient
}

// CatalogClient forwards resource operations to the cinema API.
// Payloads are passed through as raw JSON; the portal does not own their schema.
type CatalogClient interface {
	List(ctx context.Context, path string) (json.RawMessage, error)
	Get(ctx context.Context, path string) (json.RawMessage, error)
	Create(ctx context.Context, path string, body json.RawMessage) (json.RawMessage, error)
	Update(ctx context.Context, path string, body json.RawMessage) (json.RawMessage, error)
	Delete(ctx context.Context, path string) error
}
