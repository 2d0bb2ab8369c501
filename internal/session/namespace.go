package session

import (
	"context"

	"github.com/cineticket/portal/internal/core/ports"
)

// namespacedStorage prefixes every key so that many browser sessions can
// share one backing store.
type namespacedStorage struct {
	base   ports.SessionStorage
	prefix string
}

// Namespace scopes storage to a single browser session id.
func Namespace(base ports.SessionStorage, sessionID string) ports.SessionStorage {
	return &namespacedStorage{base: base, prefix: "session:" + sessionID + ":"}
}

func (n *namespacedStorage) Get(ctx context.Context, key string) (string, bool, error) {
	return n.base.Get(ctx, n.prefix+key)
}

func (n *namespacedStorage) Set(ctx context.Context, key, value string) error {
	return n.base.Set(ctx, n.prefix+key, value)
}

func (n *namespacedStorage) Remove(ctx context.Context, key string) error {
	return n.base.Remove(ctx, n.prefix+key)
}

func (n *namespacedStorage) Ping(ctx context.Context) error {
	return n.base.Ping(ctx)
}
