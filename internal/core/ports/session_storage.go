package ports

import "context"

// SessionStorage is the durable key/value mirror of a session.
// Only the session store reads or writes through it.
type SessionStorage interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
