package session

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cineticket/portal/internal/core/ports"
	"github.com/cineticket/portal/internal/session/token"
)

// Manager opens per-browser Stores over a shared storage backend.
type Manager struct {
	storage ports.SessionStorage
	codec   *token.Codec
	log     zerolog.Logger
}

// NewManager creates a Manager. A nil codec uses the system clock.
func NewManager(storage ports.SessionStorage, codec *token.Codec, log zerolog.Logger) *Manager {
	if codec == nil {
		codec = token.NewCodec()
	}
	return &Manager{storage: storage, codec: codec, log: log}
}

// NewID returns a fresh browser session id.
func (m *Manager) NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like one issued by NewID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Open builds the Store for sessionID and restores it from storage.
func (m *Manager) Open(ctx context.Context, sessionID string) *Store {
	st := NewStore(
		Namespace(m.storage, sessionID),
		m.codec,
		m.log.With().Str("session_id", sessionID).Logger(),
	)
	st.Restore(ctx)
	return st
}

// Ping checks the backing storage.
func (m *Manager) Ping(ctx context.Context) error {
	return m.storage.Ping(ctx)
}
