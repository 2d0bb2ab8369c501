package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/cineticket/portal/internal/core/domain"
	"github.com/cineticket/portal/internal/core/ports"
	"github.com/cineticket/portal/internal/metrics"
	"github.com/cineticket/portal/internal/session/token"
)

const (
	tokenKey    = "token"
	identityKey = "currentUser"
)

// State is the lifecycle position of a Store.
type State int

const (
	StateUnknown State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Store holds the current identity and token of one browser session.
type Store struct {
	storage ports.SessionStorage
	codec   *token.Codec
	log     zerolog.Logger

	mu       sync.RWMutex
	state    State
	identity *domain.Identity
	token    string
}

// NewStore returns a Store in the unknown state. Call Restore before reading it.
func NewStore(storage ports.SessionStorage, codec *token.Codec, log zerolog.Logger) *Store {
	if codec == nil {
		codec = token.NewCodec()
	}
	return &Store{
		storage: storage,
		codec:   codec,
		log:     log.With().Str("component", "session_store").Logger(),
		state:   StateUnknown,
	}
}

// Restore adopts the persisted session when both entries are present, the
// identity parses and the token has not expired. Expired, corrupt or partial
// state is cleared from storage. A storage read error leaves the Store
// anonymous for this request and keeps the persisted entries.
func (s *Store) Restore(ctx context.Context) {
	outcome := s.restore(ctx)
	metrics.SessionRestoresTotal.WithLabelValues(outcome).Inc()
	switch outcome {
	case metrics.RestoreAuthenticated:
	case metrics.RestoreStorageError:
		// The persisted entries may still be valid; only this request is anonymous.
		s.reset()
	default:
		s.Logout(ctx)
	}
}

func (s *Store) restore(ctx context.Context) string {
	tok, hasToken, err := s.storage.Get(ctx, tokenKey)
	if err != nil {
		s.log.Warn().Err(err).Msg("read persisted token")
		return metrics.RestoreStorageError
	}
	rawIdentity, hasIdentity, err := s.storage.Get(ctx, identityKey)
	if err != nil {
		s.log.Warn().Err(err).Msg("read persisted identity")
		return metrics.RestoreStorageError
	}
	if !hasToken || !hasIdentity || tok == "" || rawIdentity == "" {
		return metrics.RestoreAnonymous
	}
	if s.codec.IsExpired(tok) {
		s.log.Debug().Msg("persisted token expired")
		return metrics.RestoreExpired
	}

	var identity domain.Identity
	if err := json.Unmarshal([]byte(rawIdentity), &identity); err != nil {
		s.log.Warn().Err(err).Msg("discarding unparsable persisted identity")
		return metrics.RestoreCorrupt
	}
	if identity == (domain.Identity{}) {
		s.log.Warn().Msg("discarding empty persisted identity")
		return metrics.RestoreCorrupt
	}

	s.mu.Lock()
	s.identity = &identity
	s.token = tok
	s.state = StateAuthenticated
	s.mu.Unlock()
	return metrics.RestoreAuthenticated
}

// Login persists the pair and then makes it the current session. On a
// storage failure the in-memory session is left unchanged.
func (s *Store) Login(ctx context.Context, identity domain.Identity, tok string) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	if err := s.storage.Set(ctx, tokenKey, tok); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	if err := s.storage.Set(ctx, identityKey, string(raw)); err != nil {
		return fmt.Errorf("persist identity: %w", err)
	}

	s.mu.Lock()
	s.identity = &identity
	s.token = tok
	s.state = StateAuthenticated
	s.mu.Unlock()

	metrics.SessionLoginsTotal.Inc()
	s.log.Info().Str("email", identity.Email).Str("role", identity.Role).Msg("session started")
	return nil
}

// reset drops the in-memory session without touching storage.
func (s *Store) reset() {
	s.mu.Lock()
	s.identity = nil
	s.token = ""
	s.state = StateAnonymous
	s.mu.Unlock()
}

// Logout clears the current session and its persisted entries. It is safe to
// call on an anonymous Store.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	hadSession := s.token != ""
	s.identity = nil
	s.token = ""
	s.state = StateAnonymous
	s.mu.Unlock()

	for _, key := range []string{tokenKey, identityKey} {
		if err := s.storage.Remove(ctx, key); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("remove persisted session entry")
		}
	}

	if hadSession {
		metrics.SessionLogoutsTotal.Inc()
		s.log.Info().Msg("session ended")
	}
}

// CurrentIdentity returns a copy of the signed-in identity, or nil.
func (s *Store) CurrentIdentity() *domain.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return nil
	}
	identity := *s.identity
	return &identity
}

// CurrentToken returns the bearer token, or "" when anonymous.
func (s *Store) CurrentToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated reports whether a token is held and has not expired.
func (s *Store) IsAuthenticated() bool {
	tok := s.CurrentToken()
	return tok != "" && !s.codec.IsExpired(tok)
}

// IsAdmin reports whether the current identity carries an admin role.
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity.IsAdmin()
}

// State returns the lifecycle state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}
