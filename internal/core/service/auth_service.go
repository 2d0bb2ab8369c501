package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cineticket/portal/internal/core/domain"
	"github.com/cineticket/portal/internal/core/ports"
)

// AuthService implements registration and login on top of the auth backend.
type AuthService struct {
	backend ports.AuthBackend
	log     zerolog.Logger
}

func NewAuthService(backend ports.AuthBackend, log zerolog.Logger) *AuthService {
	return &AuthService{
		backend: backend,
		log:     log.With().Str("component", "auth_service").Logger(),
	}
}

// Register creates a customer account. Self-service sign-ups are always
// ROLE_USER whatever the caller asked for.
func (s *AuthService) Register(ctx context.Context, reg domain.Registration) error {
	reg.Email = normalizeEmail(reg.Email)
	reg.Name = strings.TrimSpace(reg.Name)
	if reg.Email == "" || reg.Password == "" || reg.Name == "" {
		return domain.ErrInvalidCredentials
	}
	reg.Role = domain.RoleUser

	if err := s.backend.Register(ctx, reg); err != nil {
		return err
	}
	s.log.Info().Str("email", reg.Email).Msg("account registered")
	return nil
}

// Login exchanges credentials with the auth backend and starts sess with the
// returned identity and token. Nothing is written to sess on failure.
func (s *AuthService) Login(ctx context.Context, sess ports.SessionWriter, creds domain.Credentials) (*domain.Identity, error) {
	creds.Email = normalizeEmail(creds.Email)
	if creds.Email == "" || creds.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	res, err := s.backend.Login(ctx, creds)
	if err != nil {
		s.log.Debug().Err(err).Str("email", creds.Email).Msg("login rejected")
		return nil, err
	}

	if err := sess.Login(ctx, res.Identity, res.Token); err != nil {
		return nil, err
	}
	identity := res.Identity
	return &identity, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
