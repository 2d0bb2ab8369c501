package ports

import (
	"context"

	"github.com/cineticket/portal/internal/core/domain"
)

// AuthBackend is the external service that issues bearer tokens.
type AuthBackend interface {
	Login(ctx context.Context, creds domain.Credentials) (*domain.LoginResult, error)
	Register(ctx context.Context, reg domain.Registration) error
}
