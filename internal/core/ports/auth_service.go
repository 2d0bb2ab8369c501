package ports

import (
	"context"

	"github.com/cineticket/portal/internal/core/domain"
)

// SessionWriter is the part of a browser session a login writes to.
type SessionWriter interface {
	Login(ctx context.Context, identity domain.Identity, token string) error
}

type AuthService interface {
	Register(ctx context.Context, reg domain.Registration) error
	Login(ctx context.Context, sess SessionWriter, creds domain.Credentials) (*domain.Identity, error)
}
