package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/cineticket/portal/internal/core/domain"
)

type stubAuthBackend struct {
	registered []domain.Registration
	logins     []domain.Credentials
	loginRes   *domain.LoginResult
	err        error
}

func (s *stubAuthBackend) Login(_ context.Context, creds domain.Credentials) (*domain.LoginResult, error) {
	s.logins = append(s.logins, creds)
	if s.err != nil {
		return nil, s.err
	}
	return s.loginRes, nil
}

func (s *stubAuthBackend) Register(_ context.Context, reg domain.Registration) error {
	s.registered = append(s.registered, reg)
	return s.err
}

type recordingSession struct {
	identity *domain.Identity
	token    string
	err      error
}

func (r *recordingSession) Login(_ context.Context, identity domain.Identity, token string) error {
	if r.err != nil {
		return r.err
	}
	r.identity = &identity
	r.token = token
	return nil
}

func TestAuthService_Register_ForcesUserRole(t *testing.T) {
	backend := &stubAuthBackend{}
	svc := NewAuthService(backend, zerolog.Nop())

	err := svc.Register(context.Background(), domain.Registration{
		Name:     " Ana ",
		Email:    "Ana@Example.com ",
		Password: "secret1",
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if len(backend.registered) != 1 {
		t.Fatalf("expected one backend call, got %d", len(backend.registered))
	}
	got := backend.registered[0]
	if got.Role != domain.RoleUser {
		t.Fatalf("expected role %s, got %s", domain.RoleUser, got.Role)
	}
	if got.Email != "ana@example.com" || got.Name != "Ana" {
		t.Fatalf("expected normalised fields, got %q %q", got.Email, got.Name)
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	backend := &stubAuthBackend{}
	svc := NewAuthService(backend, zerolog.Nop())

	err := svc.Register(context.Background(), domain.Registration{Email: "ana@example.com"})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(backend.registered) != 0 {
		t.Fatalf("backend should not be called")
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := NewAuthService(&stubAuthBackend{err: domain.ErrUserExists}, zerolog.Nop())

	err := svc.Register(context.Background(), domain.Registration{Name: "Ana", Email: "ana@example.com", Password: "secret1"})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_StartsSession(t *testing.T) {
	backend := &stubAuthBackend{loginRes: &domain.LoginResult{
		Token:    "a.b.c",
		Identity: domain.Identity{Name: "Ana", Email: "ana@example.com", Role: domain.RoleUser},
	}}
	svc := NewAuthService(backend, zerolog.Nop())
	sess := &recordingSession{}

	identity, err := svc.Login(context.Background(), sess, domain.Credentials{Email: " ANA@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if identity.Email != "ana@example.com" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
	if backend.logins[0].Email != "ana@example.com" {
		t.Fatalf("expected normalised email, got %q", backend.logins[0].Email)
	}
	if sess.token != "a.b.c" || sess.identity == nil {
		t.Fatalf("expected session to be started, got %+v", sess)
	}
}

func TestAuthService_Login_BackendFailureLeavesSessionUntouched(t *testing.T) {
	svc := NewAuthService(&stubAuthBackend{err: domain.ErrInvalidCredentials}, zerolog.Nop())
	sess := &recordingSession{}

	_, err := svc.Login(context.Background(), sess, domain.Credentials{Email: "ana@example.com", Password: "bad"})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if sess.identity != nil || sess.token != "" {
		t.Fatalf("session should not be written")
	}
}

func TestAuthService_Login_SessionWriteFailure(t *testing.T) {
	backend := &stubAuthBackend{loginRes: &domain.LoginResult{Token: "a.b.c"}}
	svc := NewAuthService(backend, zerolog.Nop())
	storageErr := errors.New("redis down")

	_, err := svc.Login(context.Background(), &recordingSession{err: storageErr}, domain.Credentials{Email: "ana@example.com", Password: "x"})
	if !errors.Is(err, storageErr) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	backend := &stubAuthBackend{}
	svc := NewAuthService(backend, zerolog.Nop())

	_, err := svc.Login(context.Background(), &recordingSession{}, domain.Credentials{Email: "  "})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(backend.logins) != 0 {
		t.Fatalf("backend should not be called")
	}
}
