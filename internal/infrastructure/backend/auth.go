package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/cineticket/portal/internal/core/domain"
	"github.com/cineticket/portal/internal/session/token"
)

// loginResponse is the one response shape accepted from POST /login.
type loginResponse struct {
	Token string           `json:"token" validate:"required"`
	User  *domain.Identity `json:"user"  validate:"required"`
}

// AuthClient implements ports.AuthBackend over HTTP.
type AuthClient struct {
	c        *client
	codec    *token.Codec
	validate *validator.Validate
}

// NewAuthClient targets the auth backend at baseURL (e.g. http://host:8080/auth).
func NewAuthClient(baseURL string, timeout time.Duration, codec *token.Codec, log zerolog.Logger) *AuthClient {
	if codec == nil {
		codec = token.NewCodec()
	}
	return &AuthClient{
		c:        newClient("auth", baseURL, timeout, nil, log),
		codec:    codec,
		validate: validator.New(),
	}
}

// Login exchanges credentials for a token and identity. Rejected credentials
// yield domain.ErrInvalidCredentials; a response that does not match the
// login schema, or carries an undecodable token, yields
// domain.ErrInvalidLoginResponse.
func (a *AuthClient) Login(ctx context.Context, creds domain.Credentials) (*domain.LoginResult, error) {
	body, err := json.Marshal(creds)
	if err != nil {
		return nil, fmt.Errorf("encode credentials: %w", err)
	}

	status, data, err := a.c.do(ctx, http.MethodPost, "login", body)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		kind := classify(status)
		switch status {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			kind = domain.ErrInvalidCredentials
		}
		return nil, a.c.statusError(status, data, kind)
	}

	return a.decodeLogin(data)
}

func (a *AuthClient) decodeLogin(data []byte) (*domain.LoginResult, error) {
	var resp loginResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidLoginResponse, err)
	}
	if err := a.validate.Struct(resp); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidLoginResponse, err)
	}
	if resp.User.Role == "" {
		return nil, fmt.Errorf("%w: user role missing", domain.ErrInvalidLoginResponse)
	}
	if _, err := a.codec.Decode(resp.Token); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidLoginResponse, err)
	}

	return &domain.LoginResult{Token: resp.Token, Identity: *resp.User}, nil
}

// Register creates an account on the auth backend.
func (a *AuthClient) Register(ctx context.Context, reg domain.Registration) error {
	body, err := json.Marshal(reg)
	if err != nil {
		return fmt.Errorf("encode registration: %w", err)
	}

	status, data, err := a.c.do(ctx, http.MethodPost, "register", body)
	if err != nil {
		return err
	}
	if !isSuccess(status) {
		return a.c.statusError(status, data, classify(status))
	}
	return nil
}
