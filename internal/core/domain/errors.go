package domain

import "errors"

var (
	// ErrMalformedToken is returned when a bearer token cannot be structurally decoded.
	ErrMalformedToken = errors.New("malformed token")

	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidLoginResponse = errors.New("invalid credentials response")
	ErrUserExists           = errors.New("user already exists")
	ErrNotFound             = errors.New("resource not found")
	ErrBackendUnavailable   = errors.New("backend unavailable")
	ErrBackendRejected      = errors.New("backend rejected request")
	ErrNotAuthenticated     = errors.New("not authenticated")
)

// ErrForbidden is returned when the backend refuses an authenticated caller.
var ErrForbidden = errors.New("access forbidden")
