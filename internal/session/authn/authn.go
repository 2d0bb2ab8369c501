// Package authn attaches the session's bearer token to outbound requests.
package authn

import (
	"net/http"

	"github.com/cineticket/portal/internal/core/ports"
)

const bearerPrefix = "Bearer "

// Authorize returns a copy of req carrying an Authorization header when tok
// is non-empty. Without a token req is returned unchanged.
func Authorize(req *http.Request, tok string) *http.Request {
	if tok == "" {
		return req
	}
	out := req.Clone(req.Context())
	out.Header.Set("Authorization", bearerPrefix+tok)
	return out
}

// Transport is an http.RoundTripper that authorizes every request with the
// token Source holds at the time of the call.
type Transport struct {
	Base   http.RoundTripper
	Source ports.TokenSource
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	tok := ""
	if t.Source != nil {
		tok = t.Source.CurrentToken()
	}
	return t.base().RoundTrip(Authorize(req, tok))
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}
