// Package token decodes the claims segment of bearer tokens issued by the
// auth backend. Signatures are never checked here; the backend re-validates
// every token it receives.
package token

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cineticket/portal/internal/core/domain"
)

const segmentDelimiter = "."

// Claims is the identity payload embedded in a bearer token.
type Claims struct {
	jwt.RegisteredClaims

	Role  string `json:"role,omitempty"`
	Email string `json:"email,omitempty"`
}

// Codec decodes tokens and checks their expiry against a clock.
type Codec struct {
	parser *jwt.Parser
	now    func() time.Time
}

// Option configures a Codec.
type Option func(*Codec)

// WithClock overrides the wall clock used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCodec returns a Codec using the system clock unless overridden.
func NewCodec(opts ...Option) *Codec {
	c := &Codec{
		parser: jwt.NewParser(jwt.WithPaddingAllowed()),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Decode splits the token into its three segments and parses the middle one
// as claims. Every failure wraps domain.ErrMalformedToken.
func (c *Codec) Decode(raw string) (*Claims, error) {
	parts := strings.Split(raw, segmentDelimiter)
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments, got %d", domain.ErrMalformedToken, len(parts))
	}

	payload, err := c.parser.DecodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: decode claims segment: %v", domain.ErrMalformedToken, err)
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("%w: parse claims: %v", domain.ErrMalformedToken, err)
	}
	return &claims, nil
}

// IsExpired reports whether the token's exp claim is not after the current
// time. Tokens that fail to decode are reported as expired. A token without
// an exp claim never expires on the client side.
func (c *Codec) IsExpired(raw string) bool {
	claims, err := c.Decode(raw)
	if err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !c.now().Before(claims.ExpiresAt.Time)
}

var defaultCodec = NewCodec()

// Decode decodes raw with the system clock codec.
func Decode(raw string) (*Claims, error) {
	return defaultCodec.Decode(raw)
}

// IsExpired checks raw with the system clock codec.
func IsExpired(raw string) bool {
	return defaultCodec.IsExpired(raw)
}
