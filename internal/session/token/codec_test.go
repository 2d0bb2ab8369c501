package token

import (
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cineticket/portal/internal/core/domain"
)

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestDecode_ValidToken(t *testing.T) {
	codec := NewCodec(WithClock(func() time.Time { return fixedNow }))
	raw := signToken(t, jwt.MapClaims{
		"sub":   "maria@example.com",
		"role":  "ROLE_ADMIN",
		"email": "maria@example.com",
		"iat":   fixedNow.Add(-time.Minute).Unix(),
		"exp":   fixedNow.Add(time.Hour).Unix(),
	})

	claims, err := codec.Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if claims.Subject != "maria@example.com" {
		t.Fatalf("unexpected subject: %q", claims.Subject)
	}
	if claims.Role != "ROLE_ADMIN" {
		t.Fatalf("unexpected role: %q", claims.Role)
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.Time.Equal(fixedNow.Add(time.Hour)) {
		t.Fatalf("unexpected exp: %v", claims.ExpiresAt)
	}
}

func TestDecode_IgnoresSignature(t *testing.T) {
	raw := signToken(t, jwt.MapClaims{"sub": "x", "exp": fixedNow.Add(time.Hour).Unix()})
	tampered := raw[:len(raw)-4] + "AAAA"

	if _, err := Decode(tampered); err != nil {
		t.Fatalf("signature must not be verified: %v", err)
	}
}

func TestDecode_PaddedSegment(t *testing.T) {
	payload := base64.URLEncoding.EncodeToString([]byte(`{"sub":"joao","exp":4102444800}`))
	claims, err := Decode("e30." + payload + ".sig")
	if err != nil {
		t.Fatalf("decode padded: %v", err)
	}
	if claims.Subject != "joao" {
		t.Fatalf("unexpected subject: %q", claims.Subject)
	}
}

func TestDecode_Malformed(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"no delimiter":   "not-a-token",
		"two segments":   "a.b",
		"four segments":  "a.b.c.d",
		"bad base64":     "a.!!!.c",
		"not json":       "a.bm90LWpzb24.c",
		"exp not number": "a." + base64.RawURLEncoding.EncodeToString([]byte(`{"exp":"soon"}`)) + ".c",
	}

	codec := NewCodec(WithClock(func() time.Time { return fixedNow }))
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := codec.Decode(raw); !errors.Is(err, domain.ErrMalformedToken) {
				t.Fatalf("expected ErrMalformedToken, got %v", err)
			}
			if !codec.IsExpired(raw) {
				t.Fatalf("malformed token must read as expired")
			}
		})
	}
}

func TestIsExpired(t *testing.T) {
	codec := NewCodec(WithClock(func() time.Time { return fixedNow }))

	tests := []struct {
		name string
		exp  any
		want bool
	}{
		{"one second ago", fixedNow.Add(-time.Second).Unix(), true},
		{"a day ago", fixedNow.Add(-24 * time.Hour).Unix(), true},
		{"exactly now", fixedNow.Unix(), true},
		{"in one second", fixedNow.Add(time.Second).Unix(), false},
		{"in an hour", fixedNow.Add(time.Hour).Unix(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := signToken(t, jwt.MapClaims{"sub": "u", "exp": tt.exp})
			if got := codec.IsExpired(raw); got != tt.want {
				t.Fatalf("IsExpired = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsExpired_MissingExpClaim(t *testing.T) {
	codec := NewCodec(WithClock(func() time.Time { return fixedNow }))
	raw := signToken(t, jwt.MapClaims{"sub": "u"})

	if codec.IsExpired(raw) {
		t.Fatalf("token without exp should not be treated as expired")
	}
}
