// Package token issues and verifies signed bearer tokens. The codec is
// stateless: everything a verifier needs lives in the token itself plus the
// shared secret, so no session state is held between requests.
package token

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Sentinel errors returned by Parse. Callers match with errors.Is; the
// wrapped cause carries the underlying library detail for logging.
var (
	// ErrTokenExpired means the token's signature verified but its lifetime
	// is over. A token whose expiry equals the current instant is expired.
	ErrTokenExpired = errors.New("token: expired")

	// ErrBadSignature means the signature does not match the payload, which
	// covers both tampered tokens and tokens signed with a different key.
	ErrBadSignature = errors.New("token: signature verification failed")

	// ErrTokenMalformed means the raw string is not a parseable token at all,
	// or was produced with a signing method the codec does not accept.
	ErrTokenMalformed = errors.New("token: malformed")
)

// Claims is the payload carried by every issued token.
type Claims struct {
	gojwt.RegisteredClaims

	// Custom holds application claims beyond the registered set.
	Custom map[string]any `json:"custom,omitempty"`
}

// Expired reports whether the claims are expired at the given instant.
// A missing expiry counts as expired; tokens without a lifetime are never
// issued here and must not verify.
func (c *Claims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return true
	}
	return !now.Before(c.ExpiresAt.Time)
}

// Service signs and verifies tokens with a single shared HMAC secret.
type Service struct {
	cfg Config
	now func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the time source. Tests use this to pin the clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a token service from the given config.
func NewService(cfg Config, opts ...Option) (*Service, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Service{
		cfg: cfg,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// TTL returns the configured token lifetime.
func (s *Service) TTL() time.Duration {
	return s.cfg.TTL
}

// Issue signs a new token for the given subject. The subject names the
// authenticated identity; custom claims ride along unverified by this layer.
func (s *Service) Issue(subject string, custom map[string]any) (string, error) {
	if subject == "" {
		return "", errors.New("token: subject is required")
	}

	now := s.now()
	claims := Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(s.cfg.TTL)),
		},
		Custom: custom,
	}

	tok := gojwt.NewWithClaims(s.cfg.signingMethod(), claims)
	signed, err := tok.SignedString(s.cfg.key())
	if err != nil {
		return "", fmt.Errorf("token: signing failed: %w", err)
	}
	return signed, nil
}

// Parse verifies the raw token string and returns its claims. Only the
// configured signing method is accepted; a token that names any other
// algorithm in its header is rejected before signature verification.
func (s *Service) Parse(raw string) (*Claims, error) {
	if raw == "" {
		return nil, ErrTokenMalformed
	}

	claims := &Claims{}
	_, err := gojwt.ParseWithClaims(raw, claims, s.keyFunc,
		gojwt.WithValidMethods([]string{string(s.cfg.Method)}),
		gojwt.WithExpirationRequired(),
		gojwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, classify(err)
	}

	// The library treats exp == now as valid with sub-second slack in some
	// paths; the boundary here is strict, so re-check against our clock.
	if claims.Expired(s.now()) {
		return nil, ErrTokenExpired
	}
	return claims, nil
}

// keyFunc returns the verification key after confirming the token's header
// names the configured method. WithValidMethods already enforces this; the
// check here keeps the codec safe even if the parse options drift.
func (s *Service) keyFunc(t *gojwt.Token) (any, error) {
	if t.Method.Alg() != string(s.cfg.Method) {
		return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
	}
	return s.cfg.key(), nil
}

// classify maps library errors onto the package sentinels.
func classify(err error) error {
	switch {
	case errors.Is(err, gojwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrTokenExpired, err)
	case errors.Is(err, gojwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %w", ErrBadSignature, err)
	case errors.Is(err, gojwt.ErrTokenMalformed),
		errors.Is(err, gojwt.ErrTokenUnverifiable),
		errors.Is(err, gojwt.ErrTokenRequiredClaimMissing):
		return fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	default:
		return fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	}
}
