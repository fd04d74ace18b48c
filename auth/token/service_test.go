package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

func newTestService(t *testing.T, now time.Time, mutate func(*Config)) *Service {
	t.Helper()
	cfg := Config{
		Secret: "test-secret-please-rotate",
		Issuer: "secureapi-test",
		TTL:    15 * time.Minute,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	svc, err := NewService(cfg, WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return svc
}

func TestService_IssueParse_RoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, now, nil)

	raw, err := svc.Issue("alice", map[string]any{"role": "standard"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if parts := strings.Split(raw, "."); len(parts) != 3 {
		t.Fatalf("Issue() produced %d segments, want 3", len(parts))
	}

	claims, err := svc.Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if claims.Subject != "alice" {
		t.Errorf("Subject = %q, want %q", claims.Subject, "alice")
	}
	if claims.Issuer != "secureapi-test" {
		t.Errorf("Issuer = %q, want %q", claims.Issuer, "secureapi-test")
	}
	if got := claims.Custom["role"]; got != "standard" {
		t.Errorf("Custom[role] = %v, want standard", got)
	}
	if !claims.IssuedAt.Time.Equal(now) {
		t.Errorf("IssuedAt = %v, want %v", claims.IssuedAt.Time, now)
	}
	if want := now.Add(15 * time.Minute); !claims.ExpiresAt.Time.Equal(want) {
		t.Errorf("ExpiresAt = %v, want %v", claims.ExpiresAt.Time, want)
	}
}

func TestService_Issue_EmptySubject(t *testing.T) {
	svc := newTestService(t, time.Now(), nil)
	if _, err := svc.Issue("", nil); err == nil {
		t.Fatal("Issue() with empty subject succeeded, want error")
	}
}

func TestService_Parse_Tampered(t *testing.T) {
	now := time.Now()
	svc := newTestService(t, now, nil)

	raw, err := svc.Issue("alice", nil)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// Flip one character in every position class of the token. Any single
	// edit must make verification fail, whichever segment it lands in.
	for _, idx := range []int{2, len(raw) / 2, len(raw) - 2} {
		tampered := []byte(raw)
		if tampered[idx] == 'A' {
			tampered[idx] = 'B'
		} else {
			tampered[idx] = 'A'
		}
		if string(tampered) == raw {
			continue
		}
		_, err := svc.Parse(string(tampered))
		if err == nil {
			t.Fatalf("Parse() accepted token tampered at index %d", idx)
		}
		if !errors.Is(err, ErrBadSignature) && !errors.Is(err, ErrTokenMalformed) {
			t.Errorf("Parse() tampered at %d: err = %v, want bad signature or malformed", idx, err)
		}
	}
}

func TestService_Parse_WrongSecret(t *testing.T) {
	now := time.Now()
	issuer := newTestService(t, now, nil)
	verifier := newTestService(t, now, func(c *Config) { c.Secret = "a-different-secret" })

	raw, err := issuer.Issue("alice", nil)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if _, err := verifier.Parse(raw); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("Parse() with wrong secret: err = %v, want ErrBadSignature", err)
	}
}

func TestService_Parse_ExpiryBoundary(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ttl := 15 * time.Minute

	tests := []struct {
		name    string
		now     time.Time
		expired bool
	}{
		{"well before expiry", issued.Add(ttl - time.Minute), false},
		{"one second before expiry", issued.Add(ttl - time.Second), false},
		{"exactly at expiry", issued.Add(ttl), true},
		{"one second after expiry", issued.Add(ttl + time.Second), true},
	}

	svc := newTestService(t, issued, func(c *Config) { c.TTL = ttl })
	raw, err := svc.Issue("alice", nil)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := tt.now
			verifier := newTestService(t, clock, func(c *Config) { c.TTL = ttl })
			_, err := verifier.Parse(raw)
			if tt.expired {
				if !errors.Is(err, ErrTokenExpired) {
					t.Fatalf("Parse() err = %v, want ErrTokenExpired", err)
				}
			} else if err != nil {
				t.Fatalf("Parse() error = %v, want valid", err)
			}
		})
	}
}

func TestService_Parse_AlgorithmConfusion(t *testing.T) {
	now := time.Now()
	svc := newTestService(t, now, nil)

	// A token signed with HS512 must not verify against an HS256 codec even
	// though it carries the right secret.
	other := gojwt.NewWithClaims(gojwt.SigningMethodHS512, gojwt.RegisteredClaims{
		Subject:   "alice",
		IssuedAt:  gojwt.NewNumericDate(now),
		ExpiresAt: gojwt.NewNumericDate(now.Add(time.Hour)),
	})
	raw, err := other.SignedString([]byte("test-secret-please-rotate"))
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	if _, err := svc.Parse(raw); err == nil {
		t.Fatal("Parse() accepted token signed with a different algorithm")
	}
}

func TestService_Parse_UnsignedRejected(t *testing.T) {
	now := time.Now()
	svc := newTestService(t, now, nil)

	unsigned := gojwt.NewWithClaims(gojwt.SigningMethodNone, gojwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: gojwt.NewNumericDate(now.Add(time.Hour)),
	})
	raw, err := unsigned.SignedString(gojwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	if _, err := svc.Parse(raw); err == nil {
		t.Fatal("Parse() accepted an unsigned token")
	}
}

func TestService_Parse_MissingExpiryRejected(t *testing.T) {
	now := time.Now()
	svc := newTestService(t, now, nil)

	noExp := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.RegisteredClaims{
		Subject: "alice",
	})
	raw, err := noExp.SignedString([]byte("test-secret-please-rotate"))
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	if _, err := svc.Parse(raw); err == nil {
		t.Fatal("Parse() accepted a token without an expiry claim")
	}
}

func TestService_Parse_Garbage(t *testing.T) {
	svc := newTestService(t, time.Now(), nil)
	for _, raw := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		if _, err := svc.Parse(raw); !errors.Is(err, ErrTokenMalformed) {
			t.Errorf("Parse(%q) err = %v, want ErrTokenMalformed", raw, err)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Secret: "s", Method: HS256, TTL: time.Minute}, false},
		{"missing secret", Config{Method: HS256, TTL: time.Minute}, true},
		{"bad method", Config{Secret: "s", Method: "RS256", TTL: time.Minute}, true},
		{"non-positive ttl", Config{Secret: "s", Method: HS256, TTL: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{Secret: "s"}
	cfg.ApplyDefaults()
	if cfg.Method != HS256 {
		t.Errorf("Method = %s, want HS256", cfg.Method)
	}
	if cfg.TTL != 15*time.Minute {
		t.Errorf("TTL = %s, want 15m", cfg.TTL)
	}
}
