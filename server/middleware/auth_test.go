package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/secureapi/auth/authctx"
	"github.com/skillsenselab/secureapi/auth/token"
	apperrors "github.com/skillsenselab/secureapi/errors"
	"github.com/skillsenselab/secureapi/logger"
	"github.com/skillsenselab/secureapi/user"
)

type fakeUserStore struct {
	users    map[string]*user.User
	failWith error
}

func (f *fakeUserStore) FindByUsername(_ context.Context, username string) (*user.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	u, ok := f.users[username]
	if !ok {
		return nil, apperrors.NotFound("user", "")
	}
	return u, nil
}

func (f *fakeUserStore) Create(_ context.Context, u *user.User) (*user.User, error) {
	f.users[u.Username] = u
	return u, nil
}

func newGateRouter(t *testing.T, store user.Store, now time.Time) (*gin.Engine, *token.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := token.NewService(token.Config{
		Secret: "gate-test-secret",
		TTL:    15 * time.Minute,
	}, token.WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("token.NewService() error = %v", err)
	}

	r := gin.New()
	r.Use(Authenticate(tokens, store, logger.NewDefault("test"), nil))
	r.GET("/probe", func(c *gin.Context) {
		p, ok := authctx.FromContext(c.Request.Context())
		body := gin.H{"authenticated": ok}
		if ok {
			body["username"] = p.Username
			body["authority"] = p.Authority
		}
		c.JSON(http.StatusOK, body)
	})
	return r, tokens
}

func probe(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate_AnonymousPassThrough(t *testing.T) {
	store := &fakeUserStore{users: map[string]*user.User{}}
	now := time.Now()
	r, tokens := newGateRouter(t, store, now)

	expired, err := token.NewService(token.Config{
		Secret: "gate-test-secret",
		TTL:    15 * time.Minute,
	}, token.WithClock(func() time.Time { return now.Add(-time.Hour) }))
	if err != nil {
		t.Fatalf("token.NewService() error = %v", err)
	}
	expiredToken, _ := expired.Issue("bob", nil)

	validForGhost, _ := tokens.Issue("ghost", nil)

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic Ym9iOnNlY3JldA=="},
		{"lowercase scheme", "bearer abc.def.ghi"},
		{"empty bearer", "Bearer "},
		{"garbage token", "Bearer not-a-token"},
		{"expired token", "Bearer " + expiredToken},
		{"unknown subject", "Bearer " + validForGhost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := probe(r, tt.header)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200 (gate must not reject)", w.Code)
			}
			if !strings.Contains(w.Body.String(), `"authenticated":false`) {
				t.Errorf("request was not anonymous: %s", w.Body.String())
			}
		})
	}
}

func TestAuthenticate_ValidToken(t *testing.T) {
	store := &fakeUserStore{users: map[string]*user.User{
		"bob": {Username: "bob", Role: user.RoleStandard},
	}}
	now := time.Now()
	r, tokens := newGateRouter(t, store, now)

	raw, err := tokens.Issue("bob", nil)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	w := probe(r, "Bearer "+raw)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"authenticated":true`) {
		t.Errorf("request was anonymous: %s", body)
	}
	if !strings.Contains(body, `"username":"bob"`) {
		t.Errorf("missing username: %s", body)
	}
	if !strings.Contains(body, `"authority":"ROLE_standard"`) {
		t.Errorf("missing authority: %s", body)
	}
}

func TestAuthenticate_RoleReflectsStore(t *testing.T) {
	// The token was issued while bob was standard; the store now says admin.
	// The fresh role must win.
	store := &fakeUserStore{users: map[string]*user.User{
		"bob": {Username: "bob", Role: user.RoleAdmin},
	}}
	r, tokens := newGateRouter(t, store, time.Now())

	raw, _ := tokens.Issue("bob", map[string]any{"role": "standard"})
	w := probe(r, "Bearer "+raw)
	if !strings.Contains(w.Body.String(), `"authority":"ROLE_admin"`) {
		t.Errorf("authority not re-derived from store: %s", w.Body.String())
	}
}

func TestAuthenticate_StoreOutage(t *testing.T) {
	store := &fakeUserStore{
		users:    map[string]*user.User{"bob": {Username: "bob", Role: user.RoleStandard}},
		failWith: apperrors.ServiceUnavailable("database"),
	}
	r, tokens := newGateRouter(t, store, time.Now())

	raw, _ := tokens.Issue("bob", nil)
	w := probe(r, "Bearer "+raw)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 (outage must not look like bad credentials)", w.Code)
	}
	if !strings.Contains(w.Body.String(), string(apperrors.ErrCodeServiceUnavailable)) {
		t.Errorf("body missing error code: %s", w.Body.String())
	}
}

func TestRequireAuthenticated(t *testing.T) {
	store := &fakeUserStore{users: map[string]*user.User{
		"bob": {Username: "bob", Role: user.RoleStandard},
	}}
	now := time.Now()
	gin.SetMode(gin.TestMode)

	tokens, err := token.NewService(token.Config{Secret: "s", TTL: time.Hour},
		token.WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("token.NewService() error = %v", err)
	}

	r := gin.New()
	r.Use(Authenticate(tokens, store, logger.NewDefault("test"), nil))
	r.GET("/private", RequireAuthenticated(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: status = %d, want 401", w.Code)
	}

	raw, _ := tokens.Issue("bob", nil)
	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("authenticated: status = %d, want 200", w.Code)
	}
}

func TestRequirePermission(t *testing.T) {
	store := &fakeUserStore{users: map[string]*user.User{
		"bob":   {Username: "bob", Role: user.RoleStandard},
		"alice": {Username: "alice", Role: user.RoleAdmin},
	}}
	now := time.Now()
	gin.SetMode(gin.TestMode)

	tokens, err := token.NewService(token.Config{Secret: "s", TTL: time.Hour},
		token.WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("token.NewService() error = %v", err)
	}

	adminOnly := CheckerFunc(func(authority, permission string) bool {
		return authority == "ROLE_admin"
	})

	r := gin.New()
	r.Use(Authenticate(tokens, store, logger.NewDefault("test"), nil))
	r.DELETE("/thing", RequirePermission(adminOnly, "thing:delete"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	send := func(username string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodDelete, "/thing", nil)
		if username != "" {
			raw, _ := tokens.Issue(username, nil)
			req.Header.Set("Authorization", "Bearer "+raw)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	if w := send(""); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: status = %d, want 401", w.Code)
	}
	if w := send("bob"); w.Code != http.StatusForbidden {
		t.Errorf("standard user: status = %d, want 403", w.Code)
	}
	if w := send("alice"); w.Code != http.StatusNoContent {
		t.Errorf("admin: status = %d, want 204", w.Code)
	}
}

// CheckerFunc adapts a function to the Checker interface for tests.
type CheckerFunc func(authority, permission string) bool

func (f CheckerFunc) HasPermission(authority, permission string) bool {
	return f(authority, permission)
}
