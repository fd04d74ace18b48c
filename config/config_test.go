package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnvKeyVariants(t *testing.T) {
	variants := envKeyVariants("AUTH_TOKEN_SECRET")

	want := map[string]bool{
		"auth_token_secret": false,
		"auth.token.secret": false,
		"auth.token_secret": false,
	}
	for _, v := range variants {
		if _, ok := want[v]; ok {
			want[v] = true
		}
	}
	for k, found := range want {
		if !found {
			t.Errorf("envKeyVariants() missing %q, got %v", k, variants)
		}
	}

	if got := envKeyVariants("PORT"); len(got) != 1 || got[0] != "port" {
		t.Errorf("envKeyVariants(PORT) = %v, want [port]", got)
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfigFile(t, `
name: secureapi
environment: development
server:
  port: 9090
database:
  dsn: "file::memory:?cache=shared"
`)
	t.Setenv("AUTH_TOKEN_SECRET", "from-environment")

	cfg, err := Load("secureapi", WithConfigFile(path))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Auth.Token.Secret != "from-environment" {
		t.Errorf("Auth.Token.Secret = %q, want env value", cfg.Auth.Token.Secret)
	}
	if !cfg.Debug {
		t.Error("development environment should enable debug")
	}
	if cfg.Logging.ServiceName != "secureapi" {
		t.Errorf("Logging.ServiceName = %q, want secureapi", cfg.Logging.ServiceName)
	}
}

func TestLoad_MissingSecretFails(t *testing.T) {
	path := writeConfigFile(t, `
name: secureapi
environment: development
`)
	// Validation must refuse to start without a signing secret.
	t.Setenv("AUTH_TOKEN_SECRET", "")

	if _, err := Load("secureapi", WithConfigFile(path)); err == nil {
		t.Fatal("Load() without token secret succeeded, want error")
	}
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	path := writeConfigFile(t, `
name: secureapi
environment: sandbox
`)
	t.Setenv("AUTH_TOKEN_SECRET", "s3cret")

	if _, err := Load("secureapi", WithConfigFile(path)); err == nil {
		t.Fatal("Load() with unknown environment succeeded, want error")
	}
}

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	if cfg.Name != "secureapi" {
		t.Errorf("Name = %q, want secureapi", cfg.Name)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Auth.Token.TTL == 0 {
		t.Error("token TTL default not applied")
	}
}
