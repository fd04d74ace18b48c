// Package security provides TLS configuration for serving the API directly
// without a terminating proxy in front.
package security

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

// TLSConfig holds the server's TLS settings. All fields empty means the
// server listens for plain HTTP.
type TLSConfig struct {
	// CertFile is the path to the server certificate (PEM).
	CertFile string `mapstructure:"cert_file"`

	// KeyFile is the path to the server private key (PEM).
	KeyFile string `mapstructure:"key_file"`

	// ClientCAFile, when set, requires and verifies client certificates
	// signed by this CA (mTLS).
	ClientCAFile string `mapstructure:"client_ca_file"`

	// MinVersion is the minimum TLS version. Defaults to TLS 1.2.
	MinVersion uint16 `mapstructure:"min_version"`
}

// IsEnabled reports whether TLS serving is configured.
func (c *TLSConfig) IsEnabled() bool {
	return c != nil && c.CertFile != "" && c.KeyFile != ""
}

// Validate checks that the TLS configuration is consistent.
func (c *TLSConfig) Validate() error {
	if c == nil {
		return nil
	}
	if (c.CertFile != "") != (c.KeyFile != "") {
		return fmt.Errorf("security/tls: cert_file and key_file must be provided together")
	}
	return nil
}

// Build creates a *tls.Config for the server. Returns nil when TLS is not
// configured.
func (c *TLSConfig) Build() (*tls.Config, error) {
	if !c.IsEnabled() {
		return nil, nil
	}

	cert, err := tls.LoadX509KeyPair(c.CertFile, c.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("security/tls: failed to load server certificate: %w", err)
	}

	minVersion := c.MinVersion
	if minVersion == 0 {
		minVersion = tls.VersionTLS12
	}

	cfg := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   minVersion,
	}

	if c.ClientCAFile != "" {
		ca, err := os.ReadFile(c.ClientCAFile)
		if err != nil {
			return nil, fmt.Errorf("security/tls: failed to read client CA file: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(ca) {
			return nil, fmt.Errorf("security/tls: failed to parse client CA certificate")
		}
		cfg.ClientCAs = pool
		cfg.ClientAuth = tls.RequireAndVerifyClientCert
	}

	return cfg, nil
}
