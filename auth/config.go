package auth

import (
	"github.com/skillsenselab/secureapi/auth/password"
	"github.com/skillsenselab/secureapi/auth/token"
)

// Config groups the settings of the authentication layer.
type Config struct {
	// Token configures issuance and verification of bearer tokens.
	Token token.Config `mapstructure:"token"`

	// Password configures the credential hasher.
	Password password.Config `mapstructure:"password"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	c.Token.ApplyDefaults()
	c.Password.ApplyDefaults()
}

// Validate checks the nested configurations.
func (c *Config) Validate() error {
	if err := c.Token.Validate(); err != nil {
		return err
	}
	return c.Password.Validate()
}
