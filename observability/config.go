package observability

import (
	"fmt"
	"time"
)

// Config configures OpenTelemetry metric and trace export. Disabled by
// default; the service runs fine without a collector.
type Config struct {
	// Enabled turns on OTLP export.
	Enabled bool `mapstructure:"enabled"`

	// Endpoint is the OTLP HTTP endpoint host:port (e.g. "localhost:4318").
	Endpoint string `mapstructure:"endpoint"`

	// Insecure allows plain HTTP connections to the collector.
	Insecure bool `mapstructure:"insecure"`

	// Interval is the metric export interval.
	Interval time.Duration `mapstructure:"interval"`

	// SampleRate is the trace sampling rate (0.0 to 1.0).
	SampleRate float64 `mapstructure:"sample_rate"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.Interval == 0 {
		c.Interval = 15 * time.Second
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Endpoint == "" {
		return fmt.Errorf("observability endpoint is required when enabled")
	}
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("sample_rate must be between 0 and 1 (got %v)", c.SampleRate)
	}
	return nil
}
