package config

import "fmt"

// TelemetryConfig enables OpenTelemetry export of render metrics and error spans.
type TelemetryConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// Endpoint is the OTLP HTTP endpoint host:port.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure bool   `yaml:"insecure" mapstructure:"insecure"`
	// SampleRate is the trace sampling ratio between 0 and 1.
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
	// MetricInterval is the metric export interval in seconds.
	MetricInterval int `yaml:"metric_interval" mapstructure:"metric_interval"`
}

// ApplyDefaults applies default values to an enabled telemetry configuration.
func (c *TelemetryConfig) ApplyDefaults() {
	if !c.Enabled {
		return
	}
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
		c.Insecure = true
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.MetricInterval == 0 {
		c.MetricInterval = 15
	}
}

// Validate validates the telemetry configuration.
func (c *TelemetryConfig) Validate() error {
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("telemetry.sample_rate must be between 0 and 1 (got: %v)", c.SampleRate)
	}
	if c.MetricInterval < 0 {
		return fmt.Errorf("telemetry.metric_interval must be non-negative (got: %d)", c.MetricInterval)
	}
	return nil
}
