package config

// TracingConfig controls the OpenTelemetry exporter installed by
// applications. Machines always create spans; without an installed exporter
// they go to the no-op provider.
type TracingConfig struct {
	Enabled        bool   `json:"enabled,omitempty" yaml:"enabled,omitempty" toml:"enabled,omitempty"`
	ServiceName    string `json:"service_name,omitempty" yaml:"service_name,omitempty" toml:"service_name,omitempty"`
	ServiceVersion string `json:"service_version,omitempty" yaml:"service_version,omitempty" toml:"service_version,omitempty"`

	// Output is a file path for exported spans; empty means stdout.
	Output string `json:"output,omitempty" yaml:"output,omitempty" toml:"output,omitempty"`
}

func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		ServiceName:    "statekit",
		ServiceVersion: "dev",
	}
}

func (c *TracingConfig) Merge(source *TracingConfig) {
	if source.Enabled {
		c.Enabled = true
	}

	if source.ServiceName != "" {
		c.ServiceName = source.ServiceName
	}

	if source.ServiceVersion != "" {
		c.ServiceVersion = source.ServiceVersion
	}

	if source.Output != "" {
		c.Output = source.Output
	}
}
