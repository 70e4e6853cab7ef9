package config

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Config is the top-level document read by Load.
type Config struct {
	Machine MachineConfig `json:"machine" yaml:"machine" toml:"machine"`
	Tracing TracingConfig `json:"tracing" yaml:"tracing" toml:"tracing"`
}

// DefaultConfig returns defaults for every section.
func DefaultConfig() Config {
	return Config{
		Machine: DefaultMachineConfig("default"),
		Tracing: DefaultTracingConfig(),
	}
}

// Merge applies the non-zero values of source to c section by section.
func (c *Config) Merge(source *Config) {
	c.Machine.Merge(&source.Machine)
	c.Tracing.Merge(&source.Tracing)
}

func (c *Config) Validate() error {
	return c.Machine.Validate()
}

// Load downloads the document at URL, decodes it according to its
// extension, and merges it over DefaultConfig.
func Load(ctx context.Context, URL string) (*Config, error) {
	data, err := afs.New().DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", URL, err)
	}

	var loaded Config
	if err := decode(URL, data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", URL, err)
	}

	cfg := DefaultConfig()
	cfg.Merge(&loaded)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decode(URL string, data []byte, target *Config) error {
	switch ext := strings.ToLower(path.Ext(URL)); ext {
	case ".json":
		return json.Unmarshal(data, target)
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, target)
	case ".toml":
		return toml.Unmarshal(data, target)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
