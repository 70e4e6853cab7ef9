package config

import (
	"fmt"
	"time"
)

const defaultShutdownTimeout = 5 * time.Second

// MachineConfig configures one state machine.
type MachineConfig struct {
	// Name identifies the machine in events and spans.
	Name string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`

	// Observer names a registered observability.Observer ("slog", "noop", ...).
	Observer string `json:"observer,omitempty" yaml:"observer,omitempty" toml:"observer,omitempty"`

	// ShutdownTimeout bounds how long Close waits for jobs to return, as a
	// time.ParseDuration string.
	ShutdownTimeout string `json:"shutdown_timeout,omitempty" yaml:"shutdown_timeout,omitempty" toml:"shutdown_timeout,omitempty"`
}

// DefaultMachineConfig returns a config that logs through slog and waits up
// to five seconds for jobs on Close.
func DefaultMachineConfig(name string) MachineConfig {
	return MachineConfig{
		Name:            name,
		Observer:        "slog",
		ShutdownTimeout: defaultShutdownTimeout.String(),
	}
}

func (c *MachineConfig) Merge(source *MachineConfig) {
	if source.Name != "" {
		c.Name = source.Name
	}

	if source.Observer != "" {
		c.Observer = source.Observer
	}

	if source.ShutdownTimeout != "" {
		c.ShutdownTimeout = source.ShutdownTimeout
	}
}

// ShutdownDeadline returns ShutdownTimeout as a duration, falling back to
// the default when unset or unparsable.
func (c MachineConfig) ShutdownDeadline() time.Duration {
	if c.ShutdownTimeout == "" {
		return defaultShutdownTimeout
	}
	d, err := time.ParseDuration(c.ShutdownTimeout)
	if err != nil || d <= 0 {
		return defaultShutdownTimeout
	}
	return d
}

func (c MachineConfig) Validate() error {
	if c.ShutdownTimeout == "" {
		return nil
	}
	d, err := time.ParseDuration(c.ShutdownTimeout)
	if err != nil {
		return fmt.Errorf("%w: shutdown_timeout: %v", ErrInvalid, err)
	}
	if d <= 0 {
		return fmt.Errorf("%w: shutdown_timeout must be > 0", ErrInvalid)
	}
	return nil
}
