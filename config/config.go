/*
Package config holds the configuration of a state tree and of the
nodestate tool.

Configuration is read from YAML:

   trace_level: info          # debug | info | error
   ordering_checks: true      # assert bottom-up order during updates
   metrics:
     enabled: true
     namespace: uistate

Files with extension ".toml" are read as TOML, using the same keys.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v3"
)

// ErrTraceLevel is returned for unknown trace level names.
var ErrTraceLevel = errors.New("unknown trace level")

// Config is the configuration of a state tree.
type Config struct {
	TraceLevel     string  `yaml:"trace_level" toml:"trace_level"`
	OrderingChecks bool    `yaml:"ordering_checks" toml:"ordering_checks"`
	Metrics        Metrics `yaml:"metrics" toml:"metrics"`
}

// Metrics configures prometheus instrumentation.
type Metrics struct {
	Enabled   bool   `yaml:"enabled" toml:"enabled"`
	Namespace string `yaml:"namespace" toml:"namespace"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		TraceLevel: "error",
		Metrics: Metrics{
			Namespace: "uistate",
		},
	}
}

// Parse reads a configuration from YAML data. Keys missing in data keep
// their defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse configuration: %w", err)
	}
	return cfg.validate()
}

// ParseTOML reads a configuration from TOML data. Keys missing in data
// keep their defaults.
func ParseTOML(data []byte) (Config, error) {
	cfg := Default()
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse configuration: %w", err)
	}
	return cfg.validate()
}

func (c Config) validate() (Config, error) {
	if _, err := c.Level(); err != nil {
		return Default(), err
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = Default().Metrics.Namespace
	}
	return c, nil
}

// Load reads a configuration file, YAML or TOML depending on its
// extension. A missing file is not an error and results in the default
// configuration.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read configuration: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return ParseTOML(data)
	}
	return Parse(data)
}

// Level returns the tracing level for the configured trace level name.
func (c Config) Level() (tracing.TraceLevel, error) {
	switch strings.ToLower(c.TraceLevel) {
	case "", "error":
		return tracing.LevelError, nil
	case "info":
		return tracing.LevelInfo, nil
	case "debug":
		return tracing.LevelDebug, nil
	}
	return tracing.LevelError, fmt.Errorf("%w: %q", ErrTraceLevel, c.TraceLevel)
}

// ApplyTraceLevel sets the configured level on the tracers with the given keys.
func (c Config) ApplyTraceLevel(keys ...string) error {
	level, err := c.Level()
	if err != nil {
		return err
	}
	for _, key := range keys {
		tracing.Select(key).SetTraceLevel(level)
	}
	return nil
}
