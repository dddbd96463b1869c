// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TradeLens Contributors

// Package config loads CLI configuration from the XDG config file merged
// with command-line flags. Flags win over the file; the file wins over
// defaults.
package config

import (
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/tradelens/tradelens/internal/xdg"
)

// Backend selectors.
const (
	BackendMock  = "mock"
	BackendLocal = "local"
)

// Config is the resolved CLI configuration.
type Config struct {
	LogFormat   string `koanf:"log-format"`
	StateDir    string `koanf:"state-dir"`
	MetricsAddr string `koanf:"metrics-addr"`
	Backend     string `koanf:"backend"`

	// LoginDelayMS is the simulated network latency of the mock backend.
	LoginDelayMS int `koanf:"login-delay-ms"`

	// Simulated device biometric state. A real mobile build reads these
	// from the platform; the CLI reads them from configuration.
	BiometricHardware   bool     `koanf:"biometric-hardware"`
	BiometricEnrolled   bool     `koanf:"biometric-enrolled"`
	BiometricModalities []string `koanf:"biometric-modalities"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogFormat:           "text",
		StateDir:            xdg.StateDir(),
		MetricsAddr:         "",
		Backend:             BackendMock,
		LoginDelayMS:        800,
		BiometricHardware:   true,
		BiometricEnrolled:   true,
		BiometricModalities: []string{"face", "fingerprint"},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return oops.Code("CONFIG_INVALID").Errorf("log-format must be 'json' or 'text', got %q", c.LogFormat)
	}
	if c.Backend != BackendMock && c.Backend != BackendLocal {
		return oops.Code("CONFIG_INVALID").Errorf("backend must be 'mock' or 'local', got %q", c.Backend)
	}
	if c.StateDir == "" {
		return oops.Code("CONFIG_INVALID").Errorf("state-dir is required")
	}
	if c.LoginDelayMS < 0 {
		return oops.Code("CONFIG_INVALID").Errorf("login-delay-ms cannot be negative")
	}
	return nil
}

// Load resolves configuration from defaults, then the YAML file at path
// (skipped when absent), then any changed flags. An empty path uses the
// default XDG location.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	cfg := Default()

	if path == "" {
		path = xdg.ConfigFile()
	}

	k := koanf.New(".")

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return cfg, oops.Code("CONFIG_PARSE_FAILED").With("path", path).Wrap(err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, oops.Code("CONFIG_READ_FAILED").With("path", path).Wrap(err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return cfg, oops.Code("CONFIG_FLAGS_FAILED").Wrap(err)
		}
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, oops.Code("CONFIG_DECODE_FAILED").Wrap(err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
