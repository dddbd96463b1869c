// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TradeLens Contributors

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradelens/tradelens/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir()) // no config file exists

	cfg, err := config.Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, config.BackendMock, cfg.Backend)
	assert.Equal(t, 800, cfg.LoginDelayMS)
	assert.True(t, cfg.BiometricHardware)
	assert.Equal(t, []string{"face", "fingerprint"}, cfg.BiometricModalities)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
log-format: json
backend: local
login-delay-ms: 0
biometric-enrolled: false
`)

	cfg, err := config.Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, config.BackendLocal, cfg.Backend)
	assert.Equal(t, 0, cfg.LoginDelayMS)
	assert.False(t, cfg.BiometricEnrolled)
	// untouched keys keep defaults
	assert.True(t, cfg.BiometricHardware)
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, "log-format: json\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-format", "text", "")
	require.NoError(t, flags.Set("log-format", "text"))

	cfg, err := config.Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_UnchangedFlagsDoNotOverrideFile(t *testing.T) {
	path := writeConfig(t, "backend: local\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("backend", "mock", "")

	cfg, err := config.Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, config.BackendLocal, cfg.Backend)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "log-format: [unclosed\n")

	_, err := config.Load(path, nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{"defaults are valid", func(*config.Config) {}, false},
		{"bad log format", func(c *config.Config) { c.LogFormat = "xml" }, true},
		{"bad backend", func(c *config.Config) { c.Backend = "cloud" }, true},
		{"empty state dir", func(c *config.Config) { c.StateDir = "" }, true},
		{"negative delay", func(c *config.Config) { c.LoginDelayMS = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
