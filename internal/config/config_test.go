// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/lunar/pkg/errutil"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
script-path: /srv/lunar/scripts
multistate: true
log-format: text
tick-interval: 250ms
database-url: postgres://lunar@db/lunar
`)

	cfg, err := Load(path, newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, "/srv/lunar/scripts", cfg.ScriptPath)
	assert.True(t, cfg.MultiState)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 250*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, "postgres://lunar@db/lunar", cfg.DatabaseURL)
	assert.Equal(t, "**.lua", cfg.ScriptGlob, "unset keys keep their defaults")
	assert.Equal(t, "127.0.0.1:9100", cfg.MetricsAddr, "unset flags do not shadow defaults")
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, "log-format: text\ntraceback: false\n")

	cfg, err := Load(path, newFlags(t, "--log-format=json", "--traceback", "--tick-interval=1s"))
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.Traceback)
	assert.Equal(t, time.Second, cfg.TickInterval)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
		key  string
	}{
		{"unknown key", "scripts: here\n", "SCHEMA_VALIDATION_FAILED", ""},
		{"wrong type", "multistate: sometimes\n", "SCHEMA_VALIDATION_FAILED", ""},
		{"bad enum", "log-format: xml\n", "SCHEMA_VALIDATION_FAILED", ""},
		{"bad duration", "tick-interval: soon\n", "SCHEMA_VALIDATION_FAILED", ""},
		{"bad yaml", "log-format: [\n", "INVALID_YAML", ""},
		{"bad glob", "script-glob: \"[\"\n", "CONFIG_INVALID", "script-glob"},
		{"bad metrics addr", "metrics-addr: nowhere\n", "CONFIG_INVALID", "metrics-addr"},
		{"bad database url", "database-url: mysql://db\n", "CONFIG_INVALID", "database-url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body), nil)
			require.Error(t, err)
			errutil.AssertErrorCode(t, err, tt.code)
			if tt.key != "" {
				errutil.AssertErrorContext(t, err, "key", tt.key)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "CONFIG_READ_FAILED")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		key    string
	}{
		{"defaults", func(*Config) {}, ""},
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "log-level"},
		{"zero tick", func(c *Config) { c.TickInterval = 0 }, "tick-interval"},
		{"no script path", func(c *Config) { c.ScriptPath = "" }, "script-path"},
		{"disabled without path", func(c *Config) { c.Enabled = false; c.ScriptPath = "" }, ""},
		{"metrics disabled", func(c *Config) { c.MetricsAddr = "" }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.key == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			errutil.AssertErrorContext(t, err, "key", tt.key)
		})
	}
}
