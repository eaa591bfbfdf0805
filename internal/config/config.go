// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package config loads the lunar host configuration from YAML and flags.
package config

import (
	"net"
	"os"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/holomush/lunar/internal/logging"
)

// Config is the host configuration. Keys are shared by the YAML file, the
// command-line flags and the JSON schema.
type Config struct {
	Enabled        bool          `koanf:"enabled" json:"enabled" jsonschema:"description=Load and run scripts at all"`
	ScriptPath     string        `koanf:"script-path" json:"script-path" jsonschema:"description=Directory scanned for scripts"`
	ScriptGlob     string        `koanf:"script-glob" json:"script-glob" jsonschema:"description=Glob matched against slash-separated paths below script-path"`
	Traceback      bool          `koanf:"traceback" json:"traceback" jsonschema:"description=Log Lua stack traces of failed handlers"`
	MultiState     bool          `koanf:"multistate" json:"multistate" jsonschema:"description=Run one script state per map in addition to the world state"`
	LogFormat      string        `koanf:"log-format" json:"log-format" jsonschema:"enum=json,enum=text"`
	LogLevel       string        `koanf:"log-level" json:"log-level" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
	MetricsAddr    string        `koanf:"metrics-addr" json:"metrics-addr" jsonschema:"description=host:port for /metrics and health checks; empty disables"`
	TickInterval   time.Duration `koanf:"tick-interval" json:"tick-interval" jsonschema:"description=World update interval such as 100ms"`
	DatabaseURL    string        `koanf:"database-url" json:"database-url" jsonschema:"description=PostgreSQL URL backing lunar.kv_*; empty disables the store"`
	KVNamespace    string        `koanf:"kv-namespace" json:"kv-namespace" jsonschema:"description=Default namespace of lunar.kv_*"`
	AnnounceReload bool          `koanf:"announce-reload" json:"announce-reload" jsonschema:"description=Log reloads at info instead of debug"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Enabled:      true,
		ScriptPath:   "lua_scripts",
		ScriptGlob:   "**.lua",
		LogFormat:    "json",
		LogLevel:     "info",
		MetricsAddr:  "127.0.0.1:9100",
		TickInterval: 100 * time.Millisecond,
		KVNamespace:  "lunar",
	}
}

// RegisterFlags adds one flag per key to fs, defaulting to Default().
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.Bool("enabled", d.Enabled, "load and run scripts")
	fs.String("script-path", d.ScriptPath, "directory scanned for scripts")
	fs.String("script-glob", d.ScriptGlob, "glob selecting script files")
	fs.Bool("traceback", d.Traceback, "log Lua stack traces of failed handlers")
	fs.Bool("multistate", d.MultiState, "run one script state per map")
	fs.String("log-format", d.LogFormat, "log format (json or text)")
	fs.String("log-level", d.LogLevel, "log level (debug, info, warn, error)")
	fs.String("metrics-addr", d.MetricsAddr, "metrics and health listen address (empty disables)")
	fs.Duration("tick-interval", d.TickInterval, "world update interval")
	fs.String("database-url", d.DatabaseURL, "PostgreSQL URL for the script KV store")
	fs.String("kv-namespace", d.KVNamespace, "default script KV namespace")
	fs.Bool("announce-reload", d.AnnounceReload, "log reloads at info level")
}

// Load merges the built-in defaults, the YAML file at path (skipped when
// path is empty) and any flags explicitly set on fs, then validates the
// result.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, oops.In("config").Code("CONFIG_READ_FAILED").With("path", path).Wrap(err)
		}
		if err := ValidateYAML(data); err != nil {
			return nil, oops.In("config").With("path", path).Wrap(err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.In("config").Code("CONFIG_PARSE_FAILED").With("path", path).Wrap(err)
		}
	}

	if fs != nil {
		if err := k.Load(posflag.ProviderWithFlag(fs, ".", k, changedOnly(fs)), nil); err != nil {
			return nil, oops.In("config").Code("CONFIG_FLAGS_FAILED").Wrap(err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.In("config").Code("CONFIG_PARSE_FAILED").Wrap(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// changedOnly keeps flags the user set so unset flags never shadow the file.
func changedOnly(fs *pflag.FlagSet) func(*pflag.Flag) (string, any) {
	return func(f *pflag.Flag) (string, any) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(fs, f)
	}
}

// Validate checks field values that the types alone cannot express.
func (c *Config) Validate() error {
	switch c.LogFormat {
	case "json", "text":
	default:
		return invalid("log-format", c.LogFormat, "must be json or text")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return invalid("log-level", c.LogLevel, "must be debug, info, warn or error")
	}
	if c.TickInterval <= 0 {
		return invalid("tick-interval", c.TickInterval.String(), "must be positive")
	}
	if c.Enabled && c.ScriptPath == "" {
		return invalid("script-path", c.ScriptPath, "must be set when scripts are enabled")
	}
	if _, err := glob.Compile(c.ScriptGlob, '/'); err != nil {
		return invalid("script-glob", c.ScriptGlob, err.Error())
	}
	if c.MetricsAddr != "" {
		if _, _, err := net.SplitHostPort(c.MetricsAddr); err != nil {
			return invalid("metrics-addr", c.MetricsAddr, "must be host:port")
		}
	}
	if c.DatabaseURL != "" && !strings.HasPrefix(c.DatabaseURL, "postgres://") && !strings.HasPrefix(c.DatabaseURL, "postgresql://") {
		return invalid("database-url", "<redacted>", "must be a postgres:// or postgresql:// URL")
	}
	return nil
}

func invalid(key, value, reason string) error {
	return oops.In("config").Code("CONFIG_INVALID").
		With("key", key).
		With("value", value).
		Errorf("%s %s", key, reason)
}
