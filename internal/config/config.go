// Package config resolves the forwarder configuration from built-in
// defaults, an optional TOML file in the XDG config directory, and
// environment variables, in that order (environment wins).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/emiliopalmerini/agent-monitor/internal/util"
)

const (
	// DefaultURL is the monitor endpoint used when nothing else is configured.
	DefaultURL = "http://localhost:8787"

	// DefaultTimeout bounds a single delivery attempt end to end.
	DefaultTimeout = 5 * time.Second

	// DefaultTranscriptWindow is how many conversation entries are kept
	// when summarising a transcript.
	DefaultTranscriptWindow = 100

	// DefaultTextLimit caps message text length in characters.
	DefaultTextLimit = 2000
)

// Config holds the resolved forwarder configuration.
type Config struct {
	URL   string `envconfig:"AGENT_MONITOR_URL"`
	Debug bool   `envconfig:"AGENT_MONITOR_DEBUG"`
	Otel  Otel

	// Pipeline constants. Not tunable from the file or environment;
	// tests construct Config directly to vary them.
	Timeout          time.Duration `ignored:"true"`
	TranscriptWindow int           `ignored:"true"`
	TextLimit        int           `ignored:"true"`
}

// Otel configures the optional self-telemetry exporter.
type Otel struct {
	Enabled  bool   `envconfig:"AGENT_MONITOR_OTEL_ENABLED"`
	Endpoint string `envconfig:"AGENT_MONITOR_OTEL_ENDPOINT"`
	Insecure bool   `envconfig:"AGENT_MONITOR_OTEL_INSECURE"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		URL: DefaultURL,
		Otel: Otel{
			Endpoint: "localhost:4317",
			Insecure: true,
		},
		Timeout:          DefaultTimeout,
		TranscriptWindow: DefaultTranscriptWindow,
		TextLimit:        DefaultTextLimit,
	}
}

// Load resolves configuration using the default config file location.
func Load() (*Config, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom resolves configuration with path as the optional TOML file.
// A missing file is fine; a file that exists but cannot be parsed is not.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := mergeFile(&cfg, path); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process("", &cfg.Otel); err != nil {
		return nil, fmt.Errorf("failed to read otel environment: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	return &cfg, nil
}

// DefaultPath returns the default config file location, or "" when the
// home directory cannot be determined.
func DefaultPath() string {
	dir, err := util.GetXDGConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "config.toml")
}

// fileConfig mirrors Config with pointer fields so a merge can tell
// "absent from the file" apart from a zero value.
type fileConfig struct {
	URL   *string   `toml:"url"`
	Debug *bool     `toml:"debug"`
	Otel  *fileOtel `toml:"otel"`
}

type fileOtel struct {
	Enabled  *bool   `toml:"enabled"`
	Endpoint *string `toml:"endpoint"`
	Insecure *bool   `toml:"insecure"`
}

func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var file fileConfig
	md, err := toml.Decode(string(data), &file)
	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		fmt.Fprintf(os.Stderr, "warning: unknown config key %q in %s\n", key.String(), path)
	}

	if file.URL != nil {
		cfg.URL = *file.URL
	}
	if file.Debug != nil {
		cfg.Debug = *file.Debug
	}
	if file.Otel != nil {
		if file.Otel.Enabled != nil {
			cfg.Otel.Enabled = *file.Otel.Enabled
		}
		if file.Otel.Endpoint != nil {
			cfg.Otel.Endpoint = *file.Otel.Endpoint
		}
		if file.Otel.Insecure != nil {
			cfg.Otel.Insecure = *file.Otel.Insecure
		}
	}
	return nil
}
