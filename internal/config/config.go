// Package config loads mess settings from an optional YAML file, MESS_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"mess/internal/app"
)

const (
	envPrefix = "MESS_"

	KeyBasePath   = "base_path"
	KeyTargetPath = "target_path"
	KeyColor      = "color"
	KeyVerbose    = "verbose"

	maxConfigFileSize = 64 * 1024
)

// ErrNoBaseDir means neither an override nor a platform data directory is available.
var ErrNoBaseDir = errors.New("could not find application directory")

type Config struct {
	BasePath   string        `koanf:"base_path"`
	TargetPath string        `koanf:"target_path"`
	Color      app.ColorMode `koanf:"color"`
	Verbose    bool          `koanf:"verbose"`
}

type Options struct {
	// ConfigFile is an explicit config path. When empty the default location
	// is tried and silently skipped if absent.
	ConfigFile string
	// Flags holds command-line values the user actually set, keyed by config key.
	Flags map[string]any
}

func DefaultConfig() Config {
	return Config{Color: app.ColorAuto}
}

func DefaultConfigFile() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config directory: %w", err)
	}
	return filepath.Join(dir, "mess", "config.yaml"), nil
}

func Load(opts Options) (*Config, error) {
	k := koanf.New(".")

	if err := loadFile(k, opts.ConfigFile); err != nil {
		return nil, err
	}

	// MESS_BASE_PATH -> base_path. Empty variables are skipped so they do
	// not mask the config file.
	if err := k.Load(env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		return strings.ToLower(strings.TrimPrefix(key, envPrefix)), value
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	for key, value := range opts.Flags {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("apply flag %s: %w", key, err)
		}
	}

	cfg := DefaultConfig()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Color == "" {
		cfg.Color = app.ColorAuto
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFile(k *koanf.Koanf, path string) error {
	explicit := path != ""
	if !explicit {
		def, err := DefaultConfigFile()
		if err != nil {
			return nil
		}
		path = def
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("config file %s is a directory", path)
	}
	if info.Size() > maxConfigFileSize {
		return fmt.Errorf("config file %s too large (%d bytes)", path, info.Size())
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Color {
	case app.ColorAuto, app.ColorAlways, app.ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.Color)
	}
	return nil
}

// ResolveBasePath returns the absolute base directory, falling back to the
// platform data directory when none is configured.
func (c *Config) ResolveBasePath() (string, error) {
	if c.BasePath != "" {
		return app.NormalizePath(c.BasePath)
	}
	dir, err := app.DefaultDataDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoBaseDir, err)
	}
	return dir, nil
}
