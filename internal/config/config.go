// Package config loads the manager's own configuration from an optional
// TOML file. Every field has a default; running without a config file is
// the normal case.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/otelops/otelctl/internal/collector"
	"github.com/otelops/otelctl/internal/logger"
)

// DefaultScriptBaseURL is the published origin of the collector scripts.
const DefaultScriptBaseURL = "https://scripts.otelops.dev/collectors"

// DefaultFetchTimeout bounds a script download.
const DefaultFetchTimeout = 60 * time.Second

// Config is the manager configuration.
type Config struct {
	StateDir      string        `mapstructure:"state_dir"`
	ScriptBaseURL string        `mapstructure:"script_base_url"`
	FetchTimeout  time.Duration `mapstructure:"fetch_timeout"`
	Journal       bool          `mapstructure:"journal"`
	Log           logger.Config `mapstructure:"log"`
}

// Default returns the configuration used when no file overrides anything.
func Default() (Config, error) {
	stateDir, err := collector.DefaultStateDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		StateDir:      stateDir,
		ScriptBaseURL: DefaultScriptBaseURL,
		FetchTimeout:  DefaultFetchTimeout,
		Journal:       true,
		Log:           logger.Config{Level: "info"},
	}, nil
}

// Load reads the TOML config at path. An empty path means the default
// location (<state dir>/config.toml), where a missing file is fine; an
// explicit path must exist. A malformed file is an error either way.
func Load(path string) (Config, error) {
	def, err := Default()
	if err != nil {
		return Config{}, err
	}

	explicit := path != ""
	if !explicit {
		path = filepath.Join(def.StateDir, "config.toml")
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetDefault("state_dir", def.StateDir)
	v.SetDefault("script_base_url", def.ScriptBaseURL)
	v.SetDefault("fetch_timeout", def.FetchTimeout)
	v.SetDefault("journal", def.Journal)
	v.SetDefault("log.level", def.Log.Level)

	if err := v.ReadInConfig(); err != nil {
		if explicit || !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.StateDir, err = expandHome(cfg.StateDir)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// expandHome resolves a leading "~/" against the user's home directory.
func expandHome(p string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(p[1:], "/")), nil
	}
	return p, nil
}
