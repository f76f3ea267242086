package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"gitexec.dev/gitexec/internal/git"
)

// Environment overrides
const (
	EnvGitBinary      = "GITEXEC_GIT_BINARY"
	EnvCommandTimeout = "GITEXEC_COMMAND_TIMEOUT"
	EnvMinGitVersion  = "GITEXEC_MIN_GIT_VERSION"
)

// Config represents the user configuration
type Config struct {
	GitBinary      string        `yaml:"git_binary,omitempty"`
	CommandTimeout time.Duration `yaml:"command_timeout,omitempty"`
	// TolerateExitOne adds subcommands to the default exit policy
	TolerateExitOne []string `yaml:"tolerate_exit_one,omitempty"`
	LogFile         string   `yaml:"log_file,omitempty"`
	MinGitVersion   string   `yaml:"min_git_version,omitempty"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		GitBinary:     git.DefaultBinary,
		MinGitVersion: git.MinimumVersion,
	}
}

// Load reads the config file from Path() and applies environment overrides
func Load() (*Config, error) {
	return LoadFile(Path())
}

// LoadFile reads path and applies environment overrides. A missing file
// yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- path comes from Dir()
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvGitBinary); v != "" {
		c.GitBinary = v
	}
	if v := os.Getenv(EnvMinGitVersion); v != "" {
		c.MinGitVersion = v
	}
	if v := os.Getenv(EnvCommandTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvCommandTimeout, v, err)
		}
		c.CommandTimeout = d
	}
	return nil
}

// Save writes the configuration to path, creating its directory
func (c *Config) Save(path string) error {
	if path == "" {
		return fmt.Errorf("no configuration directory available")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// ExitPolicy returns the default policy extended with TolerateExitOne
func (c *Config) ExitPolicy() git.ExitPolicy {
	return git.DefaultExitPolicy().With(c.TolerateExitOne...)
}

// RunnerOptions translates the configuration into runner options
func (c *Config) RunnerOptions(logger *slog.Logger) []git.RunnerOption {
	return []git.RunnerOption{
		git.WithBinary(c.GitBinary),
		git.WithTimeout(c.CommandTimeout),
		git.WithExitPolicy(c.ExitPolicy()),
		git.WithLogger(logger),
	}
}
