// Package config loads the fxclone command line configuration.
//
// Values come, lowest precedence first, from the built-in defaults, an
// fxclone.toml file and FXCLONE_* environment variables. Flags are applied
// on top by the command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/gogpu/fxclone/fxload"
)

const (
	// AppName is the application name.
	AppName = "fxclone"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "fxclone"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"
	// EnvPrefix prefixes the environment variables read by Load.
	EnvPrefix = "FXCLONE"

	// FormatAuto picks the fixture format from the file extension.
	FormatAuto = "auto"
)

// Config is the resolved configuration.
type Config struct {
	// Budget caps the live bytes of a clone. Zero means unlimited.
	Budget int `mapstructure:"budget"`
	// Parallel clones the top-level sequences of a module concurrently.
	Parallel bool `mapstructure:"parallel"`
	// LogLevel is one of debug, info, warn, error or fatal.
	LogLevel string `mapstructure:"log_level"`
	// Format is the fixture format: auto, toml or yaml.
	Format string `mapstructure:"format"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Budget:   0,
		Parallel: false,
		LogLevel: "info",
		Format:   FormatAuto,
	}
}

// LoadOptions selects where Load looks for a config file.
type LoadOptions struct {
	// ConfigFilePath, when set, is the only file read. It must exist.
	ConfigFilePath string

	// WorkDir is searched first. Empty means the current directory.
	WorkDir string

	// ConfigDirPath replaces the per-user config directory.
	ConfigDirPath string
}

// ConfigDir returns the per-user configuration directory,
// $XDG_CONFIG_HOME/fxclone or ~/.config/fxclone.
func ConfigDir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, AppName), nil
}

// Load resolves the configuration.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("budget", defaults.Budget)
	v.SetDefault("parallel", defaults.Parallel)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("format", defaults.Format)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if opts.ConfigFilePath != "" {
		if _, err := os.Stat(opts.ConfigFilePath); err != nil {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
		v.SetConfigFile(opts.ConfigFilePath)
		v.SetConfigType(ConfigFileExt)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", opts.ConfigFilePath, err)
		}
	} else {
		v.SetConfigName(ConfigFileName)
		v.SetConfigType(ConfigFileExt)
		workDir := opts.WorkDir
		if workDir == "" {
			workDir = "."
		}
		v.AddConfigPath(workDir)

		cfgDir := opts.ConfigDirPath
		if cfgDir == "" {
			dir, err := ConfigDir()
			if err != nil {
				return nil, err
			}
			cfgDir = dir
		}
		v.AddConfigPath(cfgDir)

		if err := v.ReadInConfig(); err != nil {
			// No config file is fine; defaults and env apply.
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		if cfg.File != "" {
			return nil, fmt.Errorf("%s: %w", cfg.File, err)
		}
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the value ranges.
func (c *Config) Validate() error {
	if c.Budget < 0 {
		return fmt.Errorf("budget must not be negative, got %d", c.Budget)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.Format != FormatAuto {
		if _, err := fxload.ParseFormat(c.Format); err != nil {
			return fmt.Errorf("format: %w", err)
		}
	}
	return nil
}

// Level returns the parsed log level. It is only meaningful after Validate.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// FixtureFormat returns the format used to read path.
func (c *Config) FixtureFormat(path string) (fxload.Format, error) {
	if c.Format == FormatAuto || c.Format == "" {
		return fxload.FormatOf(path)
	}
	return fxload.ParseFormat(c.Format)
}
