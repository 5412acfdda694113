package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// DefaultSearchTerm is the query issued when the screen opens and restored by
// the reset action.
const DefaultSearchTerm = "it-kamasutra"

// AppName is used for config/state directories and as the window title.
const AppName = "ghlookup"

// Config represents the complete ghlookup configuration
type Config struct {
	Directory DirectoryConfig `mapstructure:"directory"`
	TUI       TUIConfig       `mapstructure:"tui"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// DirectoryConfig controls how the GitHub user directory is reached
type DirectoryConfig struct {
	// BaseURL overrides the API endpoint, e.g. for GitHub Enterprise
	// (default: "" which means https://api.github.com/)
	BaseURL string `mapstructure:"base_url"`
	// Token is an optional personal access token. Also read from GITHUB_TOKEN.
	Token string `mapstructure:"token"`
	// TimeoutSeconds bounds every search and profile request (default: 10)
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
	// UserAgent is sent with every request (default: "ghlookup")
	UserAgent string `mapstructure:"user_agent"`
}

// Timeout returns the request timeout as a time.Duration
func (c *DirectoryConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// TUIConfig controls the terminal UI
type TUIConfig struct {
	// Theme is the color theme (default: "default")
	// Options: "default", "monokai", "dracula", "nord", or a custom theme name
	Theme string `mapstructure:"theme"`
}

// LoggingConfig controls file logging
type LoggingConfig struct {
	// Enabled controls whether logs are written at all (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// MaxSizeMB is the log file size in megabytes before rotation (default: 5)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of rotated files to keep (default: 2)
	MaxBackups int `mapstructure:"max_backups"`
	// Compress gzips rotated files (default: false)
	Compress bool `mapstructure:"compress"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Directory: DirectoryConfig{
			BaseURL:        "",
			TimeoutSeconds: 10,
			UserAgent:      AppName,
		},
		TUI: TUIConfig{
			Theme: "default",
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			MaxSizeMB:  5,
			MaxBackups: 2,
			Compress:   false,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("directory.base_url", defaults.Directory.BaseURL)
	viper.SetDefault("directory.token", defaults.Directory.Token)
	viper.SetDefault("directory.timeout_seconds", defaults.Directory.TimeoutSeconds)
	viper.SetDefault("directory.user_agent", defaults.Directory.UserAgent)

	viper.SetDefault("tui.theme", defaults.TUI.Theme)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	viper.SetDefault("logging.compress", defaults.Logging.Compress)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// StateDir returns the directory holding logs and other runtime state
func StateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + AppName
	}
	return filepath.Join(home, ".local", "state", AppName)
}
