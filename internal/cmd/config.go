package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/ghlookup/internal/config"
	"github.com/Iron-Ham/ghlookup/internal/logging"
	"github.com/Iron-Ham/ghlookup/internal/tui/styles"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify ghlookup configuration",
	Long: `View or modify ghlookup configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  ghlookup config set tui.theme nord
  ghlookup config set directory.timeout_seconds 5
  ghlookup config set logging.level debug

Valid keys:
  directory.base_url        - GitHub API base URL (empty for api.github.com)
  directory.timeout_seconds - Per-request timeout in seconds (1-300)
  directory.user_agent      - User-Agent header sent to GitHub
  tui.theme                 - Color theme (see 'ghlookup config theme list')
  logging.enabled           - Write a log file (true/false)
  logging.level             - Minimum level (debug/info/warn/error)
  logging.max_size_mb       - Rotate the log file past this size
  logging.max_backups       - Rotated files to keep
  logging.compress          - Gzip rotated files (true/false)

The token is deliberately not settable here; use GITHUB_TOKEN or
GHLOOKUP_DIRECTORY_TOKEN (a .env file in the working directory works too).`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at $XDG_CONFIG_HOME/ghlookup/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

// configKeyTypes lists the keys 'config set' accepts and their value types.
var configKeyTypes = map[string]string{
	"directory.base_url":        "string",
	"directory.timeout_seconds": "int",
	"directory.user_agent":      "string",
	"tui.theme":                 "string",
	"logging.enabled":           "bool",
	"logging.level":             "string",
	"logging.max_size_mb":       "int",
	"logging.max_backups":       "int",
	"logging.compress":          "bool",
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	out := cmd.OutOrStdout()
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "# Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintln(out, "# Config file: (none - using defaults)")
	}

	data, err := yaml.Marshal(configView(cfg))
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = out.Write(data)
	return err
}

// configView is cfg as nested maps keyed like the config file, with the
// token masked.
func configView(cfg *config.Config) map[string]any {
	token := ""
	if cfg.Directory.Token != "" {
		token = "(set)"
	}
	return map[string]any{
		"directory": map[string]any{
			"base_url":        cfg.Directory.BaseURL,
			"token":           token,
			"timeout_seconds": cfg.Directory.TimeoutSeconds,
			"user_agent":      cfg.Directory.UserAgent,
		},
		"tui": map[string]any{
			"theme": cfg.TUI.Theme,
		},
		"logging": map[string]any{
			"enabled":     cfg.Logging.Enabled,
			"level":       cfg.Logging.Level,
			"max_size_mb": cfg.Logging.MaxSizeMB,
			"max_backups": cfg.Logging.MaxBackups,
			"compress":    cfg.Logging.Compress,
		},
	}
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	typedValue, err := parseConfigValue(key, value)
	if err != nil {
		return err
	}

	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = config.ConfigFile()
	}
	if err := os.MkdirAll(filepath.Dir(configFile), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Reject values that break validation before touching the file.
	viper.Set(key, typedValue)
	if _, err := config.Load(); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	if err := setConfigValue(configFile, key, typedValue); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Set %s = %v\n", key, typedValue)
	fmt.Fprintf(out, "Config saved to %s\n", configFile)
	return nil
}

// parseConfigValue checks key and converts value to the key's type.
func parseConfigValue(key, value string) (any, error) {
	keyType, ok := configKeyTypes[key]
	if !ok {
		return nil, fmt.Errorf("unknown configuration key: %s\nRun 'ghlookup config set --help' to see valid keys", key)
	}

	switch keyType {
	case "bool":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		return b, nil
	case "int":
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected integer", key)
		}
		if n < 0 {
			return nil, fmt.Errorf("invalid value for %s: must be non-negative", key)
		}
		return n, nil
	}

	switch key {
	case "logging.level":
		if !slices.Contains(logging.ValidLevels(), strings.ToUpper(value)) {
			return nil, fmt.Errorf("invalid value for %s: %s\nValid options: %s",
				key, value, strings.ToLower(strings.Join(logging.ValidLevels(), ", ")))
		}
		return strings.ToLower(value), nil
	case "tui.theme":
		_, _ = styles.DiscoverCustomThemes()
		if !styles.IsValidTheme(value) {
			return nil, fmt.Errorf("invalid value for %s: %s\nValid options: %s",
				key, value, strings.Join(styles.ValidThemes(), ", "))
		}
	}
	return value, nil
}

// setConfigValue writes key=value into the YAML file at path, keeping every
// other key in the file as it is. Only keys present in the file are written,
// so defaults and environment overrides never end up on disk.
func setConfigValue(path, key string, value any) error {
	doc := map[string]any{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if doc == nil {
			doc = map[string]any{}
		}
	case !os.IsNotExist(err):
		return fmt.Errorf("failed to read config file: %w", err)
	}

	parts := strings.Split(key, ".")
	node := doc
	for _, p := range parts[:len(parts)-1] {
		child, ok := node[p].(map[string]any)
		if !ok {
			child = map[string]any{}
			node[p] = child
		}
		node = child
	}
	node[parts[len(parts)-1]] = value

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// defaultConfigContent is the commented file written by 'config init'.
const defaultConfigContent = `# ghlookup configuration

# GitHub API access
directory:
  # API base URL; leave empty for https://api.github.com/
  # GitHub Enterprise: https://ghe.example.com/api/v3/
  base_url: ""
  # Per-request timeout in seconds
  timeout_seconds: 10
  # User-Agent header sent with every request
  user_agent: ghlookup
  # The token is read from GITHUB_TOKEN or GHLOOKUP_DIRECTORY_TOKEN.

# Terminal user interface
tui:
  # Color theme: default, monokai, dracula, nord or a custom theme name
  theme: default

# Log file under $XDG_STATE_HOME/ghlookup
logging:
  enabled: true
  # debug, info, warn or error
  level: info
  # Rotate past this size and keep this many old files
  max_size_mb: 5
  max_backups: 2
  # Gzip rotated files
  compress: false
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'ghlookup config set' to modify values", configFile)
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(configFile, []byte(defaultConfigContent), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created config file at %s\n", configFile)
	fmt.Fprintln(out, "Edit this file to customize ghlookup. Theme changes apply while the screen is open.")
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", config.ConfigFile())
	}

	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", config.ConfigFile())
	fmt.Fprintln(out, "  2. ./config.yaml (current directory)")
	fmt.Fprintf(out, "\nEnvironment variables: %s_* (e.g., %s_TUI_THEME)\n", EnvPrefix, EnvPrefix)
	fmt.Fprintf(out, "Logs: %s\n", filepath.Join(config.StateDir(), logging.LogFileName))
	return nil
}
