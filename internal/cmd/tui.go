package cmd

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/Iron-Ham/ghlookup/internal/config"
	"github.com/Iron-Ham/ghlookup/internal/directory"
	"github.com/Iron-Ham/ghlookup/internal/logging"
	"github.com/Iron-Ham/ghlookup/internal/tui"
	"github.com/Iron-Ham/ghlookup/internal/tui/msg"
	"github.com/Iron-Ham/ghlookup/internal/tui/styles"
)

// isTerminal is replaced in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !isTerminal() {
		return fmt.Errorf("the interactive screen needs a terminal; use '%s search <term>' or '%s user <login>' instead",
			config.AppName, config.AppName)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := createLogger(config.StateDir(), cfg).WithSession(uuid.NewString())
	defer func() { _ = logger.Close() }()

	applyTheme(cfg.TUI.Theme, logger)

	client, err := directory.NewClient(directory.OptionsFromConfig(cfg.Directory, logger))
	if err != nil {
		return fmt.Errorf("failed to create GitHub client: %w", err)
	}

	logger.Info("starting", "base_url", client.BaseURL(), "theme", cfg.TUI.Theme)

	app := tui.New(client, tui.Options{Logger: logger})
	watchConfig(app, logger)

	if err := app.Run(); err != nil {
		logger.Error("tui exited with error", "error", err.Error())
		return fmt.Errorf("TUI error: %w", err)
	}
	logger.Info("exited")
	return nil
}

// createLogger creates a logger if logging is enabled in config.
// Returns a NopLogger if logging is disabled or if creation fails.
func createLogger(dir string, cfg *config.Config) *logging.Logger {
	if !cfg.Logging.Enabled {
		return logging.NopLogger()
	}

	rotationConfig := logging.RotationConfig{
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		Compress:   cfg.Logging.Compress,
	}

	logger, err := logging.NewLoggerWithRotation(dir, cfg.Logging.Level, rotationConfig)
	if err != nil {
		// Log creation failure shouldn't prevent the application from starting
		warnf("failed to create logger: %v", err)
		return logging.NopLogger()
	}
	return logger
}

// applyTheme loads custom themes and activates name.
func applyTheme(name string, logger *logging.Logger) {
	if _, errs := styles.DiscoverCustomThemes(); len(errs) > 0 {
		for _, err := range errs {
			logger.Warn("custom theme failed to load", "error", err.Error())
		}
	}
	if !styles.IsValidTheme(name) {
		logger.Warn("unknown theme, using default", "theme", name)
		name = string(styles.ThemeDefault)
	}
	styles.SetActiveTheme(styles.ThemeName(name))
}

// watchConfig re-applies the theme when the config file changes.
func watchConfig(app *tui.App, logger *logging.Logger) {
	if viper.ConfigFileUsed() == "" {
		return
	}
	viper.OnConfigChange(func(e fsnotify.Event) {
		onConfigChange(e, logger, func(theme string) {
			app.Send(msg.ConfigReloadedMsg{Theme: theme})
		})
	})
	viper.WatchConfig()
}

// onConfigChange validates the reloaded config and hands its theme to send.
func onConfigChange(e fsnotify.Event, logger *logging.Logger, send func(theme string)) {
	if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
		return
	}
	cfg, err := config.Load()
	if err != nil {
		logger.Warn("config reload rejected", "file", e.Name, "error", err.Error())
		return
	}
	if _, errs := styles.DiscoverCustomThemes(); len(errs) > 0 {
		logger.Warn("custom themes failed to reload", "count", len(errs))
	}
	theme := cfg.TUI.Theme
	if !styles.IsValidTheme(theme) {
		logger.Warn("unknown theme in reloaded config", "theme", theme)
		return
	}
	logger.Info("config reloaded", "file", e.Name, "theme", theme)
	send(theme)
}
