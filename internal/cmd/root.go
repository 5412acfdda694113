package cmd

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/ghlookup/internal/config"
)

// EnvPrefix prefixes every environment override, e.g. GHLOOKUP_TUI_THEME.
const EnvPrefix = "GHLOOKUP"

var rootCmd = &cobra.Command{
	Use:   config.AppName,
	Short: "Search GitHub users from the terminal",
	Long: `ghlookup searches GitHub users and shows a short-lived detail card
for the one you pick. Type a query, press enter to search, then move to the
result list and select a user. The card clears itself after ten seconds.

Run without arguments to open the interactive screen. The search and user
subcommands print the same data for scripts.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Assigned here rather than in the literal to break the
	// rootCmd -> runTUI -> createLogger -> warnf -> rootCmd initialization cycle.
	rootCmd.RunE = runTUI

	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $XDG_CONFIG_HOME/ghlookup/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug/info/warn/error)")
	rootCmd.PersistentFlags().String("base-url", "", "GitHub API base URL (for GitHub Enterprise)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("directory.base_url", rootCmd.PersistentFlags().Lookup("base-url"))
}

func initConfig() {
	// A .env file in the working directory may supply the token.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		warnf("failed to load .env: %v", err)
	}

	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix(EnvPrefix)
	// GHLOOKUP_DIRECTORY_BASE_URL for directory.base_url
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// The token also honours the variable most GitHub tooling reads.
	_ = viper.BindEnv("directory.token", EnvPrefix+"_DIRECTORY_TOKEN", "GITHUB_TOKEN")

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

func warnf(format string, args ...any) {
	rootCmd.PrintErrf("Warning: "+format+"\n", args...)
}
