package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/ghlookup/internal/config"
	"github.com/Iron-Ham/ghlookup/internal/directory"
	"github.com/Iron-Ham/ghlookup/internal/errors"
	"github.com/Iron-Ham/ghlookup/internal/logging"
)

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search GitHub users and print the matches",
	Long: `Search GitHub users the same way the interactive screen does and print
one row per match. No pagination: only the first page of results is shown.

Examples:
  ghlookup search it-kamasutra
  ghlookup search "location:berlin language:go" --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

var userCmd = &cobra.Command{
	Use:   "user <login>",
	Short: "Print a GitHub user's profile",
	Long: `Print the profile shown on the detail card: login, id, avatar URL and
follower count.

Examples:
  ghlookup user octocat
  ghlookup user octocat --json`,
	Args: cobra.ExactArgs(1),
	RunE: runUser,
}

var lookupJSON bool

func init() {
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(userCmd)

	for _, c := range []*cobra.Command{searchCmd, userCmd} {
		c.Flags().BoolVar(&lookupJSON, "json", false, "print JSON instead of a table")
	}
}

// newDirectory builds the GitHub client from the loaded configuration.
func newDirectory() (directory.Directory, *logging.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := createLogger(config.StateDir(), cfg).WithComponent("cli")
	client, err := directory.NewClient(directory.OptionsFromConfig(cfg.Directory, logger))
	if err != nil {
		_ = logger.Close()
		return nil, nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}
	return client, logger, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	dir, logger, err := newDirectory()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	users, err := dir.SearchUsers(context.Background(), args[0])
	if err != nil {
		logger.Log(errors.GetSeverity(err).LogLevel(), "search failed", "term", args[0], "error", err.Error())
		return lookupError(err)
	}
	logger.Info("search completed", "term", args[0], "count", len(users))

	out := cmd.OutOrStdout()
	if lookupJSON {
		return writeJSON(out, users)
	}
	if len(users) == 0 {
		_, err := fmt.Fprintf(out, "No users found for %q\n", args[0])
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LOGIN\tID")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%d\n", u.Login, u.ID)
	}
	return w.Flush()
}

func runUser(cmd *cobra.Command, args []string) error {
	dir, logger, err := newDirectory()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	profile, err := dir.GetUser(context.Background(), args[0])
	if err != nil {
		logger.Log(errors.GetSeverity(err).LogLevel(), "profile fetch failed", "login", args[0], "error", err.Error())
		return lookupError(err)
	}
	logger.Info("profile loaded", "login", profile.Login, "id", profile.ID)

	out := cmd.OutOrStdout()
	if lookupJSON {
		return writeJSON(out, profile)
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Login:\t%s\n", profile.Login)
	fmt.Fprintf(w, "ID:\t%d\n", profile.ID)
	fmt.Fprintf(w, "Avatar:\t%s\n", profile.AvatarURL)
	fmt.Fprintf(w, "Followers:\t%d\n", profile.FollowerCount)
	return w.Flush()
}

// lookupError prefixes err with its short hint so the CLI prints a readable
// first line. Errors whose text is not fit for users print only the hint;
// the full error is in the log.
func lookupError(err error) error {
	if err == nil || errors.IsUserFacing(err) {
		return errors.Wrap(err, errors.Hint(err))
	}
	return fmt.Errorf("%s (see '%s logs --level warn' for details)", errors.Hint(err), config.AppName)
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
