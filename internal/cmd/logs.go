package cmd

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/ghlookup/internal/config"
	"github.com/Iron-Ham/ghlookup/internal/logging"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View ghlookup logs",
	Long: `View and filter the ghlookup log file.

Logs are written to $XDG_STATE_HOME/ghlookup/ghlookup.log while the
interactive screen runs. By default the last 50 entries are shown.

Examples:
  # Show the last 50 entries
  ghlookup logs

  # Show everything from one run
  ghlookup logs -s 0b6f3c1e-... -n 0

  # Only warnings and errors from the detail card
  ghlookup logs --level warn --component detail

  # Entries from the last hour matching a pattern
  ghlookup logs --since 1h --grep "rate|timed out"`,
	Args: cobra.NoArgs,
	RunE: runLogs,
}

var (
	logsSessionID string
	logsComponent string
	logsTail      int
	logsLevel     string
	logsSince     string
	logsGrep      string
	logsNoColor   bool
)

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().StringVarP(&logsSessionID, "session", "s", "", "Only entries from this run")
	logsCmd.Flags().StringVar(&logsComponent, "component", "", "Only entries from this component (shell/results/detail/directory/cli)")
	logsCmd.Flags().IntVarP(&logsTail, "tail", "n", 50, "Number of entries to show (0 for all)")
	logsCmd.Flags().StringVar(&logsLevel, "level", "", "Filter by minimum level (debug/info/warn/error)")
	logsCmd.Flags().StringVar(&logsSince, "since", "", "Show entries since duration ago (e.g., 1h, 30m)")
	logsCmd.Flags().StringVar(&logsGrep, "grep", "", "Filter entries whose line matches pattern (regex)")
	logsCmd.Flags().BoolVar(&logsNoColor, "no-color", false, "Disable colored output")
}

// ANSI color codes for terminal output
const (
	colorReset  = "\033[0m"
	colorGray   = "\033[90m"
	colorBlue   = "\033[34m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
)

// levelColor returns the ANSI color code for a log level
func levelColor(level string) string {
	switch strings.ToUpper(level) {
	case logging.LevelDebug:
		return colorGray
	case logging.LevelInfo:
		return colorBlue
	case logging.LevelWarn:
		return colorYellow
	case logging.LevelError:
		return colorRed
	default:
		return colorReset
	}
}

// logsOptions is the parsed form of the logs flags.
type logsOptions struct {
	filter logging.LogFilter
	grep   *regexp.Regexp
	tail   int
	color  bool
}

func parseLogsOptions(now time.Time) (logsOptions, error) {
	opts := logsOptions{
		filter: logging.LogFilter{
			SessionID: logsSessionID,
			Component: logsComponent,
		},
		tail:  logsTail,
		color: !logsNoColor,
	}

	if logsLevel != "" {
		if !slices.Contains(logging.ValidLevels(), strings.ToUpper(logsLevel)) {
			return opts, fmt.Errorf("invalid level %q: must be one of %s", logsLevel, strings.Join(logging.ValidLevels(), ", "))
		}
		opts.filter.Level = logging.ParseLevel(logsLevel)
	}

	if logsSince != "" {
		d, err := time.ParseDuration(logsSince)
		if err != nil {
			return opts, fmt.Errorf("invalid duration for --since: %w", err)
		}
		opts.filter.Since = now.Add(-d)
	}

	if logsGrep != "" {
		re, err := regexp.Compile(logsGrep)
		if err != nil {
			return opts, fmt.Errorf("invalid --grep pattern: %w", err)
		}
		opts.grep = re
	}

	if opts.tail < 0 {
		return opts, fmt.Errorf("--tail must be non-negative")
	}
	return opts, nil
}

func runLogs(cmd *cobra.Command, args []string) error {
	opts, err := parseLogsOptions(time.Now())
	if err != nil {
		return err
	}

	entries, err := logging.ReadLogs(config.StateDir())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, line := range selectLogLines(entries, opts) {
		fmt.Fprintln(out, line)
	}
	return nil
}

// selectLogLines filters, formats and tails entries.
func selectLogLines(entries []logging.LogEntry, opts logsOptions) []string {
	var lines []string
	for _, e := range logging.FilterLogs(entries, opts.filter) {
		line := logging.FormatEntry(e)
		if opts.grep != nil && !opts.grep.MatchString(line) {
			continue
		}
		if opts.color {
			line = levelColor(e.Level) + line + colorReset
		}
		lines = append(lines, line)
	}

	if opts.tail > 0 && len(lines) > opts.tail {
		lines = lines[len(lines)-opts.tail:]
	}
	return lines
}
