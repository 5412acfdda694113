// Package logging provides structured logging for ghlookup.
//
// The TUI owns the terminal, so logs never go to stdout or stderr while it
// runs. Entries are JSON lines written by log/slog to ghlookup.log in the
// state directory, optionally through a size-based [RotatingWriter].
//
// # Basic Usage
//
//	logger, err := logging.NewLogger(dir, "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	log := logger.WithSession(runID).WithComponent("results")
//	log.Warn("search failed", "term", term, "error", err)
//
// Output:
//
//	{"time":"...","level":"WARN","msg":"search failed","session_id":"...","component":"results","term":"go","error":"..."}
//
// # Reading Logs
//
// [ReadLogs] parses a log file back into [LogEntry] values, [FilterLogs]
// narrows them and [FormatEntry] renders one line per entry. The `ghlookup
// logs` command is built on these.
//
// # Testing
//
// Use [NopLogger] to discard all output.
package logging
