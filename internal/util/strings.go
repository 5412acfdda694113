// Package util holds small text helpers shared by the TUI and the CLI.
package util

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Ellipsis is appended to truncated text.
const Ellipsis = "…"

// TruncateANSI truncates s to maxWidth visual columns, appending Ellipsis if
// anything was cut. Escape sequences and wide characters are measured the
// way the terminal renders them.
func TruncateANSI(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	if maxWidth <= lipgloss.Width(Ellipsis) {
		return ansi.Truncate(s, maxWidth, "")
	}
	// ansi.Truncate counts the tail toward maxWidth.
	return ansi.Truncate(s, maxWidth, Ellipsis)
}

// PadRightANSI pads s with spaces to width visual columns, truncating first
// when it is wider.
func PadRightANSI(s string, width int) string {
	s = TruncateANSI(s, width)
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// Plural formats n with the singular or plural noun: "1 follower",
// "3 followers", "0 followers".
func Plural(n int, singular, plural string) string {
	if n == 1 || n == -1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
