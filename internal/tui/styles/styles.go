package styles

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the lipgloss styles built from a color palette.
// Styles are regenerated when the theme changes.
type Styles struct {
	Palette *ColorPalette

	// Convenience styles for colors
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style
	Text      lipgloss.Style

	// Header
	Title    lipgloss.Style
	Subtitle lipgloss.Style

	// Panels share a border; the focused one uses the primary color
	Panel        lipgloss.Style
	PanelFocused lipgloss.Style

	// Search box
	SearchPrompt lipgloss.Style

	// Result list
	ResultRow      lipgloss.Style
	ResultSelected lipgloss.Style
	ResultCursor   lipgloss.Style
	ResultID       lipgloss.Style
	Hint           lipgloss.Style

	// Detail card
	DetailHeading lipgloss.Style
	DetailLabel   lipgloss.Style
	DetailValue   lipgloss.Style
	Countdown     lipgloss.Style
	CountdownLow  lipgloss.Style

	// Help bar
	HelpBar lipgloss.Style
	HelpKey lipgloss.Style

	// Footer / status bar
	StatusBar lipgloss.Style
}

// NewStyles builds every style from p.
func NewStyles(p *ColorPalette) *Styles {
	border := lipgloss.RoundedBorder()

	return &Styles{
		Palette: p,

		Primary:   lipgloss.NewStyle().Foreground(p.Primary),
		Secondary: lipgloss.NewStyle().Foreground(p.Secondary),
		Warning:   lipgloss.NewStyle().Foreground(p.Warning),
		Error:     lipgloss.NewStyle().Foreground(p.Error),
		Muted:     lipgloss.NewStyle().Foreground(p.Muted),
		Text:      lipgloss.NewStyle().Foreground(p.Text),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),

		Panel: lipgloss.NewStyle().
			Border(border).
			BorderForeground(p.Border).
			Padding(0, 1),
		PanelFocused: lipgloss.NewStyle().
			Border(border).
			BorderForeground(p.Primary).
			Padding(0, 1),

		SearchPrompt: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),

		ResultRow: lipgloss.NewStyle().
			Foreground(p.Text),
		ResultSelected: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.HighlightText).
			Background(p.Highlight),
		ResultCursor: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),
		ResultID: lipgloss.NewStyle().
			Foreground(p.Muted),
		Hint: lipgloss.NewStyle().
			Foreground(p.Error).
			Italic(true),

		DetailHeading: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			MarginBottom(1),
		DetailLabel: lipgloss.NewStyle().
			Foreground(p.Muted).
			Width(11),
		DetailValue: lipgloss.NewStyle().
			Foreground(p.Text),
		Countdown: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Secondary),
		CountdownLow: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Warning),

		HelpBar: lipgloss.NewStyle().
			Foreground(p.Muted),
		HelpKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Secondary),

		StatusBar: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.Surface).
			Padding(0, 1),
	}
}

var (
	activeMu    sync.RWMutex
	activeName  = ThemeDefault
	activeTheme = NewStyles(DefaultPalette())
)

// SetActiveTheme rebuilds the active styles from the named theme. Unknown
// names fall back to the default palette.
func SetActiveTheme(name ThemeName) {
	s := NewStyles(GetPalette(name))

	activeMu.Lock()
	defer activeMu.Unlock()
	activeName = name
	activeTheme = s
}

// Active returns the currently active styles.
func Active() *Styles {
	activeMu.RLock()
	defer activeMu.RUnlock()
	return activeTheme
}

// ActiveName returns the name passed to the last SetActiveTheme call.
func ActiveName() ThemeName {
	activeMu.RLock()
	defer activeMu.RUnlock()
	return activeName
}
