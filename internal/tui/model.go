package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/ghlookup/internal/config"
	"github.com/Iron-Ham/ghlookup/internal/directory"
	"github.com/Iron-Ham/ghlookup/internal/logging"
	"github.com/Iron-Ham/ghlookup/internal/tui/countdown"
	"github.com/Iron-Ham/ghlookup/internal/tui/detail"
	"github.com/Iron-Ham/ghlookup/internal/tui/keymap"
	"github.com/Iron-Ham/ghlookup/internal/tui/results"
	"github.com/Iron-Ham/ghlookup/internal/tui/searchbox"
)

const (
	// AppTitle is the window title before the first selection and after quit.
	AppTitle = config.AppName

	defaultTerm = config.DefaultSearchTerm
)

// Focus identifies the component receiving key presses.
type Focus int

const (
	FocusSearch Focus = iota
	FocusList
)

// String returns the focus name.
func (f Focus) String() string {
	switch f {
	case FocusSearch:
		return "search"
	case FocusList:
		return "list"
	default:
		return "unknown"
	}
}

// Options configures a Model.
type Options struct {
	Logger *logging.Logger
	Keymap *keymap.Keymap
	// Countdown options are passed to the detail panel.
	Countdown []countdown.Option
}

// Model is the application shell. It owns the committed query term and the
// selection and composes the search box, the result list and the detail card.
type Model struct {
	logger *logging.Logger
	keys   *keymap.Keymap

	// Shell state
	term      string
	selection *directory.SearchUser
	title     string

	// Components
	search  searchbox.Model
	results results.Model
	detail  detail.Model

	// UI state
	focus    Focus
	width    int
	height   int
	ready    bool
	showHelp bool
	quitting bool

	initCmd tea.Cmd
}

// NewModel creates the shell with the default term. The first search is
// prepared here and issued by Init.
func NewModel(dir directory.Directory, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	keys := opts.Keymap
	if keys == nil {
		keys = keymap.DefaultKeymap()
	}

	m := Model{
		logger: logger.WithComponent("shell"),
		keys:   keys,
		term:   defaultTerm,
		title:  AppTitle,
		search: searchbox.New(defaultTerm),
		results: results.New(dir, results.Options{
			Logger: logger,
			Keymap: keys,
		}),
		detail: detail.New(dir, detail.Options{
			Logger:    logger,
			Countdown: opts.Countdown,
		}),
		focus: FocusSearch,
	}

	var searchCmd, focusCmd tea.Cmd
	m.results, searchCmd = m.results.SetTerm(m.term)
	m.search, focusCmd = m.search.Focus()
	m.initCmd = tea.Batch(searchCmd, focusCmd, tea.SetWindowTitle(AppTitle))
	return m
}

// Term returns the committed query term.
func (m Model) Term() string { return m.term }

// Selection returns a copy of the selected user, or nil.
func (m Model) Selection() *directory.SearchUser {
	if m.selection == nil {
		return nil
	}
	u := *m.selection
	return &u
}

// Title returns the last window title the shell set.
func (m Model) Title() string { return m.title }

// Focus returns the focused component.
func (m Model) Focus() Focus { return m.focus }

// SearchBox returns the search box state.
func (m Model) SearchBox() searchbox.Model { return m.search }

// Results returns the result list state.
func (m Model) Results() results.Model { return m.results }

// Detail returns the detail card state.
func (m Model) Detail() detail.Model { return m.detail }

// mode returns the keymap mode for the focused component.
func (m Model) mode() keymap.Mode {
	if m.focus == FocusList {
		return keymap.ModeList
	}
	return keymap.ModeSearch
}
