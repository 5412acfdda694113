// Package results is the result list of the lookup screen.
//
// The list issues one search per SetTerm call and applies only the response
// to the latest request. A failed search keeps the previous rows; the error
// is logged and shown as a one-line hint.
package results

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/ghlookup/internal/directory"
	"github.com/Iron-Ham/ghlookup/internal/errors"
	"github.com/Iron-Ham/ghlookup/internal/logging"
	"github.com/Iron-Ham/ghlookup/internal/tui/keymap"
	"github.com/Iron-Ham/ghlookup/internal/tui/msg"
	"github.com/Iron-Ham/ghlookup/internal/tui/styles"
	"github.com/Iron-Ham/ghlookup/internal/util"
)

// Options configures a Model.
type Options struct {
	Logger *logging.Logger
	Keymap *keymap.Keymap
}

// Model is the result list state.
type Model struct {
	dir    directory.Directory
	logger *logging.Logger
	keys   *keymap.Keymap

	term   string
	users  []directory.SearchUser
	cursor int
	offset int

	selectedID  int64
	hasSelected bool

	seq     uint64
	loading bool
	spinner spinner.Model
	lastErr error

	focused bool
	width   int
	height  int
}

// New returns an empty list backed by dir.
func New(dir directory.Directory, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	keys := opts.Keymap
	if keys == nil {
		keys = keymap.DefaultKeymap()
	}

	return Model{
		dir:     dir,
		logger:  logger.WithComponent("results"),
		keys:    keys,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		width:   40,
		height:  10,
	}
}

// SetTerm starts a search for term. Every call issues exactly one fetch;
// responses to earlier calls are dropped when they arrive.
func (m Model) SetTerm(term string) (Model, tea.Cmd) {
	m.seq++
	m.term = term
	m.loading = true

	m.logger.Debug("search issued", "term", term, "seq", m.seq)
	return m, tea.Batch(msg.FetchSearch(m.dir, m.seq, term), m.spinner.Tick)
}

// SetSelected records the caller's current selection. Rows are matched by ID.
func (m Model) SetSelected(id int64, ok bool) Model {
	m.selectedID = id
	m.hasSelected = ok
	return m
}

// SetSize sets the space available to the list, borders excluded.
func (m Model) SetSize(width, height int) Model {
	m.width = max(width, 1)
	m.height = max(height, 1)
	m.offset = clampOffset(m.offset, m.cursor, m.rowsVisible())
	return m
}

// SetFocused toggles whether key presses move the cursor.
func (m Model) SetFocused(f bool) Model {
	m.focused = f
	return m
}

// Focused reports whether the list has keyboard focus.
func (m Model) Focused() bool { return m.focused }

// Term returns the term of the latest search.
func (m Model) Term() string { return m.term }

// Users returns the rows currently held.
func (m Model) Users() []directory.SearchUser { return m.users }

// Cursor returns the cursor row.
func (m Model) Cursor() int { return m.cursor }

// Loading reports whether the latest search is still in flight.
func (m Model) Loading() bool { return m.loading }

// Err returns the error of the latest completed search, if any.
func (m Model) Err() error { return m.lastErr }

// Hint returns a short description of the latest search error, or "".
func (m Model) Hint() string { return errors.Hint(m.lastErr) }

// Update handles search results, spinner ticks and list keys.
func (m Model) Update(message tea.Msg) (Model, tea.Cmd) {
	switch message := message.(type) {
	case msg.SearchResultMsg:
		return m.handleResult(message), nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(message)
		return m, cmd

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		return m.handleKey(message)
	}
	return m, nil
}

func (m Model) handleResult(res msg.SearchResultMsg) Model {
	if res.Seq != m.seq {
		m.logger.Debug("stale search dropped", "term", res.Term, "seq", res.Seq, "latest", m.seq)
		return m
	}
	m.loading = false

	if res.Err != nil {
		m.lastErr = res.Err
		m.logger.Log(errors.GetSeverity(res.Err).LogLevel(), "search failed",
			"term", res.Term,
			"error", res.Err.Error(),
			"retryable", errors.IsRetryable(res.Err),
		)
		return m
	}

	m.lastErr = nil
	m.users = res.Users
	m.cursor = 0
	m.offset = 0
	if i := m.selectedIndex(); i >= 0 {
		m.cursor = i
		m.offset = clampOffset(m.offset, m.cursor, m.rowsVisible())
	}
	m.logger.Info("search completed", "term", res.Term, "count", len(res.Users))
	return m
}

func (m Model) handleKey(key tea.KeyMsg) (Model, tea.Cmd) {
	cmd, ok := m.keys.GetBinding(key, keymap.ModeList)
	if !ok || len(m.users) == 0 {
		return m, nil
	}

	last := len(m.users) - 1
	switch cmd {
	case keymap.CmdCursorUp:
		m.cursor = max(m.cursor-1, 0)
	case keymap.CmdCursorDown:
		m.cursor = min(m.cursor+1, last)
	case keymap.CmdCursorTop:
		m.cursor = 0
	case keymap.CmdCursorBottom:
		m.cursor = last
	case keymap.CmdSelect:
		return m, msg.SelectUser(m.users[m.cursor])
	default:
		return m, nil
	}
	m.offset = clampOffset(m.offset, m.cursor, m.rowsVisible())
	return m, nil
}

// selectedIndex returns the row of the current selection, or -1.
func (m Model) selectedIndex() int {
	if !m.hasSelected {
		return -1
	}
	for i, u := range m.users {
		if u.ID == m.selectedID {
			return i
		}
	}
	return -1
}

// rowsVisible is the number of user rows that fit under the status line.
func (m Model) rowsVisible() int {
	return max(m.height-1, 1)
}

func clampOffset(offset, cursor, rows int) int {
	if cursor < offset {
		return cursor
	}
	if cursor >= offset+rows {
		return cursor - rows + 1
	}
	return offset
}

// View renders the status line followed by the visible rows.
func (m Model) View() string {
	st := styles.Active()
	var b strings.Builder

	switch {
	case m.loading:
		b.WriteString(m.spinner.View() + st.Muted.Render(" searching "+m.term))
	case m.lastErr != nil:
		b.WriteString(st.Hint.Render(util.TruncateANSI(m.Hint(), m.width)))
	default:
		b.WriteString(st.Muted.Render(util.Plural(len(m.users), "match", "matches") + " for " + m.term))
	}

	if len(m.users) == 0 && !m.loading && m.lastErr == nil {
		b.WriteString("\n" + st.Muted.Render("no users found"))
		return b.String()
	}

	end := min(m.offset+m.rowsVisible(), len(m.users))
	for i := m.offset; i < end; i++ {
		b.WriteString("\n")
		b.WriteString(m.renderRow(i, st))
	}
	return b.String()
}

func (m Model) renderRow(i int, st *styles.Styles) string {
	u := m.users[i]

	marker := "  "
	if i == m.cursor && m.focused {
		marker = st.ResultCursor.Render("› ")
	}

	id := fmt.Sprintf("#%d", u.ID)
	loginWidth := max(m.width-2-len(id)-1, 1)
	login := util.PadRightANSI(util.TruncateANSI(u.Login, loginWidth), loginWidth)

	row := st.ResultRow.Render(login) + " " + st.ResultID.Render(id)
	if m.hasSelected && u.ID == m.selectedID {
		row = st.ResultSelected.Render(login + " " + id)
	}
	return marker + row
}
