// Package searchbox is the query input of the lookup screen.
//
// The box keeps a draft that keystrokes edit freely. The committed query
// belongs to the caller: Enter only reports the draft as a msg.SubmitMsg, and
// the caller pushes the committed value back with SetCommitted.
package searchbox

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/ghlookup/internal/tui/keymap"
	"github.com/Iron-Ham/ghlookup/internal/tui/msg"
	"github.com/Iron-Ham/ghlookup/internal/tui/styles"
)

const (
	charLimit   = 100
	placeholder = "GitHub login or name"
)

// Model holds the draft query.
type Model struct {
	input     textinput.Model
	committed string
	keys      *keymap.Keymap
}

// New returns a blurred box whose draft starts at committed.
func New(committed string) Model {
	ti := textinput.New()
	ti.Prompt = "find › "
	ti.Placeholder = placeholder
	ti.CharLimit = charLimit
	ti.Width = 40
	ti.SetValue(committed)

	return Model{
		input:     ti,
		committed: committed,
		keys:      keymap.DefaultKeymap(),
	}
}

// SetCommitted resynchronizes the draft with an externally changed committed
// value. Passing the value already held leaves the draft alone.
func (m Model) SetCommitted(v string) Model {
	if v == m.committed {
		return m
	}
	m.committed = v
	m.input.SetValue(v)
	m.input.CursorEnd()
	return m
}

// Committed returns the last committed value the box was told about.
func (m Model) Committed() string { return m.committed }

// Value returns the draft.
func (m Model) Value() string { return m.input.Value() }

// SetWidth sets the visible width of the input.
func (m Model) SetWidth(w int) Model {
	prompt := len([]rune(m.input.Prompt))
	if w-prompt < 1 {
		w = prompt + 1
	}
	m.input.Width = w - prompt
	return m
}

// Focus gives the box keyboard focus.
func (m Model) Focus() (Model, tea.Cmd) {
	cmd := m.input.Focus()
	return m, cmd
}

// Blur removes keyboard focus.
func (m Model) Blur() Model {
	m.input.Blur()
	return m
}

// Focused reports whether the box has keyboard focus.
func (m Model) Focused() bool { return m.input.Focused() }

// Update edits the draft. Enter emits msg.SubmitMsg with the current draft;
// the committed value does not change until the caller calls SetCommitted.
func (m Model) Update(message tea.Msg) (Model, tea.Cmd) {
	if key, ok := message.(tea.KeyMsg); ok && m.input.Focused() {
		if cmd, found := m.keys.GetBinding(key, keymap.ModeSearch); found && cmd == keymap.CmdSubmit {
			return m, msg.Submit(m.input.Value())
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(message)
	return m, cmd
}

// View renders the input line.
func (m Model) View() string {
	st := styles.Active()
	m.input.PromptStyle = st.SearchPrompt
	m.input.TextStyle = st.Text
	m.input.PlaceholderStyle = st.Muted
	return m.input.View()
}
