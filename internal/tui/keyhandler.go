package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/ghlookup/internal/tui/keymap"
)

// handleKeypress resolves shell-level bindings for the focused mode and
// forwards everything else to the focused component.
func (m Model) handleKeypress(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	cmd, _ := m.keys.GetBinding(key, m.mode())
	switch cmd {
	case keymap.CmdQuit:
		return m.quit()
	case keymap.CmdReset:
		return m.reset()
	case keymap.CmdToggleHelp:
		m.showHelp = !m.showHelp
		return m, nil
	case keymap.CmdFocusNext:
		if m.focus == FocusSearch {
			return m.focusList()
		}
		return m.focusSearch()
	case keymap.CmdFocusList:
		return m.focusList()
	case keymap.CmdFocusSearch:
		return m.focusSearch()
	}

	var out tea.Cmd
	switch m.focus {
	case FocusSearch:
		m.search, out = m.search.Update(key)
	case FocusList:
		m.results, out = m.results.Update(key)
	}
	return m, out
}

func (m Model) focusList() (tea.Model, tea.Cmd) {
	m.focus = FocusList
	m.search = m.search.Blur()
	m.results = m.results.SetFocused(true)
	return m, nil
}

func (m Model) focusSearch() (tea.Model, tea.Cmd) {
	m.focus = FocusSearch
	m.results = m.results.SetFocused(false)

	var cmd tea.Cmd
	m.search, cmd = m.search.Focus()
	return m, cmd
}
