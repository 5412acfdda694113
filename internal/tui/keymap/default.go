package keymap

import tea "github.com/charmbracelet/bubbletea"

// DefaultKeymap returns the built-in key bindings.
func DefaultKeymap() *Keymap {
	return &Keymap{
		Name: "default",
		Modes: map[Mode]*ModeBindings{
			ModeSearch: defaultSearchBindings(),
			ModeList:   defaultListBindings(),
		},
	}
}

func globalBindings() []KeyBinding {
	return []KeyBinding{
		{KeyType: tea.KeyTab, Command: CmdFocusNext, Description: "switch pane"},
		{KeyType: tea.KeyShiftTab, Command: CmdFocusNext, Description: "switch pane", Hidden: true},
		{KeyType: tea.KeyCtrlR, Command: CmdReset, Description: "reset"},
		{KeyType: tea.KeyCtrlC, Command: CmdQuit, Description: "quit"},
	}
}

// Rune keys are absent from search mode so they reach the text input.
func defaultSearchBindings() *ModeBindings {
	bindings := []KeyBinding{
		{KeyType: tea.KeyEnter, Command: CmdSubmit, Description: "find"},
		{KeyType: tea.KeyEsc, Command: CmdFocusList, Description: "results"},
		{KeyType: tea.KeyDown, Command: CmdFocusList, Description: "results", Hidden: true},
	}
	return &ModeBindings{
		Mode:     ModeSearch,
		Bindings: append(bindings, globalBindings()...),
	}
}

func defaultListBindings() *ModeBindings {
	bindings := []KeyBinding{
		{KeyType: tea.KeyUp, Command: CmdCursorUp, Description: "up"},
		{KeyType: tea.KeyRunes, Rune: 'k', Command: CmdCursorUp, Description: "up"},
		{KeyType: tea.KeyDown, Command: CmdCursorDown, Description: "down"},
		{KeyType: tea.KeyRunes, Rune: 'j', Command: CmdCursorDown, Description: "down"},
		{KeyType: tea.KeyHome, Command: CmdCursorTop, Description: "top", Hidden: true},
		{KeyType: tea.KeyRunes, Rune: 'g', Command: CmdCursorTop, Description: "top", Hidden: true},
		{KeyType: tea.KeyEnd, Command: CmdCursorBottom, Description: "bottom", Hidden: true},
		{KeyType: tea.KeyRunes, Rune: 'G', Command: CmdCursorBottom, Description: "bottom", Hidden: true},
		{KeyType: tea.KeyEnter, Command: CmdSelect, Description: "select"},
		{KeyType: tea.KeySpace, Command: CmdSelect, Description: "select", Hidden: true},
		{KeyType: tea.KeyRunes, Rune: '/', Command: CmdFocusSearch, Description: "search"},
		{KeyType: tea.KeyRunes, Rune: '?', Command: CmdToggleHelp, Description: "help"},
		{KeyType: tea.KeyRunes, Rune: 'q', Command: CmdQuit, Description: "quit", Hidden: true},
	}
	return &ModeBindings{
		Mode:     ModeList,
		Bindings: append(bindings, globalBindings()...),
	}
}
