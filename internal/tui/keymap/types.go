// Package keymap holds the declarative key bindings of the lookup screen.
// Bindings are grouped by Mode, which follows whichever component has focus.
package keymap

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Mode represents the focused component. Different modes have different key
// bindings active.
type Mode string

const (
	ModeSearch Mode = "search" // Search box focused, runes edit the draft
	ModeList   Mode = "list"   // Result list focused
)

// Command represents a named action that can be triggered by a key binding.
type Command string

// Global commands, available in every mode
const (
	CmdQuit       Command = "quit"
	CmdReset      Command = "reset"
	CmdFocusNext  Command = "focus_next"
	CmdToggleHelp Command = "toggle_help"
)

// Search box commands
const (
	CmdSubmit    Command = "submit"
	CmdFocusList Command = "focus_list"
)

// Result list commands
const (
	CmdCursorUp     Command = "cursor_up"
	CmdCursorDown   Command = "cursor_down"
	CmdCursorTop    Command = "cursor_top"
	CmdCursorBottom Command = "cursor_bottom"
	CmdSelect       Command = "select"
	CmdFocusSearch  Command = "focus_search"
)

// Modifier is a key modifier a binding requires. Bubble Tea reports ctrl
// and shift combinations as their own key types (tea.KeyCtrlR,
// tea.KeyShiftTab), so alt is the only modifier carried on a KeyMsg.
type Modifier uint8

const (
	ModNone Modifier = 0
	ModAlt  Modifier = 1 << iota
)

// String returns a human-readable representation of modifiers.
func (m Modifier) String() string {
	if m&ModAlt != 0 {
		return "alt+"
	}
	return ""
}

// KeyBinding represents a single key binding configuration.
type KeyBinding struct {
	// KeyType is the key for this binding. For rune keys use tea.KeyRunes and
	// set Rune.
	KeyType tea.KeyType

	// Rune is the character for rune-based keys (when KeyType is tea.KeyRunes).
	Rune rune

	// Modifiers contains the modifier keys that must be pressed.
	Modifiers Modifier

	// Command is the action to execute when this binding is triggered.
	Command Command

	// Description is a short label for the help bar.
	Description string

	// Hidden bindings work but are left out of the help bar.
	Hidden bool
}

// Matches checks if a tea.KeyMsg matches this binding.
func (kb KeyBinding) Matches(msg tea.KeyMsg) bool {
	wantAlt := kb.Modifiers&ModAlt != 0
	if msg.Alt != wantAlt {
		return false
	}

	if kb.KeyType != tea.KeyRunes {
		return msg.Type == kb.KeyType
	}

	if msg.Type != tea.KeyRunes || len(msg.Runes) == 0 {
		return false
	}
	return msg.Runes[0] == kb.Rune
}

// String returns a human-readable representation of the key binding.
func (kb KeyBinding) String() string {
	prefix := kb.Modifiers.String()

	if kb.KeyType != tea.KeyRunes {
		return prefix + kb.KeyType.String()
	}

	switch kb.Rune {
	case ' ':
		return prefix + "space"
	default:
		return prefix + string(kb.Rune)
	}
}

// ModeBindings holds all key bindings for a specific mode.
type ModeBindings struct {
	Mode     Mode
	Bindings []KeyBinding
}

// GetBinding looks up a command for a key in this mode.
// Returns the command and true if found, or empty command and false if not.
func (mb *ModeBindings) GetBinding(msg tea.KeyMsg) (Command, bool) {
	for _, binding := range mb.Bindings {
		if binding.Matches(msg) {
			return binding.Command, true
		}
	}
	return "", false
}

// Keymap contains all key bindings organized by mode.
type Keymap struct {
	Name  string
	Modes map[Mode]*ModeBindings
}

// GetBinding looks up a command for a key in a specific mode.
// Returns the command and true if found, or empty command and false if not.
func (km *Keymap) GetBinding(msg tea.KeyMsg, mode Mode) (Command, bool) {
	mb, ok := km.Modes[mode]
	if !ok {
		return "", false
	}
	return mb.GetBinding(msg)
}

// GetModeBindings returns all bindings for a specific mode.
func (km *Keymap) GetModeBindings(mode Mode) []KeyBinding {
	mb, ok := km.Modes[mode]
	if !ok {
		return nil
	}
	return mb.Bindings
}

// GetBindingsForCommand returns all bindings that trigger a specific command.
func (km *Keymap) GetBindingsForCommand(cmd Command, mode Mode) []KeyBinding {
	var result []KeyBinding
	for _, binding := range km.GetModeBindings(mode) {
		if binding.Command == cmd {
			result = append(result, binding)
		}
	}
	return result
}

// HelpEntry is one "key label" pair of the help bar.
type HelpEntry struct {
	Keys        string
	Description string
}

// Help returns one entry per visible command in mode, in binding order. Keys
// bound to the same command are joined with "/".
func (km *Keymap) Help(mode Mode) []HelpEntry {
	var entries []HelpEntry
	index := make(map[Command]int)

	for _, binding := range km.GetModeBindings(mode) {
		if binding.Hidden {
			continue
		}
		if i, ok := index[binding.Command]; ok {
			entries[i].Keys += "/" + binding.String()
			continue
		}
		index[binding.Command] = len(entries)
		entries = append(entries, HelpEntry{Keys: binding.String(), Description: binding.Description})
	}
	return entries
}
