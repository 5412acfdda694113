package keymap

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestKeyBindingMatches(t *testing.T) {
	tests := []struct {
		name     string
		binding  KeyBinding
		msg      tea.KeyMsg
		expected bool
	}{
		{
			name:     "simple rune match",
			binding:  KeyBinding{KeyType: tea.KeyRunes, Rune: 'j'},
			msg:      tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}},
			expected: true,
		},
		{
			name:     "simple rune mismatch",
			binding:  KeyBinding{KeyType: tea.KeyRunes, Rune: 'j'},
			msg:      tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}},
			expected: false,
		},
		{
			name:     "rune binding against special key",
			binding:  KeyBinding{KeyType: tea.KeyRunes, Rune: 'j'},
			msg:      tea.KeyMsg{Type: tea.KeyDown},
			expected: false,
		},
		{
			name:     "special key match",
			binding:  KeyBinding{KeyType: tea.KeyEnter},
			msg:      tea.KeyMsg{Type: tea.KeyEnter},
			expected: true,
		},
		{
			name:     "special key mismatch",
			binding:  KeyBinding{KeyType: tea.KeyEnter},
			msg:      tea.KeyMsg{Type: tea.KeyEsc},
			expected: false,
		},
		{
			name:     "alt modifier match",
			binding:  KeyBinding{KeyType: tea.KeyRunes, Rune: 'x', Modifiers: ModAlt},
			msg:      tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true},
			expected: true,
		},
		{
			name:     "alt binding without alt",
			binding:  KeyBinding{KeyType: tea.KeyRunes, Rune: 'x', Modifiers: ModAlt},
			msg:      tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}},
			expected: false,
		},
		{
			name:     "ctrl combination is not the plain rune",
			binding:  KeyBinding{KeyType: tea.KeyCtrlR},
			msg:      tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}},
			expected: false,
		},
		{
			name:     "alt pressed but not bound",
			binding:  KeyBinding{KeyType: tea.KeyRunes, Rune: 'x'},
			msg:      tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.binding.Matches(tt.msg); got != tt.expected {
				t.Errorf("Matches() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestKeymapGetBinding(t *testing.T) {
	km := DefaultKeymap()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		mode   Mode
		want   Command
		wantOK bool
	}{
		{"enter submits in search", tea.KeyMsg{Type: tea.KeyEnter}, ModeSearch, CmdSubmit, true},
		{"enter selects in list", tea.KeyMsg{Type: tea.KeyEnter}, ModeList, CmdSelect, true},
		{"q quits in list", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, ModeList, CmdQuit, true},
		{"q types in search", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, ModeSearch, "", false},
		{"j moves down in list", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}, ModeList, CmdCursorDown, true},
		{"ctrl+r resets in search", tea.KeyMsg{Type: tea.KeyCtrlR}, ModeSearch, CmdReset, true},
		{"ctrl+r resets in list", tea.KeyMsg{Type: tea.KeyCtrlR}, ModeList, CmdReset, true},
		{"ctrl+c quits in search", tea.KeyMsg{Type: tea.KeyCtrlC}, ModeSearch, CmdQuit, true},
		{"tab switches focus", tea.KeyMsg{Type: tea.KeyTab}, ModeList, CmdFocusNext, true},
		{"space selects", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, ModeList, CmdSelect, true},
		{"unknown mode", tea.KeyMsg{Type: tea.KeyEnter}, Mode("other"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := km.GetBinding(tt.msg, tt.mode)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("GetBinding() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestModifiersString(t *testing.T) {
	tests := []struct {
		mod  Modifier
		want string
	}{
		{ModNone, ""},
		{ModAlt, "alt+"},
	}

	for _, tt := range tests {
		if got := tt.mod.String(); got != tt.want {
			t.Errorf("Modifier(%d).String() = %q, want %q", tt.mod, got, tt.want)
		}
	}
}

func TestKeyBindingString(t *testing.T) {
	tests := []struct {
		binding KeyBinding
		want    string
	}{
		{KeyBinding{KeyType: tea.KeyRunes, Rune: 'j'}, "j"},
		{KeyBinding{KeyType: tea.KeyRunes, Rune: ' '}, "space"},
		{KeyBinding{KeyType: tea.KeyEnter}, "enter"},
		{KeyBinding{KeyType: tea.KeyCtrlR}, "ctrl+r"},
		{KeyBinding{KeyType: tea.KeyRunes, Rune: 'x', Modifiers: ModAlt}, "alt+x"},
	}

	for _, tt := range tests {
		if got := tt.binding.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestGetBindingsForCommand(t *testing.T) {
	km := DefaultKeymap()

	bindings := km.GetBindingsForCommand(CmdCursorDown, ModeList)
	if len(bindings) != 2 {
		t.Fatalf("expected 2 bindings for cursor_down, got %d", len(bindings))
	}

	if got := km.GetBindingsForCommand(CmdCursorDown, ModeSearch); len(got) != 0 {
		t.Errorf("cursor_down should not be bound in search mode, got %v", got)
	}
}

func TestHelp(t *testing.T) {
	km := DefaultKeymap()

	entries := km.Help(ModeList)
	if len(entries) == 0 {
		t.Fatal("Help(ModeList) returned nothing")
	}
	if entries[0].Keys != "up/k" || entries[0].Description != "up" {
		t.Errorf("first entry = %+v, want up/k up", entries[0])
	}

	for _, e := range entries {
		if e.Keys == "q" {
			t.Error("hidden binding q should not appear in help")
		}
	}

	seen := make(map[string]bool)
	for _, e := range km.Help(ModeSearch) {
		if seen[e.Description] {
			t.Errorf("duplicate help entry %q", e.Description)
		}
		seen[e.Description] = true
	}
	if !seen["find"] || !seen["reset"] {
		t.Errorf("search help missing find/reset: %v", seen)
	}
}

func TestDefaultKeymapCompleteness(t *testing.T) {
	km := DefaultKeymap()

	required := map[Mode][]Command{
		ModeSearch: {CmdSubmit, CmdReset, CmdFocusNext, CmdQuit},
		ModeList:   {CmdCursorUp, CmdCursorDown, CmdSelect, CmdReset, CmdFocusNext, CmdQuit},
	}

	for mode, cmds := range required {
		for _, cmd := range cmds {
			if len(km.GetBindingsForCommand(cmd, mode)) == 0 {
				t.Errorf("mode %s has no binding for %s", mode, cmd)
			}
		}
	}
}
