package msg

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/ghlookup/internal/directory"
)

// Submit returns a command that emits a SubmitMsg for value.
func Submit(value string) tea.Cmd {
	return func() tea.Msg {
		return SubmitMsg{Value: value}
	}
}

// SelectUser returns a command that emits a UserSelectedMsg for u.
func SelectUser(u directory.SearchUser) tea.Cmd {
	return func() tea.Msg {
		return UserSelectedMsg{User: u}
	}
}

// FetchSearch returns a command that runs one search against dir and reports
// the outcome as a SearchResultMsg tagged with seq. The directory applies its
// own request timeout.
func FetchSearch(dir directory.Directory, seq uint64, term string) tea.Cmd {
	return func() tea.Msg {
		users, err := dir.SearchUsers(context.Background(), term)
		return SearchResultMsg{Seq: seq, Term: term, Users: users, Err: err}
	}
}

// FetchProfile returns a command that loads one profile from dir and reports
// the outcome as a ProfileResultMsg tagged with seq.
func FetchProfile(dir directory.Directory, seq uint64, login string) tea.Cmd {
	return func() tea.Msg {
		profile, err := dir.GetUser(context.Background(), login)
		return ProfileResultMsg{Seq: seq, Login: login, Profile: profile, Err: err}
	}
}
