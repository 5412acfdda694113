package msg

import (
	"github.com/Iron-Ham/ghlookup/internal/directory"
)

// SubmitMsg is emitted by the search box when the draft query is submitted.
// Value is passed through untouched; an empty string is a valid submission.
type SubmitMsg struct {
	Value string
}

// UserSelectedMsg is emitted by the result list when a row is chosen.
type UserSelectedMsg struct {
	User directory.SearchUser
}

// SearchResultMsg carries the outcome of a search fetch. Seq is the request
// sequence the fetch was issued with; receivers drop results whose Seq is
// not the latest they issued.
type SearchResultMsg struct {
	Seq   uint64
	Term  string
	Users []directory.SearchUser
	Err   error
}

// ProfileResultMsg carries the outcome of a profile fetch.
type ProfileResultMsg struct {
	Seq     uint64
	Login   string
	Profile directory.UserProfile
	Err     error
}

// ConfigReloadedMsg is sent when the config file changes on disk.
type ConfigReloadedMsg struct {
	Theme string
}
