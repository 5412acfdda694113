// Package directory looks up GitHub users.
//
// [Directory] is the narrow interface the TUI and the CLI depend on; [Client]
// implements it on top of go-github. Errors returned by a Client are always
// one of the typed errors in internal/errors, so callers can classify them
// with errors.Is against ErrUserNotFound, ErrRateLimited, ErrTimeout and
// friends.
package directory

import "context"

// SearchUser is one entry of a search result. Two results refer to the same
// user when their IDs match.
type SearchUser struct {
	Login string `json:"login"`
	ID    int64  `json:"id"`
}

// UserProfile is the subset of a user's public profile shown in the detail
// card.
type UserProfile struct {
	Login         string `json:"login"`
	ID            int64  `json:"id"`
	AvatarURL     string `json:"avatar_url"`
	FollowerCount int    `json:"followers"`
}

// Directory is the remote user directory.
type Directory interface {
	// SearchUsers returns the users matching term, in the order the directory
	// ranks them. Only the first page is returned.
	SearchUsers(ctx context.Context, term string) ([]SearchUser, error)
	// GetUser returns the public profile for login.
	GetUser(ctx context.Context, login string) (UserProfile, error)
}
