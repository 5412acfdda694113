// Package testutil provides testing utilities for ghlookup tests.
package testutil

import (
	"context"
	"sync"

	"github.com/Iron-Ham/ghlookup/internal/directory"
	"github.com/Iron-Ham/ghlookup/internal/errors"
)

// FakeDirectory is an in-memory directory.Directory that records every call.
// The zero value answers every search with no users and every profile lookup
// with ErrUserNotFound.
type FakeDirectory struct {
	mu sync.Mutex

	// Results maps a search term to the users it returns.
	Results map[string][]directory.SearchUser
	// Profiles maps a login to its profile.
	Profiles map[string]directory.UserProfile
	// SearchErr and ProfileErr, when set, are returned instead of data.
	SearchErr  error
	ProfileErr error

	searches []string
	lookups  []string
}

var _ directory.Directory = (*FakeDirectory)(nil)

// NewFakeDirectory returns a FakeDirectory with empty result maps.
func NewFakeDirectory() *FakeDirectory {
	return &FakeDirectory{
		Results:  make(map[string][]directory.SearchUser),
		Profiles: make(map[string]directory.UserProfile),
	}
}

// SearchUsers implements directory.Directory.
func (f *FakeDirectory) SearchUsers(_ context.Context, term string) ([]directory.SearchUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.searches = append(f.searches, term)
	if f.SearchErr != nil {
		return nil, f.SearchErr
	}
	users := f.Results[term]
	out := make([]directory.SearchUser, len(users))
	copy(out, users)
	return out, nil
}

// GetUser implements directory.Directory.
func (f *FakeDirectory) GetUser(_ context.Context, login string) (directory.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lookups = append(f.lookups, login)
	if f.ProfileErr != nil {
		return directory.UserProfile{}, f.ProfileErr
	}
	p, ok := f.Profiles[login]
	if !ok {
		return directory.UserProfile{}, errors.NewNotFoundError("user", login)
	}
	return p, nil
}

// AddUser registers a user both as a search hit for term and as a profile.
func (f *FakeDirectory) AddUser(term string, p directory.UserProfile) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Results == nil {
		f.Results = make(map[string][]directory.SearchUser)
	}
	if f.Profiles == nil {
		f.Profiles = make(map[string]directory.UserProfile)
	}
	f.Results[term] = append(f.Results[term], directory.SearchUser{Login: p.Login, ID: p.ID})
	f.Profiles[p.Login] = p
}

// Searches returns the terms searched so far, in call order.
func (f *FakeDirectory) Searches() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.searches...)
}

// Lookups returns the logins fetched so far, in call order.
func (f *FakeDirectory) Lookups() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.lookups...)
}
