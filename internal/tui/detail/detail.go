// Package detail is the detail card of the lookup screen.
//
// Each selection fetches the user's profile once. A successful fetch shows
// the card and starts a countdown keyed by the profile ID; when the observed
// countdown value drops below one the card is cleared and stays cleared
// until another selection loads a profile. A nil selection clears nothing.
package detail

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/ghlookup/internal/directory"
	"github.com/Iron-Ham/ghlookup/internal/errors"
	"github.com/Iron-Ham/ghlookup/internal/logging"
	"github.com/Iron-Ham/ghlookup/internal/tui/countdown"
	"github.com/Iron-Ham/ghlookup/internal/tui/msg"
	"github.com/Iron-Ham/ghlookup/internal/tui/styles"
	"github.com/Iron-Ham/ghlookup/internal/util"
)

// Options configures a Model.
type Options struct {
	Logger *logging.Logger
	// Countdown options, mainly for tests that drive ticks by hand.
	Countdown []countdown.Option
}

// Model is the detail card state.
type Model struct {
	dir    directory.Directory
	logger *logging.Logger

	seq     uint64
	pending string
	loading bool
	lastErr error

	profile   *directory.UserProfile
	remaining int
	countdown countdown.Model

	width int
}

// New returns an empty card backed by dir.
func New(dir directory.Directory, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	return Model{
		dir:       dir,
		logger:    logger.WithComponent("detail"),
		countdown: countdown.New(opts.Countdown...),
		width:     40,
	}
}

// SetSelection fetches the profile of u. Every call with a non-nil user
// issues exactly one fetch; only the latest one is applied.
func (m Model) SetSelection(u *directory.SearchUser) (Model, tea.Cmd) {
	if u == nil {
		return m, nil
	}
	m.seq++
	m.pending = u.Login
	m.loading = true

	m.logger.Debug("profile requested", "login", u.Login, "seq", m.seq)
	return m, msg.FetchProfile(m.dir, m.seq, u.Login)
}

// SetWidth sets the space available to the card, borders excluded.
func (m Model) SetWidth(w int) Model {
	m.width = max(w, 1)
	return m
}

// Profile returns the displayed profile.
func (m Model) Profile() (directory.UserProfile, bool) {
	if !m.Visible() {
		return directory.UserProfile{}, false
	}
	return *m.profile, true
}

// Visible reports whether a profile is on screen.
func (m Model) Visible() bool {
	return m.profile != nil && m.remaining >= 1
}

// Remaining returns the most recently observed countdown value.
func (m Model) Remaining() int { return m.remaining }

// Loading reports whether the latest profile fetch is in flight.
func (m Model) Loading() bool { return m.loading }

// Err returns the error of the latest completed fetch, if any.
func (m Model) Err() error { return m.lastErr }

// Countdown exposes the countdown state.
func (m Model) Countdown() countdown.Model { return m.countdown }

// Update handles profile results and countdown messages.
func (m Model) Update(message tea.Msg) (Model, tea.Cmd) {
	switch message := message.(type) {
	case msg.ProfileResultMsg:
		return m.handleProfile(message)

	case countdown.TickMsg:
		var cmd tea.Cmd
		m.countdown, cmd = m.countdown.Update(message)
		return m, cmd

	case countdown.ChangedMsg:
		if !m.countdown.Current(message) {
			return m, nil
		}
		m.remaining = message.Seconds
		if m.remaining < 1 && m.profile != nil {
			m.logger.Info("detail expired", "login", m.profile.Login)
			m.profile = nil
			m.countdown = m.countdown.Stop()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleProfile(res msg.ProfileResultMsg) (Model, tea.Cmd) {
	if res.Seq != m.seq {
		m.logger.Debug("stale profile dropped", "login", res.Login, "seq", res.Seq, "latest", m.seq)
		return m, nil
	}
	m.loading = false

	if res.Err != nil {
		m.lastErr = res.Err
		m.logger.Log(errors.GetSeverity(res.Err).LogLevel(), "profile fetch failed",
			"login", res.Login,
			"error", res.Err.Error(),
			"retryable", errors.IsRetryable(res.Err),
		)
		return m, nil
	}

	m.lastErr = nil
	p := res.Profile
	m.profile = &p

	// Every loaded profile gets a fresh generation, even for the user already
	// shown, so ticks and changes from the previous card are dropped.
	var restart, seed tea.Cmd
	m.countdown = m.countdown.Stop()
	m.countdown, restart = m.countdown.Restart(strconv.FormatInt(p.ID, 10))
	m.countdown, seed = m.countdown.Seed(countdown.DefaultSeconds)
	m.remaining = m.countdown.Seconds()

	m.logger.Info("profile loaded", "login", p.Login, "id", p.ID)
	return m, tea.Batch(restart, seed)
}

// View renders the card, or a placeholder when nothing is shown.
func (m Model) View() string {
	st := styles.Active()

	if !m.Visible() {
		if m.loading {
			return st.Muted.Render("loading " + m.pending + "…")
		}
		return st.Muted.Render("select a user to see details")
	}

	p := m.profile
	valueWidth := max(m.width-st.DetailLabel.GetWidth(), 1)
	row := func(label, value string) string {
		return st.DetailLabel.Render(label) + st.DetailValue.Render(util.TruncateANSI(value, valueWidth))
	}

	var b strings.Builder
	b.WriteString(st.DetailHeading.Render(util.TruncateANSI(p.Login, m.width)))
	b.WriteString("\n")
	b.WriteString(row("id", fmt.Sprintf("%d", p.ID)))
	b.WriteString("\n")
	b.WriteString(row("avatar", p.AvatarURL))
	b.WriteString("\n")
	b.WriteString(row("followers", util.Plural(p.FollowerCount, "follower", "followers")))
	b.WriteString("\n\n")
	b.WriteString(st.DetailLabel.Render("clears in") + m.countdown.View())
	return b.String()
}
