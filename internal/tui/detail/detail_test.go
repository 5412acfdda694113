package detail

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/ghlookup/internal/directory"
	"github.com/Iron-Ham/ghlookup/internal/errors"
	"github.com/Iron-Ham/ghlookup/internal/testutil"
	"github.com/Iron-Ham/ghlookup/internal/tui/countdown"
	"github.com/Iron-Ham/ghlookup/internal/tui/msg"
)

var (
	octocat = directory.UserProfile{Login: "octocat", ID: 583231, AvatarURL: "https://avatars.example/583231", FollowerCount: 17000}
	hubot   = directory.UserProfile{Login: "hubot", ID: 480938, AvatarURL: "https://avatars.example/480938", FollowerCount: 1}
)

func newFake() *testutil.FakeDirectory {
	dir := testutil.NewFakeDirectory()
	dir.AddUser("o", octocat)
	dir.AddUser("h", hubot)
	return dir
}

func searchUser(p directory.UserProfile) *directory.SearchUser {
	return &directory.SearchUser{Login: p.Login, ID: p.ID}
}

// heldTicks never fires on its own; tests deliver ticks by hand.
func heldTicks() Options {
	hold := func(time.Duration, func(time.Time) tea.Msg) tea.Cmd {
		return func() tea.Msg { return nil }
	}
	return Options{Countdown: []countdown.Option{countdown.WithTickFunc(hold)}}
}

// immediateTicks fires every tick as soon as its command runs.
func immediateTicks() Options {
	now := func(_ time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
		return func() tea.Msg { return fn(time.Now()) }
	}
	return Options{Countdown: []countdown.Option{countdown.WithTickFunc(now)}}
}

// pump runs cmd and every command it leads to, feeding messages back into m.
func pump(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 1000 {
			t.Fatal("command chain did not settle")
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch message := next().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, message...)
		default:
			var out tea.Cmd
			m, out = m.Update(message)
			queue = append(queue, out)
		}
	}
	return m
}

// tick delivers one tick for the live chain and applies its ChangedMsg.
func tick(t *testing.T, m Model) Model {
	t.Helper()
	cd := m.Countdown()
	m, cmd := m.Update(countdown.TickMsg{Key: cd.Key(), Tag: cd.Tag()})
	return pump(t, m, cmd)
}

func selectAndLoad(t *testing.T, m Model, p directory.UserProfile) Model {
	t.Helper()
	m, cmd := m.SetSelection(searchUser(p))
	return pump(t, m, cmd)
}

func TestSelectionFetchesOnce(t *testing.T) {
	dir := newFake()
	m := New(dir, heldTicks())

	m, cmd := m.SetSelection(searchUser(octocat))
	if !m.Loading() {
		t.Error("Loading() should be true after SetSelection")
	}
	m = pump(t, m, cmd)

	for i := 0; i < 5; i++ {
		m = tick(t, m)
		_ = m.View()
	}

	if got := dir.Lookups(); len(got) != 1 || got[0] != "octocat" {
		t.Errorf("Lookups() = %v, want one fetch for octocat", got)
	}
}

func TestReselectSameUserFetchesAgain(t *testing.T) {
	dir := newFake()
	m := New(dir, heldTicks())

	m = selectAndLoad(t, m, octocat)
	m = selectAndLoad(t, m, octocat)

	if got := dir.Lookups(); len(got) != 2 {
		t.Errorf("Lookups() = %v, want one fetch per selection", got)
	}
}

func TestNilSelection(t *testing.T) {
	dir := newFake()
	m := selectAndLoad(t, New(dir, heldTicks()), octocat)

	m, cmd := m.SetSelection(nil)
	if cmd != nil {
		t.Error("nil selection should not fetch")
	}
	if !m.Visible() {
		t.Error("nil selection should not clear the card")
	}
}

func TestSuccessShowsProfileAndSeedsCountdown(t *testing.T) {
	m := selectAndLoad(t, New(newFake(), heldTicks()), octocat)

	p, ok := m.Profile()
	if !ok {
		t.Fatal("profile should be visible after a successful fetch")
	}
	if p != octocat {
		t.Errorf("Profile() = %+v, want %+v", p, octocat)
	}
	if m.Remaining() != countdown.DefaultSeconds {
		t.Errorf("Remaining() = %d, want %d", m.Remaining(), countdown.DefaultSeconds)
	}
	if m.Countdown().Key() != "583231" || !m.Countdown().Running() {
		t.Errorf("countdown key = %q running = %v", m.Countdown().Key(), m.Countdown().Running())
	}

	view := m.SetWidth(80).View()
	for _, want := range []string{"octocat", "583231", "avatars.example/583231", "17000 followers", "10s"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestCountdownExpiryClearsProfile(t *testing.T) {
	m := selectAndLoad(t, New(newFake(), heldTicks()), octocat)

	for i := 1; i < countdown.DefaultSeconds; i++ {
		m = tick(t, m)
		if !m.Visible() {
			t.Fatalf("card cleared early at remaining=%d", m.Remaining())
		}
	}
	if m.Remaining() != 1 {
		t.Fatalf("Remaining() = %d, want 1", m.Remaining())
	}

	m = tick(t, m)
	if m.Visible() {
		t.Error("card should clear when the countdown drops below 1")
	}
	if _, ok := m.Profile(); ok {
		t.Error("Profile() should report nothing after expiry")
	}
	if m.Countdown().Running() {
		t.Error("countdown should be released after expiry")
	}
	if strings.Contains(m.View(), "octocat") {
		t.Error("View() should not render the expired profile")
	}

	// Further ticks from the released chain change nothing.
	m = tick(t, m)
	if m.Remaining() != 0 {
		t.Errorf("Remaining() = %d after release, want 0", m.Remaining())
	}
}

func TestExpiryRunsToCompletion(t *testing.T) {
	m := selectAndLoad(t, New(newFake(), immediateTicks()), octocat)

	if m.Visible() {
		t.Error("card should have expired once the tick chain ran out")
	}
	if m.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", m.Remaining())
	}
	if m.Countdown().Running() {
		t.Error("no tick chain should remain after expiry")
	}
}

func TestNewSelectionAfterExpiryRepopulates(t *testing.T) {
	dir := newFake()
	m := selectAndLoad(t, New(dir, heldTicks()), octocat)
	for i := 0; i < countdown.DefaultSeconds; i++ {
		m = tick(t, m)
	}
	if m.Visible() {
		t.Fatal("card should be cleared")
	}

	for _, p := range []directory.UserProfile{octocat, hubot} {
		m = selectAndLoad(t, m, p)
		got, ok := m.Profile()
		if !ok || got.ID != p.ID {
			t.Errorf("Profile() = %+v, %v; want %s", got, ok, p.Login)
		}
		if m.Remaining() != countdown.DefaultSeconds {
			t.Errorf("Remaining() = %d, want reset to %d", m.Remaining(), countdown.DefaultSeconds)
		}
		if !m.Countdown().Running() {
			t.Error("countdown should restart for the new profile")
		}
	}
}

func TestSwitchingUserRestartsCountdown(t *testing.T) {
	m := selectAndLoad(t, New(newFake(), heldTicks()), octocat)
	m = tick(t, m)
	m = tick(t, m)
	oldKey, oldTag := m.Countdown().Key(), m.Countdown().Tag()

	m = selectAndLoad(t, m, hubot)
	if m.Remaining() != countdown.DefaultSeconds {
		t.Errorf("Remaining() = %d, want %d", m.Remaining(), countdown.DefaultSeconds)
	}
	if m.Countdown().Key() != "480938" {
		t.Errorf("countdown key = %q, want 480938", m.Countdown().Key())
	}

	// A tick from octocat's chain is dropped and schedules nothing.
	m, cmd := m.Update(countdown.TickMsg{Key: oldKey, Tag: oldTag})
	if cmd != nil {
		t.Error("tick from the released chain should schedule nothing")
	}
	if m.Remaining() != countdown.DefaultSeconds {
		t.Errorf("stale tick changed Remaining() to %d", m.Remaining())
	}
}

func TestReselectSameUserResetsCountdown(t *testing.T) {
	m := selectAndLoad(t, New(newFake(), heldTicks()), octocat)
	for i := 0; i < 4; i++ {
		m = tick(t, m)
	}
	oldKey, oldTag := m.Countdown().Key(), m.Countdown().Tag()

	m = selectAndLoad(t, m, octocat)
	if m.Remaining() != countdown.DefaultSeconds {
		t.Errorf("Remaining() = %d, want %d", m.Remaining(), countdown.DefaultSeconds)
	}
	if m.Countdown().Tag() == oldTag {
		t.Error("reselecting the shown user should start a new tick chain")
	}

	// The previous chain's pending tick no longer counts down the new card.
	m, cmd := m.Update(countdown.TickMsg{Key: oldKey, Tag: oldTag})
	if cmd != nil || m.Remaining() != countdown.DefaultSeconds {
		t.Errorf("tick from the previous chain was accepted: remaining=%d", m.Remaining())
	}
}

// collect runs cmd and returns the messages it yields, flattening batches.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch message := cmd().(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range message {
			out = append(out, collect(c)...)
		}
		return out
	default:
		return []tea.Msg{message}
	}
}

func TestReselectIgnoresChangeFromPreviousCard(t *testing.T) {
	m := selectAndLoad(t, New(newFake(), heldTicks()), octocat)
	for i := 1; i < countdown.DefaultSeconds; i++ {
		m = tick(t, m)
	}

	// The last tick is accepted but its ChangedMsg is still queued.
	cd := m.Countdown()
	m, cmd := m.Update(countdown.TickMsg{Key: cd.Key(), Tag: cd.Tag()})
	var pending []countdown.ChangedMsg
	for _, message := range collect(cmd) {
		if changed, ok := message.(countdown.ChangedMsg); ok {
			pending = append(pending, changed)
		}
	}
	if len(pending) != 1 || pending[0].Seconds != 0 {
		t.Fatalf("pending = %+v, want one ChangedMsg at 0", pending)
	}

	m = selectAndLoad(t, m, octocat)
	m, _ = m.Update(pending[0])

	if !m.Visible() {
		t.Fatal("reselected card was cleared by a change from the previous card")
	}
	if m.Remaining() != countdown.DefaultSeconds {
		t.Errorf("Remaining() = %d, want %d", m.Remaining(), countdown.DefaultSeconds)
	}
	if !m.Countdown().Running() {
		t.Error("countdown should keep running for the reselected card")
	}
}

func TestStaleChangedMsgIgnored(t *testing.T) {
	m := selectAndLoad(t, New(newFake(), heldTicks()), octocat)

	m, _ = m.Update(countdown.ChangedMsg{Key: "583231", Tag: m.Countdown().Tag() - 1, Seconds: 0})
	if !m.Visible() {
		t.Error("ChangedMsg from an older generation must not clear the card")
	}
}

func TestStaleProfileDropped(t *testing.T) {
	m := New(newFake(), heldTicks())

	m, first := m.SetSelection(searchUser(octocat))
	m, second := m.SetSelection(searchUser(hubot))

	// The newer response lands first, then the older one.
	m = pump(t, m, second)
	m = pump(t, m, first)

	p, ok := m.Profile()
	if !ok || p.Login != "hubot" {
		t.Errorf("Profile() = %+v, want hubot", p)
	}
}

func TestFetchErrorLeavesPanel(t *testing.T) {
	dir := newFake()

	t.Run("never populates", func(t *testing.T) {
		m := selectAndLoad(t, New(dir, heldTicks()), directory.UserProfile{Login: "ghost", ID: 9})
		if m.Visible() {
			t.Error("failed fetch should not populate the card")
		}
		if m.Loading() {
			t.Error("Loading() should be false after the fetch failed")
		}
		if !errors.Is(m.Err(), errors.ErrUserNotFound) {
			t.Errorf("Err() = %v, want ErrUserNotFound", m.Err())
		}
	})

	t.Run("keeps shown card", func(t *testing.T) {
		m := selectAndLoad(t, New(dir, heldTicks()), octocat)
		m, cmd := m.SetSelection(&directory.SearchUser{Login: "ghost", ID: 9})
		m, _ = m.Update(msg.ProfileResultMsg{Seq: m.seq, Login: "ghost", Err: errors.ErrDirectoryUnavailable})
		_ = cmd

		p, ok := m.Profile()
		if !ok || p.Login != "octocat" {
			t.Errorf("Profile() = %+v, %v; want octocat still shown", p, ok)
		}
	})
}

func TestPlaceholderView(t *testing.T) {
	m := New(newFake(), heldTicks())
	if !strings.Contains(m.View(), "select a user") {
		t.Errorf("View() = %q", m.View())
	}

	m, _ = m.SetSelection(searchUser(hubot))
	if !strings.Contains(m.View(), "loading hubot") {
		t.Errorf("View() = %q", m.View())
	}
}
