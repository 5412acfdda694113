// Package countdown is a one-second countdown for Bubble Tea.
//
// The countdown owns at most one live tick chain. Every chain carries the
// generation tag it was started with; Restart with a new key and Stop both
// bump the generation, so ticks from an abandoned chain are dropped and
// never schedule a successor. The value is not clamped and keeps going below
// zero until the owner stops it.
package countdown

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/ghlookup/internal/tui/styles"
)

const (
	// DefaultSeconds is the value a detail card starts from.
	DefaultSeconds = 10
	// DefaultInterval is the time between ticks.
	DefaultInterval = time.Second
	// lowThreshold is the value at or below which the countdown is drawn
	// with the warning style.
	lowThreshold = 3
)

// TickMsg advances the chain identified by Key and Tag.
type TickMsg struct {
	Key string
	Tag int
}

// ChangedMsg reports a new value. Tag identifies the generation that
// produced it; see Model.Current.
type ChangedMsg struct {
	Key     string
	Tag     int
	Seconds int
}

// TickFunc schedules fn after d. tea.Tick satisfies it.
type TickFunc func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// Option configures a Model.
type Option func(*Model)

// WithInterval sets the tick interval.
func WithInterval(d time.Duration) Option {
	return func(m *Model) { m.interval = d }
}

// WithTickFunc replaces tea.Tick, letting tests deliver ticks immediately.
func WithTickFunc(fn TickFunc) Option {
	return func(m *Model) { m.tick = fn }
}

// Model is the countdown state.
type Model struct {
	seconds  int
	lastSeed int
	seeded   bool

	key     string
	tag     int
	running bool

	interval time.Duration
	tick     TickFunc
}

// New returns a stopped countdown at zero.
func New(opts ...Option) Model {
	m := Model{
		interval: DefaultInterval,
		tick:     tea.Tick,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Seconds returns the current value.
func (m Model) Seconds() int { return m.seconds }

// Running reports whether a tick chain is live.
func (m Model) Running() bool { return m.running }

// Key returns the key of the live (or last) chain.
func (m Model) Key() string { return m.key }

// Tag returns the current generation.
func (m Model) Tag() int { return m.tag }

// Seed sets the value to v. Seeding the value it already holds from the
// same seed is a no-op.
func (m Model) Seed(v int) (Model, tea.Cmd) {
	if m.seeded && v == m.lastSeed && v == m.seconds {
		return m, nil
	}
	m.seeded = true
	m.lastSeed = v
	m.seconds = v
	return m, m.changed()
}

// Restart acquires a tick chain for key. When key differs from the live key,
// or nothing is running, the previous chain is released and a new one
// starts. Restarting the live key is a no-op and keeps its tick schedule, so
// the next tick may land less than an interval after a Seed. Call Stop first
// to start the same key over with a full interval and a new generation.
func (m Model) Restart(key string) (Model, tea.Cmd) {
	if m.running && key == m.key {
		return m, nil
	}
	m.tag++
	m.key = key
	m.running = true
	return m, m.scheduleTick()
}

// Stop releases the live chain. Pending ticks from it are dropped.
func (m Model) Stop() Model {
	if !m.running {
		return m
	}
	m.tag++
	m.running = false
	return m
}

// Current reports whether msg was produced by the live generation.
func (m Model) Current(msg ChangedMsg) bool {
	return msg.Tag == m.tag && msg.Key == m.key
}

// Update handles TickMsg. Ticks from another generation or key are dropped
// and schedule nothing.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	tick, ok := msg.(TickMsg)
	if !ok {
		return m, nil
	}
	if !m.running || tick.Tag != m.tag || tick.Key != m.key {
		return m, nil
	}

	m.seconds--
	return m, tea.Batch(m.changed(), m.scheduleTick())
}

// View renders the value, switching to the warning color near expiry.
func (m Model) View() string {
	st := styles.Active()
	text := fmt.Sprintf("%ds", m.seconds)
	if m.seconds <= lowThreshold {
		return st.CountdownLow.Render(text)
	}
	return st.Countdown.Render(text)
}

func (m Model) changed() tea.Cmd {
	out := ChangedMsg{Key: m.key, Tag: m.tag, Seconds: m.seconds}
	return func() tea.Msg { return out }
}

func (m Model) scheduleTick() tea.Cmd {
	key, tag := m.key, m.tag
	return m.tick(m.interval, func(time.Time) tea.Msg {
		return TickMsg{Key: key, Tag: tag}
	})
}
