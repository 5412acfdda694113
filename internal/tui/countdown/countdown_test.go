package countdown

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// immediateTick delivers ticks without waiting and counts how many were
// scheduled.
func immediateTick(scheduled *int) TickFunc {
	return func(_ time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
		*scheduled++
		return func() tea.Msg { return fn(time.Now()) }
	}
}

// drain runs cmd and returns the messages it yields, flattening batches.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func findTick(msgs []tea.Msg) (TickMsg, bool) {
	for _, m := range msgs {
		if tick, ok := m.(TickMsg); ok {
			return tick, true
		}
	}
	return TickMsg{}, false
}

func findChanged(msgs []tea.Msg) (ChangedMsg, bool) {
	for _, m := range msgs {
		if changed, ok := m.(ChangedMsg); ok {
			return changed, true
		}
	}
	return ChangedMsg{}, false
}

func TestNew(t *testing.T) {
	m := New()

	if m.Seconds() != 0 {
		t.Errorf("Seconds() = %d, want 0", m.Seconds())
	}
	if m.Running() {
		t.Error("new countdown should not be running")
	}
	if m.interval != DefaultInterval {
		t.Errorf("interval = %v, want %v", m.interval, DefaultInterval)
	}
}

func TestSeed(t *testing.T) {
	m := New()

	m, cmd := m.Seed(DefaultSeconds)
	if m.Seconds() != 10 {
		t.Errorf("Seconds() = %d, want 10", m.Seconds())
	}
	changed, ok := findChanged(drain(cmd))
	if !ok || changed.Seconds != 10 {
		t.Errorf("Seed should emit ChangedMsg{Seconds: 10}, got %+v (ok=%v)", changed, ok)
	}

	if _, cmd := m.Seed(10); cmd != nil {
		t.Error("re-seeding the same value should be a no-op")
	}
}

func TestSeedResetsAfterTicks(t *testing.T) {
	var scheduled int
	m := New(WithTickFunc(immediateTick(&scheduled)))
	m, _ = m.Seed(10)
	m, cmd := m.Restart("user-1")

	for i := 0; i < 4; i++ {
		tick, ok := findTick(drain(cmd))
		if !ok {
			t.Fatalf("tick %d: chain ended early", i)
		}
		m, cmd = m.Update(tick)
	}
	if m.Seconds() != 6 {
		t.Fatalf("Seconds() = %d, want 6", m.Seconds())
	}

	m, cmd = m.Seed(10)
	if m.Seconds() != 10 {
		t.Errorf("Seconds() after reseed = %d, want 10", m.Seconds())
	}
	if cmd == nil {
		t.Error("reseeding a changed value should emit ChangedMsg")
	}
}

func TestTicksDecrement(t *testing.T) {
	tests := []struct {
		seed  int
		ticks int
		want  int
	}{
		{10, 0, 10},
		{10, 1, 9},
		{10, 10, 0},
		{3, 5, -2},
	}

	for _, tt := range tests {
		var scheduled int
		m := New(WithTickFunc(immediateTick(&scheduled)))
		m, _ = m.Seed(tt.seed)
		m, cmd := m.Restart("k")

		for i := 0; i < tt.ticks; i++ {
			msgs := drain(cmd)
			tick, ok := findTick(msgs)
			if !ok {
				t.Fatalf("seed %d tick %d: no tick scheduled", tt.seed, i)
			}
			m, cmd = m.Update(tick)
		}

		if m.Seconds() != tt.want {
			t.Errorf("Seed(%d) then %d ticks = %d, want %d", tt.seed, tt.ticks, m.Seconds(), tt.want)
		}
	}
}

func TestTickEmitsChanged(t *testing.T) {
	var scheduled int
	m := New(WithTickFunc(immediateTick(&scheduled)))
	m, _ = m.Seed(5)
	m, cmd := m.Restart("k")

	tick, _ := findTick(drain(cmd))
	m, cmd = m.Update(tick)

	msgs := drain(cmd)
	changed, ok := findChanged(msgs)
	if !ok {
		t.Fatal("accepted tick should emit ChangedMsg")
	}
	if changed.Seconds != 4 || changed.Key != "k" {
		t.Errorf("ChangedMsg = %+v, want {Key:k Seconds:4}", changed)
	}
	if !m.Current(changed) {
		t.Error("ChangedMsg from the live chain should be current")
	}
	if _, ok := findTick(msgs); !ok {
		t.Error("accepted tick should schedule exactly one successor")
	}
}

func TestRestartKeyChangeLeavesOneChain(t *testing.T) {
	var scheduled int
	m := New(WithTickFunc(immediateTick(&scheduled)))
	m, _ = m.Seed(10)

	m, first := m.Restart("user-1")
	oldTick, _ := findTick(drain(first))

	m, second := m.Restart("user-2")
	newTick, _ := findTick(drain(second))

	if m.Key() != "user-2" {
		t.Errorf("Key() = %q, want user-2", m.Key())
	}

	m, cmd := m.Update(oldTick)
	if cmd != nil {
		t.Error("tick from the released chain should schedule nothing")
	}
	if m.Seconds() != 10 {
		t.Errorf("stale tick changed value to %d", m.Seconds())
	}

	m, cmd = m.Update(newTick)
	if m.Seconds() != 9 {
		t.Errorf("live tick: Seconds() = %d, want 9", m.Seconds())
	}
	if _, ok := findTick(drain(cmd)); !ok {
		t.Error("live chain should continue")
	}
}

func TestRestartSameKeyIsNoop(t *testing.T) {
	var scheduled int
	m := New(WithTickFunc(immediateTick(&scheduled)))

	m, cmd := m.Restart("user-1")
	if cmd == nil {
		t.Fatal("first Restart should schedule a tick")
	}
	tag := m.Tag()

	m, cmd = m.Restart("user-1")
	if cmd != nil {
		t.Error("Restart with the live key should not start a second chain")
	}
	if m.Tag() != tag {
		t.Errorf("Tag changed from %d to %d", tag, m.Tag())
	}
	if scheduled != 1 {
		t.Errorf("scheduled = %d, want 1", scheduled)
	}
}

func TestStop(t *testing.T) {
	var scheduled int
	m := New(WithTickFunc(immediateTick(&scheduled)))
	m, _ = m.Seed(1)
	m, cmd := m.Restart("user-1")
	tick, _ := findTick(drain(cmd))

	m = m.Stop()
	if m.Running() {
		t.Error("Running() should be false after Stop")
	}

	m, cmd = m.Update(tick)
	if cmd != nil || m.Seconds() != 1 {
		t.Errorf("tick after Stop was accepted: seconds=%d cmd=%v", m.Seconds(), cmd != nil)
	}

	// Restarting the same key after Stop starts a fresh chain.
	before := ChangedMsg{Key: "user-1", Tag: m.Tag() - 1}
	m, cmd = m.Restart("user-1")
	if cmd == nil || !m.Running() {
		t.Error("Restart after Stop should start a new chain")
	}
	if m.Current(before) {
		t.Error("ChangedMsg from before Stop should not be current after Restart")
	}
}

func TestCurrent(t *testing.T) {
	var scheduled int
	m := New(WithTickFunc(immediateTick(&scheduled)))
	m, _ = m.Restart("a")
	stale := ChangedMsg{Key: "a", Tag: m.Tag(), Seconds: 0}

	m, _ = m.Restart("b")
	if m.Current(stale) {
		t.Error("ChangedMsg from a released chain should not be current")
	}
	if !m.Current(ChangedMsg{Key: "b", Tag: m.Tag()}) {
		t.Error("ChangedMsg from the live chain should be current")
	}
}

func TestUpdateIgnoresOtherMessages(t *testing.T) {
	m := New()
	m, _ = m.Seed(5)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || m.Seconds() != 5 {
		t.Error("non-tick messages should be ignored")
	}
}

func TestView(t *testing.T) {
	m := New()
	m, _ = m.Seed(10)
	if got := m.View(); got == "" {
		t.Error("View() should render the value")
	}
}
