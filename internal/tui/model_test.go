package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/horario/internal/schedule"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(keyMsg(k))
		var ok bool
		m, ok = updated.(Model)
		if !ok {
			t.Fatalf("Update returned %T, want Model", updated)
		}
	}
	return m
}

func mustSeed(t *testing.T, st *schedule.Store, day, name, start, end string) {
	t.Helper()
	out, err := st.AddTask(day, schedule.Candidate{Name: name, StartTime: start, EndTime: end})
	if err != nil || !out.Committed() {
		t.Fatalf("seeding %s: outcome=%+v err=%v", name, out, err)
	}
}

func TestDayNavigation(t *testing.T) {
	m := New(schedule.NewStore(nil))
	start := m.dayKey

	m = press(t, m, "l")
	if m.dayKey == start {
		t.Error("right arrow should move to the next day")
	}
	m = press(t, m, "h", "h")
	if m.dayKey >= start {
		t.Errorf("two lefts from the next day should land before %s, got %s", start, m.dayKey)
	}
	m = press(t, m, "t")
	if m.dayKey != start {
		t.Errorf("t should return to today, got %s", m.dayKey)
	}
}

func TestCursorStaysInGrid(t *testing.T) {
	m := New(schedule.NewStore(nil))

	m = press(t, m, "k", "k")
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want pinned at 0", m.cursor)
	}
	for range len(m.rows) + 5 {
		m = press(t, m, "j")
	}
	if m.cursor != len(m.rows)-1 {
		t.Errorf("cursor = %d, want pinned at last row %d", m.cursor, len(m.rows)-1)
	}
}

func TestAddOnFreeSlot(t *testing.T) {
	st := schedule.NewStore(nil)
	m := New(st)

	m = press(t, m, "a")
	if m.mode != ModeInsert {
		t.Fatalf("mode = %v, want insert", m.mode)
	}
	m = press(t, m, "R", "e", "v", "i", "e", "w", "enter")

	if m.mode != ModeNormal {
		t.Fatalf("mode = %v, want normal after enter", m.mode)
	}
	tasks := st.Tasks(m.dayKey)
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}
	if tasks[0].Name != "Review" {
		t.Errorf("name = %q, want %q", tasks[0].Name, "Review")
	}
	cfg := st.EffectiveConfig(m.dayKey)
	if tasks[0].StartTime != cfg.StartTime {
		t.Errorf("task starts at %s, want first slot %s", tasks[0].StartTime, cfg.StartTime)
	}
	if tasks[0].Duration != cfg.Interval {
		t.Errorf("duration = %d, want one slot %d", tasks[0].Duration, cfg.Interval)
	}
}

func TestOverridePrompt(t *testing.T) {
	st := schedule.NewStore(nil)
	m := New(st)

	// A task starting mid-slot leaves the first slot reading as
	// available while still overlapping anything added there.
	mustSeed(t, st, m.dayKey, "Offsite", "08:10", "09:10")
	m.refresh()

	m = press(t, m, "a", "X", "enter")
	if m.mode != ModeConfirmOverride {
		t.Fatalf("mode = %v, want override prompt", m.mode)
	}
	if len(m.conflicts) != 1 || m.conflicts[0].Name != "Offsite" {
		t.Fatalf("conflicts = %+v, want the seeded task", m.conflicts)
	}
	view := m.View()
	if !strings.Contains(view, "Offsite") || !strings.Contains(view, "Replace?") {
		t.Errorf("view should surface the conflict prompt, got:\n%s", view)
	}

	// Declining leaves the day untouched.
	m = press(t, m, "n")
	if m.mode != ModeNormal {
		t.Errorf("mode = %v, want normal after decline", m.mode)
	}
	if got := len(st.Tasks(m.dayKey)); got != 1 {
		t.Errorf("got %d tasks after decline, want 1", got)
	}

	// Accepting replaces the conflicting task.
	m = press(t, m, "a", "X", "enter", "y")
	tasks := st.Tasks(m.dayKey)
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks after override, want 1", len(tasks))
	}
	if tasks[0].Name != "X" {
		t.Errorf("surviving task = %q, want the new one", tasks[0].Name)
	}
}

func TestDeleteConfirm(t *testing.T) {
	st := schedule.NewStore(nil)
	m := New(st)
	cfg := st.EffectiveConfig(m.dayKey)
	mustSeed(t, st, m.dayKey, "Standup", cfg.StartTime, cfg.EndTime)
	m.refresh()

	m = press(t, m, "d")
	if m.mode != ModeConfirmDelete {
		t.Fatalf("mode = %v, want delete prompt", m.mode)
	}
	m = press(t, m, "n")
	if got := len(st.Tasks(m.dayKey)); got != 1 {
		t.Errorf("decline should keep the task, got %d", got)
	}

	m = press(t, m, "d", "y")
	if got := len(st.Tasks(m.dayKey)); got != 0 {
		t.Errorf("confirm should remove the task, got %d", got)
	}
}

func TestFillBreaksKey(t *testing.T) {
	st := schedule.NewStore(nil)
	m := New(st)
	mustSeed(t, st, m.dayKey, "Meeting", "09:00", "10:00")
	m.refresh()

	m = press(t, m, "b")
	var breaks int
	for _, tk := range st.Tasks(m.dayKey) {
		if tk.Break {
			breaks++
		}
	}
	if breaks == 0 {
		t.Error("b should fill the day's gaps with breaks")
	}
}

func TestViewRendersGrid(t *testing.T) {
	st := schedule.NewStore(nil)
	m := New(st)
	cfg := st.EffectiveConfig(m.dayKey)
	mustSeed(t, st, m.dayKey, "Deep work", "09:00", "10:30")
	m.refresh()

	view := m.View()
	if !strings.Contains(view, m.dayKey) {
		t.Error("view should contain the day key")
	}
	if !strings.Contains(view, "Deep work") {
		t.Error("view should contain the task name")
	}
	if !strings.Contains(view, cfg.StartTime) {
		t.Error("view should contain the first slot time")
	}
}
