package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/horario/internal/dateutil"
	"github.com/javiermolinar/horario/internal/schedule"
	"github.com/javiermolinar/horario/internal/timeutil"
)

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeInsert:
		return m.handleInsertKeys(msg)
	case ModeConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	case ModeConfirmOverride:
		return m.handleConfirmOverrideKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch msg.String() {
	case "q":
		return m, tea.Quit

	// Navigation
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "j", "down":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "h", "left":
		if prev, err := dateutil.PrevDay(m.dayKey); err == nil {
			m.dayKey = prev
			m.refresh()
		}
	case "l", "right":
		if next, err := dateutil.NextDay(m.dayKey); err == nil {
			m.dayKey = next
			m.refresh()
		}
	case "t":
		m.dayKey = dateutil.DayKey(time.Now())
		m.refresh()

	// Actions
	case "a":
		row := m.current()
		if row == nil || !row.Available() {
			m.status = "move to a free slot to add a task"
			return m, nil
		}
		m.mode = ModeInsert
		m.nameInput.SetValue("")
		m.nameInput.Focus()
		return m, nil
	case "d", "x":
		row := m.current()
		if row == nil || row.Available() {
			m.status = "no task under the cursor"
			return m, nil
		}
		m.pendingDelete = row.Task
		m.mode = ModeConfirmDelete
	case "b":
		filled, err := m.store.FillDayBreaks(m.dayKey)
		m.refresh()
		if err != nil {
			m.status = fmt.Sprintf("warning: %v", err)
		} else {
			m.status = fmt.Sprintf("filled gaps, %d tasks on the day", len(filled))
		}
	}
	return m, nil
}

func (m Model) handleInsertKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.nameInput.Blur()
		return m, nil
	case "enter":
		row := m.current()
		name := m.nameInput.Value()
		m.mode = ModeNormal
		m.nameInput.Blur()
		if row == nil || name == "" {
			return m, nil
		}

		cfg := m.store.EffectiveConfig(m.dayKey)
		start := timeutil.TimeToMinutes(row.Time)
		end := start + cfg.Interval
		if end > cfg.EndMinutes() {
			end = cfg.EndMinutes()
		}
		cand := schedule.Candidate{
			Name:      name,
			StartTime: row.Time,
			EndTime:   timeutil.MinutesToTime(end),
		}
		return m.propose(cand), nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// propose runs the two-step add protocol: commit directly, or park the
// candidate and switch to the override confirmation.
func (m Model) propose(cand schedule.Candidate) Model {
	outcome, err := m.store.AddTask(m.dayKey, cand)
	if err != nil {
		m.status = err.Error()
		return m
	}
	if !outcome.Committed() {
		m.pendingAdd = cand
		m.conflicts = outcome.Conflicts
		m.mode = ModeConfirmOverride
		return m
	}
	m.refresh()
	m.status = fmt.Sprintf("added %s %s-%s", outcome.Task.Name, outcome.Task.StartTime, outcome.Task.EndTime)
	if outcome.Warning != nil {
		m.status = fmt.Sprintf("warning: %v", outcome.Warning)
	}
	return m
}

func (m Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		t := m.pendingDelete
		m.pendingDelete = nil
		m.mode = ModeNormal
		if err := m.store.RemoveTask(m.dayKey, t.ID); err != nil {
			m.status = fmt.Sprintf("warning: %v", err)
		} else {
			m.status = fmt.Sprintf("removed %s", t.Name)
		}
		m.refresh()
	case "n", "esc":
		m.pendingDelete = nil
		m.mode = ModeNormal
	}
	return m, nil
}

func (m Model) handleConfirmOverrideKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		ids := make([]string, len(m.conflicts))
		for i, c := range m.conflicts {
			ids[i] = c.ID
		}
		outcome, err := m.store.OverrideAndAdd(m.dayKey, m.pendingAdd, ids)
		m.conflicts = nil
		m.mode = ModeNormal
		if err != nil {
			m.status = err.Error()
		} else {
			m.status = fmt.Sprintf("replaced %d task(s) with %s", len(ids), outcome.Task.Name)
			if outcome.Warning != nil {
				m.status = fmt.Sprintf("warning: %v", outcome.Warning)
			}
		}
		m.refresh()
	case "n", "esc":
		m.conflicts = nil
		m.mode = ModeNormal
		m.status = "nothing added"
	}
	return m, nil
}
