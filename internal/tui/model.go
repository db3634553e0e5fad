// Package tui provides the interactive day grid.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/horario/internal/dateutil"
	"github.com/javiermolinar/horario/internal/grid"
	"github.com/javiermolinar/horario/internal/schedule"
	"github.com/javiermolinar/horario/internal/task"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal          Mode = iota
	ModeInsert               // typing a name for a new task on the cursor slot
	ModeConfirmDelete        // y/n before removing the task under the cursor
	ModeConfirmOverride      // y/n before replacing conflicting tasks
)

// Model is the main TUI model.
type Model struct {
	store *schedule.Store

	dayKey string
	rows   []grid.Row
	cursor int
	mode   Mode

	// Insert mode state
	nameInput textinput.Model

	// Pending two-step actions
	pendingDelete *task.Task
	pendingAdd    schedule.Candidate
	conflicts     []*task.Task

	status string
	width  int
	height int
}

// New creates a model positioned on today.
func New(st *schedule.Store) Model {
	input := textinput.New()
	input.Placeholder = "task name"
	input.CharLimit = task.MaxNameLen

	m := Model{
		store:     st,
		dayKey:    dateutil.DayKey(time.Now()),
		nameInput: input,
	}
	m.refresh()
	return m
}

// refresh recomputes the grid rows and clamps the cursor.
func (m *Model) refresh() {
	cfg := m.store.EffectiveConfig(m.dayKey)
	m.rows = grid.Project(m.store.Tasks(m.dayKey), cfg)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// current returns the row under the cursor, or nil on an empty grid.
func (m Model) current() *grid.Row {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return &m.rows[m.cursor]
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Run starts the TUI.
func Run(st *schedule.Store) error {
	p := tea.NewProgram(New(st), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
