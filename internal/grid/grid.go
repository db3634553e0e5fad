// Package grid projects a day's tasks onto fixed-interval display
// rows. Projection is a read-only derivation; nothing here is stored.
package grid

import (
	"github.com/javiermolinar/horario/internal/schedule"
	"github.com/javiermolinar/horario/internal/task"
	"github.com/javiermolinar/horario/internal/timeutil"
)

// MinStep is the floor for the projection step, preventing degenerate
// grids from a broken interval value.
const MinStep = 5

// Row is one display row of the day grid.
type Row struct {
	Time    string     // slot timestamp, "HH:MM"
	Task    *task.Task // nil when the slot is available
	RowSpan int        // grid slots covered by the task, 1 for available rows
}

// Available returns true if no task occupies the row.
func (r Row) Available() bool {
	return r.Task == nil
}

// Project expands the day's tasks into grid rows from the window
// start to its end, stepping by the config interval.
//
// A task starting exactly on a slot gets one row spanning
// ceil(duration/step) slots; slots covered by that span, or by a task
// already in progress, produce no row. Everything else is an
// available row. The terminal slot is suppressed unless a task starts
// exactly there.
func Project(dayTasks []*task.Task, cfg schedule.DayConfig) []Row {
	step := cfg.Interval
	if step < MinStep {
		step = MinStep
	}

	dayStart := cfg.StartMinutes()
	dayEnd := cfg.EndMinutes()

	var rows []Row
	for slot := dayStart; slot <= dayEnd; slot += step {
		if t := taskStartingAt(dayTasks, slot); t != nil {
			span := (t.Duration + step - 1) / step
			rows = append(rows, Row{
				Time:    timeutil.MinutesToTime(slot),
				Task:    t,
				RowSpan: span,
			})
			continue
		}
		if slot == dayEnd {
			// No trailing empty row for the terminal slot.
			break
		}
		if taskInProgressAt(dayTasks, slot) {
			// Rendered at its start slot already.
			continue
		}
		rows = append(rows, Row{
			Time:    timeutil.MinutesToTime(slot),
			RowSpan: 1,
		})
	}
	return rows
}

func taskStartingAt(dayTasks []*task.Task, slot int) *task.Task {
	for _, t := range dayTasks {
		if t.StartMinutes() == slot {
			return t
		}
	}
	return nil
}

func taskInProgressAt(dayTasks []*task.Task, slot int) bool {
	for _, t := range dayTasks {
		if t.StartMinutes() < slot && slot < t.EndMinutes() {
			return true
		}
	}
	return false
}
