package grid

import (
	"testing"

	"github.com/javiermolinar/horario/internal/schedule"
	"github.com/javiermolinar/horario/internal/task"
)

func cfg(start, end string, interval int) schedule.DayConfig {
	return schedule.DayConfig{StartTime: start, EndTime: end, Interval: interval}
}

func tk(id, start, end string) *task.Task {
	s := &task.Task{ID: id, Name: id, StartTime: start, EndTime: end}
	s.Duration = s.EndMinutes() - s.StartMinutes()
	return s
}

func TestProjectEmptyDay(t *testing.T) {
	rows := Project(nil, cfg("09:00", "11:00", 30))

	// 09:00 09:30 10:00 10:30 and no terminal 11:00 row.
	if len(rows) != 4 {
		t.Fatalf("Project(empty) = %d rows, want 4", len(rows))
	}
	for i, r := range rows {
		if !r.Available() || r.RowSpan != 1 {
			t.Errorf("row %d = %+v, want available rowSpan 1", i, r)
		}
	}
	if rows[0].Time != "09:00" || rows[3].Time != "10:30" {
		t.Errorf("slot times = %s..%s, want 09:00..10:30", rows[0].Time, rows[3].Time)
	}
}

func TestProjectTaskOnSlot(t *testing.T) {
	rows := Project([]*task.Task{tk("a", "09:30", "10:30")}, cfg("09:00", "11:00", 30))

	// 09:00 available, 09:30 task (span 2, 10:00 suppressed), 10:30 available.
	if len(rows) != 3 {
		t.Fatalf("Project = %d rows, want 3", len(rows))
	}
	if !rows[0].Available() {
		t.Errorf("row 0 = %+v, want available", rows[0])
	}
	if rows[1].Task == nil || rows[1].Task.ID != "a" || rows[1].RowSpan != 2 {
		t.Errorf("row 1 = %+v, want task a with rowSpan 2", rows[1])
	}
	if rows[2].Time != "10:30" || !rows[2].Available() {
		t.Errorf("row 2 = %+v, want available 10:30", rows[2])
	}
}

func TestProjectRowSpanRoundsUp(t *testing.T) {
	rows := Project([]*task.Task{tk("a", "09:00", "09:40")}, cfg("09:00", "10:00", 30))

	if rows[0].Task == nil || rows[0].RowSpan != 2 {
		t.Errorf("row 0 = %+v, want rowSpan 2 for a 40-minute task on a 30-minute grid", rows[0])
	}
}

func TestProjectTerminalSlot(t *testing.T) {
	t.Run("suppressed when empty", func(t *testing.T) {
		rows := Project(nil, cfg("09:00", "10:00", 30))
		for _, r := range rows {
			if r.Time == "10:00" {
				t.Error("terminal slot emitted an empty row")
			}
		}
	})

	t.Run("kept when a task starts there", func(t *testing.T) {
		rows := Project([]*task.Task{tk("a", "10:00", "10:30")}, cfg("09:00", "10:00", 30))
		last := rows[len(rows)-1]
		if last.Time != "10:00" || last.Task == nil {
			t.Errorf("terminal row = %+v, want task a at 10:00", last)
		}
	})
}

func TestProjectOffGridTaskSuppressesCoveredSlots(t *testing.T) {
	// Task starts between slots: it never gets a row, and the slots it
	// covers are in-progress and produce nothing.
	rows := Project([]*task.Task{tk("a", "09:10", "10:10")}, cfg("09:00", "11:00", 30))

	times := map[string]bool{}
	for _, r := range rows {
		times[r.Time] = r.Available()
	}
	if avail, ok := times["09:30"]; ok && !avail {
		t.Error("09:30 emitted a task row for an off-grid task")
	}
	if _, ok := times["09:30"]; ok {
		t.Error("09:30 covered by in-progress task, want no row")
	}
	if _, ok := times["10:00"]; ok {
		t.Error("10:00 covered by in-progress task, want no row")
	}
	if avail := times["10:30"]; !avail {
		t.Error("10:30 should be available again")
	}
}

func TestProjectStepFloor(t *testing.T) {
	// Intervals below the floor step at 5 minutes instead.
	rows := Project(nil, cfg("09:00", "09:20", 1))
	if len(rows) != 4 {
		t.Fatalf("Project with interval 1 = %d rows, want 4 (5-minute floor)", len(rows))
	}
	if rows[1].Time != "09:05" {
		t.Errorf("second slot = %s, want 09:05", rows[1].Time)
	}
}

func TestProjectBreaksAppearAsTasks(t *testing.T) {
	b := task.NewBreak("09:00", "09:30")
	rows := Project([]*task.Task{b}, cfg("09:00", "10:00", 30))
	if rows[0].Task == nil || !rows[0].Task.Break {
		t.Errorf("row 0 = %+v, want break task row", rows[0])
	}
}
