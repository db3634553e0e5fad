package schedule

import (
	"github.com/javiermolinar/horario/internal/task"
	"github.com/javiermolinar/horario/internal/timeutil"
)

// FillBreaks derives the break-filled task list for a day: the real
// tasks plus auto-generated breaks covering every idle gap inside the
// day window. Previous auto-breaks are stripped first, so running it
// twice with no other change yields the same list.
//
// Breaks are identified by the Break flag, never by name; a user task
// named "Break" is a real task and survives refills.
//
// Any positive gap becomes a break, however short. A day with no
// tasks produces a single break spanning the whole window.
func FillBreaks(dayTasks []*task.Task, cfg DayConfig) []*task.Task {
	real := make([]*task.Task, 0, len(dayTasks))
	for _, t := range dayTasks {
		if !t.Break {
			real = append(real, t)
		}
	}
	sortTasks(real)

	dayStart := cfg.StartMinutes()
	dayEnd := cfg.EndMinutes()

	out := make([]*task.Task, 0, 2*len(real)+1)
	cursor := dayStart
	for _, t := range real {
		start := t.StartMinutes()
		if start > cursor {
			out = append(out, task.NewBreak(
				timeutil.MinutesToTime(cursor),
				timeutil.MinutesToTime(start),
			))
		}
		out = append(out, t)
		if end := t.EndMinutes(); end > cursor {
			cursor = end
		}
	}
	if cursor < dayEnd {
		out = append(out, task.NewBreak(
			timeutil.MinutesToTime(cursor),
			timeutil.MinutesToTime(dayEnd),
		))
	}

	sortTasks(out)
	return out
}
