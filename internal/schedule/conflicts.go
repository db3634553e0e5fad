package schedule

import (
	"github.com/javiermolinar/horario/internal/task"
	"github.com/javiermolinar/horario/internal/timeutil"
)

// FindConflicts returns every task in dayTasks whose interval
// overlaps the half-open range [start, end), in the list's existing
// order. A task whose id equals excludeID is skipped, so edits never
// conflict with their own prior version. excludeID may be empty.
//
// Both the creation and the edit path go through here; it is the
// single place that defines what counts as a conflict.
func FindConflicts(dayTasks []*task.Task, start, end, excludeID string) []*task.Task {
	var conflicts []*task.Task
	for _, t := range dayTasks {
		if excludeID != "" && t.ID == excludeID {
			continue
		}
		if timeutil.TimesOverlap(start, end, t.StartTime, t.EndTime) {
			conflicts = append(conflicts, t)
		}
	}
	return conflicts
}
