package ui

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/javiermolinar/horario/internal/dateutil"
	"github.com/javiermolinar/horario/internal/schedule"
	"github.com/javiermolinar/horario/internal/task"
	"github.com/javiermolinar/horario/internal/timeutil"
)

// resolveDay turns a --date flag value into a day key. An empty value
// means today; "today", "tomorrow" and "yesterday" are accepted
// alongside explicit YYYY-MM-DD dates.
func resolveDay(flag string) (string, error) {
	if flag == "" {
		return dateutil.DayKey(time.Now()), nil
	}
	return dateutil.ParseRelativeDay(flag, time.Now())
}

// snapClock aligns a user-entered time to the day's interval grid,
// anchored at the window start. Malformed input passes through so the
// store reports the format error. A ceil past an off-grid window end
// clamps to the window end instead of overshooting it.
func snapClock(clock string, cfg schedule.DayConfig, mode timeutil.SnapMode) string {
	if timeutil.ValidTime(clock) != nil {
		return clock
	}
	m := timeutil.TimeToMinutes(clock)
	snapped := timeutil.Snap(m, cfg.Interval, cfg.StartMinutes(), mode)
	if mode == timeutil.SnapCeil && m <= cfg.EndMinutes() && snapped > cfg.EndMinutes() {
		snapped = cfg.EndMinutes()
	}
	return timeutil.MinutesToTime(snapped)
}

// snapRange snaps a start/end pair: the start floors to its slot, the
// end ceils, so the range can only widen and never collapses to zero.
func snapRange(start, end string, cfg schedule.DayConfig) (string, string) {
	return snapClock(start, cfg, timeutil.SnapFloor), snapClock(end, cfg, timeutil.SnapCeil)
}

// findByPrefix resolves a task id or unambiguous id prefix within a day.
func findByPrefix(st *schedule.Store, dayKey, prefix string) (*task.Task, error) {
	if prefix == "" {
		return nil, errors.New("task id required")
	}

	var match *task.Task
	for _, t := range st.Tasks(dayKey) {
		if !strings.HasPrefix(t.ID, prefix) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("id prefix %q matches more than one task", prefix)
		}
		match = t
	}
	if match == nil {
		return nil, fmt.Errorf("no task with id %q on %s", prefix, dayKey)
	}
	return match, nil
}

// shortID returns the first segment of a uuid, enough to address a
// task within a single day.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// formatDuration renders minutes as "1h30m", "45m" or "2h".
func formatDuration(minutes int) string {
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%dm", h, m)
	}
}

// printTaskLine prints one task row in the list format.
func printTaskLine(t *task.Task) {
	label := t.Name
	if t.Break {
		label = formatMuted(label)
	} else {
		label = formatTask(t, label)
	}
	fmt.Printf("  %s  %s-%s  %-7s %s\n",
		shortID(t.ID), t.StartTime, t.EndTime, formatDuration(t.Duration), label)
	if t.Description != "" {
		fmt.Printf("          %s\n", formatMuted(t.Description))
	}
}

// printConflicts lists the tasks blocking a proposed change.
func printConflicts(conflicts []*task.Task) {
	fmt.Println("The requested time overlaps existing tasks:")
	for _, c := range conflicts {
		printTaskLine(c)
	}
}

// printWarning surfaces a non-blocking persistence failure.
func printWarning(err error) {
	if err != nil {
		fmt.Println(formatWarn(fmt.Sprintf("warning: %v", err)))
	}
}

// confirmOverride prompts the user to replace the conflicting tasks.
// force skips the prompt.
func confirmOverride(conflicts []*task.Task, force bool) bool {
	printConflicts(conflicts)
	if force {
		return true
	}
	return promptYesNo("Replace them?")
}

func promptYesNo(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

// conflictIDs extracts the ids of conflicting tasks for OverrideAndAdd.
func conflictIDs(conflicts []*task.Task) []string {
	ids := make([]string, len(conflicts))
	for i, c := range conflicts {
		ids[i] = c.ID
	}
	return ids
}

// warnOutsideBounds reports tasks stranded outside the day window
// after a config change.
func warnOutsideBounds(outside []*task.Task) {
	if len(outside) == 0 {
		return
	}
	fmt.Println(formatWarn(fmt.Sprintf("%d task(s) now fall outside the day window:", len(outside))))
	for _, t := range outside {
		printTaskLine(t)
	}
}
