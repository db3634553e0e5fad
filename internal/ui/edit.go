package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/horario/internal/schedule"
	"github.com/javiermolinar/horario/internal/task"
	"github.com/javiermolinar/horario/internal/timeutil"
)

func (a *App) editCmd() *cobra.Command {
	var (
		date        string
		name        string
		description string
		start       string
		end         string
		colorTag    string
		exact       bool
	)

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit a task",
		Long: `Edit one or more fields of an existing task.

The id may be shortened to any unambiguous prefix, as printed by
'horario list'. Only the flags you pass are changed; new times snap to
the day's grid unless --exact is set, and moving a task onto occupied
time is rejected with the conflicting tasks listed.

Example:
  horario edit 3f2a --start=10:00 --end=11:30`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			dayKey, err := resolveDay(date)
			if err != nil {
				return err
			}

			t, err := findByPrefix(a.store, dayKey, args[0])
			if err != nil {
				return err
			}

			cfg := a.store.EffectiveConfig(dayKey)

			var patch schedule.TaskPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("desc") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("start") {
				if !exact {
					start = snapClock(start, cfg, timeutil.SnapFloor)
				}
				patch.StartTime = &start
			}
			if cmd.Flags().Changed("end") {
				if !exact {
					end = snapClock(end, cfg, timeutil.SnapCeil)
				}
				patch.EndTime = &end
			}
			if cmd.Flags().Changed("color") {
				c := task.Color(colorTag)
				patch.Color = &c
			}

			outcome, err := a.store.UpdateTask(dayKey, t.ID, patch)
			if err != nil {
				return err
			}

			if !outcome.Committed() {
				printConflicts(outcome.Conflicts)
				return fmt.Errorf("edit would overlap %d task(s)", len(outcome.Conflicts))
			}

			u := outcome.Task
			fmt.Printf("Updated %s: %s %s-%s (%s)\n",
				shortID(u.ID), u.Name, u.StartTime, u.EndTime, formatDuration(u.Duration))
			printWarning(outcome.Warning)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD or today/tomorrow, default: today)")
	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&description, "desc", "", "New description")
	cmd.Flags().StringVar(&start, "start", "", "New start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "New end time (HH:MM)")
	cmd.Flags().StringVar(&colorTag, "color", "", "New color tag")
	cmd.Flags().BoolVar(&exact, "exact", false, "Keep times as entered instead of snapping to the grid")

	return cmd
}
