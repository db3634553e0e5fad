package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/horario/internal/schedule"
	"github.com/javiermolinar/horario/internal/task"
)

func (a *App) addCmd() *cobra.Command {
	var (
		date        string
		start       string
		end         string
		description string
		colorTag    string
		force       bool
		exact       bool
	)

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a task to a day",
		Long: `Add a task to a day's schedule.

Start and end are snapped to the day's interval grid, the start down
and the end up; pass --exact to keep them as entered. If the time
range overlaps existing tasks, the conflicts are listed and nothing is
written until you confirm the replacement.

Example:
  horario add "Write documentation" --date=2026-01-10 --start=09:00 --end=11:00 --color=green`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			dayKey, err := resolveDay(date)
			if err != nil {
				return err
			}

			if !exact {
				start, end = snapRange(start, end, a.store.EffectiveConfig(dayKey))
			}

			cand := schedule.Candidate{
				Name:        args[0],
				Description: description,
				StartTime:   start,
				EndTime:     end,
				Color:       task.Color(colorTag),
			}

			outcome, err := a.store.AddTask(dayKey, cand)
			if err != nil {
				return err
			}

			if !outcome.Committed() {
				if !confirmOverride(outcome.Conflicts, force) {
					fmt.Println("Nothing added.")
					return nil
				}
				outcome, err = a.store.OverrideAndAdd(dayKey, cand, conflictIDs(outcome.Conflicts))
				if err != nil {
					return err
				}
			}

			t := outcome.Task
			fmt.Printf("Added %s: %s %s-%s (%s)\n",
				shortID(t.ID), t.Name, t.StartTime, t.EndTime, formatDuration(t.Duration))
			printWarning(outcome.Warning)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD or today/tomorrow, default: today)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM, required)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM, required)")
	cmd.Flags().StringVar(&description, "desc", "", "Longer description")
	cmd.Flags().StringVar(&colorTag, "color", string(task.ColorBlue), "Color tag: blue, green, yellow, red, purple or grey")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Replace conflicting tasks without asking")
	cmd.Flags().BoolVar(&exact, "exact", false, "Keep times as entered instead of snapping to the grid")

	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}
