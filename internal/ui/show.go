package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/horario/internal/grid"
)

func (a *App) showCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a day as a time grid",
		Long: `Display a day's schedule projected onto its time grid.

Each row is one slot of the day's interval; free slots are marked as
available. Use 'horario list' for the flat task list with ids.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			dayKey, err := resolveDay(date)
			if err != nil {
				return err
			}

			cfg := a.store.EffectiveConfig(dayKey)
			rows := grid.Project(a.store.Tasks(dayKey), cfg)

			header := fmt.Sprintf("%s  %s-%s every %dm", dayKey, cfg.StartTime, cfg.EndTime, cfg.Interval)
			if a.store.HasOverride(dayKey) {
				header += "  (day override)"
			}
			fmt.Printf("=== %s ===\n\n", formatHeader(header))

			printGrid(rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD or today/tomorrow, default: today)")
	return cmd
}

// printGrid renders projected rows, one line per slot. A task row
// spans rowSpan slots, so longer tasks print once with their duration.
func printGrid(rows []grid.Row) {
	nameWidth := termWidth() - 20
	if nameWidth < 10 {
		nameWidth = 10
	}

	for _, r := range rows {
		if r.Available() {
			fmt.Printf("%s  %s\n", r.Time, formatMuted("available"))
			continue
		}
		label := r.Task.Name
		if len(label) > nameWidth {
			label = label[:nameWidth-1] + "…"
		}
		span := ""
		if r.RowSpan > 1 {
			span = formatMuted(fmt.Sprintf(" (%s)", formatDuration(r.Task.Duration)))
		}
		fmt.Printf("%s  %s%s\n", r.Time, formatTask(r.Task, label), span)
	}
}
