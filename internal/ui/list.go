package ui

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) listCmd() *cobra.Command {
	var (
		date string
		all  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks with their ids",
		Long: `List a day's tasks in start order with their short ids.

The ids are what 'horario edit' and 'horario rm' take. With --all,
every non-empty day is listed.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			if all {
				keys := a.store.DayKeys()
				if len(keys) == 0 {
					fmt.Println("Nothing scheduled.")
					return nil
				}
				for i, key := range keys {
					if i > 0 {
						fmt.Println()
					}
					printDay(a, key)
				}
				return nil
			}

			dayKey, err := resolveDay(date)
			if err != nil {
				return err
			}
			if len(a.store.Tasks(dayKey)) == 0 {
				fmt.Printf("Nothing scheduled on %s.\n", dayKey)
				return nil
			}
			printDay(a, dayKey)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD or today/tomorrow, default: today)")
	cmd.Flags().BoolVar(&all, "all", false, "List every non-empty day")
	return cmd
}

func printDay(a *App, dayKey string) {
	fmt.Printf("=== %s ===\n", formatHeader(dayKey))
	for _, t := range a.store.Tasks(dayKey) {
		printTaskLine(t)
	}
}
