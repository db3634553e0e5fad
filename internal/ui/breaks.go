package ui

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) breaksCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "breaks",
		Short: "Fill a day's gaps with breaks",
		Long: `Fill every free gap in the day window with a break task.

Previously generated breaks are recomputed, so running it twice is
safe. Breaks added by hand or renamed tasks are left alone.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			dayKey, err := resolveDay(date)
			if err != nil {
				return err
			}

			filled, err := a.store.FillDayBreaks(dayKey)
			printWarning(err)

			added := 0
			for _, t := range filled {
				if t.Break {
					added++
				}
			}
			fmt.Printf("Filled %s: %d break(s), %d task(s) total.\n", dayKey, added, len(filled))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD or today/tomorrow, default: today)")
	return cmd
}
