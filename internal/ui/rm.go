package ui

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) rmCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "rm [id]",
		Short: "Remove a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
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

			if err := a.store.RemoveTask(dayKey, t.ID); err != nil {
				printWarning(err)
			}
			fmt.Printf("Removed %s: %s %s-%s\n", shortID(t.ID), t.Name, t.StartTime, t.EndTime)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD or today/tomorrow, default: today)")
	return cmd
}

func (a *App) clearCmd() *cobra.Command {
	var (
		date string
		yes  bool
	)

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every task from a day",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			dayKey, err := resolveDay(date)
			if err != nil {
				return err
			}

			tasks := a.store.Tasks(dayKey)
			if len(tasks) == 0 {
				fmt.Printf("Nothing scheduled on %s.\n", dayKey)
				return nil
			}

			if !yes && !promptYesNo(fmt.Sprintf("Remove all %d task(s) on %s?", len(tasks), dayKey)) {
				return nil
			}

			if err := a.store.ClearDay(dayKey); err != nil {
				printWarning(err)
			}
			fmt.Printf("Cleared %s.\n", dayKey)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD or today/tomorrow, default: today)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
