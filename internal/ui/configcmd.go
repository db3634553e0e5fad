package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/horario/internal/schedule"
)

func (a *App) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit day window settings",
		Long: `Manage the day window: start, end and grid interval.

The global config applies to every day; a per-day override shadows it
for that day only. Tasks stranded outside a narrowed window are
reported but left in place.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			printDayConfig("global", a.store.GlobalConfig())
			for day, cfg := range a.store.Overrides() {
				printDayConfig(day, cfg)
			}
			return nil
		},
	}

	cmd.AddCommand(a.configShowCmd())
	cmd.AddCommand(a.configSetCmd())
	cmd.AddCommand(a.configRevertCmd())
	return cmd
}

func (a *App) configShowCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective config for a day",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			dayKey, err := resolveDay(date)
			if err != nil {
				return err
			}
			printDayConfig(dayKey, a.store.EffectiveConfig(dayKey))
			if a.store.HasOverride(dayKey) {
				fmt.Println(formatMuted("  (day override, 'horario config revert' restores the global config)"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD or today/tomorrow, default: today)")
	return cmd
}

func (a *App) configSetCmd() *cobra.Command {
	var (
		date     string
		global   bool
		start    string
		end      string
		interval int
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change the day window",
		Long: `Change the day window for one day, or globally with --global.

Setting a day value creates an override seeded from the current
effective config. Only the flags you pass change.

Example:
  horario config set --date=2026-01-10 --start=07:00 --interval=15
  horario config set --global --end=20:00`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			var (
				startP    *string
				endP      *string
				intervalP *int
			)
			if cmd.Flags().Changed("start") {
				startP = &start
			}
			if cmd.Flags().Changed("end") {
				endP = &end
			}
			if cmd.Flags().Changed("interval") {
				intervalP = &interval
			}
			if startP == nil && endP == nil && intervalP == nil {
				return fmt.Errorf("nothing to change: pass --start, --end or --interval")
			}

			if global {
				cfg, err := a.store.SetGlobalConfig(schedule.GlobalConfigPatch{
					StartTime: startP, EndTime: endP, Interval: intervalP,
				})
				if err != nil {
					return err
				}
				printDayConfig("global", cfg)
				for _, day := range a.store.DayKeys() {
					if !a.store.HasOverride(day) {
						warnOutsideBounds(a.store.TasksOutsideBounds(day, cfg))
					}
				}
				return nil
			}

			dayKey, err := resolveDay(date)
			if err != nil {
				return err
			}
			cfg, err := a.store.SetDayConfig(dayKey, schedule.DayConfigPatch{
				StartTime: startP, EndTime: endP, Interval: intervalP,
			})
			if err != nil {
				return err
			}
			printDayConfig(dayKey, cfg)
			warnOutsideBounds(a.store.TasksOutsideBounds(dayKey, cfg))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD or today/tomorrow, default: today)")
	cmd.Flags().BoolVar(&global, "global", false, "Change the global config instead of one day")
	cmd.Flags().StringVar(&start, "start", "", "Day window start (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "Day window end (HH:MM)")
	cmd.Flags().IntVar(&interval, "interval", 0, "Grid interval in minutes")
	cmd.MarkFlagsMutuallyExclusive("date", "global")

	return cmd
}

func (a *App) configRevertCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "revert",
		Short: "Drop a day's override",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			dayKey, err := resolveDay(date)
			if err != nil {
				return err
			}
			if !a.store.HasOverride(dayKey) {
				fmt.Printf("%s has no override.\n", dayKey)
				return nil
			}
			if err := a.store.ClearDayOverride(dayKey); err != nil {
				return err
			}
			cfg := a.store.EffectiveConfig(dayKey)
			fmt.Printf("Reverted %s to the global config.\n", dayKey)
			warnOutsideBounds(a.store.TasksOutsideBounds(dayKey, cfg))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD or today/tomorrow, default: today)")
	return cmd
}

func printDayConfig(label string, cfg schedule.DayConfig) {
	fmt.Printf("%s: %s-%s every %dm\n", formatHeader(label), cfg.StartTime, cfg.EndTime, cfg.Interval)
}
