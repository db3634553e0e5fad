package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/horario/internal/export"
	"github.com/javiermolinar/horario/internal/store"
	"github.com/javiermolinar/horario/internal/task"
)

func (a *App) exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export the schedule to a JSON file",
		Long: `Write the full schedule, including the global config, to a JSON
document. Without an argument the file is named after today's date.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			path := export.Filename(time.Now())
			if len(args) == 1 {
				path = args[0]
			}

			doc := export.Export(a.store)
			data, err := export.Marshal(doc)
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}

			fmt.Printf("Exported %d day(s) to %s\n", len(doc.Days), path)
			return nil
		},
	}
	return cmd
}

func (a *App) importCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a schedule from a JSON file",
		Long: `Replace the schedule with the content of an exported JSON
document. The document is validated in full before anything changes; a
malformed file leaves the current schedule untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading import file: %w", err)
			}

			doc, err := export.Parse(data)
			if err != nil {
				return err
			}

			if !yes && !promptYesNo(fmt.Sprintf("Replace the current schedule with %d day(s) from %s?", len(doc.Days), args[0])) {
				return nil
			}

			export.Apply(a.store, doc)

			// The saver only sees incremental writes, so rewrite the
			// database wholesale to match the new state.
			a.saver.Flush()
			if err := a.db.ReplaceAll(a.snapshot()); err != nil {
				return fmt.Errorf("persisting import: %w", err)
			}

			fmt.Printf("Imported %d day(s).\n", len(doc.Days))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// snapshot captures the full in-memory state for a wholesale rewrite.
func (a *App) snapshot() *store.Snapshot {
	days := make(map[string][]*task.Task)
	for _, key := range a.store.DayKeys() {
		days[key] = a.store.Tasks(key)
	}
	return &store.Snapshot{
		Global:    a.store.GlobalConfig(),
		Overrides: a.store.Overrides(),
		Days:      days,
	}
}
