// Package ui implements the cobra command tree.
package ui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/horario/internal/config"
	"github.com/javiermolinar/horario/internal/schedule"
	"github.com/javiermolinar/horario/internal/store"
	"github.com/javiermolinar/horario/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config  *config.Config
	db      *store.SQLite
	saver   *store.Saver
	store   *schedule.Store
	root    *cobra.Command
	noColor bool
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config) *App {
	a := &App{config: cfg}

	a.root = &cobra.Command{
		Use:   "horario",
		Short: "A CLI day planner with a time grid",
		Long: `Horario plans a single day on a time grid.

Tasks live on a configurable day window, conflicts are detected before
anything is written, and gaps can be auto-filled with breaks. Running
horario without arguments opens the interactive grid.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if a.noColor {
				DisableColor()
			}
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			return tui.Run(a.store)
		},
	}

	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable color output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.editCmd())
	a.root.AddCommand(a.rmCmd())
	a.root.AddCommand(a.clearCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.breaksCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.shareCmd())
	a.root.AddCommand(a.serveCmd())

	return a
}

// ensureStore opens the database and loads the schedule on first use.
// Commands that never touch the schedule (version, serve) skip it.
func (a *App) ensureStore() error {
	if a.store != nil {
		return nil
	}

	path := a.config.Storage.DBPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	_, statErr := os.Stat(path)
	fresh := os.IsNotExist(statErr)

	db, err := store.New(path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	snap, err := db.LoadAll()
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("loading schedule: %w", err)
	}

	if fresh {
		// Seed the global config from the planner section on a new database.
		snap.Global = a.config.PlannerDefaults()
		if err := db.SaveGlobalConfig(snap.Global); err != nil {
			_ = db.Close()
			return fmt.Errorf("seeding global config: %w", err)
		}
	}

	a.db = db
	a.saver = store.NewSaver(db, func(err error) {
		fmt.Fprintf(os.Stderr, "warning: could not save schedule: %v\n", err)
	})
	a.store = schedule.NewStore(a.saver)
	a.store.Reset(snap.Global, snap.Overrides, snap.Days)
	return nil
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("horario %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close flushes pending writes and releases the database.
func (a *App) Close() error {
	if a.saver != nil {
		a.saver.Close()
	}
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
