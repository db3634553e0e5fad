package ui

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/horario/internal/shareserver"
)

func (a *App) serveCmd() *cobra.Command {
	var (
		addr   string
		dbPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the share backend",
		Long: `Run the HTTP backend that stores shared days and serves the
read-only links. Shares expire after 24 hours; creation is rate
limited per client address.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.config.Share.ListenAddr
			}
			if dbPath == "" {
				dbPath = a.config.Share.DBPath
			}
			if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
				return fmt.Errorf("creating data directory: %w", err)
			}

			kv, err := shareserver.OpenKV(dbPath)
			if err != nil {
				return fmt.Errorf("opening share store: %w", err)
			}
			defer func() { _ = kv.Close() }()

			logger := log.NewWithOptions(os.Stderr, log.Options{
				ReportTimestamp: true,
				Prefix:          "share",
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := shareserver.New(kv, a.config.Share.BaseURL, logger)
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	cmd.Flags().StringVar(&dbPath, "db", "", "Share database path (default from config)")
	return cmd
}
