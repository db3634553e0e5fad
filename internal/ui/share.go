package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/horario/internal/share"
)

const shareTimeout = 30 * time.Second

func (a *App) shareCmd() *cobra.Command {
	var (
		date    string
		replace string
	)

	cmd := &cobra.Command{
		Use:   "share",
		Short: "Publish a day as a read-only link",
		Long: `Publish a day's schedule to the share backend and print the
read-only link. Task descriptions and ids never leave the planner.

The link is copied to the clipboard when one is available. Use
--replace to revoke an earlier share of the same day in the same step,
and 'horario share revoke' to take a link down.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			dayKey, err := resolveDay(date)
			if err != nil {
				return err
			}

			payload := share.BuildPayload(a.store, dayKey)
			if len(payload.Items) == 0 {
				return fmt.Errorf("nothing to share on %s", dayKey)
			}

			ctx, cancel := context.WithTimeout(context.Background(), shareTimeout)
			defer cancel()

			client := share.NewClient(a.config.Share.BaseURL, nil)
			var info *share.Info
			if replace != "" {
				info, err = client.Replace(ctx, replace, payload)
			} else {
				info, err = client.Create(ctx, payload)
			}
			if err != nil {
				return fmt.Errorf("sharing %s: %w", dayKey, err)
			}

			fmt.Printf("Shared %s (%d items)\n%s\n", dayKey, len(payload.Items), info.URL)
			if err := clipboard.WriteAll(info.URL); err == nil {
				fmt.Println(formatMuted("Link copied to clipboard."))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD or today/tomorrow, default: today)")
	cmd.Flags().StringVar(&replace, "replace", "", "Share id to revoke before publishing")

	cmd.AddCommand(a.shareRevokeCmd())
	return cmd
}

func (a *App) shareRevokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revoke [id]",
		Short: "Take a shared link down",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), shareTimeout)
			defer cancel()

			client := share.NewClient(a.config.Share.BaseURL, nil)
			if err := client.Delete(ctx, args[0]); err != nil {
				return fmt.Errorf("revoking share: %w", err)
			}
			fmt.Printf("Revoked %s\n", args[0])
			return nil
		},
	}
}
