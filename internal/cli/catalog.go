// Package cli provides the command-line interface for the screener.
package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	apperrors "esg-screener/internal/errors"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Instrument catalog management",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "refresh",
		Short: "Refresh the instrument universe from upstream",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			output := NewOutput(cmd)

			app.Catalog.Refresh(ctx)
			if err := app.Catalog.LastError(); err != nil {
				if apperrors.Is(err, apperrors.ErrQuotaExceeded) {
					output.Error("Refresh denied: upstream quota exhausted, try again after the window resets")
				} else {
					output.Error("Refresh failed: %v", err)
				}
				if snap := app.Catalog.Snapshot(); snap != nil {
					output.Warning("Serving previous snapshot of %d instruments", len(snap.Instruments))
				}
				return err
			}

			snap := app.Catalog.Snapshot()
			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"instruments": len(snap.Instruments),
					"fetched_at":  snap.FetchedAt,
				})
			}
			output.Success("✓ Catalog refreshed: %d instruments", len(snap.Instruments))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show catalog snapshot status",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			snap := app.Catalog.Snapshot()

			if output.IsJSON() {
				status := map[string]interface{}{
					"stale": app.Catalog.Stale(),
				}
				if snap != nil {
					status["instruments"] = len(snap.Instruments)
					status["fetched_at"] = snap.FetchedAt
				}
				if err := app.Catalog.LastError(); err != nil {
					status["last_error"] = err.Error()
				}
				return output.JSON(status)
			}

			if snap == nil {
				output.Warning("No catalog snapshot held. Run 'screener catalog refresh'.")
				return nil
			}

			output.Bold("Catalog Status")
			output.Printf("  Instruments: %d\n", len(snap.Instruments))
			output.Printf("  Fetched:     %s\n", FormatTimeAgo(snap.FetchedAt, time.Now()))
			if app.Catalog.Stale() {
				output.Warning("  Snapshot is stale")
			} else {
				output.Success("  Snapshot is fresh")
			}
			if err := app.Catalog.LastError(); err != nil {
				output.Error("  Last refresh error: %v", err)
			}
			return nil
		},
	})

	return cmd
}
