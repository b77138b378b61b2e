// Package cli provides the command-line interface for the screener.
package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func newCacheCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Cache management",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Clear cached ESG records",
		Long:  "Drop all cached ESG records so the next resolve walks the full chain again. The catalog snapshot is kept.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			output := NewOutput(cmd)

			app.Resolver.ClearCache(ctx)
			if output.IsJSON() {
				return output.JSON(map[string]bool{"cleared": true})
			}
			output.Success("✓ ESG cache cleared")
			return nil
		},
	})

	return cmd
}
