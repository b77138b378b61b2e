// Package cli provides the command-line interface for the screener.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newQuotaCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quota",
		Short: "Upstream quota management",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show per-source quota usage for the current window",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			sources := app.Tracker.Sources()

			if output.IsJSON() {
				stats := make([]interface{}, 0, len(sources))
				for _, source := range sources {
					stats = append(stats, app.Tracker.SourceStats(source))
				}
				return output.JSON(stats)
			}

			table := NewTable(output, "SOURCE", "USED", "LIMIT", "WINDOW", "RESETS IN")
			for _, source := range sources {
				stats := app.Tracker.SourceStats(source)
				used := fmt.Sprintf("%d", stats.Used)
				if stats.Used >= stats.Limit && stats.Limit > 0 {
					used = output.Red(used)
				}
				resets := "-"
				if stats.ResetsIn > 0 {
					resets = FormatDuration(stats.ResetsIn)
				}
				table.AddRow(source, used, fmt.Sprintf("%d", stats.Limit), stats.Window.String(), resets)
			}
			table.Render()
			return nil
		},
	})

	return cmd
}
