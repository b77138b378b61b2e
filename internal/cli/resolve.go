// Package cli provides the command-line interface for the screener.
package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"esg-screener/internal/models"
)

func newResolveCmd(app *App) *cobra.Command {
	var detail bool

	cmd := &cobra.Command{
		Use:   "resolve <symbol> [symbol...]",
		Short: "Resolve ESG scores for one or more symbols",
		Long: `Resolve unified ESG records for the given symbols.

Each symbol walks the resolution chain: cached record, live upstream
(when a catalog API key is configured and quota allows), the bundled
curated dataset, and finally a deterministic synthetic generator. The
source tier of each record is shown alongside the scores.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			output := NewOutput(cmd)

			records := app.Resolver.ResolveMany(ctx, args)
			if output.IsJSON() {
				return output.JSON(records)
			}

			if len(records) == 0 {
				output.Warning("No symbols could be resolved")
				return nil
			}

			if len(records) == 1 && detail {
				renderRecordDetail(output, records[0])
				return nil
			}

			table := NewTable(output, "SYMBOL", "NAME", "OVERALL", "ENV", "SOC", "GOV", "SOURCE")
			for _, rec := range records {
				table.AddRow(
					rec.Symbol,
					TruncateString(rec.Name, 32),
					FormatScore(rec.Scores.Overall),
					FormatScore(rec.Scores.Environmental),
					FormatScore(rec.Scores.Social),
					FormatScore(rec.Scores.Governance),
					output.TierTag(rec.SourceTier),
				)
			}
			table.Render()

			if detail {
				for _, rec := range records {
					output.Println()
					renderRecordDetail(output, rec)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&detail, "detail", "d", false, "show curated summary, controversies and impact metrics")
	return cmd
}

func renderRecordDetail(output *Output, rec *models.UnifiedESGRecord) {
	output.Bold("%s  %s %s", rec.Symbol, rec.Name, output.TierTag(rec.SourceTier))
	if rec.Sector != "" {
		output.Dim("Sector: %s", rec.Sector)
	}
	output.Printf("  Overall:       %s\n", FormatScore(rec.Scores.Overall))
	output.Printf("  Environmental: %s\n", FormatScore(rec.Scores.Environmental))
	output.Printf("  Social:        %s\n", FormatScore(rec.Scores.Social))
	output.Printf("  Governance:    %s\n", FormatScore(rec.Scores.Governance))

	if rec.Detail == nil {
		return
	}
	if rec.Detail.Summary != "" {
		output.Println()
		output.Println("  " + rec.Detail.Summary)
	}
	if len(rec.Detail.Controversies) > 0 {
		output.Println()
		output.Warning("Known controversies:")
		for _, c := range rec.Detail.Controversies {
			output.Printf("  - %s\n", c)
		}
	}
	if len(rec.Detail.ImpactMetrics) > 0 {
		output.Println()
		output.Info("Impact metrics:")
		for name, value := range rec.Detail.ImpactMetrics {
			output.Printf("  %s: %.2f\n", strings.ReplaceAll(name, "_", " "), value)
		}
	}
}
