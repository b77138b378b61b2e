// Package cli provides the command-line interface for the screener.
package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newAnalyzeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <text...>",
		Short: "Classify free text for ESG controversy signal",
		Long: `Run the controversy classifier over the given text. The
classifier is purely keyword-based and needs no network access.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			text := strings.Join(args, " ")

			analysis := app.Classifier.Analyze(text)
			if output.IsJSON() {
				return output.JSON(analysis)
			}

			output.Bold("Controversy Analysis")
			if analysis.IsControversial {
				output.Printf("  Controversial: %s\n", output.Red("yes"))
			} else {
				output.Printf("  Controversial: %s\n", output.Green("no"))
			}
			output.Printf("  Severity:      %s\n", output.SeverityTag(analysis.Severity))
			output.Printf("  Category:      %s\n", analysis.Category)
			output.Printf("  Confidence:    %s\n", FormatConfidence(analysis.Confidence))
			if len(analysis.MatchedKeywords) > 0 {
				output.Printf("  Keywords:      %s\n", strings.Join(analysis.MatchedKeywords, ", "))
			}
			output.Println()
			output.Dim("%s", analysis.Summary)
			return nil
		},
	}
}
