// Package cli provides the command-line interface for the screener.
package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	apperrors "esg-screener/internal/errors"
	"esg-screener/internal/logging"
	"esg-screener/internal/models"
	"esg-screener/internal/upstream"
)

func newNewsCmd(app *App) *cobra.Command {
	var max int

	cmd := &cobra.Command{
		Use:   "news <symbol>",
		Short: "Fetch recent news for a symbol and flag controversies",
		Long: `Fetch recent articles mentioning a symbol and run each through
the controversy classifier. Requires a news API key.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			output := NewOutput(cmd)
			symbol := strings.ToUpper(args[0])

			if app.News == nil {
				output.Error("No news API key configured. Set GNEWS_API_KEY or add it to credentials.toml.")
				return apperrors.ErrConfigInvalid
			}
			if !app.Tracker.Admit(upstream.SourceNews) {
				stats := app.Tracker.SourceStats(upstream.SourceNews)
				logging.LogQuotaDenied(app.Logger, upstream.SourceNews, stats.Limit)
				output.Error("News quota exhausted (%d per %s). Resets in %s.", stats.Limit, stats.Window, FormatDuration(stats.ResetsIn))
				return apperrors.ErrQuotaExceeded
			}

			query := symbol
			if rec := app.Catalog.GetBySymbol(symbol); rec != nil {
				query = fmt.Sprintf("%s %s", symbol, rec.Name)
			}

			articles, err := app.News.Search(ctx, query, max)
			if err != nil {
				output.Error("News fetch failed: %v", err)
				return err
			}
			if len(articles) == 0 {
				output.Warning("No recent articles found for %s", symbol)
				return nil
			}

			analyses := make([]models.ControversyAnalysis, len(articles))
			for i, article := range articles {
				analyses[i] = app.Classifier.Analyze(article.Title + " " + article.Description + " " + article.Content)
			}

			if output.IsJSON() {
				type analyzed struct {
					Article  models.NewsArticle         `json:"article"`
					Analysis models.ControversyAnalysis `json:"analysis"`
				}
				out := make([]analyzed, len(articles))
				for i := range articles {
					out[i] = analyzed{Article: articles[i], Analysis: analyses[i]}
				}
				return output.JSON(out)
			}

			renderNews(output, symbol, articles, analyses)
			return nil
		},
	}

	cmd.Flags().IntVarP(&max, "max", "n", 10, "maximum number of articles")
	return cmd
}

func renderNews(output *Output, symbol string, articles []models.NewsArticle, analyses []models.ControversyAnalysis) {
	output.Bold("Recent news for %s", symbol)
	output.Println()

	controversial := 0
	for i, article := range articles {
		analysis := analyses[i]

		marker := output.DimText("·")
		if analysis.IsControversial {
			marker = output.SeverityTag(analysis.Severity)
			controversial++
		}
		output.Printf("%s %s\n", marker, article.Title)
		output.Dim("  %s | %s", article.Source.Name, FormatTimeAgo(article.PublishedAt, time.Now()))
		if analysis.IsControversial {
			output.Printf("  %s, confidence %s", analysis.Category, FormatConfidence(analysis.Confidence))
			output.Println()
		}
		if article.Description != "" {
			output.Printf("  %s\n", TruncateString(article.Description, 100))
		}
		output.Println()
	}

	if controversial > 0 {
		output.Warning("%d of %d articles carry a controversy signal", controversial, len(articles))
	} else {
		output.Success("No controversy signal across %d articles", len(articles))
	}
}
