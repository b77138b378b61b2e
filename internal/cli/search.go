// Package cli provides the command-line interface for the screener.
package cli

import (
	"bufio"
	"context"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"esg-screener/internal/logging"
	"esg-screener/internal/models"
	"esg-screener/internal/search"
)

func newSearchCmd(app *App) *cobra.Command {
	var limit int
	var interactive bool

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search mainstream instruments",
		Long: `Search the instrument universe for mainstream listings.

Results exclude OTC and pink-sheet listings, sub-dollar prices and
leveraged/exotic products, and are ranked by relevance to the query.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			waitRefresh := ensureCatalog(ctx, app)
			defer waitRefresh()

			if interactive {
				return runInteractiveSearch(cmd, app, limit)
			}

			query := ""
			if len(args) > 0 {
				query = args[0]
			}
			output := NewOutput(cmd)
			results := app.Search.Search(query, limit)
			return renderSearchResults(output, query, results)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of results (default from config)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "read queries from stdin, re-running as you type")
	return cmd
}

// runInteractiveSearch reads one query per line and schedules each
// through the debouncer, so rapid edits only execute the final query.
func runInteractiveSearch(cmd *cobra.Command, app *App, limit int) error {
	output := NewOutput(cmd)
	debouncer := search.NewDebouncer(app.Config.Search.Debounce)
	defer debouncer.Stop()

	color.Cyan("🔍 Interactive search")
	output.Dim("Type a query and press enter, empty line to quit.")
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}
		debouncer.Submit(line, func(query string) {
			results := app.Search.Search(query, limit)
			renderSearchResults(output, query, results)
		})
	}
	return scanner.Err()
}

func renderSearchResults(output *Output, query string, results []models.InstrumentRecord) error {
	if output.IsJSON() {
		return output.JSON(results)
	}

	if len(results) == 0 {
		output.Warning("No mainstream instruments match %q", query)
		return nil
	}

	table := NewTable(output, "SYMBOL", "NAME", "PRICE", "EXCHANGE", "KIND")
	for _, rec := range results {
		table.AddRow(
			rec.Symbol,
			TruncateString(rec.Name, 40),
			FormatPrice(rec.Price),
			rec.ExchangeShort,
			string(rec.Kind),
		)
	}
	table.Render()
	output.Dim("%d result(s)", len(results))
	return nil
}

// ensureCatalog makes a snapshot available for searching. A stale but
// present snapshot is served as is while the refresh runs in the
// background; only a missing snapshot blocks. The returned func waits
// for the background refresh so its persisted snapshot still lands
// before the process exits.
func ensureCatalog(ctx context.Context, app *App) (wait func()) {
	wait = func() {}
	if !app.Catalog.Stale() {
		return wait
	}

	if app.Catalog.Snapshot() == nil {
		app.Catalog.Refresh(ctx)
		if err := app.Catalog.LastError(); err != nil {
			ctxLogger := logging.FromContext(ctx)
			ctxLogger.Warn().Err(err).Msg("Catalog refresh failed, nothing to search yet")
		}
		return wait
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		app.Catalog.Refresh(ctx)
		if err := app.Catalog.LastError(); err != nil {
			ctxLogger := logging.FromContext(ctx)
			ctxLogger.Warn().Err(err).Msg("Catalog refresh failed, serving held snapshot")
		}
	}()
	return func() { <-done }
}
