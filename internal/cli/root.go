// Package cli provides the command-line interface for the screener.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"esg-screener/internal/catalog"
	"esg-screener/internal/config"
	"esg-screener/internal/esg"
	"esg-screener/internal/logging"
	"esg-screener/internal/news"
	"esg-screener/internal/quota"
	"esg-screener/internal/search"
	"esg-screener/internal/store"
	"esg-screener/internal/upstream"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2025-06-01"
)

// App holds the application dependencies.
type App struct {
	Config     *config.Config
	Logger     zerolog.Logger
	Store      store.Store
	Tracker    *quota.Tracker
	Catalog    *catalog.Catalog
	Search     *search.Engine
	Resolver   *esg.Resolver
	Classifier *news.Classifier
	News       *upstream.NewsClient
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := buildApp(cfg, logger)

	rootCmd := &cobra.Command{
		Use:   "screener",
		Short: "ESG Screener - instrument search and tiered ESG resolution CLI",
		Long: `ESG Screener resolves ESG scores for tradable instruments.

Resolution walks cache, live upstream, a curated dataset and a deterministic
synthetic generator, so every known symbol yields a complete record even when
no upstream is configured. Search filters the instrument universe down to
mainstream listings and ranks matches by relevance.

Use 'screener help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/esg-screener)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	rootCmd.AddCommand(newSearchCmd(app))
	rootCmd.AddCommand(newResolveCmd(app))
	rootCmd.AddCommand(newCatalogCmd(app))
	rootCmd.AddCommand(newNewsCmd(app))
	rootCmd.AddCommand(newAnalyzeCmd(app))
	rootCmd.AddCommand(newQuotaCmd(app))
	rootCmd.AddCommand(newCacheCmd(app))

	return rootCmd
}

// buildApp wires the dependency graph. Every component degrades rather
// than fails: without API keys the catalog serves its persisted snapshot
// and resolution starts at the curated tier.
func buildApp(cfg *config.Config, logger zerolog.Logger) *App {
	app := &App{
		Config:     cfg,
		Logger:     logger,
		Classifier: news.NewClassifier(),
	}

	dataStore, err := store.NewSQLiteStore(cfg.Cache.DBPath, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to open cache database, falling back to in-memory cache")
		app.Store = store.NewMemoryStore()
	} else {
		app.Store = dataStore
		logger.Debug().Str("path", cfg.Cache.DBPath).Msg("SQLite cache store initialized")
	}

	app.Tracker = quota.NewTracker(map[string]quota.Limit{
		upstream.SourceESG:     {Max: cfg.Quota.ESGLimit, Window: cfg.Quota.ESGWindow},
		upstream.SourceNews:    {Max: cfg.Quota.NewsLimit, Window: cfg.Quota.NewsWindow},
		upstream.SourceCatalog: {Max: cfg.Quota.CatalogLimit, Window: cfg.Quota.CatalogWindow},
	})

	var catalogClient *upstream.Client
	if cfg.HasCatalogKey() {
		catalogClient = upstream.NewClient(upstream.Config{
			BaseURL: cfg.Upstream.CatalogBaseURL,
			APIKey:  cfg.Credentials.CatalogAPIKey,
			Timeout: cfg.Upstream.RequestTimeout,
		}, logger)
		logger.Debug().Msg("Catalog upstream client initialized")
	}

	if cfg.HasNewsKey() {
		app.News = upstream.NewNewsClient(upstream.Config{
			BaseURL: cfg.Upstream.NewsBaseURL,
			APIKey:  cfg.Credentials.NewsAPIKey,
			Timeout: cfg.Upstream.RequestTimeout,
		}, logger)
		logger.Debug().Msg("News upstream client initialized")
	}

	var catalogSource catalog.Source
	if catalogClient != nil {
		catalogSource = catalogClient
	}
	app.Catalog = catalog.New(catalogSource, app.Tracker, app.Store, cfg.Cache.CatalogTTL, logger)

	app.Search = search.NewEngine(app.Catalog, search.Config{
		MinPrice:     cfg.Search.MinPrice,
		DefaultLimit: cfg.Search.DefaultLimit,
	})

	curated, err := esg.LoadCuratedDataset()
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to load curated ESG dataset, that tier is disabled")
	}

	var scoreSource esg.ScoreSource
	if catalogClient != nil {
		scoreSource = catalogClient
	}
	app.Resolver = esg.NewResolver(app.Store, app.Tracker, scoreSource, curated, app.Catalog, esg.Config{
		LiveTTL:      cfg.Cache.ESGTTL,
		SyntheticTTL: cfg.Cache.SyntheticTTL,
	}, logger)

	return app
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("ESG Screener v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			return showConfig(output, app.Config)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) error {
	output.Bold("Upstream Configuration")
	output.Printf("  Catalog URL:     %s\n", cfg.Upstream.CatalogBaseURL)
	output.Printf("  News URL:        %s\n", cfg.Upstream.NewsBaseURL)
	output.Printf("  Timeout:         %s\n", cfg.Upstream.RequestTimeout)
	output.Printf("  Catalog key:     %v\n", cfg.HasCatalogKey())
	output.Printf("  News key:        %v\n", cfg.HasNewsKey())
	output.Println()

	output.Bold("Quota Configuration")
	output.Printf("  ESG:             %d per %s\n", cfg.Quota.ESGLimit, cfg.Quota.ESGWindow)
	output.Printf("  News:            %d per %s\n", cfg.Quota.NewsLimit, cfg.Quota.NewsWindow)
	output.Printf("  Catalog:         %d per %s\n", cfg.Quota.CatalogLimit, cfg.Quota.CatalogWindow)
	output.Println()

	output.Bold("Cache Configuration")
	output.Printf("  Database:        %s\n", cfg.Cache.DBPath)
	output.Printf("  ESG TTL:         %s\n", cfg.Cache.ESGTTL)
	output.Printf("  Synthetic TTL:   %s\n", cfg.Cache.SyntheticTTL)
	output.Printf("  Catalog TTL:     %s\n", cfg.Cache.CatalogTTL)
	output.Println()

	output.Bold("Search Configuration")
	output.Printf("  Min Price:       %.2f\n", cfg.Search.MinPrice)
	output.Printf("  Default Limit:   %d\n", cfg.Search.DefaultLimit)
	output.Printf("  Debounce:        %s\n", cfg.Search.Debounce)

	return nil
}
