package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# ESG Screener Configuration

[upstream]
# Base URL of the catalog/ESG data provider
catalog_base_url = "https://financialmodelingprep.com/api/v3"
# Base URL of the news provider
news_base_url = "https://gnews.io/api/v4"
# Upstream request timeout
request_timeout = "10s"

[quota]
# Maximum ESG score lookups per window
esg_limit = 50
esg_window = "1h"
# Maximum news searches per window
news_limit = 100
news_window = "24h"
# Maximum catalog list fetches per window
catalog_limit = 10
catalog_window = "1h"

[cache]
# SQLite cache database path (defaults next to this file)
# db_path = ""
# TTL for live/curated ESG records
esg_ttl = "15m"
# TTL for synthetic ESG records
synthetic_ttl = "5m"
# Catalog staleness TTL
catalog_ttl = "24h"

[search]
# Minimum last price for a search result
min_price = 1.0
# Default result limit
default_limit = 20
# Debounce interval for interactive search
debounce = "300ms"
`

const credentialsTemplate = `# ESG Screener Credentials
# Keep this file private (chmod 600).
# Both keys are optional: without them, resolution still works through
# the curated and synthetic tiers.

# catalog_api_key = "your-fmp-api-key"
# news_api_key = "your-gnews-api-key"
`

func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte(configTemplate), 0644)
}

func createTemplateCredentials(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	path := filepath.Join(configDir, "credentials.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte(credentialsTemplate), 0600)
}
