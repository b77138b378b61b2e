// Package config provides configuration management for the screening application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Upstream    UpstreamConfig `mapstructure:"upstream"`
	Quota       QuotaConfig    `mapstructure:"quota"`
	Cache       CacheConfig    `mapstructure:"cache"`
	Search      SearchConfig   `mapstructure:"search"`
	Credentials Credentials    `mapstructure:"-"` // Loaded separately
}

// UpstreamConfig holds upstream endpoint configuration.
type UpstreamConfig struct {
	CatalogBaseURL string        `mapstructure:"catalog_base_url"`
	NewsBaseURL    string        `mapstructure:"news_base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// QuotaConfig holds per-source rate limiting configuration.
type QuotaConfig struct {
	ESGLimit      int           `mapstructure:"esg_limit"`
	ESGWindow     time.Duration `mapstructure:"esg_window"`
	NewsLimit     int           `mapstructure:"news_limit"`
	NewsWindow    time.Duration `mapstructure:"news_window"`
	CatalogLimit  int           `mapstructure:"catalog_limit"`
	CatalogWindow time.Duration `mapstructure:"catalog_window"`
}

// CacheConfig holds cache TTLs and the persistence path.
type CacheConfig struct {
	DBPath       string        `mapstructure:"db_path"`
	ESGTTL       time.Duration `mapstructure:"esg_ttl"`
	SyntheticTTL time.Duration `mapstructure:"synthetic_ttl"`
	CatalogTTL   time.Duration `mapstructure:"catalog_ttl"`
}

// SearchConfig holds filter and ranking configuration.
type SearchConfig struct {
	MinPrice     float64       `mapstructure:"min_price"`
	DefaultLimit int           `mapstructure:"default_limit"`
	Debounce     time.Duration `mapstructure:"debounce"`
}

// Credentials holds upstream API credentials.
type Credentials struct {
	CatalogAPIKey string `mapstructure:"catalog_api_key"`
	NewsAPIKey    string `mapstructure:"news_api_key"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/esg-screener"
	}
	return filepath.Join(home, ".config", "esg-screener")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
// Missing files produce commented templates and defaults are applied,
// so most of the system still functions with only the synthetic tier.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}

	if err := loadConfigFile(configDir, cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	if err := loadCredentials(configDir, &cfg.Credentials); err != nil {
		return nil, fmt.Errorf("loading credentials.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(configDir string, target *Config) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	setDefaults(v, configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if err := createTemplateConfig(configDir); err != nil {
				return err
			}
			// Fall through with defaults only.
			return v.Unmarshal(target)
		}
		return err
	}

	return v.Unmarshal(target)
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("upstream.catalog_base_url", "https://financialmodelingprep.com/api/v3")
	v.SetDefault("upstream.news_base_url", "https://gnews.io/api/v4")
	v.SetDefault("upstream.request_timeout", 10*time.Second)

	v.SetDefault("quota.esg_limit", 50)
	v.SetDefault("quota.esg_window", time.Hour)
	v.SetDefault("quota.news_limit", 100)
	v.SetDefault("quota.news_window", 24*time.Hour)
	v.SetDefault("quota.catalog_limit", 10)
	v.SetDefault("quota.catalog_window", time.Hour)

	v.SetDefault("cache.db_path", filepath.Join(configDir, "cache.db"))
	v.SetDefault("cache.esg_ttl", 15*time.Minute)
	v.SetDefault("cache.synthetic_ttl", 5*time.Minute)
	v.SetDefault("cache.catalog_ttl", 24*time.Hour)

	v.SetDefault("search.min_price", 1.0)
	v.SetDefault("search.default_limit", 20)
	v.SetDefault("search.debounce", 300*time.Millisecond)
}

func loadCredentials(configDir string, creds *Credentials) error {
	v := viper.New()
	v.SetConfigName("credentials")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return createTemplateCredentials(configDir)
		}
		return err
	}

	return v.Unmarshal(creds)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FMP_API_KEY"); v != "" {
		cfg.Credentials.CatalogAPIKey = v
	}
	if v := os.Getenv("GNEWS_API_KEY"); v != "" {
		cfg.Credentials.NewsAPIKey = v
	}
	if v := os.Getenv("ESG_CACHE_DB"); v != "" {
		cfg.Cache.DBPath = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Quota.ESGLimit < 0 || c.Quota.NewsLimit < 0 || c.Quota.CatalogLimit < 0 {
		return fmt.Errorf("quota limits must be non-negative")
	}
	if c.Quota.ESGWindow <= 0 || c.Quota.NewsWindow <= 0 || c.Quota.CatalogWindow <= 0 {
		return fmt.Errorf("quota windows must be positive")
	}
	if c.Cache.ESGTTL <= 0 || c.Cache.SyntheticTTL <= 0 || c.Cache.CatalogTTL <= 0 {
		return fmt.Errorf("cache TTLs must be positive")
	}
	if c.Search.MinPrice < 0 {
		return fmt.Errorf("min_price must be non-negative")
	}
	if c.Search.DefaultLimit <= 0 {
		return fmt.Errorf("default_limit must be positive")
	}
	if c.Upstream.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}
	return nil
}

// HasCatalogKey reports whether a catalog/ESG upstream key is configured.
func (c *Config) HasCatalogKey() bool {
	return c.Credentials.CatalogAPIKey != ""
}

// HasNewsKey reports whether a news upstream key is configured.
func (c *Config) HasNewsKey() bool {
	return c.Credentials.NewsAPIKey != ""
}
