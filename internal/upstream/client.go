// Package upstream provides HTTP clients for the catalog, ESG and news
// data sources. Payloads are decoded into explicit schemas and validated
// at the boundary; a schema mismatch fails closed as a DataError so the
// caller falls through to its next tier.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	apperrors "esg-screener/internal/errors"
	"esg-screener/internal/logging"
)

// Source names used for quota tracking and logging.
const (
	SourceCatalog = "catalog"
	SourceESG     = "esg-scores"
	SourceNews    = "news"
)

// ListingPayload is one instrument row from the catalog list endpoints.
type ListingPayload struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Exchange      string  `json:"exchange"`
	ExchangeShort string  `json:"exchangeShortName"`
	MarketCap     float64 `json:"marketCap,omitempty"`
}

// Valid reports whether the row carries the required fields.
func (p ListingPayload) Valid() bool {
	return p.Symbol != "" && p.Price >= 0
}

// ESGPayload is one row from the single-symbol ESG endpoint.
type ESGPayload struct {
	Symbol           string  `json:"symbol"`
	ESGScore         float64 `json:"esgScore"`
	EnvironmentScore float64 `json:"environmentScore"`
	SocialScore      float64 `json:"socialScore"`
	GovernanceScore  float64 `json:"governanceScore"`
}

// Config holds client configuration.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client talks to the catalog/ESG provider. Authentication is a
// query-string key, the provider's convention.
type Client struct {
	cfg    Config
	http   *http.Client
	logger zerolog.Logger
}

// NewClient creates a new catalog/ESG client.
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// StockList fetches the full equity universe.
func (c *Client) StockList(ctx context.Context) ([]ListingPayload, error) {
	return c.listings(ctx, "/stock/list")
}

// ETFList fetches the full fund universe.
func (c *Client) ETFList(ctx context.Context) ([]ListingPayload, error) {
	return c.listings(ctx, "/etf/list")
}

func (c *Client) listings(ctx context.Context, endpoint string) ([]ListingPayload, error) {
	var rows []ListingPayload
	if err := c.getJSON(ctx, SourceCatalog, endpoint, nil, &rows); err != nil {
		return nil, err
	}

	out := rows[:0]
	for _, r := range rows {
		if r.Valid() {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return nil, apperrors.NewDataError(SourceCatalog, "", "listing response contained no valid rows", nil)
	}
	return out, nil
}

// ESGScores fetches the ESG record for one symbol. The endpoint returns
// an array of zero or one elements; zero means the provider has no data.
func (c *Client) ESGScores(ctx context.Context, symbol string) (*ESGPayload, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, apperrors.ErrInvalidSymbol
	}

	var rows []ESGPayload
	params := url.Values{"symbol": {symbol}}
	if err := c.getJSON(ctx, SourceESG, "/esg-environmental-social-governance-data", params, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	row := rows[0]
	if row.Symbol == "" {
		row.Symbol = symbol
	}
	return &row, nil
}

// getJSON issues a GET and decodes the body into out. Any non-2xx status,
// transport failure or undecodable body is returned as a typed error.
func (c *Client) getJSON(ctx context.Context, source, endpoint string, params url.Values, out interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("apikey", c.cfg.APIKey)

	u := strings.TrimRight(c.cfg.BaseURL, "/") + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return apperrors.NewUpstreamError(source, endpoint, 0, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	logging.LogAPICall(c.logger, source, endpoint, time.Since(start), err)
	if err != nil {
		return apperrors.NewUpstreamError(source, endpoint, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return apperrors.NewUpstreamError(source, endpoint, resp.StatusCode, nil)
	}

	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(out); err != nil {
		return apperrors.NewDataError(source, "", fmt.Sprintf("decoding %s response", endpoint), err)
	}
	return nil
}
