package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	apperrors "esg-screener/internal/errors"
	"esg-screener/internal/logging"
	"esg-screener/internal/models"
)

// newsArticlePayload mirrors the news provider's article schema.
type newsArticlePayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	Image       string `json:"image"`
	PublishedAt string `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"source"`
}

type newsResponsePayload struct {
	TotalArticles int                  `json:"totalArticles"`
	Articles      []newsArticlePayload `json:"articles"`
}

// NewsClient talks to the query-based article search provider.
type NewsClient struct {
	cfg    Config
	http   *http.Client
	logger zerolog.Logger
}

// NewNewsClient creates a new news client.
func NewNewsClient(cfg Config, logger zerolog.Logger) *NewsClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &NewsClient{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logging.WithSource(logger, SourceNews),
	}
}

// Search fetches up to max articles matching query.
func (c *NewsClient) Search(ctx context.Context, query string, max int) ([]models.NewsArticle, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.ErrInvalidQuery
	}
	if max <= 0 {
		max = 10
	}

	params := url.Values{
		"q":      {query},
		"max":    {strconv.Itoa(max)},
		"lang":   {"en"},
		"apikey": {c.cfg.APIKey},
	}
	u := strings.TrimRight(c.cfg.BaseURL, "/") + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, apperrors.NewUpstreamError(SourceNews, "/search", 0, err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	logging.LogAPICall(c.logger, SourceNews, "/search", time.Since(start), err)
	if err != nil {
		return nil, apperrors.NewUpstreamError(SourceNews, "/search", 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, apperrors.NewUpstreamError(SourceNews, "/search", resp.StatusCode, nil)
	}

	var payload newsResponsePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.NewDataError(SourceNews, "", "decoding news response", err)
	}

	articles := make([]models.NewsArticle, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		if a.Title == "" && a.Description == "" {
			continue
		}
		publishedAt, _ := time.Parse(time.RFC3339, a.PublishedAt)
		articles = append(articles, models.NewsArticle{
			Title:       a.Title,
			Description: a.Description,
			Content:     a.Content,
			URL:         a.URL,
			Image:       a.Image,
			PublishedAt: publishedAt,
			Source: models.NewsSource{
				Name: a.Source.Name,
				URL:  a.Source.URL,
			},
		})
	}
	return articles, nil
}
