package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "esg-screener/internal/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, APIKey: "test-key"}, zerolog.Nop())
}

func TestStockListDecodesValidRows(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
		w.Write([]byte(`[
			{"symbol":"AAPL","name":"Apple Inc.","price":189.5,"exchange":"NASDAQ Global Select","exchangeShortName":"NASDAQ"},
			{"symbol":"","name":"broken row","price":1.0,"exchange":"X","exchangeShortName":"X"},
			{"symbol":"MSFT","name":"Microsoft Corporation","price":410.2,"exchange":"NASDAQ Global Select","exchangeShortName":"NASDAQ"}
		]`))
	})

	rows, err := c.StockList(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2, "invalid rows are dropped at the boundary")
	assert.Equal(t, "AAPL", rows[0].Symbol)
	assert.Equal(t, "NASDAQ", rows[1].ExchangeShort)
}

func TestListingsMalformedPayloadFailsClosed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"not an array"}`))
	})

	_, err := c.StockList(context.Background())
	require.Error(t, err)
	var dataErr *apperrors.DataError
	assert.True(t, apperrors.As(err, &dataErr))
}

func TestListingsServerErrorIsUpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.ETFList(context.Background())
	require.Error(t, err)
	var upErr *apperrors.UpstreamError
	require.True(t, apperrors.As(err, &upErr))
	assert.Equal(t, http.StatusTooManyRequests, upErr.Status)
}

func TestESGScoresEmptyArrayMeansNoData(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	row, err := c.ESGScores(context.Background(), "UNKNOWN")
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestESGScoresSingleElement(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		w.Write([]byte(`[{"symbol":"AAPL","esgScore":7.1,"environmentScore":6.8,"socialScore":7.4,"governanceScore":7.0}]`))
	})

	row, err := c.ESGScores(context.Background(), "aapl ")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, 7.1, row.ESGScore)
}

func TestESGScoresEmptySymbolRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be issued for an empty symbol")
	})

	_, err := c.ESGScores(context.Background(), "  ")
	assert.ErrorIs(t, err, apperrors.ErrInvalidSymbol)
}

func TestNewsSearchDecodesArticles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Apple ESG", r.URL.Query().Get("q"))
		w.Write([]byte(`{"totalArticles":1,"articles":[
			{"title":"Apple faces lawsuit","description":"d","content":"c","url":"https://example.com/a",
			 "image":"","publishedAt":"2025-05-01T10:00:00Z","source":{"name":"Example","url":"https://example.com"}}
		]}`))
	}))
	defer srv.Close()

	c := NewNewsClient(Config{BaseURL: srv.URL, APIKey: "k"}, zerolog.Nop())
	articles, err := c.Search(context.Background(), "Apple ESG", 5)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "Apple faces lawsuit", articles[0].Title)
	assert.Equal(t, "Example", articles[0].Source.Name)
	assert.Equal(t, 2025, articles[0].PublishedAt.Year())
}
