package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpstreamErrorUnwrapsToCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewUpstreamError("fmp", "/stock/list", 0, cause)

	assert.Contains(t, err.Error(), "fmp")
	assert.Contains(t, err.Error(), "/stock/list")
	assert.True(t, Is(err, cause))

	withStatus := NewUpstreamError("fmp", "/esg", 429, nil)
	assert.Contains(t, withStatus.Error(), "429")
}

func TestWrapPreservesSentinels(t *testing.T) {
	require.Nil(t, Wrap(nil, "ignored"))

	wrapped := Wrap(ErrQuotaExceeded, "refreshing catalog")
	assert.True(t, Is(wrapped, ErrQuotaExceeded))
	assert.Contains(t, wrapped.Error(), "refreshing catalog")
}

func TestAsMatchesDataError(t *testing.T) {
	err := Wrap(NewDataError("fmp", "AAPL", "missing score fields", nil), "resolving")

	var dataErr *DataError
	require.True(t, As(err, &dataErr))
	assert.Equal(t, "AAPL", dataErr.Symbol)
}
