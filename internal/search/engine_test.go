package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esg-screener/internal/models"
)

type staticLister []models.InstrumentRecord

func (l staticLister) Instruments() []models.InstrumentRecord {
	return l
}

func testUniverse() staticLister {
	return staticLister{
		{Symbol: "AAPL", Name: "Apple Inc.", Price: 189.5, ExchangeShort: "NASDAQ", Kind: models.KindEquity},
		{Symbol: "AAPU", Name: "Direxion Daily AAPL Bull 2X Shares", Price: 32.0, ExchangeShort: "NASDAQ", Kind: models.KindFund},
		{Symbol: "APLE", Name: "Apple Hospitality REIT", Price: 14.8, ExchangeShort: "NYSE", Kind: models.KindEquity},
		{Symbol: "AAPL.SW", Name: "Apple Inc. Swiss Line", Price: 180.0, ExchangeShort: "SIX", Kind: models.KindEquity},
		{Symbol: "PINKCO", Name: "Aapl Lookalike Holdings", Price: 120.0, ExchangeShort: "PNK", Kind: models.KindEquity},
		{Symbol: "PENNY", Name: "Aapl Penny Ventures", Price: 0.4, ExchangeShort: "NYSE", Kind: models.KindEquity},
		{Symbol: "SPY", Name: "SPDR S&P 500 ETF Trust", Price: 520.1, ExchangeShort: "AMEX", Kind: models.KindFund},
		{Symbol: "MSFT", Name: "Microsoft Corporation", Price: 410.2, ExchangeShort: "NASDAQ", Kind: models.KindEquity},
		{Symbol: "UVXY", Name: "ProShares Ultra VIX Short-Term Futures ETF", Price: 22.0, ExchangeShort: "AMEX", Kind: models.KindFund},
	}
}

func newTestEngine() *Engine {
	return NewEngine(testUniverse(), DefaultConfig())
}

func TestEmptyQueryReturnsEmpty(t *testing.T) {
	e := newTestEngine()

	assert.Empty(t, e.Search("", 10))
	assert.Empty(t, e.Search("   ", 10))
	assert.Empty(t, e.Search("\t", 10))
}

func TestExactSymbolRanksAboveNameMatch(t *testing.T) {
	e := newTestEngine()

	results := e.Search("AAPL", 10)
	require.NotEmpty(t, results)
	assert.Equal(t, "AAPL", results[0].Symbol, "exact symbol match ranks first")

	for _, rec := range results {
		assert.NotEqual(t, "PINKCO", rec.Symbol, "OTC/pink-sheet records never appear")
		assert.NotEqual(t, "PENNY", rec.Symbol, "sub-floor prices never appear")
		assert.NotEqual(t, "AAPU", rec.Symbol, "leveraged products never appear")
	}
}

func TestQueryIsCaseInsensitive(t *testing.T) {
	e := newTestEngine()

	upper := e.Search("AAPL", 10)
	lower := e.Search("aapl", 10)
	require.Equal(t, len(upper), len(lower))
	for i := range upper {
		assert.Equal(t, upper[i].Symbol, lower[i].Symbol)
	}
}

func TestOTCExcludedRegardlessOfQuery(t *testing.T) {
	e := newTestEngine()

	for _, q := range []string{"PINKCO", "Lookalike", "pink"} {
		for _, rec := range e.Search(q, 50) {
			assert.NotEqual(t, "PINKCO", rec.Symbol, "query %q", q)
		}
	}
}

func TestVolatilityProductExcluded(t *testing.T) {
	e := newTestEngine()

	results := e.Search("UVXY", 10)
	assert.Empty(t, results)
}

func TestLimitTruncatesAfterSorting(t *testing.T) {
	e := newTestEngine()

	all := e.Search("A", 50)
	one := e.Search("A", 1)
	require.Len(t, one, 1)
	require.NotEmpty(t, all)
	assert.Equal(t, all[0].Symbol, one[0].Symbol, "truncation happens after ranking")
}

func TestIndexFundBonus(t *testing.T) {
	e := NewEngine(staticLister{
		{Symbol: "SPY", Name: "SPDR S&P 500 ETF Trust", Price: 520.1, ExchangeShort: "AMEX", Kind: models.KindFund},
		{Symbol: "SPYA", Name: "Spyglass Acquisitions", Price: 520.1, ExchangeShort: "AMEX", Kind: models.KindFund},
	}, DefaultConfig())

	results := e.Search("SPY", 10)
	require.Len(t, results, 2)
	assert.Equal(t, "SPY", results[0].Symbol, "index fund bonus plus exact match wins")
}

func TestTieBreakAlphabetical(t *testing.T) {
	// Identical records except symbol: same score, alphabetical order.
	e := NewEngine(staticLister{
		{Symbol: "ZETB", Name: "Zeta B", Price: 5.0, ExchangeShort: "LSE", Kind: models.KindEquity},
		{Symbol: "ZETA", Name: "Zeta A", Price: 5.0, ExchangeShort: "LSE", Kind: models.KindEquity},
	}, DefaultConfig())

	results := e.Search("ZET", 10)
	require.Len(t, results, 2)
	assert.Equal(t, "ZETA", results[0].Symbol)
	assert.Equal(t, "ZETB", results[1].Symbol)
}

func TestPriceBandsNonCumulative(t *testing.T) {
	over100 := models.InstrumentRecord{Symbol: "X", Name: "X", Price: 150, ExchangeShort: "LSE", Kind: models.KindFund}
	over50 := models.InstrumentRecord{Symbol: "X", Name: "X", Price: 60, ExchangeShort: "LSE", Kind: models.KindFund}
	over10 := models.InstrumentRecord{Symbol: "X", Name: "X", Price: 20, ExchangeShort: "LSE", Kind: models.KindFund}
	under10 := models.InstrumentRecord{Symbol: "X", Name: "X", Price: 5, ExchangeShort: "LSE", Kind: models.KindFund}

	base := scoreRecord(under10, "X")
	assert.Equal(t, base+bonusPriceOver10, scoreRecord(over10, "X"))
	assert.Equal(t, base+bonusPriceOver50, scoreRecord(over50, "X"))
	assert.Equal(t, base+bonusPriceOver100, scoreRecord(over100, "X"))
}

func TestWordBoundaryPatternMatch(t *testing.T) {
	assert.True(t, matchesPattern("CBOE VIX FUND", "VIX"))
	assert.True(t, matchesPattern("DIREXION BULL 3X SHARES", "3X"))
	assert.False(t, matchesPattern("CIVIX HOLDINGS", "VIX"), "mid-word hit is not a match")
	assert.False(t, matchesPattern("ULTRAMAR SHIPPING", "ULTRA"))
}
