package search

import (
	"strings"

	"esg-screener/internal/models"
)

// Relevance bonuses, summed per record. Exact and prefix symbol matches
// are mutually exclusive; price bands award the single highest reached.
const (
	bonusExactSymbol  = 1000.0
	bonusSymbolPrefix = 500.0
	bonusNamePrefix   = 250.0
	bonusWellKnown    = 200.0
	bonusIndexFund    = 100.0
	bonusTopExchange  = 50.0
	bonusEquityKind   = 25.0
	bonusPriceOver100 = 30.0
	bonusPriceOver50  = 20.0
	bonusPriceOver10  = 10.0
)

// topTierExchanges earn the exchange bonus on top of allow-list entry.
var topTierExchanges = map[string]struct{}{
	"NYSE":   {},
	"NASDAQ": {},
}

// wellKnownSymbols is a fixed set of widely held large caps.
var wellKnownSymbols = map[string]struct{}{
	"AAPL": {}, "MSFT": {}, "GOOGL": {}, "GOOG": {}, "AMZN": {},
	"NVDA": {}, "META": {}, "TSLA": {}, "BRK.B": {}, "JPM": {},
	"V": {}, "MA": {}, "JNJ": {}, "WMT": {}, "PG": {},
	"UNH": {}, "HD": {}, "DIS": {}, "KO": {}, "PEP": {},
	"COST": {}, "ADBE": {}, "CRM": {}, "NFLX": {}, "INTC": {},
	"AMD": {}, "ORCL": {}, "CSCO": {}, "NKE": {}, "MCD": {},
}

// majorIndexFunds is a fixed set of broad index-tracking funds.
var majorIndexFunds = map[string]struct{}{
	"SPY": {}, "VOO": {}, "IVV": {}, "VTI": {}, "QQQ": {},
	"DIA": {}, "IWM": {}, "VEA": {}, "VWO": {}, "AGG": {},
	"BND": {}, "VIG": {}, "VYM": {}, "SCHD": {}, "VXUS": {},
	"EFA": {}, "VT": {}, "ITOT": {}, "SCHB": {},
}

// scoreRecord computes the relevance of rec against the normalized
// (upper-cased, trimmed) query.
func scoreRecord(rec models.InstrumentRecord, query string) float64 {
	symbol := strings.ToUpper(rec.Symbol)
	name := strings.ToUpper(rec.Name)

	var score float64

	switch {
	case symbol == query:
		score += bonusExactSymbol
	case strings.HasPrefix(symbol, query):
		score += bonusSymbolPrefix
	}

	if strings.HasPrefix(name, query) {
		score += bonusNamePrefix
	}

	if _, ok := wellKnownSymbols[symbol]; ok {
		score += bonusWellKnown
	}
	if _, ok := majorIndexFunds[symbol]; ok {
		score += bonusIndexFund
	}

	if _, ok := topTierExchanges[strings.ToUpper(rec.ExchangeShort)]; ok {
		score += bonusTopExchange
	}

	if rec.Kind == models.KindEquity {
		score += bonusEquityKind
	}

	switch {
	case rec.Price > 100:
		score += bonusPriceOver100
	case rec.Price > 50:
		score += bonusPriceOver50
	case rec.Price > 10:
		score += bonusPriceOver10
	}

	return score
}
