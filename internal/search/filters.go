package search

import (
	"strings"

	"esg-screener/internal/models"
)

// majorExchanges is the allow-list of exchange short codes eligible for
// display. Anything else is filtered out before ranking.
var majorExchanges = map[string]struct{}{
	"NYSE":     {},
	"NASDAQ":   {},
	"AMEX":     {},
	"EURONEXT": {},
	"LSE":      {},
	"TSX":      {},
	"XETRA":    {},
	"SIX":      {},
	"ASX":      {},
	"HKSE":     {},
}

// excludedExchanges denotes OTC/pink-sheet/unlisted venues. Membership
// here rejects a record outright, independent of the allow-list.
var excludedExchanges = map[string]struct{}{
	"OTC":    {},
	"PNK":    {},
	"OTCBB":  {},
	"OTCQB":  {},
	"OTCQX":  {},
	"GREY":   {},
	"EXPM":   {},
	"MUTUAL": {},
}

// exclusionPatterns flags leveraged, inverse, derivative, volatility,
// commodity, currency and crypto products. Matched case-insensitively
// against the concatenated symbol and name.
var exclusionPatterns = []string{
	"1X", "2X", "3X",
	"ULTRA", "ULTRASHORT", "LEVERAGED", "INVERSE",
	"DAILY BULL", "DAILY BEAR",
	"VIX", "VOLATILITY",
	"FUTURES", "COMMODITY", "CRUDE OIL", "NATURAL GAS",
	"CURRENCY", "FOREX", "FX HEDGED",
	"BITCOIN", "ETHEREUM", "CRYPTO", "BLOCKCHAIN FUTURES",
	"COVERED CALL", "BUFFER",
}

// passesFilters reports whether a record is a mainstream security:
// listed on a major venue, above the price floor and not a leveraged or
// exotic product.
func passesFilters(rec models.InstrumentRecord, minPrice float64) bool {
	short := strings.ToUpper(strings.TrimSpace(rec.ExchangeShort))
	if _, excluded := excludedExchanges[short]; excluded {
		return false
	}
	if _, allowed := majorExchanges[short]; !allowed {
		return false
	}

	if rec.Price < minPrice {
		return false
	}

	haystack := strings.ToUpper(rec.Symbol + " " + rec.Name)
	for _, pattern := range exclusionPatterns {
		if matchesPattern(haystack, pattern) {
			return false
		}
	}
	return true
}

// matchesPattern is a word-boundary substring match: "VIX" matches
// "CBOE VIX FUND" and "UVIX" stays clear of "CIVIX" only when the
// pattern sits on token edges.
func matchesPattern(haystack, pattern string) bool {
	idx := 0
	for {
		i := strings.Index(haystack[idx:], pattern)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(pattern)
		startOK := start == 0 || !isWordChar(haystack[start-1])
		endOK := end == len(haystack) || !isWordChar(haystack[end])
		if startOK && endOK {
			return true
		}
		idx = start + 1
		if idx >= len(haystack) {
			return false
		}
	}
}

func isWordChar(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
